package engine

// Grid defines the weekly scheduling grid: an ordered list of days and an
// ordered list of one-hour time labels. The scan order of the first-fit
// assigner follows the order given here.
type Grid struct {
	Days      []string
	TimeSlots []string
}

// DefaultGrid returns the standard institutional week:
// Monday through Saturday, eight one-hour slots from 09:00 to 17:00.
func DefaultGrid() Grid {
	return Grid{
		Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		TimeSlots: []string{
			"09:00-10:00",
			"10:00-11:00",
			"11:00-12:00",
			"12:00-13:00",
			"13:00-14:00",
			"14:00-15:00",
			"15:00-16:00",
			"16:00-17:00",
		},
	}
}

// Cells returns the total number of day/time cells in the grid
func (g Grid) Cells() int {
	return len(g.Days) * len(g.TimeSlots)
}

// cellKey builds the occupancy map key for a day/time cell
func cellKey(day, slot string) string {
	return day + "|" + slot
}
