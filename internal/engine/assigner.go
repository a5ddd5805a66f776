package engine

import "github.com/campusworks/timetable-engine/internal/models"

// Assigner places unscheduled sessions onto the weekly grid. The session
// slice is processed strictly in input order and returned with Day and
// TimeSlot populated where a placement was found. Implementations may use
// any strategy as long as they respect per-cell faculty/room exclusivity
// and resource unavailability.
type Assigner interface {
	Assign(sessions []*models.Session) []*models.Session
}

// FirstFit is the default assigner: a single-pass greedy sweep that gives
// each session the earliest free cell in grid order. No backtracking, no
// look-ahead; a session that fits nowhere is left unscheduled.
type FirstFit struct {
	grid Grid

	// occupancy maps cell key to the set of resource tags booked there
	occupancy map[string]map[string]bool

	// unavailability is keyed by time label only: a resource marked
	// unavailable for a slot is unavailable at that slot on every day
	facultyBlocked map[string]map[string]bool
	roomBlocked    map[string]map[string]bool
}

// NewFirstFit builds a first-fit assigner for one generation pass.
// Resource unavailability is captured from the catalog up front.
func NewFirstFit(grid Grid, catalog Catalog) *FirstFit {
	ff := &FirstFit{
		grid:           grid,
		occupancy:      make(map[string]map[string]bool),
		facultyBlocked: make(map[string]map[string]bool),
		roomBlocked:    make(map[string]map[string]bool),
	}

	for _, f := range catalog.Faculty {
		ff.facultyBlocked[f.ID] = slotSet(f.UnavailableSlots)
	}
	for _, r := range catalog.Rooms {
		ff.roomBlocked[r.ID] = slotSet(r.UnavailableSlots)
	}

	return ff
}

// Assign sweeps the sessions in order, placing each in the first cell
// where its faculty and room are both free and available.
func (ff *FirstFit) Assign(sessions []*models.Session) []*models.Session {
	for _, s := range sessions {
		ff.place(s)
	}
	return sessions
}

func (ff *FirstFit) place(s *models.Session) {
	facultyTag := "faculty-" + s.FacultyID
	roomTag := "room-" + s.RoomID

	for _, day := range ff.grid.Days {
		for _, slot := range ff.grid.TimeSlots {
			if ff.facultyBlocked[s.FacultyID][slot] || ff.roomBlocked[s.RoomID][slot] {
				continue
			}

			key := cellKey(day, slot)
			cell := ff.occupancy[key]
			if cell[facultyTag] || cell[roomTag] {
				continue
			}

			if cell == nil {
				cell = make(map[string]bool)
				ff.occupancy[key] = cell
			}
			cell[facultyTag] = true
			cell[roomTag] = true

			s.Day = day
			s.TimeSlot = slot
			s.DurationHrs = 1
			return
		}
	}
	// no free cell anywhere; session stays unscheduled
}

func slotSet(slots []string) map[string]bool {
	if len(slots) == 0 {
		return nil
	}
	set := make(map[string]bool, len(slots))
	for _, s := range slots {
		set[s] = true
	}
	return set
}
