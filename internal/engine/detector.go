package engine

import (
	"fmt"

	"github.com/campusworks/timetable-engine/internal/models"
)

// Detector scans an assigned session list for conflicts. Detection is a
// full recompute on every call; nothing is cached between runs.
type Detector struct {
	grid Grid
}

// NewDetector creates a detector for the given grid
func NewDetector(grid Grid) *Detector {
	return &Detector{grid: grid}
}

// Detect reports every conflict in the session list as a flat slice, one
// entry per collision event. Unscheduled sessions come first, then
// faculty and room double-bookings cell by cell in grid order. A cell
// holding three sessions with the same faculty yields two conflicts.
func (d *Detector) Detect(sessions []*models.Session) []models.Constraint {
	var conflicts []models.Constraint

	for _, s := range sessions {
		if !s.Scheduled() {
			conflicts = append(conflicts, models.Constraint{
				Kind:        models.ConflictUnscheduled,
				Description: fmt.Sprintf("session for %s (%s) could not be scheduled", s.CourseCode, s.CourseName),
				Severity:    models.SeverityHigh,
			})
		}
	}

	byCell := make(map[string][]*models.Session)
	for _, s := range sessions {
		if s.Scheduled() {
			key := cellKey(s.Day, s.TimeSlot)
			byCell[key] = append(byCell[key], s)
		}
	}

	for _, day := range d.grid.Days {
		for _, slot := range d.grid.TimeSlots {
			group := byCell[cellKey(day, slot)]
			if len(group) < 2 {
				continue
			}

			seenFaculty := make(map[string]bool)
			seenRoom := make(map[string]bool)
			for _, s := range group {
				if seenFaculty[s.FacultyID] {
					conflicts = append(conflicts, models.Constraint{
						Kind:        models.ConflictFaculty,
						Description: fmt.Sprintf("%s is double-booked on %s %s (%s)", s.FacultyName, day, slot, s.CourseCode),
						Severity:    models.SeverityHigh,
					})
				}
				seenFaculty[s.FacultyID] = true

				if seenRoom[s.RoomID] {
					conflicts = append(conflicts, models.Constraint{
						Kind:        models.ConflictRoom,
						Description: fmt.Sprintf("room %s is double-booked on %s %s (%s)", s.RoomName, day, slot, s.CourseCode),
						Severity:    models.SeverityHigh,
					})
				}
				seenRoom[s.RoomID] = true
			}
		}
	}

	return conflicts
}
