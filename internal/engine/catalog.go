package engine

import "github.com/campusworks/timetable-engine/internal/models"

// Catalog is the read-only input to one generation call: the four flat
// record collections. The caller reloads it before every run; the engine
// never mutates it and holds no reference after returning.
type Catalog struct {
	Programs []models.Program
	Courses  []models.Course
	Faculty  []models.Faculty
	Rooms    []models.Room
}

// ProgramByID returns the program with the given ID, or nil
func (c Catalog) ProgramByID(id string) *models.Program {
	for i := range c.Programs {
		if c.Programs[i].ID == id {
			return &c.Programs[i]
		}
	}
	return nil
}
