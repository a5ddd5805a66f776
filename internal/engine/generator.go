package engine

import (
	"fmt"

	"github.com/campusworks/timetable-engine/internal/models"
)

// AssignerFactory builds an assigner for one generation pass over the
// given catalog. Swapping in a stronger solver (backtracking search,
// min-conflicts, ILP) only requires a different factory.
type AssignerFactory func(grid Grid, catalog Catalog) Assigner

// Generator runs the full expand -> assign -> detect pipeline. It is a
// pure function of the catalog plus the grid: no internal state survives
// a call and concurrent calls from independent callers are safe.
type Generator struct {
	grid        Grid
	newAssigner AssignerFactory
}

// Option configures the generator
type Option func(*Generator)

// WithAssigner overrides the default first-fit assigner
func WithAssigner(factory AssignerFactory) Option {
	return func(g *Generator) {
		g.newAssigner = factory
	}
}

// NewGenerator creates a generator over the given grid
func NewGenerator(grid Grid, opts ...Option) *Generator {
	g := &Generator{
		grid: grid,
		newAssigner: func(grid Grid, catalog Catalog) Assigner {
			return NewFirstFit(grid, catalog)
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Grid returns the grid the generator schedules against
func (g *Generator) Grid() Grid {
	return g.grid
}

// Generate produces a timetable for the catalog. Empty catalog
// collections are a recoverable input condition, reported through the
// result message rather than an error. Success means zero high-severity
// conflicts; the timetable is returned in full either way so conflicted
// runs can be reviewed manually.
func (g *Generator) Generate(catalog Catalog) *models.GenerationResult {
	if msg := missingCatalogs(catalog); msg != "" {
		return &models.GenerationResult{
			Timetable: []*models.Session{},
			Conflicts: []models.Constraint{},
			Success:   false,
			Message:   msg,
		}
	}

	expander := NewExpander(catalog)
	sessions, notices := expander.Expand()

	if len(sessions) == 0 {
		return &models.GenerationResult{
			Timetable: []*models.Session{},
			Conflicts: notices,
			Success:   false,
			Message:   "no sessions to schedule: courses in the catalog have no theory or practical hours",
		}
	}

	assigner := g.newAssigner(g.grid, catalog)
	sessions = assigner.Assign(sessions)

	conflicts := NewDetector(g.grid).Detect(sessions)
	conflicts = append(conflicts, notices...)

	result := &models.GenerationResult{
		Timetable: sessions,
		Conflicts: conflicts,
	}
	result.Success = result.HighSeverityCount() == 0
	result.Message = summarize(result)

	return result
}

// missingCatalogs returns a guidance message when any input collection is
// empty, or "" when all four are populated.
func missingCatalogs(catalog Catalog) string {
	switch {
	case len(catalog.Programs) == 0:
		return "no programs in catalog: add at least one program before generating a timetable"
	case len(catalog.Courses) == 0:
		return "no courses in catalog: add at least one course before generating a timetable"
	case len(catalog.Faculty) == 0:
		return "no faculty in catalog: add at least one faculty member before generating a timetable"
	case len(catalog.Rooms) == 0:
		return "no rooms in catalog: add at least one room before generating a timetable"
	}
	return ""
}

func summarize(r *models.GenerationResult) string {
	scheduled := r.ScheduledCount()
	unscheduled := len(r.Timetable) - scheduled
	high := r.HighSeverityCount()

	if r.Success {
		return fmt.Sprintf("timetable generated: %d sessions scheduled, no conflicts", scheduled)
	}
	return fmt.Sprintf("timetable generated with issues: %d sessions scheduled, %d unscheduled, %d high-severity conflicts", scheduled, unscheduled, high)
}
