package engine

import (
	"strings"
	"testing"

	"github.com/campusworks/timetable-engine/internal/models"
)

func TestGenerateEmptyCollections(t *testing.T) {
	full := testCatalog()

	tests := []struct {
		name    string
		mutate  func(*Catalog)
		keyword string
	}{
		{"no programs", func(c *Catalog) { c.Programs = nil }, "no programs"},
		{"no courses", func(c *Catalog) { c.Courses = nil }, "no courses"},
		{"no faculty", func(c *Catalog) { c.Faculty = nil }, "no faculty"},
		{"no rooms", func(c *Catalog) { c.Rooms = nil }, "no rooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := full
			tt.mutate(&catalog)

			result := NewGenerator(DefaultGrid()).Generate(catalog)
			if result.Success {
				t.Error("generation should not succeed on an empty collection")
			}
			if len(result.Timetable) != 0 {
				t.Errorf("expected empty timetable, got %d sessions", len(result.Timetable))
			}
			if !strings.Contains(result.Message, tt.keyword) {
				t.Errorf("message %q should mention %q", result.Message, tt.keyword)
			}
		})
	}
}

func TestGenerateSuccess(t *testing.T) {
	result := NewGenerator(DefaultGrid()).Generate(testCatalog())

	if !result.Success {
		t.Fatalf("generation failed: %s", result.Message)
	}
	if len(result.Timetable) != 5 {
		t.Errorf("expected 5 sessions, got %d", len(result.Timetable))
	}
	if result.ScheduledCount() != 5 {
		t.Errorf("expected all 5 sessions scheduled, got %d", result.ScheduledCount())
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %d", len(result.Conflicts))
	}
	if !strings.Contains(result.Message, "no conflicts") {
		t.Errorf("success message = %q", result.Message)
	}
}

func TestGenerateZeroHourCourses(t *testing.T) {
	catalog := testCatalog()
	catalog.Courses = []models.Course{
		{ID: "crs-0", Code: "CS000", Name: "Seminar", ProgramID: "prog-1"},
	}

	result := NewGenerator(DefaultGrid()).Generate(catalog)
	if result.Success {
		t.Error("generation should not succeed with zero sessions")
	}
	if !strings.Contains(result.Message, "no sessions to schedule") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestGenerateOverflowReportsUnscheduled(t *testing.T) {
	// Single cell grid, two one-hour sessions sharing faculty and room:
	// the second cannot be placed and must fail the run
	grid := Grid{Days: []string{"Monday"}, TimeSlots: []string{"09:00-10:00"}}
	catalog := testCatalog()
	catalog.Courses = []models.Course{
		{ID: "crs-1", Code: "CS101", Name: "Programming Fundamentals", ProgramID: "prog-1", TheoryHours: 2, Semester: 1},
	}

	result := NewGenerator(grid).Generate(catalog)
	if result.Success {
		t.Error("generation should fail when a session cannot be placed")
	}
	if result.ScheduledCount() != 1 {
		t.Errorf("scheduled = %d, want 1", result.ScheduledCount())
	}
	if result.HighSeverityCount() != 1 {
		t.Errorf("high-severity conflicts = %d, want 1", result.HighSeverityCount())
	}
	if result.Conflicts[0].Kind != models.ConflictUnscheduled {
		t.Errorf("conflict kind = %s, want %s", result.Conflicts[0].Kind, models.ConflictUnscheduled)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	catalog := testCatalog()
	catalog.Courses = append(catalog.Courses,
		models.Course{ID: "crs-2", Code: "CS102", Name: "Data Structures", ProgramID: "prog-1", TheoryHours: 4, PracticalHours: 2, Semester: 2},
		models.Course{ID: "crs-3", Code: "MA101", Name: "Calculus", ProgramID: "prog-1", TheoryHours: 3, Semester: 1, Elective: true},
	)

	gen := NewGenerator(DefaultGrid())
	first := gen.Generate(catalog)
	second := gen.Generate(catalog)

	if len(first.Timetable) != len(second.Timetable) {
		t.Fatalf("session counts differ: %d vs %d", len(first.Timetable), len(second.Timetable))
	}
	for i := range first.Timetable {
		a, b := first.Timetable[i], second.Timetable[i]
		if a.ID != b.ID || a.Day != b.Day || a.TimeSlot != b.TimeSlot {
			t.Errorf("run divergence at %d: %s@%s/%s vs %s@%s/%s",
				i, a.ID, a.Day, a.TimeSlot, b.ID, b.Day, b.TimeSlot)
		}
	}
}

func TestGenerateFallbackNoticesDoNotFailRun(t *testing.T) {
	catalog := testCatalog()
	catalog.Rooms = []models.Room{
		{ID: "room-9", Name: "Auditorium", Category: models.RoomAuditorium, Capacity: 200},
	}

	result := NewGenerator(DefaultGrid()).Generate(catalog)
	if !result.Success {
		t.Fatalf("low-severity notices must not fail the run: %s", result.Message)
	}
	if len(result.Conflicts) == 0 {
		t.Error("expected fallback notices in the conflict list")
	}
	for _, c := range result.Conflicts {
		if c.Severity == models.SeverityHigh {
			t.Errorf("unexpected high-severity conflict: %+v", c)
		}
	}
}

func TestGenerateWithCustomAssigner(t *testing.T) {
	called := false
	factory := func(grid Grid, catalog Catalog) Assigner {
		called = true
		return NewFirstFit(grid, catalog)
	}

	gen := NewGenerator(DefaultGrid(), WithAssigner(factory))
	result := gen.Generate(testCatalog())

	if !called {
		t.Error("custom assigner factory was not used")
	}
	if !result.Success {
		t.Errorf("generation failed: %s", result.Message)
	}
}
