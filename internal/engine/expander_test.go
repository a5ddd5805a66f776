package engine

import (
	"strings"
	"testing"

	"github.com/campusworks/timetable-engine/internal/models"
)

func testCatalog() Catalog {
	return Catalog{
		Programs: []models.Program{
			{ID: "prog-1", Name: "BSc Computer Science", Category: models.ProgramUndergraduate, DurationYears: 3},
		},
		Courses: []models.Course{
			{ID: "crs-1", Code: "CS101", Name: "Programming Fundamentals", ProgramID: "prog-1", TheoryHours: 3, PracticalHours: 2, Semester: 1},
		},
		Faculty: []models.Faculty{
			{ID: "fac-1", Name: "Dr. Rao", ProgramIDs: []string{"prog-1"}},
		},
		Rooms: []models.Room{
			{ID: "room-1", Name: "Room A", Category: models.RoomClassroom, Capacity: 60},
			{ID: "room-2", Name: "Lab 1", Category: models.RoomLaboratory, Capacity: 30},
		},
	}
}

func TestExpandSessionCounts(t *testing.T) {
	sessions, notices := NewExpander(testCatalog()).Expand()

	if len(notices) != 0 {
		t.Errorf("expected no notices, got %d", len(notices))
	}
	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions (3 theory + 2 practical), got %d", len(sessions))
	}

	theory, practical := 0, 0
	for _, s := range sessions {
		switch s.Kind {
		case models.KindTheory:
			theory++
			if s.RoomID != "room-1" {
				t.Errorf("theory session %s bound to %s, want classroom room-1", s.ID, s.RoomID)
			}
		case models.KindPractical:
			practical++
			if s.RoomID != "room-2" {
				t.Errorf("practical session %s bound to %s, want laboratory room-2", s.ID, s.RoomID)
			}
		}
		if s.Scheduled() {
			t.Errorf("session %s should be unscheduled after expansion", s.ID)
		}
		if s.FacultyID != "fac-1" {
			t.Errorf("session %s bound to faculty %s, want fac-1", s.ID, s.FacultyID)
		}
	}
	if theory != 3 || practical != 2 {
		t.Errorf("expected 3 theory / 2 practical sessions, got %d/%d", theory, practical)
	}
}

func TestExpandOrdering(t *testing.T) {
	catalog := testCatalog()
	catalog.Courses = []models.Course{
		{ID: "crs-e1", Code: "EL1", Name: "Elective One", ProgramID: "prog-1", TheoryHours: 1, Elective: true, Semester: 1},
		{ID: "crs-r3", Code: "RQ3", Name: "Required Three", ProgramID: "prog-1", TheoryHours: 1, Semester: 3},
		{ID: "crs-r1", Code: "RQ1", Name: "Required One", ProgramID: "prog-1", TheoryHours: 1, Semester: 1},
	}

	sessions, _ := NewExpander(catalog).Expand()
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	want := []string{"RQ1", "RQ3", "EL1"}
	for i, code := range want {
		if sessions[i].CourseCode != code {
			t.Errorf("position %d: got %s, want %s", i, sessions[i].CourseCode, code)
		}
	}
}

func TestExpandHeadcountByCategory(t *testing.T) {
	tests := []struct {
		category models.ProgramCategory
		want     int
	}{
		{models.ProgramUndergraduate, 40},
		{models.ProgramPostgraduate, 30},
		{models.ProgramIntegrated, 60},
		{models.ProgramDiploma, 35},
		{models.ProgramCategory("certificate"), defaultHeadcount},
	}

	for _, tt := range tests {
		catalog := testCatalog()
		catalog.Programs[0].Category = tt.category

		sessions, _ := NewExpander(catalog).Expand()
		if len(sessions) == 0 {
			t.Fatalf("category %s: no sessions expanded", tt.category)
		}
		if sessions[0].Headcount != tt.want {
			t.Errorf("category %s: headcount = %d, want %d", tt.category, sessions[0].Headcount, tt.want)
		}
	}
}

func TestExpandExpertiseMatch(t *testing.T) {
	catalog := testCatalog()
	catalog.Faculty = []models.Faculty{
		{ID: "fac-1", Name: "Dr. Rao", ProgramIDs: []string{"prog-1"}},
		{ID: "fac-2", Name: "Dr. Iyer", ProgramIDs: []string{"prog-1"}, Expertise: []string{"programming"}},
	}

	sessions, _ := NewExpander(catalog).Expand()
	if len(sessions) == 0 {
		t.Fatal("no sessions expanded")
	}
	for _, s := range sessions {
		if s.FacultyID != "fac-2" {
			t.Errorf("session %s bound to %s, want expertise match fac-2", s.ID, s.FacultyID)
		}
	}
}

func TestExpandFacultyFallback(t *testing.T) {
	catalog := testCatalog()
	catalog.Faculty = []models.Faculty{
		{ID: "fac-9", Name: "Dr. Nair", ProgramIDs: []string{"prog-other"}},
	}

	sessions, notices := NewExpander(catalog).Expand()
	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions despite fallback, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.FacultyID != "fac-9" {
			t.Errorf("session %s bound to %s, want fallback fac-9", s.ID, s.FacultyID)
		}
	}

	found := false
	for _, n := range notices {
		if n.Kind == models.ConflictFacultyUnavailable {
			found = true
			if n.Severity != models.SeverityLow {
				t.Errorf("fallback notice severity = %s, want low", n.Severity)
			}
		}
	}
	if !found {
		t.Error("expected a faculty fallback notice")
	}
}

func TestExpandRoomFallback(t *testing.T) {
	catalog := testCatalog()
	catalog.Rooms = []models.Room{
		{ID: "room-9", Name: "Auditorium", Category: models.RoomAuditorium, Capacity: 200},
	}

	sessions, notices := NewExpander(catalog).Expand()
	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions despite fallback, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.RoomID != "room-9" {
			t.Errorf("session %s bound to %s, want fallback room-9", s.ID, s.RoomID)
		}
	}

	// One notice per batch (theory and practical both fall back)
	roomNotices := 0
	for _, n := range notices {
		if n.Kind == models.ConflictRoomUnavailable {
			roomNotices++
			if !strings.Contains(n.Description, "Auditorium") {
				t.Errorf("notice should name the fallback room: %q", n.Description)
			}
		}
	}
	if roomNotices != 2 {
		t.Errorf("expected 2 room fallback notices, got %d", roomNotices)
	}
}

func TestExpandZeroHourCourse(t *testing.T) {
	catalog := testCatalog()
	catalog.Courses = []models.Course{
		{ID: "crs-0", Code: "CS000", Name: "Seminar", ProgramID: "prog-1"},
	}

	sessions, notices := NewExpander(catalog).Expand()
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for a zero-hour course, got %d", len(sessions))
	}
	if len(notices) != 0 {
		t.Errorf("expected no notices for a zero-hour course, got %d", len(notices))
	}
}

func TestExpandEmptyResourcePools(t *testing.T) {
	noFaculty := testCatalog()
	noFaculty.Faculty = nil
	sessions, _ := NewExpander(noFaculty).Expand()
	if len(sessions) != 0 {
		t.Errorf("expected no sessions without faculty, got %d", len(sessions))
	}

	noRooms := testCatalog()
	noRooms.Rooms = nil
	sessions, _ = NewExpander(noRooms).Expand()
	if len(sessions) != 0 {
		t.Errorf("expected no sessions without rooms, got %d", len(sessions))
	}
}

func TestExpandSessionIDsUnique(t *testing.T) {
	sessions, _ := NewExpander(testCatalog()).Expand()

	seen := make(map[string]bool)
	for _, s := range sessions {
		if seen[s.ID] {
			t.Errorf("duplicate session id %s", s.ID)
		}
		seen[s.ID] = true
	}
}
