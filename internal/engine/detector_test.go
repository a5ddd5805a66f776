package engine

import (
	"testing"

	"github.com/campusworks/timetable-engine/internal/models"
)

func scheduledSession(id, facultyID, roomID, day, slot string) *models.Session {
	s := testSession(id, facultyID, roomID)
	s.Day = day
	s.TimeSlot = slot
	return s
}

func TestDetectCleanTimetable(t *testing.T) {
	grid := DefaultGrid()
	sessions := []*models.Session{
		scheduledSession("s1", "fac-1", "room-1", "Monday", "09:00-10:00"),
		scheduledSession("s2", "fac-2", "room-2", "Monday", "09:00-10:00"),
		scheduledSession("s3", "fac-1", "room-1", "Monday", "10:00-11:00"),
	}

	conflicts := NewDetector(grid).Detect(sessions)
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %d: %+v", len(conflicts), conflicts)
	}
}

func TestDetectFacultyCollision(t *testing.T) {
	grid := DefaultGrid()
	sessions := []*models.Session{
		scheduledSession("s1", "fac-1", "room-1", "Monday", "09:00-10:00"),
		scheduledSession("s2", "fac-1", "room-2", "Monday", "09:00-10:00"),
	}

	conflicts := NewDetector(grid).Detect(sessions)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Kind != models.ConflictFaculty {
		t.Errorf("kind = %s, want %s", conflicts[0].Kind, models.ConflictFaculty)
	}
	if conflicts[0].Severity != models.SeverityHigh {
		t.Errorf("severity = %s, want high", conflicts[0].Severity)
	}
}

func TestDetectRoomCollision(t *testing.T) {
	grid := DefaultGrid()
	sessions := []*models.Session{
		scheduledSession("s1", "fac-1", "room-1", "Tuesday", "11:00-12:00"),
		scheduledSession("s2", "fac-2", "room-1", "Tuesday", "11:00-12:00"),
	}

	conflicts := NewDetector(grid).Detect(sessions)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Kind != models.ConflictRoom {
		t.Errorf("kind = %s, want %s", conflicts[0].Kind, models.ConflictRoom)
	}
}

func TestDetectOneConflictPerRepeat(t *testing.T) {
	// Three sessions with the same faculty in one cell: two collision
	// events, not one and not three
	grid := DefaultGrid()
	sessions := []*models.Session{
		scheduledSession("s1", "fac-1", "room-1", "Monday", "09:00-10:00"),
		scheduledSession("s2", "fac-1", "room-2", "Monday", "09:00-10:00"),
		scheduledSession("s3", "fac-1", "room-3", "Monday", "09:00-10:00"),
	}

	conflicts := NewDetector(grid).Detect(sessions)

	facultyConflicts := 0
	for _, c := range conflicts {
		if c.Kind == models.ConflictFaculty {
			facultyConflicts++
		}
	}
	if facultyConflicts != 2 {
		t.Errorf("expected 2 faculty conflicts, got %d", facultyConflicts)
	}
}

func TestDetectUnscheduledFirst(t *testing.T) {
	grid := DefaultGrid()
	unplaced := testSession("s0", "fac-3", "room-3")
	unplaced.CourseCode = "CS101"
	sessions := []*models.Session{
		scheduledSession("s1", "fac-1", "room-1", "Monday", "09:00-10:00"),
		scheduledSession("s2", "fac-1", "room-2", "Monday", "09:00-10:00"),
		unplaced,
	}

	conflicts := NewDetector(grid).Detect(sessions)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
	if conflicts[0].Kind != models.ConflictUnscheduled {
		t.Errorf("first conflict = %s, want %s", conflicts[0].Kind, models.ConflictUnscheduled)
	}
	if conflicts[0].Severity != models.SeverityHigh {
		t.Errorf("unscheduled severity = %s, want high", conflicts[0].Severity)
	}
	if conflicts[1].Kind != models.ConflictFaculty {
		t.Errorf("second conflict = %s, want %s", conflicts[1].Kind, models.ConflictFaculty)
	}
}

func TestDetectAfterFirstFitRoundTrip(t *testing.T) {
	// Whatever first-fit places must come back conflict-free
	grid := DefaultGrid()
	catalog := testCatalog()
	catalog.Courses = append(catalog.Courses,
		models.Course{ID: "crs-2", Code: "CS102", Name: "Data Structures", ProgramID: "prog-1", TheoryHours: 4, PracticalHours: 2, Semester: 2},
		models.Course{ID: "crs-3", Code: "CS103", Name: "Discrete Mathematics", ProgramID: "prog-1", TheoryHours: 3, Semester: 1},
	)

	sessions, _ := NewExpander(catalog).Expand()
	NewFirstFit(grid, catalog).Assign(sessions)

	for _, s := range sessions {
		if !s.Scheduled() {
			t.Fatalf("session %s unexpectedly unscheduled", s.ID)
		}
	}

	conflicts := NewDetector(grid).Detect(sessions)
	if len(conflicts) != 0 {
		t.Errorf("first-fit output should be conflict-free, got %d: %+v", len(conflicts), conflicts)
	}
}
