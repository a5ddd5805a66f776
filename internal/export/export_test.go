package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/campusworks/timetable-engine/internal/engine"
	"github.com/campusworks/timetable-engine/internal/models"
)

func sampleSessions() []*models.Session {
	return []*models.Session{
		{
			ID: "s1", CourseCode: "CS101", CourseName: "Programming Fundamentals",
			FacultyName: "Dr. Rao", RoomName: "Room A", ProgramName: "BSc Computer Science",
			Kind: models.KindTheory, Day: "Monday", TimeSlot: "09:00-10:00",
		},
		{
			ID: "s2", CourseCode: "CS102", CourseName: "Data Structures",
			FacultyName: "Dr. Iyer", RoomName: "Lab 1", ProgramName: "BSc Computer Science",
			Kind: models.KindPractical, Day: "Monday", TimeSlot: "10:00-11:00",
		},
		{
			ID: "s3", CourseCode: "MA101", CourseName: "Calculus",
			FacultyName: "Dr. Nair", RoomName: "Room B", ProgramName: "BSc Computer Science",
			Kind: models.KindTheory,
		},
	}
}

func TestTextGroupsByDayAndSlot(t *testing.T) {
	out := Text(engine.DefaultGrid(), sampleSessions())

	if !strings.Contains(out, "Monday\n------\n") {
		t.Error("output should carry an underlined Monday header")
	}
	if strings.Contains(out, "Tuesday") {
		t.Error("days without sessions should be omitted")
	}

	idx09 := strings.Index(out, "09:00-10:00")
	idx10 := strings.Index(out, "10:00-11:00")
	if idx09 == -1 || idx10 == -1 || idx09 > idx10 {
		t.Errorf("slots out of grid order: 09:00 at %d, 10:00 at %d", idx09, idx10)
	}

	if !strings.Contains(out, "CS101 Programming Fundamentals | Dr. Rao | Room A | BSc Computer Science | theory") {
		t.Errorf("missing session line in output:\n%s", out)
	}
}

func TestTextUnscheduledSection(t *testing.T) {
	out := Text(engine.DefaultGrid(), sampleSessions())

	idx := strings.Index(out, "Unscheduled")
	if idx == -1 {
		t.Fatal("output should carry an Unscheduled section")
	}
	calcIdx := strings.Index(out, "MA101")
	if calcIdx < idx {
		t.Error("unscheduled session should appear after the Unscheduled header")
	}
}

func TestTextEmptyTimetable(t *testing.T) {
	out := Text(engine.DefaultGrid(), nil)
	if out != "" {
		t.Errorf("empty timetable should render empty, got %q", out)
	}
}

func TestCSVHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleSessions()); err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}

	wantHeader := `"day","time","course code","course name","faculty name","room name","program name","kind"`
	if lines[0] != wantHeader {
		t.Errorf("header = %s, want %s", lines[0], wantHeader)
	}

	wantRow := `"Monday","09:00-10:00","CS101","Programming Fundamentals","Dr. Rao","Room A","BSc Computer Science","theory"`
	if lines[1] != wantRow {
		t.Errorf("row = %s, want %s", lines[1], wantRow)
	}

	// Unscheduled sessions export with empty day and time cells
	if !strings.HasPrefix(lines[3], `"","","MA101"`) {
		t.Errorf("unscheduled row = %s", lines[3])
	}
}

func TestCSVQuotesEmbeddedQuotes(t *testing.T) {
	sessions := []*models.Session{
		{
			CourseCode: "CS1", CourseName: `Intro to "Systems"`,
			Day: "Monday", TimeSlot: "09:00-10:00", Kind: models.KindTheory,
		},
	}

	var buf bytes.Buffer
	if err := CSV(&buf, sessions); err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Intro to ""Systems"""`) {
		t.Errorf("embedded quotes not doubled:\n%s", buf.String())
	}
}
