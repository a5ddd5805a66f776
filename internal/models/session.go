package models

// SessionKind distinguishes theory sessions from practical sessions
type SessionKind string

const (
	KindTheory    SessionKind = "theory"
	KindPractical SessionKind = "practical"
)

// Session is one hour-long teaching occurrence of a course, bound to a
// faculty member and a room. Created unslotted by the expander; the
// assigner populates Day/TimeSlot at most once. A session with an empty
// Day after assignment could not be placed on the grid.
type Session struct {
	ID          string      `json:"id"`
	CourseID    string      `json:"course_id"`
	CourseCode  string      `json:"course_code"`
	CourseName  string      `json:"course_name"`
	FacultyID   string      `json:"faculty_id"`
	FacultyName string      `json:"faculty_name"`
	RoomID      string      `json:"room_id"`
	RoomName    string      `json:"room_name"`
	ProgramID   string      `json:"program_id"`
	ProgramName string      `json:"program_name"`
	Day         string      `json:"day,omitempty"`
	TimeSlot    string      `json:"time_slot,omitempty"`
	DurationHrs int         `json:"duration_hours"`
	Headcount   int         `json:"headcount"`
	Kind        SessionKind `json:"kind"`
}

// Scheduled reports whether the session has been placed on the grid
func (s *Session) Scheduled() bool {
	return s.Day != "" && s.TimeSlot != ""
}
