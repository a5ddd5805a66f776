package models

import "time"

// ConstraintKind categorizes a detected scheduling conflict
type ConstraintKind string

const (
	ConflictFaculty            ConstraintKind = "faculty-conflict"
	ConflictRoom               ConstraintKind = "room-conflict"
	ConflictStudent            ConstraintKind = "student-conflict"
	ConflictFacultyUnavailable ConstraintKind = "faculty-unavailable"
	ConflictRoomUnavailable    ConstraintKind = "room-unavailable"
	ConflictUnscheduled        ConstraintKind = "unscheduled"
)

// Severity grades how serious a constraint violation is.
// Any high-severity constraint marks the whole generation unsuccessful.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Constraint is one detected conflict or degradation notice. Constraints
// are derived from the session list on every detection pass, never stored.
type Constraint struct {
	Kind        ConstraintKind `json:"kind"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
}

// GenerationResult is the complete outcome of one timetable generation
type GenerationResult struct {
	Timetable []*Session   `json:"timetable"`
	Conflicts []Constraint `json:"conflicts"`
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
}

// HighSeverityCount returns the number of high-severity conflicts
func (r *GenerationResult) HighSeverityCount() int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// ScheduledCount returns the number of sessions placed on the grid
func (r *GenerationResult) ScheduledCount() int {
	n := 0
	for _, s := range r.Timetable {
		if s.Scheduled() {
			n++
		}
	}
	return n
}

// GenerationRun is a summary record of one generation call, kept for audit.
// Full results live only in the latest snapshot; old runs are pruned.
type GenerationRun struct {
	ID            string    `json:"id"`
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	SessionCount  int       `json:"session_count"`
	ConflictCount int       `json:"conflict_count"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}
