package models

// ProgramCategory classifies a program under the credit framework
type ProgramCategory string

const (
	ProgramUndergraduate ProgramCategory = "undergraduate"
	ProgramPostgraduate  ProgramCategory = "postgraduate"
	ProgramIntegrated    ProgramCategory = "integrated"
	ProgramDiploma       ProgramCategory = "diploma"
)

// Program represents an academic program offering courses
type Program struct {
	ID                        string          `json:"id" yaml:"id"`
	Name                      string          `json:"name" yaml:"name"`
	Category                  ProgramCategory `json:"category" yaml:"category"`
	DurationYears             int             `json:"duration_years" yaml:"duration_years"`
	TotalCredits              int             `json:"total_credits" yaml:"total_credits"`
	MajorCredits              int             `json:"major_credits" yaml:"major_credits"`
	MinorCredits              int             `json:"minor_credits" yaml:"minor_credits"`
	SkillCredits              int             `json:"skill_credits" yaml:"skill_credits"`
	AbilityEnhancementCredits int             `json:"ability_enhancement_credits" yaml:"ability_enhancement_credits"`
	ValueAddedCredits         int             `json:"value_added_credits" yaml:"value_added_credits"`
}

// Course represents a single course within a program
type Course struct {
	ID             string   `json:"id" yaml:"id"`
	Code           string   `json:"code" yaml:"code"`
	Name           string   `json:"name" yaml:"name"`
	Category       string   `json:"category" yaml:"category"`
	Credits        int      `json:"credits" yaml:"credits"`
	TheoryHours    int      `json:"theory_hours" yaml:"theory_hours"`
	PracticalHours int      `json:"practical_hours" yaml:"practical_hours"`
	ProgramID      string   `json:"program_id" yaml:"program_id"`
	Elective       bool     `json:"elective" yaml:"elective"`
	Semester       int      `json:"semester" yaml:"semester"`
	Description    string   `json:"description,omitempty" yaml:"description"`
	Prerequisites  []string `json:"prerequisites,omitempty" yaml:"prerequisites"`
}

// Faculty represents a teaching staff member
type Faculty struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	ProgramIDs       []string `json:"program_ids" yaml:"program_ids"`
	Expertise        []string `json:"expertise,omitempty" yaml:"expertise"`
	MaxWeeklyHours   int      `json:"max_weekly_hours" yaml:"max_weekly_hours"`
	UnavailableSlots []string `json:"unavailable_slots,omitempty" yaml:"unavailable_slots"`
}

// CanTeach reports whether the faculty member is attached to the given program
func (f *Faculty) CanTeach(programID string) bool {
	for _, id := range f.ProgramIDs {
		if id == programID {
			return true
		}
	}
	return false
}

// RoomCategory classifies a teaching room
type RoomCategory string

const (
	RoomClassroom   RoomCategory = "classroom"
	RoomLaboratory  RoomCategory = "laboratory"
	RoomSeminarHall RoomCategory = "seminar-hall"
	RoomAuditorium  RoomCategory = "auditorium"
	RoomLibrary     RoomCategory = "library"
	RoomComputerLab RoomCategory = "computer-lab"
)

// Room represents a physical teaching space
type Room struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Category         RoomCategory `json:"category" yaml:"category"`
	Capacity         int          `json:"capacity" yaml:"capacity"`
	UnavailableSlots []string     `json:"unavailable_slots,omitempty" yaml:"unavailable_slots"`
}
