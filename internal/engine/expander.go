package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campusworks/timetable-engine/internal/models"
)

// Estimated class sizes per program category. Categories outside the
// table fall back to defaultHeadcount.
var headcountByCategory = map[models.ProgramCategory]int{
	models.ProgramUndergraduate: 40,
	models.ProgramPostgraduate:  30,
	models.ProgramIntegrated:    60,
	models.ProgramDiploma:       35,
}

const defaultHeadcount = 30

// theoryRooms and practicalRooms are the room categories acceptable for
// each session kind.
var (
	theoryRooms    = map[models.RoomCategory]bool{models.RoomClassroom: true, models.RoomSeminarHall: true}
	practicalRooms = map[models.RoomCategory]bool{models.RoomLaboratory: true, models.RoomComputerLab: true}
)

// Expander turns the course catalog into discrete unscheduled sessions,
// each pre-bound to a faculty candidate and a room candidate.
type Expander struct {
	catalog Catalog
}

// NewExpander creates an expander over a catalog snapshot
func NewExpander(catalog Catalog) *Expander {
	return &Expander{catalog: catalog}
}

// Expand produces one session per theory hour and one per practical hour
// for every course. Required courses are expanded before electives, each
// group in ascending semester order, so earlier-expanded sessions get
// first pick of slots downstream. The returned constraints are
// low-severity notices about fallback resource selection.
func (e *Expander) Expand() ([]*models.Session, []models.Constraint) {
	courses := make([]models.Course, len(e.catalog.Courses))
	copy(courses, e.catalog.Courses)

	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].Elective != courses[j].Elective {
			return !courses[i].Elective
		}
		return courses[i].Semester < courses[j].Semester
	})

	var sessions []*models.Session
	var notices []models.Constraint

	for i := range courses {
		course := &courses[i]
		if course.TheoryHours > 0 {
			batch, ns := e.expandBatch(course, models.KindTheory, course.TheoryHours)
			sessions = append(sessions, batch...)
			notices = append(notices, ns...)
		}
		if course.PracticalHours > 0 {
			batch, ns := e.expandBatch(course, models.KindPractical, course.PracticalHours)
			sessions = append(sessions, batch...)
			notices = append(notices, ns...)
		}
	}

	return sessions, notices
}

// expandBatch creates hours identical sessions for one course/kind pair,
// all bound to the same faculty and room candidate. A batch with no
// resolvable faculty or room produces no sessions at all; this silent
// under-scheduling is surfaced through the low-severity notices instead
// of an error.
func (e *Expander) expandBatch(course *models.Course, kind models.SessionKind, hours int) ([]*models.Session, []models.Constraint) {
	var notices []models.Constraint

	faculty, facultyFellBack := e.selectFaculty(course)
	if facultyFellBack {
		notices = append(notices, models.Constraint{
			Kind:        models.ConflictFacultyUnavailable,
			Description: fmt.Sprintf("no faculty attached to program of course %s (%s); fell back to %s", course.Code, course.Name, faculty.Name),
			Severity:    models.SeverityLow,
		})
	}

	room, roomFellBack := e.selectRoom(kind)
	if roomFellBack {
		notices = append(notices, models.Constraint{
			Kind:        models.ConflictRoomUnavailable,
			Description: fmt.Sprintf("no %s room available for course %s (%s); fell back to %s", kind, course.Code, course.Name, room.Name),
			Severity:    models.SeverityLow,
		})
	}

	if faculty == nil || room == nil {
		return nil, notices
	}

	program := e.catalog.ProgramByID(course.ProgramID)
	programName := ""
	headcount := defaultHeadcount
	if program != nil {
		programName = program.Name
		if hc, ok := headcountByCategory[program.Category]; ok {
			headcount = hc
		}
	}

	sessions := make([]*models.Session, 0, hours)
	for i := 0; i < hours; i++ {
		sessions = append(sessions, &models.Session{
			ID:          fmt.Sprintf("%s-%s-%d", course.ID, kind, i+1),
			CourseID:    course.ID,
			CourseCode:  course.Code,
			CourseName:  course.Name,
			FacultyID:   faculty.ID,
			FacultyName: faculty.Name,
			RoomID:      room.ID,
			RoomName:    room.Name,
			ProgramID:   course.ProgramID,
			ProgramName: programName,
			DurationHrs: 1,
			Headcount:   headcount,
			Kind:        kind,
		})
	}

	return sessions, notices
}

// selectFaculty picks a faculty candidate for the course. Faculty attached
// to the course's program are preferred, with an expertise keyword match
// against the course name or description breaking ties. When no attached
// faculty exists the whole catalog is the fallback pool; the second return
// value reports that degradation.
func (e *Expander) selectFaculty(course *models.Course) (*models.Faculty, bool) {
	var eligible []*models.Faculty
	for i := range e.catalog.Faculty {
		f := &e.catalog.Faculty[i]
		if f.CanTeach(course.ProgramID) {
			eligible = append(eligible, f)
		}
	}

	name := strings.ToLower(course.Name)
	desc := strings.ToLower(course.Description)
	for _, f := range eligible {
		for _, kw := range f.Expertise {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(name, kw) || strings.Contains(desc, kw) {
				return f, false
			}
		}
	}

	if len(eligible) > 0 {
		return eligible[0], false
	}
	if len(e.catalog.Faculty) > 0 {
		return &e.catalog.Faculty[0], true
	}
	return nil, false
}

// selectRoom picks the first room whose category suits the session kind,
// falling back to the first room in the catalog when none matches.
func (e *Expander) selectRoom(kind models.SessionKind) (*models.Room, bool) {
	wanted := theoryRooms
	if kind == models.KindPractical {
		wanted = practicalRooms
	}

	for i := range e.catalog.Rooms {
		if wanted[e.catalog.Rooms[i].Category] {
			return &e.catalog.Rooms[i], false
		}
	}
	if len(e.catalog.Rooms) > 0 {
		return &e.catalog.Rooms[0], true
	}
	return nil, false
}
