// Package export renders a generated timetable for display and download.
// It is boundary plumbing only; no scheduling logic lives here.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/campusworks/timetable-engine/internal/engine"
	"github.com/campusworks/timetable-engine/internal/models"
)

// Text renders the timetable as a human-readable block, grouped by
// weekday and time label in grid order. Sessions that never received a
// slot are listed in a trailing section.
func Text(grid engine.Grid, sessions []*models.Session) string {
	byCell := make(map[string][]*models.Session)
	var unscheduled []*models.Session

	for _, s := range sessions {
		if s.Scheduled() {
			key := s.Day + "|" + s.TimeSlot
			byCell[key] = append(byCell[key], s)
		} else {
			unscheduled = append(unscheduled, s)
		}
	}

	var b strings.Builder
	for _, day := range grid.Days {
		dayHasSessions := false
		for _, slot := range grid.TimeSlots {
			if len(byCell[day+"|"+slot]) > 0 {
				dayHasSessions = true
				break
			}
		}
		if !dayHasSessions {
			continue
		}

		fmt.Fprintf(&b, "%s\n%s\n", day, strings.Repeat("-", len(day)))
		for _, slot := range grid.TimeSlots {
			group := byCell[day+"|"+slot]
			if len(group) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", slot)
			for _, s := range group {
				fmt.Fprintf(&b, "    %s %s | %s | %s | %s | %s\n",
					s.CourseCode, s.CourseName, s.FacultyName, s.RoomName, s.ProgramName, s.Kind)
			}
		}
		b.WriteString("\n")
	}

	if len(unscheduled) > 0 {
		b.WriteString("Unscheduled\n-----------\n")
		for _, s := range unscheduled {
			fmt.Fprintf(&b, "    %s %s | %s | %s | %s | %s\n",
				s.CourseCode, s.CourseName, s.FacultyName, s.RoomName, s.ProgramName, s.Kind)
		}
	}

	return b.String()
}

// csvHeader is the fixed column order of the tabular rendering
var csvHeader = []string{"day", "time", "course code", "course name", "faculty name", "room name", "program name", "kind"}

// CSV writes the timetable as comma-separated rows, header first, one row
// per session. Every cell is quoted, including cells that would not need
// quoting under RFC 4180; encoding/csv only quotes on demand, so rows are
// written by hand.
func CSV(w io.Writer, sessions []*models.Session) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{s.Day, s.TimeSlot, s.CourseCode, s.CourseName, s.FacultyName, s.RoomName, s.ProgramName, string(s.Kind)}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}
