// Package catalog loads catalog fixtures from YAML files on disk. The
// files are used to seed an empty database at startup and as
// deterministic inputs in tests.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/campusworks/timetable-engine/internal/engine"
	"github.com/campusworks/timetable-engine/internal/models"
	"github.com/campusworks/timetable-engine/internal/storage"
)

// File names the loader looks for inside the catalog directory
const (
	programsFile = "programs.yaml"
	coursesFile  = "courses.yaml"
	facultyFile  = "faculty.yaml"
	roomsFile    = "rooms.yaml"
)

// Loader reads the four catalog collections from a directory of YAML files
type Loader struct {
	mu      sync.RWMutex
	catalog engine.Catalog
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromDir loads every catalog file present in dir. Missing files are
// logged and skipped so a partial fixture set still loads.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading catalog fixtures", "dir", dir)

	var cat engine.Catalog

	if err := readYAML(filepath.Join(dir, programsFile), &struct {
		Programs *[]models.Program `yaml:"programs"`
	}{&cat.Programs}); err != nil {
		return err
	}

	if err := readYAML(filepath.Join(dir, coursesFile), &struct {
		Courses *[]models.Course `yaml:"courses"`
	}{&cat.Courses}); err != nil {
		return err
	}

	if err := readYAML(filepath.Join(dir, facultyFile), &struct {
		Faculty *[]models.Faculty `yaml:"faculty"`
	}{&cat.Faculty}); err != nil {
		return err
	}

	if err := readYAML(filepath.Join(dir, roomsFile), &struct {
		Rooms *[]models.Room `yaml:"rooms"`
	}{&cat.Rooms}); err != nil {
		return err
	}

	l.mu.Lock()
	l.catalog = cat
	l.mu.Unlock()

	slog.Info("catalog fixtures loaded",
		"programs", len(cat.Programs),
		"courses", len(cat.Courses),
		"faculty", len(cat.Faculty),
		"rooms", len(cat.Rooms),
	)

	return nil
}

// Catalog returns the loaded catalog snapshot
func (l *Loader) Catalog() engine.Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// Seed inserts the loaded fixtures into the repository, but only into
// collections that are currently empty. Existing data is never touched.
func (l *Loader) Seed(ctx context.Context, repo storage.Repository) error {
	cat := l.Catalog()

	programs, err := repo.ListPrograms(ctx)
	if err != nil {
		return fmt.Errorf("failed to check programs: %w", err)
	}
	if len(programs) == 0 {
		for i := range cat.Programs {
			if err := repo.CreateProgram(ctx, &cat.Programs[i]); err != nil {
				return fmt.Errorf("failed to seed program %s: %w", cat.Programs[i].ID, err)
			}
		}
		slog.Info("seeded programs", "count", len(cat.Programs))
	}

	courses, err := repo.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to check courses: %w", err)
	}
	if len(courses) == 0 {
		for i := range cat.Courses {
			if err := repo.CreateCourse(ctx, &cat.Courses[i]); err != nil {
				return fmt.Errorf("failed to seed course %s: %w", cat.Courses[i].ID, err)
			}
		}
		slog.Info("seeded courses", "count", len(cat.Courses))
	}

	faculty, err := repo.ListFaculty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check faculty: %w", err)
	}
	if len(faculty) == 0 {
		for i := range cat.Faculty {
			if err := repo.CreateFaculty(ctx, &cat.Faculty[i]); err != nil {
				return fmt.Errorf("failed to seed faculty %s: %w", cat.Faculty[i].ID, err)
			}
		}
		slog.Info("seeded faculty", "count", len(cat.Faculty))
	}

	rooms, err := repo.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to check rooms: %w", err)
	}
	if len(rooms) == 0 {
		for i := range cat.Rooms {
			if err := repo.CreateRoom(ctx, &cat.Rooms[i]); err != nil {
				return fmt.Errorf("failed to seed room %s: %w", cat.Rooms[i].ID, err)
			}
		}
		slog.Info("seeded rooms", "count", len(cat.Rooms))
	}

	return nil
}

// readYAML parses one fixture file into out. A missing file is skipped
// with a warning; a malformed file is an error.
func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("catalog fixture not found, skipping", "file", path)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}
