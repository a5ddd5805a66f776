package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDir(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadFromDir("testdata"); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	cat := loader.Catalog()
	if len(cat.Programs) != 2 {
		t.Errorf("programs = %d, want 2", len(cat.Programs))
	}
	if len(cat.Courses) != 3 {
		t.Errorf("courses = %d, want 3", len(cat.Courses))
	}
	if len(cat.Faculty) != 2 {
		t.Errorf("faculty = %d, want 2", len(cat.Faculty))
	}
	if len(cat.Rooms) != 2 {
		t.Errorf("rooms = %d, want 2", len(cat.Rooms))
	}

	if cat.Programs[0].ID != "prog-1" || cat.Programs[0].Category != "undergraduate" {
		t.Errorf("unexpected first program: %+v", cat.Programs[0])
	}

	for _, c := range cat.Courses {
		if c.ID == "crs-2" {
			if len(c.Prerequisites) != 1 || c.Prerequisites[0] != "crs-1" {
				t.Errorf("crs-2 prerequisites = %v, want [crs-1]", c.Prerequisites)
			}
		}
		if c.ID == "crs-3" && !c.Elective {
			t.Error("crs-3 should be elective")
		}
	}

	if got := cat.Faculty[1].UnavailableSlots; len(got) != 1 || got[0] != "09:00-10:00" {
		t.Errorf("fac-2 unavailable slots = %v", got)
	}
}

func TestLoadFromDirMissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()

	// Only rooms present; the other three collections stay empty
	data, err := os.ReadFile(filepath.Join("testdata", "rooms.yaml"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "rooms.yaml"), data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loader := NewLoader()
	if err := loader.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	cat := loader.Catalog()
	if len(cat.Rooms) != 2 {
		t.Errorf("rooms = %d, want 2", len(cat.Rooms))
	}
	if len(cat.Programs) != 0 || len(cat.Courses) != 0 || len(cat.Faculty) != 0 {
		t.Error("missing fixture files should leave their collections empty")
	}
}

func TestLoadFromDirMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "programs.yaml"), []byte("programs: [notamap"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loader := NewLoader()
	if err := loader.LoadFromDir(dir); err == nil {
		t.Error("expected an error for a malformed fixture file")
	}
}
