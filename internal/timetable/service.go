// Package timetable orchestrates the generation pipeline: it reloads the
// catalog from storage, runs the engine, records the run and publishes
// the latest snapshot.
package timetable

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/timetable-engine/internal/engine"
	"github.com/campusworks/timetable-engine/internal/models"
	"github.com/campusworks/timetable-engine/internal/snapshot"
	"github.com/campusworks/timetable-engine/internal/storage"
)

// Notifier receives every freshly generated result. The API layer plugs
// in its websocket hub here.
type Notifier interface {
	Publish(result *models.GenerationResult)
}

// GenerateOptions narrows one generation call
type GenerateOptions struct {
	// ProgramIDs restricts scheduling to courses of these programs.
	// Empty means the whole catalog.
	ProgramIDs []string

	// RequestedBy is recorded on the generation run for audit
	RequestedBy string
}

// Service ties the engine to storage and the snapshot store
type Service struct {
	repo      storage.Repository
	snapshots *snapshot.Store
	generator *engine.Generator
	retention int
	notifier  Notifier
}

// NewService creates the orchestrator. retention is how many generation
// run records the cleaner keeps.
func NewService(repo storage.Repository, snapshots *snapshot.Store, generator *engine.Generator, retention int) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		generator: generator,
		retention: retention,
	}
}

// SetNotifier registers a notifier for generation results
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Grid returns the scheduling grid in use
func (s *Service) Grid() engine.Grid {
	return s.generator.Grid()
}

// Generate reloads the catalog, runs the engine and persists the outcome.
// The catalog is read fresh on every call; records created since the last
// run are picked up automatically. Insufficient input (empty collections,
// no matching courses) comes back as an unsuccessful result, not an error.
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) (*models.GenerationResult, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if len(opts.ProgramIDs) > 0 {
		catalog = filterByPrograms(catalog, opts.ProgramIDs)
		if len(catalog.Programs) > 0 && len(catalog.Courses) == 0 {
			result := &models.GenerationResult{
				Timetable: []*models.Session{},
				Conflicts: []models.Constraint{},
				Success:   false,
				Message:   "no courses match the selected programs: add courses or widen the selection",
			}
			s.record(ctx, result, opts.RequestedBy)
			return result, nil
		}
	}

	started := time.Now()
	result := s.generator.Generate(catalog)

	slog.Info("timetable generated",
		"sessions", len(result.Timetable),
		"conflicts", len(result.Conflicts),
		"success", result.Success,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	s.record(ctx, result, opts.RequestedBy)

	if err := s.snapshots.SaveLatest(ctx, result); err != nil {
		slog.Error("failed to save timetable snapshot", "error", err)
	}

	if s.notifier != nil {
		s.notifier.Publish(result)
	}

	return result, nil
}

// Latest returns the most recent snapshot, or (nil, nil) when nothing has
// been generated yet
func (s *Service) Latest(ctx context.Context) (*models.GenerationResult, error) {
	return s.snapshots.Latest(ctx)
}

// Runs lists recent generation run records, newest first
func (s *Service) Runs(ctx context.Context, limit int) ([]models.GenerationRun, error) {
	return s.repo.ListRuns(ctx, limit)
}

// PruneRuns trims generation run records down to the retention count
func (s *Service) PruneRuns(ctx context.Context) (int64, error) {
	return s.repo.PruneRuns(ctx, s.retention)
}

// Ping checks the service's backing stores
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if err := s.snapshots.HealthCheck(ctx); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// loadCatalog reads the four collections fresh from the repository
func (s *Service) loadCatalog(ctx context.Context) (engine.Catalog, error) {
	var catalog engine.Catalog
	var err error

	if catalog.Programs, err = s.repo.ListPrograms(ctx); err != nil {
		return catalog, err
	}
	if catalog.Courses, err = s.repo.ListCourses(ctx); err != nil {
		return catalog, err
	}
	if catalog.Faculty, err = s.repo.ListFaculty(ctx); err != nil {
		return catalog, err
	}
	if catalog.Rooms, err = s.repo.ListRooms(ctx); err != nil {
		return catalog, err
	}

	return catalog, nil
}

// record stores a run summary row; persistence failure is logged, not
// propagated, so a computed timetable still reaches the caller
func (s *Service) record(ctx context.Context, result *models.GenerationResult, requestedBy string) {
	run := &models.GenerationRun{
		ID:            uuid.New().String(),
		Success:       result.Success,
		Message:       result.Message,
		SessionCount:  len(result.Timetable),
		ConflictCount: len(result.Conflicts),
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     requestedBy,
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		slog.Error("failed to record generation run", "error", err, "run_id", run.ID)
	}
}

func filterByPrograms(catalog engine.Catalog, programIDs []string) engine.Catalog {
	selected := make(map[string]bool, len(programIDs))
	for _, id := range programIDs {
		selected[id] = true
	}

	filtered := engine.Catalog{
		Faculty: catalog.Faculty,
		Rooms:   catalog.Rooms,
	}
	for _, p := range catalog.Programs {
		if selected[p.ID] {
			filtered.Programs = append(filtered.Programs, p)
		}
	}
	for _, c := range catalog.Courses {
		if selected[c.ProgramID] {
			filtered.Courses = append(filtered.Courses, c)
		}
	}

	return filtered
}
