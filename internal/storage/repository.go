package storage

import (
	"context"

	"github.com/campusworks/timetable-engine/internal/models"
)

// Repository defines the persistence interface for the catalog collections
// and generation bookkeeping. Get methods return (nil, nil) when the
// record does not exist.
type Repository interface {
	// Programs
	CreateProgram(ctx context.Context, p *models.Program) error
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	UpdateProgram(ctx context.Context, p *models.Program) error
	DeleteProgram(ctx context.Context, id string) error
	ListPrograms(ctx context.Context) ([]models.Program, error)

	// Courses
	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	UpdateCourse(ctx context.Context, c *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
	ListCourses(ctx context.Context) ([]models.Course, error)

	// Faculty
	CreateFaculty(ctx context.Context, f *models.Faculty) error
	GetFaculty(ctx context.Context, id string) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, f *models.Faculty) error
	DeleteFaculty(ctx context.Context, id string) error
	ListFaculty(ctx context.Context) ([]models.Faculty, error)

	// Rooms
	CreateRoom(ctx context.Context, r *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	UpdateRoom(ctx context.Context, r *models.Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]models.Room, error)

	// Generation runs
	CreateRun(ctx context.Context, run *models.GenerationRun) error
	ListRuns(ctx context.Context, limit int) ([]models.GenerationRun, error)
	PruneRuns(ctx context.Context, keep int) (int64, error)

	// API clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}
