package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/timetable-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// --- Programs ---

// CreateProgram inserts a program record
func (r *PostgresRepository) CreateProgram(ctx context.Context, p *models.Program) error {
	query := `
		INSERT INTO programs (id, name, category, duration_years, total_credits, major_credits, minor_credits, skill_credits, ability_enhancement_credits, value_added_credits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, string(p.Category), p.DurationYears,
		p.TotalCredits, p.MajorCredits, p.MinorCredits,
		p.SkillCredits, p.AbilityEnhancementCredits, p.ValueAddedCredits,
	)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	return nil
}

// GetProgram retrieves a program by ID
func (r *PostgresRepository) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	query := `
		SELECT id, name, category, duration_years, total_credits, major_credits, minor_credits, skill_credits, ability_enhancement_credits, value_added_credits
		FROM programs
		WHERE id = $1
	`

	var p models.Program
	var category string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &category, &p.DurationYears,
		&p.TotalCredits, &p.MajorCredits, &p.MinorCredits,
		&p.SkillCredits, &p.AbilityEnhancementCredits, &p.ValueAddedCredits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	p.Category = models.ProgramCategory(category)
	return &p, nil
}

// UpdateProgram updates an existing program
func (r *PostgresRepository) UpdateProgram(ctx context.Context, p *models.Program) error {
	query := `
		UPDATE programs
		SET name = $2, category = $3, duration_years = $4, total_credits = $5, major_credits = $6, minor_credits = $7, skill_credits = $8, ability_enhancement_credits = $9, value_added_credits = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, string(p.Category), p.DurationYears,
		p.TotalCredits, p.MajorCredits, p.MinorCredits,
		p.SkillCredits, p.AbilityEnhancementCredits, p.ValueAddedCredits,
	)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("program not found: %s", p.ID)
	}

	return nil
}

// DeleteProgram deletes a program by ID
func (r *PostgresRepository) DeleteProgram(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("program not found: %s", id)
	}

	return nil
}

// ListPrograms returns all programs ordered by ID
func (r *PostgresRepository) ListPrograms(ctx context.Context) ([]models.Program, error) {
	query := `
		SELECT id, name, category, duration_years, total_credits, major_credits, minor_credits, skill_credits, ability_enhancement_credits, value_added_credits
		FROM programs
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program

	for rows.Next() {
		var p models.Program
		var category string

		err := rows.Scan(
			&p.ID, &p.Name, &category, &p.DurationYears,
			&p.TotalCredits, &p.MajorCredits, &p.MinorCredits,
			&p.SkillCredits, &p.AbilityEnhancementCredits, &p.ValueAddedCredits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}

		p.Category = models.ProgramCategory(category)
		programs = append(programs, p)
	}

	return programs, rows.Err()
}

// --- Courses ---

// CreateCourse inserts a course record
func (r *PostgresRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	prereqJSON, err := marshalStrings(c.Prerequisites)
	if err != nil {
		return fmt.Errorf("failed to marshal prerequisites: %w", err)
	}

	query := `
		INSERT INTO courses (id, code, name, category, credits, theory_hours, practical_hours, program_id, elective, semester, description, prerequisites)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.pool.Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Category, c.Credits,
		c.TheoryHours, c.PracticalHours, c.ProgramID,
		c.Elective, c.Semester, c.Description, prereqJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetCourse retrieves a course by ID
func (r *PostgresRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, code, name, category, credits, theory_hours, practical_hours, program_id, elective, semester, description, prerequisites
		FROM courses
		WHERE id = $1
	`

	c, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return c, nil
}

// UpdateCourse updates an existing course
func (r *PostgresRepository) UpdateCourse(ctx context.Context, c *models.Course) error {
	prereqJSON, err := marshalStrings(c.Prerequisites)
	if err != nil {
		return fmt.Errorf("failed to marshal prerequisites: %w", err)
	}

	query := `
		UPDATE courses
		SET code = $2, name = $3, category = $4, credits = $5, theory_hours = $6, practical_hours = $7, program_id = $8, elective = $9, semester = $10, description = $11, prerequisites = $12
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Category, c.Credits,
		c.TheoryHours, c.PracticalHours, c.ProgramID,
		c.Elective, c.Semester, c.Description, prereqJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course not found: %s", c.ID)
	}

	return nil
}

// DeleteCourse deletes a course by ID
func (r *PostgresRepository) DeleteCourse(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course not found: %s", id)
	}

	return nil
}

// ListCourses returns all courses ordered by ID
func (r *PostgresRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, code, name, category, credits, theory_hours, practical_hours, program_id, elective, semester, description, prerequisites
		FROM courses
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course

	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *c)
	}

	return courses, rows.Err()
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var prereqJSON []byte

	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Category, &c.Credits,
		&c.TheoryHours, &c.PracticalHours, &c.ProgramID,
		&c.Elective, &c.Semester, &c.Description, &prereqJSON,
	)
	if err != nil {
		return nil, err
	}

	if prereqJSON != nil {
		if err := json.Unmarshal(prereqJSON, &c.Prerequisites); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prerequisites: %w", err)
		}
	}

	return &c, nil
}

// --- Faculty ---

// CreateFaculty inserts a faculty record
func (r *PostgresRepository) CreateFaculty(ctx context.Context, f *models.Faculty) error {
	programsJSON, err := marshalStrings(f.ProgramIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal program ids: %w", err)
	}
	expertiseJSON, err := marshalStrings(f.Expertise)
	if err != nil {
		return fmt.Errorf("failed to marshal expertise: %w", err)
	}
	unavailableJSON, err := marshalStrings(f.UnavailableSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal unavailable slots: %w", err)
	}

	query := `
		INSERT INTO faculty (id, name, program_ids, expertise, max_weekly_hours, unavailable_slots)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query, f.ID, f.Name, programsJSON, expertiseJSON, f.MaxWeeklyHours, unavailableJSON)
	if err != nil {
		return fmt.Errorf("failed to create faculty: %w", err)
	}

	return nil
}

// GetFaculty retrieves a faculty member by ID
func (r *PostgresRepository) GetFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	query := `
		SELECT id, name, program_ids, expertise, max_weekly_hours, unavailable_slots
		FROM faculty
		WHERE id = $1
	`

	f, err := scanFaculty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}

	return f, nil
}

// UpdateFaculty updates an existing faculty member
func (r *PostgresRepository) UpdateFaculty(ctx context.Context, f *models.Faculty) error {
	programsJSON, err := marshalStrings(f.ProgramIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal program ids: %w", err)
	}
	expertiseJSON, err := marshalStrings(f.Expertise)
	if err != nil {
		return fmt.Errorf("failed to marshal expertise: %w", err)
	}
	unavailableJSON, err := marshalStrings(f.UnavailableSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal unavailable slots: %w", err)
	}

	query := `
		UPDATE faculty
		SET name = $2, program_ids = $3, expertise = $4, max_weekly_hours = $5, unavailable_slots = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, f.ID, f.Name, programsJSON, expertiseJSON, f.MaxWeeklyHours, unavailableJSON)
	if err != nil {
		return fmt.Errorf("failed to update faculty: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("faculty not found: %s", f.ID)
	}

	return nil
}

// DeleteFaculty deletes a faculty member by ID
func (r *PostgresRepository) DeleteFaculty(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faculty: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("faculty not found: %s", id)
	}

	return nil
}

// ListFaculty returns all faculty ordered by ID
func (r *PostgresRepository) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	query := `
		SELECT id, name, program_ids, expertise, max_weekly_hours, unavailable_slots
		FROM faculty
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}
	defer rows.Close()

	var faculty []models.Faculty

	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan faculty: %w", err)
		}
		faculty = append(faculty, *f)
	}

	return faculty, rows.Err()
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var f models.Faculty
	var programsJSON, expertiseJSON, unavailableJSON []byte

	err := row.Scan(&f.ID, &f.Name, &programsJSON, &expertiseJSON, &f.MaxWeeklyHours, &unavailableJSON)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		data []byte
		dst  *[]string
	}{
		{programsJSON, &f.ProgramIDs},
		{expertiseJSON, &f.Expertise},
		{unavailableJSON, &f.UnavailableSlots},
	} {
		if pair.data == nil {
			continue
		}
		if err := json.Unmarshal(pair.data, pair.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal faculty field: %w", err)
		}
	}

	return &f, nil
}

// --- Rooms ---

// CreateRoom inserts a room record
func (r *PostgresRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	unavailableJSON, err := marshalStrings(room.UnavailableSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal unavailable slots: %w", err)
	}

	query := `
		INSERT INTO rooms (id, name, category, capacity, unavailable_slots)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query, room.ID, room.Name, string(room.Category), room.Capacity, unavailableJSON)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID
func (r *PostgresRepository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	query := `
		SELECT id, name, category, capacity, unavailable_slots
		FROM rooms
		WHERE id = $1
	`

	room, err := scanRoom(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// UpdateRoom updates an existing room
func (r *PostgresRepository) UpdateRoom(ctx context.Context, room *models.Room) error {
	unavailableJSON, err := marshalStrings(room.UnavailableSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal unavailable slots: %w", err)
	}

	query := `
		UPDATE rooms
		SET name = $2, category = $3, capacity = $4, unavailable_slots = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, room.ID, room.Name, string(room.Category), room.Capacity, unavailableJSON)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room not found: %s", room.ID)
	}

	return nil
}

// DeleteRoom deletes a room by ID
func (r *PostgresRepository) DeleteRoom(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room not found: %s", id)
	}

	return nil
}

// ListRooms returns all rooms ordered by ID
func (r *PostgresRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	query := `
		SELECT id, name, category, capacity, unavailable_slots
		FROM rooms
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room

	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	var category string
	var unavailableJSON []byte

	err := row.Scan(&room.ID, &room.Name, &category, &room.Capacity, &unavailableJSON)
	if err != nil {
		return nil, err
	}

	room.Category = models.RoomCategory(category)

	if unavailableJSON != nil {
		if err := json.Unmarshal(unavailableJSON, &room.UnavailableSlots); err != nil {
			return nil, fmt.Errorf("failed to unmarshal unavailable slots: %w", err)
		}
	}

	return &room, nil
}

// --- Generation runs ---

// CreateRun records a generation run summary
func (r *PostgresRepository) CreateRun(ctx context.Context, run *models.GenerationRun) error {
	query := `
		INSERT INTO generation_runs (id, success, message, session_count, conflict_count, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.Success, run.Message,
		run.SessionCount, run.ConflictCount,
		run.CreatedAt, run.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent generation runs, newest first
func (r *PostgresRepository) ListRuns(ctx context.Context, limit int) ([]models.GenerationRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, success, message, session_count, conflict_count, created_at, created_by
		FROM generation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []models.GenerationRun

	for rows.Next() {
		var run models.GenerationRun
		err := rows.Scan(&run.ID, &run.Success, &run.Message, &run.SessionCount, &run.ConflictCount, &run.CreatedAt, &run.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// PruneRuns deletes all but the newest keep run records, returning the
// number deleted
func (r *PostgresRepository) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	query := `
		DELETE FROM generation_runs
		WHERE id NOT IN (
			SELECT id FROM generation_runs ORDER BY created_at DESC LIMIT $1
		)
	`

	result, err := r.pool.Exec(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generation runs: %w", err)
	}

	return result.RowsAffected(), nil
}

// --- API clients ---

// GetClientByApiKey retrieves an API client by its key
func (r *PostgresRepository) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	query := `
		SELECT id, name, api_key, is_active, created_at, last_used_at, permissions, metadata
		FROM api_clients
		WHERE api_key = $1
	`

	var client models.ApiClient
	var lastUsedAt *time.Time
	var permissionsJSON, metadataJSON []byte

	err := r.pool.QueryRow(ctx, query, apiKey).Scan(
		&client.ID,
		&client.Name,
		&client.ApiKey,
		&client.IsActive,
		&client.CreatedAt,
		&lastUsedAt,
		&permissionsJSON,
		&metadataJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get api client: %w", err)
	}

	client.LastUsedAt = lastUsedAt

	if permissionsJSON != nil {
		if err := json.Unmarshal(permissionsJSON, &client.Permissions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal permissions: %w", err)
		}
	}

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &client.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &client, nil
}

// UpdateClientLastUsed updates the last_used_at timestamp for a client
func (r *PostgresRepository) UpdateClientLastUsed(ctx context.Context, apiKey string) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_clients SET last_used_at = NOW() WHERE api_key = $1`, apiKey)
	if err != nil {
		return fmt.Errorf("failed to update client last_used_at: %w", err)
	}

	return nil
}

// marshalStrings encodes a string slice as a JSON array, never null
func marshalStrings(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}
