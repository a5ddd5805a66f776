// Package client is a small Go SDK for the timetable-engine API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campusworks/timetable-engine/internal/models"
)

// Client talks to a timetable-engine instance
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new timetable-engine client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// envelope mirrors the API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// do issues a request and decodes the envelope payload into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if env.Error != nil {
		return fmt.Errorf("api error %s: %s", env.Error.Code, env.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}

	return nil
}

// Generate requests a new timetable, optionally narrowed to programIDs
func (c *Client) Generate(ctx context.Context, programIDs []string) (*models.GenerationResult, error) {
	body := map[string]interface{}{}
	if len(programIDs) > 0 {
		body["program_ids"] = programIDs
	}

	var result models.GenerationResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/timetable/generate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Latest fetches the most recent generated timetable
func (c *Client) Latest(ctx context.Context) (*models.GenerationResult, error) {
	var result models.GenerationResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/timetable", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Runs lists recent generation runs
func (c *Client) Runs(ctx context.Context, limit int) ([]models.GenerationRun, error) {
	var payload struct {
		Runs []models.GenerationRun `json:"runs"`
	}
	path := "/api/v1/timetable/runs"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Runs, nil
}

// CreateProgram adds a program to the catalog
func (c *Client) CreateProgram(ctx context.Context, p *models.Program) error {
	return c.do(ctx, http.MethodPost, "/api/v1/programs", p, nil)
}

// ListPrograms lists all programs
func (c *Client) ListPrograms(ctx context.Context) ([]models.Program, error) {
	var payload struct {
		Programs []models.Program `json:"programs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/programs", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Programs, nil
}

// CreateCourse adds a course to the catalog
func (c *Client) CreateCourse(ctx context.Context, course *models.Course) error {
	return c.do(ctx, http.MethodPost, "/api/v1/courses", course, nil)
}

// ListCourses lists all courses
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var payload struct {
		Courses []models.Course `json:"courses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/courses", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Courses, nil
}

// CreateFaculty adds a faculty member to the catalog
func (c *Client) CreateFaculty(ctx context.Context, f *models.Faculty) error {
	return c.do(ctx, http.MethodPost, "/api/v1/faculty", f, nil)
}

// ListFaculty lists all faculty
func (c *Client) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	var payload struct {
		Faculty []models.Faculty `json:"faculty"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/faculty", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Faculty, nil
}

// CreateRoom adds a room to the catalog
func (c *Client) CreateRoom(ctx context.Context, room *models.Room) error {
	return c.do(ctx, http.MethodPost, "/api/v1/rooms", room, nil)
}

// ListRooms lists all rooms
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var payload struct {
		Rooms []models.Room `json:"rooms"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/rooms", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Rooms, nil
}
