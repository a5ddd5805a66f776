// Package snapshot keeps the most recent generation result in Redis.
// Only the latest timetable is retained; a new generation overwrites the
// previous snapshot.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/campusworks/timetable-engine/internal/models"
)

const latestKey = "timetable:latest"

// Store holds the latest timetable snapshot in Redis
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis and verifies connectivity
func NewStore(address, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

// SaveLatest overwrites the stored snapshot with the given result
func (s *Store) SaveLatest(ctx context.Context, result *models.GenerationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, latestKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	slog.Debug("timetable snapshot saved",
		"sessions", len(result.Timetable),
		"conflicts", len(result.Conflicts),
	)

	return nil
}

// Latest returns the stored snapshot, or (nil, nil) when no timetable has
// been generated yet
func (s *Store) Latest(ctx context.Context) (*models.GenerationResult, error) {
	data, err := s.client.Get(ctx, latestKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var result models.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &result, nil
}

// HealthCheck verifies Redis connectivity
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
