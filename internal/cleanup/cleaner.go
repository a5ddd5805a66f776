package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusworks/timetable-engine/internal/timetable"
)

// Cleaner periodically prunes old generation run records, keeping only
// the configured retention window
type Cleaner struct {
	service  *timetable.Service
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(service *timetable.Service, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Cleaner{
		service:  service,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup prunes generation runs beyond the retention count
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	pruned, err := c.service.PruneRuns(ctx)
	if err != nil {
		slog.Error("failed to prune generation runs", "error", err)
		return
	}

	if pruned > 0 {
		slog.Info("pruned old generation runs", "count", pruned)
	}
}
