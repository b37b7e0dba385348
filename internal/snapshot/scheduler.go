package snapshot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/couchcryptid/run-condition-etl/internal/observability"
)

// Scheduler periodically flushes the store to the snapshot file.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *Store
	path      string
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewScheduler creates a Scheduler writing store to path every interval.
func NewScheduler(store *Store, path string, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		path:      path,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start schedules the flush job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		if err := s.Flush(); err != nil {
			s.logger.Error("snapshot flush failed", "path", s.path, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule snapshot flush: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("snapshot scheduler started", "path", s.path, "interval", s.interval)
	return nil
}

// Stop stops the scheduler and writes one final snapshot.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	if err := s.Flush(); err != nil {
		s.logger.Error("final snapshot flush failed", "path", s.path, "error", err)
	}
}

// Flush writes the current snapshot. An empty store is not written so a
// restart never clobbers the last good file.
func (s *Scheduler) Flush() error {
	doc := s.store.Snapshot()
	if len(doc.Courses) == 0 {
		s.logger.Debug("snapshot empty, skipping write")
		return nil
	}

	if err := WriteFile(s.path, doc); err != nil {
		s.metrics.SnapshotWrites.WithLabelValues("error").Inc()
		return err
	}
	s.metrics.SnapshotWrites.WithLabelValues("success").Inc()
	s.metrics.SnapshotCourses.Set(float64(len(doc.Courses)))
	s.logger.Debug("snapshot written", "path", s.path, "courses", len(doc.Courses))
	return nil
}
