// Package snapshot keeps the latest summary per course and publishes them as
// the document the web client polls.
package snapshot

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
)

// Document is the published snapshot of every fresh course summary.
type Document struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Courses     []domain.CourseSummary `json:"courses"`
}

// Store holds the latest summary per course. Entries expire after the TTL so
// a course whose observations stop arriving drops out of the snapshot.
// It implements pipeline.BatchLoader.
type Store struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewStore creates a Store whose entries live for ttl. There are at most a
// dozen keys and expired entries are filtered on read, so no janitor runs.
func NewStore(ttl time.Duration) *Store {
	return &Store{items: cache.New(ttl, 0), ttl: ttl}
}

// Put records a summary unless a newer one for the same course is held.
func (s *Store) Put(summary domain.CourseSummary) {
	if cur, ok := s.Get(summary.ID); ok && cur.UpdatedAt.After(summary.UpdatedAt) {
		return
	}
	s.items.SetDefault(summary.ID, summary)
}

// Restore seeds the store from a previously written document, skipping
// summaries already older than the TTL. It returns how many were kept.
func (s *Store) Restore(doc Document) int {
	cutoff := domain.Now().Add(-s.ttl)
	kept := 0
	for _, summary := range doc.Courses {
		if summary.UpdatedAt.Before(cutoff) {
			continue
		}
		if _, err := domain.LookupCourse(summary.ID); err != nil {
			continue
		}
		s.Put(summary)
		kept++
	}
	return kept
}

// Get returns the unexpired summary for a course.
func (s *Store) Get(courseID string) (domain.CourseSummary, bool) {
	v, ok := s.items.Get(courseID)
	if !ok {
		return domain.CourseSummary{}, false
	}
	summary, ok := v.(domain.CourseSummary)
	return summary, ok
}

// Snapshot returns the fresh summaries in catalogue order.
func (s *Store) Snapshot() Document {
	doc := Document{
		GeneratedAt: domain.Now().Truncate(time.Second),
		Courses:     make([]domain.CourseSummary, 0, len(domain.Courses)),
	}
	for _, c := range domain.Courses {
		if summary, ok := s.Get(c.ID); ok {
			doc.Courses = append(doc.Courses, summary)
		}
	}
	return doc
}

// LoadBatch stores the summary carried by each event.
func (s *Store) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	for i := range events {
		s.Put(events[i].Summary)
	}
	return nil
}
