package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic. Summary
// carries the decoded record for loaders that do not need the wire bytes.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
	Summary CourseSummary
}

// Sink message headers.
const (
	HeaderCourseID    = "course_id"
	HeaderRunScore    = "run_score"
	HeaderProcessedAt = "processed_at"
)

// NewOutputEvent serializes a summary for the sink topic, keyed by course ID.
func NewOutputEvent(s CourseSummary) (OutputEvent, error) {
	value, err := json.Marshal(s)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal course summary: %w", err)
	}
	return OutputEvent{
		Key:   []byte(s.ID),
		Value: value,
		Headers: map[string]string{
			HeaderCourseID:    s.ID,
			HeaderRunScore:    strconv.Itoa(s.RunScore),
			HeaderProcessedAt: Now().Format(time.RFC3339),
		},
		Summary: s,
	}, nil
}
