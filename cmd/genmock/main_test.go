package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

func TestGenerate_CoversCatalogue(t *testing.T) {
	observations := generate()
	require.Len(t, observations, len(domain.Courses))
	for i, rec := range observations {
		assert.Equal(t, domain.Courses[i].ID, rec.CourseID)
		assert.Equal(t, observedAt, rec.Current.Time)
	}
	assert.Equal(t, observations, generate(), "output must be deterministic")
}

func TestRun_WritesFixtures(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		out:         filepath.Join(dir, "mock", "observations.json"),
		snapshotOut: filepath.Join(dir, "mock", "src_weather.json"),
	}

	require.NoError(t, run(opts, slog.New(slog.NewTextHandler(io.Discard, nil))))

	data, err := os.ReadFile(opts.out)
	require.NoError(t, err)
	var raw []domain.RawObservation
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(domain.Courses))

	doc, err := snapshot.ReadFile(opts.snapshotOut)
	require.NoError(t, err)
	assert.True(t, processedAt.Equal(doc.GeneratedAt))
	require.Len(t, doc.Courses, len(domain.Courses))

	scores := make(map[string]int, len(doc.Courses))
	for i, s := range doc.Courses {
		assert.Equal(t, domain.Courses[i].ID, s.ID)
		scores[s.ID] = s.RunScore
	}
	assert.Equal(t, 94, scores["seoho-park"], "optimal")
	assert.Equal(t, 56, scores["gwanggyo-lake-park"], "poor air")
	assert.Equal(t, 20, scores["skku"], "freezing wind is capped")
	assert.Equal(t, 20, scores["woncheon-stream-sindong"], "heavy snow is capped")
	assert.Equal(t, 94, scores["suwon-stream"], "scenarios repeat")
}

func TestRun_ObservationsOnly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "observations.json")
	require.NoError(t, run(options{out: out}, slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.FileExists(t, out)
}
