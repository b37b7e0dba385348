package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

const observations = `[
  {"course_id": "seoho-park", "wind_speed_unit": "m/s",
   "current": {"time": "2026-04-18T06:00", "temperature_2m": 14, "apparent_temperature": 15, "precipitation": 0, "rain": 0, "wind_speed_10m": 1}},
  {"course_id": "gwanggyo-mountain",
   "current": {"time": "2026-01-22T07:00", "temperature_2m": -12.5, "apparent_temperature": -20.1, "precipitation": 0, "rain": 0, "wind_speed_10m": 14.4}}
]`

// writeFixtures scores the observations the way the pipeline does and writes
// both files, letting mutate tamper with the snapshot first.
func writeFixtures(t *testing.T, mutate func(*snapshot.Document)) options {
	t.Helper()
	dir := t.TempDir()
	opts := options{
		observations: filepath.Join(dir, "observations.json"),
		snapshot:     filepath.Join(dir, "src_weather.json"),
	}
	require.NoError(t, os.WriteFile(opts.observations, []byte(observations), 0o600))

	var raws []domain.RawObservation
	require.NoError(t, json.Unmarshal([]byte(observations), &raws))

	store := snapshot.NewStore(24 * 365 * time.Hour)
	for _, rec := range raws {
		obs, err := domain.NormalizeObservation(rec, time.Time{})
		require.NoError(t, err)
		summary, _, err := domain.EvaluateCourse(obs.Course, obs.Reading, obs.Air, nil)
		require.NoError(t, err)
		store.Put(summary)
	}
	doc := store.Snapshot()
	if mutate != nil {
		mutate(&doc)
	}
	require.NoError(t, snapshot.WriteFile(opts.snapshot, doc))
	return opts
}

func TestRun_Passes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, writeFixtures(t, nil)))
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestRun_DetectsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*snapshot.Document)
		phase  string
	}{
		{
			name:   "tampered score",
			mutate: func(d *snapshot.Document) { d.Courses[0].RunScore = 50 },
			phase:  "Phase 4: Re-score parity",
		},
		{
			name:   "cap violated",
			mutate: func(d *snapshot.Document) { d.Courses[1].RunScore = 60 },
			phase:  "Phase 3: Score bounds and safety caps",
		},
		{
			name:   "unknown badge",
			mutate: func(d *snapshot.Document) { d.Courses[0].WetBadge.Level = "damp" },
			phase:  "Phase 2: Snapshot schema",
		},
		{
			name: "wrong order",
			mutate: func(d *snapshot.Document) {
				d.Courses[0], d.Courses[1] = d.Courses[1], d.Courses[0]
			},
			phase: "Phase 2: Snapshot schema",
		},
		{
			name:   "missing course",
			mutate: func(d *snapshot.Document) { d.Courses = d.Courses[:1] },
			phase:  "Phase 4: Re-score parity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(&out, writeFixtures(t, tt.mutate))
			require.ErrorIs(t, err, errValidationFailed)
			assert.Contains(t, out.String(), "--- "+tt.phase+" ---")
		})
	}
}

func TestRun_MissingWireField(t *testing.T) {
	opts := writeFixtures(t, nil)

	data, err := os.ReadFile(opts.snapshot)
	require.NoError(t, err)
	data = []byte(strings.Replace(string(data), `"advice_short_en"`, `"advice_en"`, 1))
	require.NoError(t, os.WriteFile(opts.snapshot, data, 0o600))

	var out bytes.Buffer
	require.ErrorIs(t, run(&out, opts), errValidationFailed)
	assert.Contains(t, out.String(), `missing field "advice_short_en"`)
}

func TestRun_UnreadableInput(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{
		observations: filepath.Join(t.TempDir(), "absent.json"),
		snapshot:     filepath.Join(t.TempDir(), "absent.json"),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errValidationFailed)
}
