package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "course_id", "skku")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "skku", entry["course_id"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "TEXT")

	logger.Debug("scored", "run_score", 94)
	assert.Contains(t, buf.String(), "msg=scored")
	assert.Contains(t, buf.String(), "run_score=94")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewMetricsForTesting_IsRegistrable(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		reg.MustRegister(m.MessagesConsumed, m.RunScore, m.SnapshotWrites, m.SafetyCaps)
	})

	m.RunScore.WithLabelValues("skku").Set(72)
	m.SnapshotWrites.WithLabelValues("success").Inc()
	assert.InDelta(t, 72.0, testutil.ToFloat64(m.RunScore.WithLabelValues("skku")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues("success")), 1e-9)
}
