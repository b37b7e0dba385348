package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-course-weather", cfg.KafkaSourceTopic)
	assert.Equal(t, "course-run-conditions", cfg.KafkaSinkTopic)
	assert.Equal(t, "run-condition-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, 4, cfg.TransformConcurrency)
	assert.Equal(t, "data/src_weather.json", cfg.SnapshotPath)
	assert.Equal(t, time.Minute, cfg.SnapshotInterval)
	assert.Equal(t, 3*time.Hour, cfg.SnapshotTTL)
	assert.Equal(t, "gpx", cfg.GPXDir)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("TRANSFORM_CONCURRENCY", "8")
	t.Setenv("SNAPSHOT_PATH", "/tmp/out.json")
	t.Setenv("SNAPSHOT_INTERVAL", "30s")
	t.Setenv("SNAPSHOT_TTL", "90m")
	t.Setenv("GPX_DIR", "/srv/gpx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 8, cfg.TransformConcurrency)
	assert.Equal(t, "/tmp/out.json", cfg.SnapshotPath)
	assert.Equal(t, 30*time.Second, cfg.SnapshotInterval)
	assert.Equal(t, 90*time.Minute, cfg.SnapshotTTL)
	assert.Equal(t, "/srv/gpx", cfg.GPXDir)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("KAFKA_GROUP_ID=from-file\nHTTP_ADDR=:7070\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("HTTP_ADDR", ":9999")
	require.NoError(t, os.Unsetenv("KAFKA_GROUP_ID"))
	t.Cleanup(func() { _ = os.Unsetenv("KAFKA_GROUP_ID") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.KafkaGroupID)
	assert.Equal(t, ":9999", cfg.HTTPAddr, "real environment wins over the file")
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	_, err := Load()
	require.NoError(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"BATCH_SIZE", "0"},
		{"BATCH_SIZE", "9999"},
		{"BATCH_FLUSH_INTERVAL", "not-a-duration"},
		{"TRANSFORM_CONCURRENCY", "0"},
		{"TRANSFORM_CONCURRENCY", "65"},
		{"TRANSFORM_CONCURRENCY", "many"},
		{"SNAPSHOT_INTERVAL", "soon"},
		{"SNAPSHOT_INTERVAL", "0s"},
		{"SNAPSHOT_TTL", "-3h"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
