package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize            int
	BatchFlushInterval   time.Duration
	TransformConcurrency int

	// Snapshot document served over HTTP and written to disk.
	SnapshotPath     string
	SnapshotInterval time.Duration
	SnapshotTTL      time.Duration

	// GPXDir is searched for <course-id>.gpx route files.
	GPXDir string
}

const maxTransformConcurrency = 64

// Load reads configuration from environment variables, applying defaults where unset.
// Variables from the file named by ENV_FILE (default .env) are applied first
// without overriding the real environment.
func Load() (*Config, error) {
	if err := loadEnvFile(sharedcfg.EnvOrDefault("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	concurrency, err := parseTransformConcurrency()
	if err != nil {
		return nil, err
	}

	snapshotInterval, err := parsePositiveDuration("SNAPSHOT_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}

	snapshotTTL, err := parsePositiveDuration("SNAPSHOT_TTL", "3h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:     sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-course-weather"),
		KafkaSinkTopic:       sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "course-run-conditions"),
		KafkaGroupID:         sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "run-condition-etl"),
		HTTPAddr:             sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:             sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:      shutdownTimeout,
		BatchSize:            batchSize,
		BatchFlushInterval:   flushInterval,
		TransformConcurrency: concurrency,

		SnapshotPath:     sharedcfg.EnvOrDefault("SNAPSHOT_PATH", "data/src_weather.json"),
		SnapshotInterval: snapshotInterval,
		SnapshotTTL:      snapshotTTL,
		GPXDir:           sharedcfg.EnvOrDefault("GPX_DIR", "gpx"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parseTransformConcurrency() (int, error) {
	s := sharedcfg.EnvOrDefault("TRANSFORM_CONCURRENCY", "4")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxTransformConcurrency {
		return 0, fmt.Errorf("invalid TRANSFORM_CONCURRENCY %q: must be between 1 and %d", s, maxTransformConcurrency)
	}
	return n, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}
