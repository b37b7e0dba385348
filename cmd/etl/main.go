package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/run-condition-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/run-condition-etl/internal/adapter/kafka"
	"github.com/couchcryptid/run-condition-etl/internal/config"
	"github.com/couchcryptid/run-condition-etl/internal/observability"
	"github.com/couchcryptid/run-condition-etl/internal/pipeline"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := snapshot.NewStore(cfg.SnapshotTTL)
	if doc, err := snapshot.ReadFile(cfg.SnapshotPath); err == nil {
		logger.Info("snapshot restored", "path", cfg.SnapshotPath, "courses", store.Restore(doc))
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("snapshot restore failed", "path", cfg.SnapshotPath, "error", err)
	}

	scheduler := snapshot.NewScheduler(store, cfg.SnapshotPath, cfg.SnapshotInterval, logger, metrics)
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start snapshot scheduler", "error", err)
		os.Exit(1)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(cfg.GPXDir, logger, metrics)

	p := pipeline.New(reader, transformer, pipeline.MultiLoader{writer, store}, logger, metrics,
		cfg.BatchSize, cfg.TransformConcurrency)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	scheduler.Stop()
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
