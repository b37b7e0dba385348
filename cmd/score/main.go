// Command score evaluates a file of raw course observations offline and
// writes the snapshot document the web client reads.
//
// Usage:
//
//	go run ./cmd/score -i data/mock/observations.json -o data/src_weather.json --gpx-dir gpx
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/run-condition-etl/internal/config"
	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/observability"
	"github.com/couchcryptid/run-condition-etl/internal/pipeline"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

type options struct {
	input       string
	output      string
	gpxDir      string
	concurrency int
	logLevel    string
	logFormat   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "score",
		Short:        "Score raw course observations and write the snapshot document",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := observability.NewLogger(&config.Config{LogLevel: opts.logLevel, LogFormat: opts.logFormat})
			n, err := run(cmd.Context(), opts, logger)
			if err != nil {
				return err
			}
			logger.Info("snapshot written", "path", opts.output, "courses", n)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "JSON array of raw observations")
	f.StringVarP(&opts.output, "output", "o", "data/src_weather.json", "snapshot output path")
	f.StringVar(&opts.gpxDir, "gpx-dir", "gpx", "directory searched for <course-id>.gpx route files")
	f.IntVar(&opts.concurrency, "concurrency", 4, "observations scored in parallel")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "text", "json or text")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// run scores every observation in opts.input, logs and skips failures, and
// writes the resulting snapshot. It returns the number of courses written.
func run(ctx context.Context, opts options, logger *slog.Logger) (int, error) {
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return 0, fmt.Errorf("read observations: %w", err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("decode observations: %w", err)
	}

	raws := make([]domain.RawEvent, len(docs))
	for i, doc := range docs {
		raws[i] = domain.RawEvent{Value: doc, Offset: int64(i)}
	}

	transformer := pipeline.NewTransformer(opts.gpxDir, logger, observability.NewUnregisteredMetrics())
	results := pipeline.TransformBatch(ctx, transformer, raws, opts.concurrency)

	store := snapshot.NewStore(24 * time.Hour)
	for i, res := range results {
		if res.Err != nil {
			logger.Warn("observation skipped", "index", i, "error", res.Err)
			continue
		}
		store.Put(res.Event.Summary)
	}

	doc := store.Snapshot()
	if err := snapshot.WriteFile(opts.output, doc); err != nil {
		return 0, err
	}
	return len(doc.Courses), nil
}
