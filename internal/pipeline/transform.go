package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/observability"
)

// CourseTransformer implements Transformer by normalizing a provider
// observation, scoring it, and serializing the course summary.
type CourseTransformer struct {
	gpxDir  string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a CourseTransformer. gpxDir is searched for
// <course-id>.gpx route files; pass "" to publish summaries without routes.
func NewTransformer(gpxDir string, logger *slog.Logger, metrics *observability.Metrics) *CourseTransformer {
	return &CourseTransformer{
		gpxDir:  gpxDir,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *CourseTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	obs, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	for _, w := range obs.Warnings {
		t.logger.Warn("data quality warning", "course_id", obs.Course.ID, "provider", obs.Provider, "warning", w)
		t.metrics.DataQualityWarnings.Inc()
	}

	summary, res, err := domain.EvaluateCourse(obs.Course, obs.Reading, obs.Air, t.route(obs.Course.ID))
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.RunScore.WithLabelValues(summary.ID).Set(float64(summary.RunScore))
	if res.SafetyCapped {
		t.metrics.SafetyCaps.Inc()
	}
	t.logger.Debug("course scored", "course_id", summary.ID, "run_score", summary.RunScore, "safety_capped", res.SafetyCapped)

	return domain.NewOutputEvent(summary)
}

// route returns the published route reference when a GPX file exists.
func (t *CourseTransformer) route(courseID string) *string {
	if t.gpxDir == "" {
		return nil
	}
	name := courseID + ".gpx"
	if _, err := os.Stat(filepath.Join(t.gpxDir, name)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.logger.Warn("stat route file failed", "course_id", courseID, "error", err)
		}
		return nil
	}
	ref := path.Join("gpx", name)
	return &ref
}

// Result is the outcome of transforming one raw event.
type Result struct {
	Event domain.OutputEvent
	Err   error
}

// TransformBatch transforms raws with at most limit in flight. Results are in
// input order; one failure never affects the others.
func TransformBatch(ctx context.Context, t Transformer, raws []domain.RawEvent, limit int) []Result {
	results := make([]Result, len(raws))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, raw := range raws {
		g.Go(func() error {
			out, err := t.Transform(ctx, raw)
			results[i] = Result{Event: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
