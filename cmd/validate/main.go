// Command validate checks a snapshot document against the observations it
// was scored from: wire schema, score bounds, safety caps, catalogue order
// and re-score parity with the current engine.
//
// Usage:
//
//	go run ./cmd/validate \
//	  --observations data/mock/observations.json \
//	  --snapshot data/mock/src_weather.json
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

var errValidationFailed = errors.New("validation failed")

// summaryFields are the wire names every course summary must carry.
var summaryFields = []string{
	"id", "name_ko", "name_en", "name", "lat", "lon", "updated_at",
	"temperature", "apparent_temperature", "wind_speed", "wind_direction",
	"rain_now", "recent_rain_3h", "wet_badge",
	"run_score", "temp_score", "wind_score", "wet_score", "surface_score", "air_score",
	"tags_ko", "tags_en",
	"advice_short_ko", "advice_short_en", "advice_detail_ko", "advice_detail_en",
	"pm10", "pm25", "gpx",
}

var badgeLevels = []string{domain.BadgeGood, domain.BadgeWet, domain.BadgeBad}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type options struct {
	observations string
	snapshot     string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "validate",
		Short:        "Check a snapshot document against its source observations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.observations, "observations", "", "JSON array of raw observations")
	f.StringVar(&opts.snapshot, "snapshot", "", "snapshot document to validate")
	_ = cmd.MarkFlagRequired("observations")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func run(w io.Writer, opts options) error {
	fmt.Fprintln(w, "=== Run Condition Snapshot Validation ===")

	observations, err := loadJSON[[]domain.RawObservation](opts.observations)
	if err != nil {
		return fmt.Errorf("load observations: %w", err)
	}
	doc, err := snapshot.ReadFile(opts.snapshot)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	rawDoc, err := loadJSON[struct {
		Courses []map[string]json.RawMessage `json:"courses"`
	}](opts.snapshot)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	phases := []*phase{
		validateObservations(observations),
		validateSchema(doc, rawDoc.Courses),
		validateScores(doc.Courses),
		validateParity(observations, doc.Courses),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d observations, %d courses in snapshot\n", len(observations), len(doc.Courses))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		fmt.Fprintln(w, "\nValidation FAILED.")
		return errValidationFailed
	}
	fmt.Fprintln(w, "\nAll validations passed.")
	return nil
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// ── Phase 1: observations ──

func validateObservations(observations []domain.RawObservation) *phase {
	p := &phase{name: "Phase 1: Observation fixture"}

	seen := map[string]bool{}
	for i, rec := range observations {
		if seen[rec.CourseID] {
			p.errorf("observation %d: duplicate course %q", i, rec.CourseID)
		}
		seen[rec.CourseID] = true

		obs, err := domain.NormalizeObservation(rec, domain.Now())
		if err != nil {
			p.errorf("observation %d (%s): %v", i, rec.CourseID, err)
			continue
		}
		if err := obs.Reading.Validate(); err != nil {
			p.errorf("observation %d (%s): %v", i, rec.CourseID, err)
		}
		for _, w := range obs.Warnings {
			p.errorf("observation %d (%s): data quality: %s", i, rec.CourseID, w)
		}
	}
	return p
}

// ── Phase 2: schema ──

func validateSchema(doc snapshot.Document, raw []map[string]json.RawMessage) *phase {
	p := &phase{name: "Phase 2: Snapshot schema"}

	if doc.GeneratedAt.IsZero() {
		p.errorf("generated_at is missing")
	}

	for i, fields := range raw {
		for _, name := range summaryFields {
			if _, ok := fields[name]; !ok {
				p.errorf("course %d: missing field %q", i, name)
			}
		}
	}

	last := -1
	for i := range doc.Courses {
		s := &doc.Courses[i]
		c, err := domain.LookupCourse(s.ID)
		if err != nil {
			p.errorf("course %d: %v", i, err)
			continue
		}
		if order := domain.CourseOrder(s.ID); order <= last {
			p.errorf("%s: out of catalogue order", s.ID)
		} else {
			last = order
		}
		if s.NameKo != c.NameKo || s.NameEn != c.NameEn || s.Name != c.NameKo {
			p.errorf("%s: names do not match the catalogue", s.ID)
		}
		if s.Lat != c.Lat || s.Lon != c.Lon {
			p.errorf("%s: coordinates do not match the catalogue", s.ID)
		}
		if s.UpdatedAt.IsZero() {
			p.errorf("%s: updated_at is missing", s.ID)
		}
		if !slices.Contains(badgeLevels, s.WetBadge.Level) {
			p.errorf("%s: unknown wet_badge level %q", s.ID, s.WetBadge.Level)
		}
		if s.WetBadge.TextKo == "" || s.WetBadge.TextEn == "" {
			p.errorf("%s: wet_badge text is empty", s.ID)
		}
		if s.AdviceShortKo == "" || s.AdviceShortEn == "" || s.AdviceDetailKo == "" || s.AdviceDetailEn == "" {
			p.errorf("%s: advice text is empty", s.ID)
		}
	}
	return p
}

// ── Phase 3: scores ──

func validateScores(courses []domain.CourseSummary) *phase {
	p := &phase{name: "Phase 3: Score bounds and safety caps"}

	for i := range courses {
		s := &courses[i]
		for name, v := range map[string]int{
			"run_score":     s.RunScore,
			"temp_score":    s.TempScore,
			"wind_score":    s.WindScore,
			"surface_score": s.SurfaceScore,
			"air_score":     s.AirScore,
		} {
			if v < 0 || v > 100 {
				p.errorf("%s: %s %d out of range", s.ID, name, v)
			}
		}
		if s.WetScore != s.SurfaceScore {
			p.errorf("%s: wet_score %d differs from surface_score %d", s.ID, s.WetScore, s.SurfaceScore)
		}
		if len(s.TagsKo) != len(s.TagsEn) {
			p.errorf("%s: %d korean tags but %d english tags", s.ID, len(s.TagsKo), len(s.TagsEn))
		}
		dangerous := s.ApparentTemperature <= domain.DangerColdApparent ||
			s.ApparentTemperature >= domain.DangerHotApparent ||
			s.SurfaceScore == 0
		if dangerous && s.RunScore > domain.SafetyCapScore {
			p.errorf("%s: run_score %d exceeds the safety cap", s.ID, s.RunScore)
		}
	}
	return p
}

// ── Phase 4: re-score parity ──

func validateParity(observations []domain.RawObservation, courses []domain.CourseSummary) *phase {
	p := &phase{name: "Phase 4: Re-score parity"}

	published := make(map[string]domain.CourseSummary, len(courses))
	for _, s := range courses {
		published[s.ID] = s
	}

	for _, rec := range observations {
		obs, err := domain.NormalizeObservation(rec, domain.Now())
		if err != nil {
			continue // reported in phase 1
		}
		want, _, err := domain.EvaluateCourse(obs.Course, obs.Reading, obs.Air, nil)
		if err != nil {
			if _, ok := published[rec.CourseID]; ok {
				p.errorf("%s: published but does not score: %v", rec.CourseID, err)
			}
			continue
		}
		got, ok := published[rec.CourseID]
		if !ok {
			p.errorf("%s: scorable observation missing from snapshot", rec.CourseID)
			continue
		}
		delete(published, rec.CourseID)

		if got.RunScore != want.RunScore || got.TempScore != want.TempScore ||
			got.WindScore != want.WindScore || got.SurfaceScore != want.SurfaceScore ||
			got.AirScore != want.AirScore {
			p.errorf("%s: scores run/temp/wind/surface/air %d/%d/%d/%d/%d, engine gives %d/%d/%d/%d/%d",
				rec.CourseID,
				got.RunScore, got.TempScore, got.WindScore, got.SurfaceScore, got.AirScore,
				want.RunScore, want.TempScore, want.WindScore, want.SurfaceScore, want.AirScore)
		}
		if !slices.Equal(got.TagsEn, want.TagsEn) || !slices.Equal(got.TagsKo, want.TagsKo) {
			p.errorf("%s: tags %v, engine gives %v", rec.CourseID, got.TagsEn, want.TagsEn)
		}
		if got.WetBadge != want.WetBadge {
			p.errorf("%s: wet_badge %q, engine gives %q", rec.CourseID, got.WetBadge.Level, want.WetBadge.Level)
		}
	}

	for id := range published {
		p.errorf("%s: in snapshot without a source observation", id)
	}
	return p
}
