// Command genmock writes deterministic mock observations for every course in
// the catalogue, cycling through a fixed set of weather scenarios. With
// --snapshot-out it also scores them with the domain package and writes the
// snapshot fixture the web client and API tests load.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  --out data/mock/observations.json \
//	  --snapshot-out data/mock/src_weather.json
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

// observedAt is the fixed observation time stamped on every mock document.
const observedAt = "2026-04-18T06:00"

// processedAt pins generated_at so the snapshot fixture is reproducible.
var processedAt = time.Date(2026, time.April, 18, 6, 30, 0, 0, domain.KST)

type options struct {
	out         string
	snapshotOut string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "genmock",
		Short:        "Write deterministic mock course observations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return run(opts, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.out, "out", "data/mock/observations.json", "output path for the raw observation fixture")
	f.StringVar(&opts.snapshotOut, "snapshot-out", "", "optional output path for the scored snapshot fixture")

	return cmd
}

func run(opts options, logger *slog.Logger) error {
	observations := generate()
	if err := writeJSON(opts.out, observations); err != nil {
		return fmt.Errorf("writing observation fixture: %w", err)
	}
	logger.Info("wrote observation fixture", "path", opts.out, "observations", len(observations))

	if opts.snapshotOut == "" {
		return nil
	}

	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	doc, err := score(observations)
	if err != nil {
		return err
	}
	if err := snapshot.WriteFile(opts.snapshotOut, doc); err != nil {
		return fmt.Errorf("writing snapshot fixture: %w", err)
	}
	logger.Info("wrote snapshot fixture", "path", opts.snapshotOut, "courses", len(doc.Courses))

	printStats(doc.Courses)
	return nil
}

// scenario is a weather preset applied to a course.
type scenario struct {
	name     string
	provider string
	unit     string
	current  domain.RawCurrent
	hourly   domain.RawHourly
	air      *domain.RawAir
}

func num(v float64) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func str(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func nums(vs ...float64) []json.RawMessage {
	out := make([]json.RawMessage, len(vs))
	for i, v := range vs {
		out[i] = num(v)
	}
	return out
}

func strs(ss ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(ss))
	for i, s := range ss {
		out[i] = str(s)
	}
	return out
}

var scenarios = []scenario{
	{
		name:     "optimal",
		provider: "open-meteo",
		unit:     domain.UnitKmh,
		current: domain.RawCurrent{
			Temperature: num(13.8), ApparentTemperature: num(15), Humidity: num(58),
			Precipitation: num(0), Rain: num(0), WindSpeed: num(3.6), WindDirection: num(225),
		},
		hourly: domain.RawHourly{Precipitation: nums(0, 0, 0), Rain: nums(0, 0, 0)},
		air:    &domain.RawAir{PM10: num(25), PM25: num(10)},
	},
	{
		name:     "light-rain",
		provider: "open-meteo",
		unit:     domain.UnitKmh,
		current: domain.RawCurrent{
			Temperature: num(11), ApparentTemperature: num(10), Humidity: num(88),
			Precipitation: num(0.4), Rain: num(0.4), WindSpeed: num(10.8), WindDirection: num(180),
		},
		hourly: domain.RawHourly{Precipitation: nums(0.2, 0.6, 0.4), Rain: nums(0.2, 0.6, 0.4)},
		air:    &domain.RawAir{PM10: num(18), PM25: num(6)},
	},
	{
		name:     "kma-poor-air",
		provider: "kma",
		unit:     domain.UnitMs,
		current: domain.RawCurrent{
			Temperature: str("16.0"), ApparentTemperature: str("15.0"),
			Precipitation: str("강수없음"), Rain: str("강수없음"), WindSpeed: str("1.0"), WindDirection: str("135"),
		},
		hourly: domain.RawHourly{Precipitation: strs("-", "-", "-"), Rain: strs("-", "-", "-")},
		air:    &domain.RawAir{PM10: str("160"), PM25: str("100")},
	},
	{
		name:     "freezing-wind",
		provider: "open-meteo",
		unit:     domain.UnitKmh,
		current: domain.RawCurrent{
			Temperature: num(-12.5), ApparentTemperature: num(-20.1),
			Precipitation: num(0), Rain: num(0), WindSpeed: num(14.4), WindDirection: num(315),
		},
		hourly: domain.RawHourly{Precipitation: nums(0, 0, 0), Rain: nums(0, 0, 0)},
		air:    &domain.RawAir{PM10: num(22), PM25: num(9)},
	},
	{
		name:     "heavy-snow",
		provider: "open-meteo",
		unit:     domain.UnitKmh,
		current: domain.RawCurrent{
			Temperature: num(-1), ApparentTemperature: num(-4),
			Precipitation: num(1.2), Rain: num(0), WindSpeed: num(5.4), WindDirection: num(0),
		},
		hourly: domain.RawHourly{Precipitation: nums(2.4, 2.8, 1.8), Rain: nums(0, 0, 0)},
	},
	{
		name:     "humid-heat",
		provider: "open-meteo",
		unit:     domain.UnitMs,
		current: domain.RawCurrent{
			Temperature: num(31), Humidity: num(70),
			Precipitation: str("1mm 미만"), Rain: num(0), WindSpeed: num(1.5), WindDirection: num(90),
		},
		hourly: domain.RawHourly{Precipitation: nums(0, 0, 0), Rain: nums(0, 0, 0)},
		air:    &domain.RawAir{PM10: num(40)},
	},
}

// generate assigns scenarios to courses round-robin in catalogue order.
func generate() []domain.RawObservation {
	out := make([]domain.RawObservation, 0, len(domain.Courses))
	for i, c := range domain.Courses {
		s := scenarios[i%len(scenarios)]
		cur := s.current
		cur.Time = observedAt
		out = append(out, domain.RawObservation{
			CourseID:      c.ID,
			Provider:      s.provider,
			WindSpeedUnit: s.unit,
			Current:       cur,
			Hourly:        s.hourly,
			Air:           s.air,
		})
	}
	return out
}

// score runs the observations through the same normalization and engine the
// pipeline uses and collects the snapshot document.
func score(observations []domain.RawObservation) (snapshot.Document, error) {
	store := snapshot.NewStore(24 * time.Hour)
	for _, rec := range observations {
		obs, err := domain.NormalizeObservation(rec, domain.Now())
		if err != nil {
			return snapshot.Document{}, fmt.Errorf("normalize %s: %w", rec.CourseID, err)
		}
		summary, _, err := domain.EvaluateCourse(obs.Course, obs.Reading, obs.Air, nil)
		if err != nil {
			return snapshot.Document{}, fmt.Errorf("evaluate %s: %w", rec.CourseID, err)
		}
		store.Put(summary)
	}
	return store.Snapshot(), nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats prints figures useful when updating test assertions.
func printStats(courses []domain.CourseSummary) {
	badges := map[string]int{}
	capped := 0
	for i := range courses {
		badges[courses[i].WetBadge.Level]++
		if courses[i].RunScore <= 20 {
			capped++
		}
	}

	sorted := make([]domain.CourseSummary, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RunScore > sorted[j].RunScore })

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Courses: %d\n", len(courses))
	fmt.Printf("Badges: good=%d, wet=%d, bad=%d\n",
		badges[domain.BadgeGood], badges[domain.BadgeWet], badges[domain.BadgeBad])
	fmt.Printf("Run score <= 20: %d\n", capped)
	fmt.Println("\nScores:")
	for i := range sorted {
		s := &sorted[i]
		fmt.Printf("  %-24s run=%3d temp=%3d wind=%3d surface=%3d air=%3d  %v\n",
			s.ID, s.RunScore, s.TempScore, s.WindScore, s.SurfaceScore, s.AirScore, s.TagsEn)
	}
}
