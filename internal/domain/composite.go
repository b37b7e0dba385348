package domain

import (
	"math"
	"strings"
)

// Composite weights. Air quality is applied as a multiplier, never a term.
const (
	weightTemperature = 0.60
	weightWind        = 0.20
	weightSurface     = 0.20

	// SafetyCapScore is the ceiling applied under dangerous conditions.
	SafetyCapScore = 20
)

// Advisory is the bilingual verdict shown with a run score.
type Advisory struct {
	ShortKo  string
	ShortEn  string
	DetailKo string
	DetailEn string
}

// CompositeResult is the full assessment for one reading.
type CompositeResult struct {
	RunScore     int
	Temperature  FactorResult
	Wind         FactorResult
	Surface      FactorResult
	Air          FactorResult
	AirFactor    float64
	SafetyCapped bool
	TagsKo       []string
	TagsEn       []string
	Advisory     Advisory
}

// airFactor maps the air score onto a multiplicative penalty.
func airFactor(airScore int) float64 {
	switch {
	case airScore >= 90:
		return 1.0
	case airScore >= 70:
		return 0.98
	case airScore >= 50:
		return 0.8
	default:
		return 0.6
	}
}

// ComposeScore blends the factor scores into the run score. It returns the
// score, the air factor used, and whether the safety cap fired.
//
// Rounding is half away from zero (math.Round) so 24.5 becomes 25 regardless
// of platform defaults.
func ComposeScore(temp, wind, surface, air FactorResult, apparent float64) (int, float64, bool) {
	base := float64(temp.Score)*weightTemperature +
		float64(wind.Score)*weightWind +
		float64(surface.Score)*weightSurface

	factor := airFactor(air.Score)
	run := base * factor

	capped := surface.Score == 0 || dangerousTemperature(apparent)
	if capped {
		run = math.Min(run, SafetyCapScore)
	}

	run = math.Max(0, math.Min(100, run))
	return int(math.Round(run)), factor, capped
}

var shortAdvisories = []struct {
	min  int
	text Text
}{
	{80, Text{Ko: "러닝하기 아주 좋은 컨디션입니다 😄", En: "Great conditions for running 😄"}},
	{60, Text{Ko: "러닝하기 무난한 컨디션입니다 🙂", En: "Decent conditions for running 🙂"}},
	{40, Text{Ko: "주의하면서 뛰면 괜찮은 컨디션입니다 ⚠️", En: "Okay to run with some caution ⚠️"}},
	{math.MinInt, Text{Ko: "러닝 강도/시간을 줄이거나 실외 러닝을 피하는 것이 좋습니다 🚨", En: "Consider reducing intensity/duration or avoiding outdoor running 🚨"}},
}

var safetyReminder = Text{
	Ko: "컨디션에 따라 강도를 조절하고, 평소보다 몸 상태를 더 자주 점검해 주세요.",
	En: "Adjust intensity based on how you feel and check your condition more often than usual.",
}

// shortAdvisory picks the verdict for a run score.
func shortAdvisory(runScore int) Text {
	for _, a := range shortAdvisories {
		if runScore >= a.min {
			return a.text
		}
	}
	return shortAdvisories[len(shortAdvisories)-1].text
}

// ComposeAdvisory builds the ordered tags and the short/detailed advisories.
// Factors with Present unset (the default air result) contribute nothing.
func ComposeAdvisory(runScore int, factors ...FactorResult) (tagsKo, tagsEn []string, adv Advisory) {
	tagsKo = make([]string, 0, len(factors))
	tagsEn = make([]string, 0, len(factors))
	detailKo := make([]string, 0, len(factors)+1)
	detailEn := make([]string, 0, len(factors)+1)

	for _, f := range factors {
		if !f.Present {
			continue
		}
		tagsKo = append(tagsKo, f.Tag.Ko)
		tagsEn = append(tagsEn, f.Tag.En)
		detailKo = append(detailKo, f.Comment.Ko)
		detailEn = append(detailEn, f.Comment.En)
	}
	detailKo = append(detailKo, safetyReminder.Ko)
	detailEn = append(detailEn, safetyReminder.En)

	short := shortAdvisory(runScore)
	adv = Advisory{
		ShortKo:  short.Ko,
		ShortEn:  short.En,
		DetailKo: strings.Join(detailKo, " "),
		DetailEn: strings.Join(detailEn, " "),
	}
	return tagsKo, tagsEn, adv
}

// Evaluate runs the full engine over one reading. air may be nil. It fails
// only when the reading is structurally incomplete or non-finite.
func Evaluate(r Reading, air *AirQualitySample) (CompositeResult, error) {
	if err := r.Validate(); err != nil {
		return CompositeResult{}, err
	}

	apparent := *r.ApparentTemperature
	temp := ClassifyTemperature(apparent)
	wind := ClassifyWind(*r.WindSpeed)
	surface := ClassifySurface(r.Derive())
	airResult := ClassifyAir(air)

	runScore, factor, capped := ComposeScore(temp, wind, surface, airResult, apparent)
	tagsKo, tagsEn, adv := ComposeAdvisory(runScore, temp, wind, surface, airResult)

	return CompositeResult{
		RunScore:     runScore,
		Temperature:  temp,
		Wind:         wind,
		Surface:      surface,
		Air:          airResult,
		AirFactor:    factor,
		SafetyCapped: capped,
		TagsKo:       tagsKo,
		TagsEn:       tagsEn,
		Advisory:     adv,
	}, nil
}
