package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReading(apparent, wind, precip, rain float64) Reading {
	return Reading{
		Temperature:          Float(apparent),
		ApparentTemperature:  Float(apparent),
		WindSpeed:            Float(wind),
		CurrentPrecipitation: Float(precip),
		CurrentRain:          Float(rain),
	}
}

func TestEvaluate_OptimalConditions(t *testing.T) {
	res, err := Evaluate(testReading(15, 1.0, 0, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, 90, res.Temperature.Score)
	assert.Equal(t, 100, res.Wind.Score)
	assert.Equal(t, 100, res.Surface.Score)
	assert.Equal(t, DefaultAirScore, res.Air.Score)
	assert.InDelta(t, 1.0, res.AirFactor, 1e-9)
	assert.Equal(t, 94, res.RunScore)
	assert.False(t, res.SafetyCapped)
	assert.Equal(t, "Great conditions for running 😄", res.Advisory.ShortEn)
}

func TestEvaluate_ExtremeColdIsCapped(t *testing.T) {
	res, err := Evaluate(testReading(-20, 0.5, 0, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Temperature.Score)
	assert.True(t, res.SafetyCapped)
	assert.LessOrEqual(t, res.RunScore, SafetyCapScore)
}

func TestEvaluate_HeavySnowIsCapped(t *testing.T) {
	r := testReading(8, 1.0, 0, 0)
	r.RecentPrecipWindow = []float64{2, 3, 2}
	r.RecentRainWindow = []float64{0, 0, 0}

	res, err := Evaluate(r, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Surface.Score)
	assert.Equal(t, TierSurfaceHeavySnow, res.Surface.Tier)
	assert.True(t, res.SafetyCapped)
	assert.LessOrEqual(t, res.RunScore, SafetyCapScore)
}

func TestEvaluate_PoorAirIsMultiplicative(t *testing.T) {
	clean, err := Evaluate(testReading(15, 1.0, 0, 0), nil)
	require.NoError(t, err)

	dirty, err := Evaluate(testReading(15, 1.0, 0, 0), &AirQualitySample{PM25: Float(100)})
	require.NoError(t, err)

	assert.Equal(t, 30, dirty.Air.Score)
	assert.InDelta(t, 0.6, dirty.AirFactor, 1e-9)
	assert.Equal(t, int(math.Round(94*0.6)), dirty.RunScore)
	assert.Less(t, dirty.RunScore, clean.RunScore)
}

func TestEvaluate_HotApparentIsCapped(t *testing.T) {
	res, err := Evaluate(testReading(33, 0, 0, 0), nil)
	require.NoError(t, err)
	assert.True(t, res.SafetyCapped)
	assert.LessOrEqual(t, res.RunScore, SafetyCapScore)
}

func TestEvaluate_MissingRequiredField(t *testing.T) {
	r := testReading(10, 1, 0, 0)
	r.WindSpeed = nil

	_, err := Evaluate(r, nil)
	require.ErrorIs(t, err, ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "WindSpeed")
}

func TestEvaluate_NonFiniteInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Reading)
	}{
		{"NaN apparent", func(r *Reading) { r.ApparentTemperature = Float(math.NaN()) }},
		{"infinite wind", func(r *Reading) { r.WindSpeed = Float(math.Inf(1)) }},
		{"NaN in window", func(r *Reading) { r.RecentRainWindow = []float64{0, math.NaN()} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReading(10, 1, 0, 0)
			tt.mutate(&r)
			_, err := Evaluate(r, nil)
			require.ErrorIs(t, err, ErrInvalidReading)
		})
	}
}

func TestEvaluate_BoundsAndDeterminism(t *testing.T) {
	airSamples := []*AirQualitySample{nil, {PM25: Float(5)}, {PM10: Float(120)}, {PM25: Float(300)}}
	for apparent := -25.0; apparent <= 40; apparent += 2.5 {
		for wind := 0.0; wind <= 12; wind += 1.5 {
			for _, precip := range []float64{0, 0.4, 1, 5, 9} {
				for i, air := range airSamples {
					r := testReading(apparent, wind, precip, precip/2)
					r.RecentPrecipWindow = []float64{precip, precip}
					r.RecentRainWindow = []float64{precip, 0}

					first, err := Evaluate(r, air)
					require.NoError(t, err)
					second, err := Evaluate(r, air)
					require.NoError(t, err)

					assert.Equal(t, first, second)
					assert.GreaterOrEqual(t, first.RunScore, 0)
					assert.LessOrEqual(t, first.RunScore, 100)
					assert.Len(t, first.TagsEn, len(first.TagsKo))
					if first.Surface.Score == 0 || apparent <= DangerColdApparent || apparent >= DangerHotApparent {
						assert.LessOrEqual(t, first.RunScore, SafetyCapScore,
							"apparent=%v wind=%v precip=%v air=%d", apparent, wind, precip, i)
					}
				}
			}
		}
	}
}

func TestEvaluate_TagOrdering(t *testing.T) {
	withAir, err := Evaluate(testReading(8, 3, 0, 0), &AirQualitySample{PM25: Float(40)})
	require.NoError(t, err)

	require.Len(t, withAir.TagsKo, 4)
	require.Len(t, withAir.TagsEn, 4)
	assert.Equal(t, withAir.Temperature.Tag.En, withAir.TagsEn[0])
	assert.Equal(t, withAir.Wind.Tag.En, withAir.TagsEn[1])
	assert.Equal(t, withAir.Surface.Tag.En, withAir.TagsEn[2])
	assert.Equal(t, withAir.Air.Tag.En, withAir.TagsEn[3])
	assert.Equal(t, withAir.Air.Tag.Ko, withAir.TagsKo[3])

	withoutAir, err := Evaluate(testReading(8, 3, 0, 0), nil)
	require.NoError(t, err)
	assert.Len(t, withoutAir.TagsKo, 3)
	assert.Len(t, withoutAir.TagsEn, 3)
}

func TestComposeScore(t *testing.T) {
	run, factor, capped := ComposeScore(FactorResult{Score: 55}, FactorResult{Score: 40}, FactorResult{Score: 50}, FactorResult{Score: 100}, 20)
	assert.Equal(t, 51, run)
	assert.InDelta(t, 1.0, factor, 1e-9)
	assert.False(t, capped)

	// 60 * 0.98 = 58.8
	run, _, _ = ComposeScore(FactorResult{Score: 65}, FactorResult{Score: 25}, FactorResult{Score: 80}, FactorResult{Score: 80}, 20)
	assert.Equal(t, 59, run)

	// 55 * 0.8 = 44
	run, factor, _ = ComposeScore(FactorResult{Score: 45}, FactorResult{Score: 60}, FactorResult{Score: 80}, FactorResult{Score: 55}, 20)
	assert.Equal(t, 44, run)
	assert.InDelta(t, 0.8, factor, 1e-9)
}

func TestComposeScore_RoundsHalfAwayFromZero(t *testing.T) {
	// 25 * 0.98 = 24.5
	run, _, capped := ComposeScore(FactorResult{Score: 0}, FactorResult{Score: 25}, FactorResult{Score: 100}, FactorResult{Score: 80}, 20)
	assert.False(t, capped)
	assert.Equal(t, 25, run)
}

func TestAirFactor(t *testing.T) {
	tests := []struct {
		score    int
		expected float64
	}{
		{100, 1.0},
		{90, 1.0},
		{89, 0.98},
		{70, 0.98},
		{69, 0.8},
		{50, 0.8},
		{49, 0.6},
		{0, 0.6},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, airFactor(tt.score), 1e-9, "score %d", tt.score)
	}
}

func TestShortAdvisory(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "Great conditions for running 😄"},
		{80, "Great conditions for running 😄"},
		{79, "Decent conditions for running 🙂"},
		{60, "Decent conditions for running 🙂"},
		{59, "Okay to run with some caution ⚠️"},
		{40, "Okay to run with some caution ⚠️"},
		{39, "Consider reducing intensity/duration or avoiding outdoor running 🚨"},
		{0, "Consider reducing intensity/duration or avoiding outdoor running 🚨"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, shortAdvisory(tt.score).En, "score %d", tt.score)
	}
}

func TestComposeAdvisory_DetailEndsWithReminder(t *testing.T) {
	temp := ClassifyTemperature(8)
	_, _, adv := ComposeAdvisory(90, temp, ClassifyAir(nil))

	assert.Equal(t, temp.Comment.En+" "+safetyReminder.En, adv.DetailEn)
	assert.Equal(t, temp.Comment.Ko+" "+safetyReminder.Ko, adv.DetailKo)
}

func TestDerive_SnowIsNeverNegative(t *testing.T) {
	r := testReading(5, 1, 0.5, 2)
	r.RecentPrecipWindow = []float64{1}
	r.RecentRainWindow = []float64{4}

	p := r.Derive()
	assert.InDelta(t, 0.0, p.CurrentSnow, 1e-9)
	assert.InDelta(t, 0.0, p.RecentSnow, 1e-9)
	assert.InDelta(t, 2.0, p.CurrentRain, 1e-9)
}
