package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingRequiredField means a Reading lacks a field the engine cannot
	// score without. The location is skipped; other locations are unaffected.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidReading means a numeric field is NaN or infinite.
	ErrInvalidReading = errors.New("invalid reading")
	// ErrUnknownCourse means an observation names a course outside the catalogue.
	ErrUnknownCourse = errors.New("unknown course")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Reading is the instantaneous plus trailing-window weather for one course at
// one evaluation instant, already normalized to °C, m/s and mm.
type Reading struct {
	Timestamp            time.Time
	Temperature          *float64 `validate:"required"`
	ApparentTemperature  *float64 `validate:"required"`
	WindSpeed            *float64 `validate:"required"`
	WindDirection        float64
	CurrentPrecipitation *float64 `validate:"required"`
	CurrentRain          *float64 `validate:"required"`

	// Up to three trailing hourly values in chronological order.
	RecentRainWindow   []float64
	RecentPrecipWindow []float64
}

// AirQualitySample holds particulate concentrations in µg/m³.
type AirQualitySample struct {
	PM10 *float64
	PM25 *float64
}

// Empty reports whether the sample carries no usable value.
func (s *AirQualitySample) Empty() bool {
	return s == nil || (s.PM10 == nil && s.PM25 == nil)
}

// Precipitation is the rain/snow split derived from a Reading.
type Precipitation struct {
	CurrentPrecip float64
	CurrentRain   float64
	CurrentSnow   float64
	RecentPrecip  float64
	RecentRain    float64
	RecentSnow    float64
}

// Validate checks that every required field is present and every numeric
// field is finite.
func (r Reading) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(fields, ", "))
		}
		return fmt.Errorf("validate reading: %w", err)
	}

	values := []struct {
		name string
		v    float64
	}{
		{"Temperature", *r.Temperature},
		{"ApparentTemperature", *r.ApparentTemperature},
		{"WindSpeed", *r.WindSpeed},
		{"WindDirection", r.WindDirection},
		{"CurrentPrecipitation", *r.CurrentPrecipitation},
		{"CurrentRain", *r.CurrentRain},
	}
	for _, f := range values {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidReading, f.name)
		}
	}
	for _, v := range append(append([]float64(nil), r.RecentRainWindow...), r.RecentPrecipWindow...) {
		if !finite(v) {
			return fmt.Errorf("%w: trailing window holds a non-finite value", ErrInvalidReading)
		}
	}
	return nil
}

// Derive computes the rain/snow split. It assumes Validate has passed.
func (r Reading) Derive() Precipitation {
	p := Precipitation{
		CurrentPrecip: *r.CurrentPrecipitation,
		CurrentRain:   *r.CurrentRain,
		RecentPrecip:  sum(r.RecentPrecipWindow),
		RecentRain:    sum(r.RecentRainWindow),
	}
	p.CurrentSnow = math.Max(p.CurrentPrecip-p.CurrentRain, 0)
	p.RecentSnow = math.Max(p.RecentPrecip-p.RecentRain, 0)
	return p
}

// Float returns a pointer to v. Handy for building Readings by hand.
func Float(v float64) *float64 {
	return &v
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
