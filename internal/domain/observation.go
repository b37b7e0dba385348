package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Wind speed units accepted on the wire.
const (
	UnitKmh = "km/h"
	UnitMs  = "m/s"
)

// maxWindowHours is the length of the trailing precipitation window.
const maxWindowHours = 3

// RawObservation is the JSON document the collector publishes per course.
// Numeric fields accept numbers or numeric strings because KMA reports every
// category value as a string.
type RawObservation struct {
	CourseID      string     `json:"course_id" validate:"required"`
	Provider      string     `json:"provider,omitempty"`
	WindSpeedUnit string     `json:"wind_speed_unit,omitempty" validate:"omitempty,oneof=km/h m/s"`
	Current       RawCurrent `json:"current"`
	Hourly        RawHourly  `json:"hourly"`
	Air           *RawAir    `json:"air,omitempty"`
}

// RawCurrent holds the instantaneous values, named after the Open-Meteo
// variables the collector requests.
type RawCurrent struct {
	Time                string          `json:"time,omitempty"`
	Temperature         json.RawMessage `json:"temperature_2m,omitempty"`
	ApparentTemperature json.RawMessage `json:"apparent_temperature,omitempty"`
	Humidity            json.RawMessage `json:"relative_humidity_2m,omitempty"`
	Precipitation       json.RawMessage `json:"precipitation,omitempty"`
	Rain                json.RawMessage `json:"rain,omitempty"`
	WindSpeed           json.RawMessage `json:"wind_speed_10m,omitempty"`
	WindDirection       json.RawMessage `json:"wind_direction_10m,omitempty"`
}

// RawHourly holds the trailing hourly windows, oldest first.
type RawHourly struct {
	Precipitation []json.RawMessage `json:"precipitation,omitempty"`
	Rain          []json.RawMessage `json:"rain,omitempty"`
}

// RawAir holds particulate values.
type RawAir struct {
	PM10 json.RawMessage `json:"pm10,omitempty"`
	PM25 json.RawMessage `json:"pm2_5,omitempty"`
}

// Observation is a normalized RawObservation ready for scoring.
type Observation struct {
	Course   Course
	Provider string
	Reading  Reading
	Air      *AirQualitySample
	// Warnings lists data-quality anomalies the engine silently absorbs,
	// such as rain exceeding total precipitation.
	Warnings []string
}

// ParseRawEvent decodes a source message into an Observation.
func ParseRawEvent(raw RawEvent) (Observation, error) {
	var rec RawObservation
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: %w", err)
	}
	return NormalizeObservation(rec, raw.Timestamp)
}

// NormalizeObservation converts a provider document into canonical units.
// fallback stamps observations that carry no usable time of their own.
func NormalizeObservation(rec RawObservation, fallback time.Time) (Observation, error) {
	if err := validate.Struct(rec); err != nil {
		return Observation{}, wrapValidation(err)
	}

	course, err := LookupCourse(rec.CourseID)
	if err != nil {
		return Observation{}, err
	}

	cur := rec.Current
	windSpeed := parseNumber(cur.WindSpeed)
	if windSpeed != nil && rec.WindSpeedUnit != UnitMs {
		windSpeed = Float(*windSpeed / 3.6)
	}

	temp := parseNumber(cur.Temperature)
	apparent := parseNumber(cur.ApparentTemperature)
	if humidity := parseNumber(cur.Humidity); apparent == nil && temp != nil && humidity != nil {
		wind := 0.0
		if windSpeed != nil {
			wind = *windSpeed
		}
		apparent = Float(ApparentTemperature(*temp, wind, *humidity))
	}

	var direction float64
	if d := parseNumber(cur.WindDirection); d != nil {
		direction = *d
	}

	obs := Observation{
		Course:   course,
		Provider: rec.Provider,
		Reading: Reading{
			Timestamp:            parseObservationTime(cur.Time, fallback),
			Temperature:          temp,
			ApparentTemperature:  apparent,
			WindSpeed:            windSpeed,
			WindDirection:        direction,
			CurrentPrecipitation: parsePrecipField(cur.Precipitation),
			CurrentRain:          parsePrecipField(cur.Rain),
			RecentPrecipWindow:   parseWindow(rec.Hourly.Precipitation),
			RecentRainWindow:     parseWindow(rec.Hourly.Rain),
		},
		Air: parseAir(rec.Air),
	}
	obs.Warnings = dataQualityWarnings(obs.Reading)
	return obs, nil
}

// ApparentTemperature estimates the felt temperature for providers that only
// report air temperature: Canadian wind chill in the cold, NOAA heat index in
// humid heat, the air temperature otherwise.
func ApparentTemperature(tempC, windMS, humidity float64) float64 {
	windKmh := windMS * 3.6

	if tempC <= 10 && windKmh > 4.8 {
		v := math.Pow(windKmh, 0.16)
		return 13.12 + 0.6215*tempC - 11.37*v + 0.3965*tempC*v
	}

	if tempC >= 27 && humidity >= 40 {
		f := tempC*9/5 + 32
		rh := humidity
		hi := -42.379 +
			2.04901523*f +
			10.14333127*rh -
			0.22475541*f*rh -
			0.00683783*f*f -
			0.05481717*rh*rh +
			0.00122874*f*f*rh +
			0.00085282*f*rh*rh -
			0.00000199*f*f*rh*rh
		return (hi - 32) * 5 / 9
	}

	return tempC
}

func wrapValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate raw observation: %w", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s", ErrMissingRequiredField, fe.Field())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidReading, verrs[0].Error())
}

// parseNumber decodes a number or numeric string. Absent, null and
// unparseable values yield nil.
func parseNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		return &x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// parsePrecipField distinguishes an absent key (nil, missing) from a present
// one, which is always parsed leniently.
func parsePrecipField(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Float(0)
	}
	return Float(ParsePrecipitation(v))
}

// parseWindow keeps the most recent maxWindowHours values.
func parseWindow(values []json.RawMessage) []float64 {
	if len(values) > maxWindowHours {
		values = values[len(values)-maxWindowHours:]
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		p := parsePrecipField(v)
		if p == nil {
			out = append(out, 0)
			continue
		}
		out = append(out, *p)
	}
	return out
}

func parseAir(a *RawAir) *AirQualitySample {
	if a == nil {
		return nil
	}
	s := &AirQualitySample{PM10: parsePM(a.PM10), PM25: parsePM(a.PM25)}
	if s.Empty() {
		return nil
	}
	return s
}

var observationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseObservationTime reads provider timestamps. Zone-less values are local
// Korean time. Unparseable or empty values fall back to the message time.
func parseObservationTime(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range observationLayouts {
			if t, err := time.ParseInLocation(layout, s, KST); err == nil {
				return t.In(KST)
			}
		}
	}
	if fallback.IsZero() {
		return Now()
	}
	return fallback.In(KST)
}

func dataQualityWarnings(r Reading) []string {
	var warnings []string
	if r.CurrentRain != nil && r.CurrentPrecipitation != nil && *r.CurrentRain > *r.CurrentPrecipitation {
		warnings = append(warnings, "rain exceeds precipitation")
	}
	if sum(r.RecentRainWindow) > sum(r.RecentPrecipWindow) {
		warnings = append(warnings, "recent rain exceeds recent precipitation")
	}
	return warnings
}
