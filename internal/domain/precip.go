package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var (
	// noPrecipMarkers are the sentinels providers use for "nothing fell".
	noPrecipMarkers = map[string]bool{
		"강수없음":             true,
		"no precipitation": true,
		"none":             true,
		"-":                true,
	}

	// traceQualifiers mark an amount below the gauge threshold, e.g. "1mm 미만".
	traceQualifiers = []string{"미만", "less than", "under"}

	// openEndedQualifiers mark a floor value, e.g. "50.0mm 이상".
	openEndedQualifiers = []string{"이상", "or more"}
)

// ParsePrecipitation converts a provider precipitation value into mm.
// It never fails: unknown encodings degrade to 0, and the result is never
// negative.
func ParsePrecipitation(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return nonNegative(v)
	case float32:
		return nonNegative(float64(v))
	case int:
		return nonNegative(float64(v))
	case int64:
		return nonNegative(float64(v))
	case json.Number:
		return parsePrecipString(v.String())
	case string:
		return parsePrecipString(v)
	default:
		return 0
	}
}

func parsePrecipString(s string) float64 {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" || noPrecipMarkers[text] {
		return 0
	}
	for _, q := range traceQualifiers {
		if strings.Contains(text, q) {
			return 0
		}
	}

	cleaned := strings.ReplaceAll(text, "mm", "")
	for _, q := range openEndedQualifiers {
		cleaned = strings.ReplaceAll(cleaned, q, "")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	// KMA forecasts bucket amounts as "30.0~50.0"; keep the lower bound.
	if lower, _, found := strings.Cut(cleaned, "~"); found {
		cleaned = lower
	}
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return nonNegative(v)
}

// parsePM converts a particulate reading into µg/m³. Providers send numbers,
// numeric strings, or "-" for a station that is offline.
func parsePM(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		text := strings.TrimSpace(x)
		if text == "" || text == "-" {
			return nil
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if !finite(f) || f < 0 {
		return nil
	}
	return &f
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
