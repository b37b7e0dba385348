package domain

import "time"

// CourseSummary is the published record for one course. Field names are a
// wire contract shared with the web client; do not rename them.
type CourseSummary struct {
	ID     string  `json:"id"`
	NameKo string  `json:"name_ko"`
	NameEn string  `json:"name_en"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`

	UpdatedAt           time.Time `json:"updated_at"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparent_temperature"`
	WindSpeed           float64   `json:"wind_speed"` // m/s
	WindDirection       float64   `json:"wind_direction"`
	RainNow             float64   `json:"rain_now"`
	RecentRain3h        float64   `json:"recent_rain_3h"`
	WetBadge            WetBadge  `json:"wet_badge"`

	RunScore     int `json:"run_score"`
	TempScore    int `json:"temp_score"`
	WindScore    int `json:"wind_score"`
	WetScore     int `json:"wet_score"` // legacy alias of surface_score
	SurfaceScore int `json:"surface_score"`
	AirScore     int `json:"air_score"`

	TagsKo         []string `json:"tags_ko"`
	TagsEn         []string `json:"tags_en"`
	AdviceShortKo  string   `json:"advice_short_ko"`
	AdviceShortEn  string   `json:"advice_short_en"`
	AdviceDetailKo string   `json:"advice_detail_ko"`
	AdviceDetailEn string   `json:"advice_detail_en"`

	PM10 *float64 `json:"pm10"`
	PM25 *float64 `json:"pm25"`
	GPX  *string  `json:"gpx"`
}

// BuildSummary assembles the published record. route is echoed as given; the
// caller decides whether a route file exists.
func BuildSummary(c Course, r Reading, air *AirQualitySample, res CompositeResult, route *string) CourseSummary {
	p := r.Derive()

	var pm10, pm25 *float64
	if air != nil {
		pm10, pm25 = air.PM10, air.PM25
	}

	return CourseSummary{
		ID:     c.ID,
		NameKo: c.NameKo,
		NameEn: c.NameEn,
		Name:   c.NameKo,
		Lat:    c.Lat,
		Lon:    c.Lon,

		UpdatedAt:           r.Timestamp,
		Temperature:         *r.Temperature,
		ApparentTemperature: *r.ApparentTemperature,
		WindSpeed:           *r.WindSpeed,
		WindDirection:       r.WindDirection,
		RainNow:             p.CurrentRain,
		RecentRain3h:        p.RecentRain,
		WetBadge:            BadgeFor(res.Surface.Tier),

		RunScore:     res.RunScore,
		TempScore:    res.Temperature.Score,
		WindScore:    res.Wind.Score,
		WetScore:     res.Surface.Score,
		SurfaceScore: res.Surface.Score,
		AirScore:     res.Air.Score,

		TagsKo:         res.TagsKo,
		TagsEn:         res.TagsEn,
		AdviceShortKo:  res.Advisory.ShortKo,
		AdviceShortEn:  res.Advisory.ShortEn,
		AdviceDetailKo: res.Advisory.DetailKo,
		AdviceDetailEn: res.Advisory.DetailEn,

		PM10: pm10,
		PM25: pm25,
		GPX:  route,
	}
}

// EvaluateCourse scores a reading and assembles the summary in one step.
func EvaluateCourse(c Course, r Reading, air *AirQualitySample, route *string) (CourseSummary, CompositeResult, error) {
	res, err := Evaluate(r, air)
	if err != nil {
		return CourseSummary{}, CompositeResult{}, err
	}
	return BuildSummary(c, r, air, res, route), res, nil
}
