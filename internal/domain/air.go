package domain

// Air quality tiers.
const (
	TierAirDefault Tier = "air_default"
	TierAirGood    Tier = "air_good"
	TierAirFair    Tier = "air_moderate"
	TierAirBad     Tier = "air_bad"
	TierAirVeryBad Tier = "air_very_bad"

	// tierAirBadPM10 shares the bad tier's tag but carries PM10-specific advice.
	tierAirBadPM10 Tier = "air_bad_pm10"
)

// DefaultAirScore is used when no particulate reading is available.
const DefaultAirScore = 90

var pm25Bands = []band{
	{upper: 15, inclusive: true, score: 100, tier: TierAirGood},
	{upper: 35, inclusive: true, score: 80, tier: TierAirFair},
	{upper: 75, inclusive: true, score: 55, tier: TierAirBad},
	{upper: inf, inclusive: true, score: 30, tier: TierAirVeryBad},
}

var pm10Bands = []band{
	{upper: 30, inclusive: true, score: 100, tier: TierAirGood},
	{upper: 80, inclusive: true, score: 80, tier: TierAirFair},
	{upper: 150, inclusive: true, score: 55, tier: tierAirBadPM10},
	{upper: inf, inclusive: true, score: 30, tier: TierAirVeryBad},
}

var airText = map[Tier]tierText{
	TierAirGood: {
		tag: Text{Ko: "공기질 좋음", En: "Good air"},
		comment: Text{
			Ko: "공기질이 좋아 러닝에 거의 지장이 없습니다.",
			En: "Air quality is good with little impact on running.",
		},
	},
	TierAirFair: {
		tag: Text{Ko: "공기질 보통", En: "Moderate air"},
		comment: Text{
			Ko: "공기질이 보통 수준입니다. 미세먼지에 민감하다면 마스크를 고려해도 좋습니다.",
			En: "Air quality is moderate. Consider a mask if you are sensitive to fine dust.",
		},
	},
	TierAirBad: {
		tag: Text{Ko: "공기질 나쁨", En: "Bad air"},
		comment: Text{
			Ko: "공기질이 좋지 않습니다. 호흡기·심혈관 질환이 있다면 강한 야외 러닝은 피하는 것이 좋습니다.",
			En: "Air quality is poor. If you have respiratory or heart issues, avoid intense outdoor running.",
		},
	},
	tierAirBadPM10: {
		tag: Text{Ko: "공기질 나쁨", En: "Bad air"},
		comment: Text{
			Ko: "공기질이 좋지 않습니다. 장시간·고강도 야외 러닝은 피하는 것이 좋습니다.",
			En: "Air quality is poor. Avoid long or intense outdoor runs.",
		},
	},
	TierAirVeryBad: {
		tag: Text{Ko: "공기질 매우 나쁨", En: "Very bad air"},
		comment: Text{
			Ko: "공기질이 매우 나쁩니다. 가능하면 실외 러닝 대신 실내 운동이나 휴식을 권장합니다.",
			En: "Air quality is very poor. Indoor exercise or rest is recommended instead of outdoor running.",
		},
	},
}

// ClassifyAir scores particulate levels. PM2.5 always wins over PM10; with
// neither available the neutral default is returned with Present unset.
func ClassifyAir(sample *AirQualitySample) FactorResult {
	switch {
	case sample.Empty():
		return FactorResult{Score: DefaultAirScore, Tier: TierAirDefault}
	case sample.PM25 != nil:
		return resultFor(classify(pm25Bands, *sample.PM25), airText)
	default:
		r := resultFor(classify(pm10Bands, *sample.PM10), airText)
		if r.Tier == tierAirBadPM10 {
			r.Tier = TierAirBad
		}
		return r
	}
}
