package domain

// Wind tiers, calm to gale.
const (
	TierWindCalm       Tier = "wind_calm"
	TierWindLight      Tier = "wind_light"
	TierWindModerate   Tier = "wind_moderate"
	TierWindStrong     Tier = "wind_strong"
	TierWindVeryStrong Tier = "wind_very_strong"
)

// windBands is monotone non-increasing in speed (m/s). Negative speeds land in
// the calm band.
var windBands = []band{
	{upper: 2, score: 100, tier: TierWindCalm},
	{upper: 4, score: 80, tier: TierWindLight},
	{upper: 6, score: 60, tier: TierWindModerate},
	{upper: 8, score: 40, tier: TierWindStrong},
	{upper: inf, inclusive: true, score: 25, tier: TierWindVeryStrong},
}

var windText = map[Tier]tierText{
	TierWindCalm: {
		tag: Text{Ko: "바람 거의 없음", En: "Calm"},
		comment: Text{
			Ko: "바람이 거의 없어 페이스 유지에 유리합니다.",
			En: "Almost no wind, good for maintaining your pace.",
		},
	},
	TierWindLight: {
		tag: Text{Ko: "약한 바람", En: "Light breeze"},
		comment: Text{
			Ko: "약한 바람으로 러닝에 큰 지장은 없습니다.",
			En: "Light breeze with little impact on running.",
		},
	},
	TierWindModerate: {
		tag: Text{Ko: "다소 강한 바람", En: "Moderate wind"},
		comment: Text{
			Ko: "바람이 다소 있어 체감온도가 조금 낮게 느껴질 수 있습니다.",
			En: "Moderate wind. It may feel a bit cooler than the actual temperature.",
		},
	},
	TierWindStrong: {
		tag: Text{Ko: "강한 바람", En: "Strong wind"},
		comment: Text{
			Ko: "바람이 강한 편입니다. 맞바람 구간에서는 페이스를 낮추는 것이 좋습니다.",
			En: "Strong wind. Lower your pace in headwind sections.",
		},
	},
	TierWindVeryStrong: {
		tag: Text{Ko: "매우 강한 바람", En: "Very strong wind"},
		comment: Text{
			Ko: "바람이 매우 강합니다. 체감온도가 크게 내려가고 피로가 빨리 쌓일 수 있습니다.",
			En: "Very strong wind. It feels much colder and fatigue may build up faster.",
		},
	},
}

// ClassifyWind scores a wind speed in m/s.
func ClassifyWind(speed float64) FactorResult {
	return resultFor(classify(windBands, speed), windText)
}
