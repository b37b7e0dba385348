package domain

// Temperature tiers, coldest to hottest.
const (
	TierTempDangerCold Tier = "temp_danger_cold"
	TierTempVeryCold   Tier = "temp_very_cold"
	TierTempCold       Tier = "temp_cold"
	TierTempChilly     Tier = "temp_chilly"
	TierTempCool       Tier = "temp_cool"
	TierTempOptimal    Tier = "temp_optimal"
	TierTempMild       Tier = "temp_mild"
	TierTempWarm       Tier = "temp_warm"
	TierTempVeryWarm   Tier = "temp_very_warm"
	TierTempHot        Tier = "temp_hot"
	TierTempQuiteHot   Tier = "temp_quite_hot"
	TierTempVeryHot    Tier = "temp_very_hot"
	TierTempDangerHot  Tier = "temp_danger_hot"
)

// Apparent temperature bounds of the safety cap.
const (
	DangerColdApparent = -15.0
	DangerHotApparent  = 33.0
)

// temperatureBands peaks at 5–12°C. Cold and heat both penalize.
var temperatureBands = []band{
	{upper: DangerColdApparent, inclusive: true, score: 5, tier: TierTempDangerCold},
	{upper: -10, score: 15, tier: TierTempVeryCold},
	{upper: -5, score: 30, tier: TierTempCold},
	{upper: 0, score: 45, tier: TierTempChilly},
	{upper: 5, score: 60, tier: TierTempCool},
	{upper: 12, score: 100, tier: TierTempOptimal},
	{upper: 18, score: 90, tier: TierTempMild},
	{upper: 22, score: 75, tier: TierTempWarm},
	{upper: 26, score: 55, tier: TierTempVeryWarm},
	{upper: 29, score: 40, tier: TierTempHot},
	{upper: 31, score: 25, tier: TierTempQuiteHot},
	{upper: DangerHotApparent, score: 10, tier: TierTempVeryHot},
	{upper: inf, inclusive: true, score: 0, tier: TierTempDangerHot},
}

var temperatureText = map[Tier]tierText{
	TierTempDangerCold: {
		tag: Text{Ko: "위험한 추움", En: "Very cold"},
		comment: Text{
			Ko: "매우 춥습니다. 노출 부위를 최소화하고 두꺼운 장갑, 모자, 넥워머 등 충분한 방한 장비가 필요합니다.",
			En: "It is extremely cold. Minimize exposed skin and wear warm gear such as gloves, hat, and neck warmer.",
		},
	},
	TierTempVeryCold: {
		tag: Text{Ko: "매우 추움", En: "Very cold"},
		comment: Text{
			Ko: "상당히 강한 한기입니다. 장시간 야외 러닝은 추천하지 않으며, 짧고 가벼운 러닝 위주로 가져가는 편이 안전합니다.",
			En: "Very cold. Long outdoor runs are not recommended; stick to shorter, lighter runs if you go out.",
		},
	},
	TierTempCold: {
		tag: Text{Ko: "추움", En: "Cold"},
		comment: Text{
			Ko: "꽤 춥습니다. 긴팔+긴바지에 방풍 자켓을 더해 주는 것이 좋습니다.",
			En: "It is quite cold. Long sleeves, tights, and a windproof jacket are recommended.",
		},
	},
	TierTempChilly: {
		tag: Text{Ko: "쌀쌀함", En: "Chilly"},
		comment: Text{
			Ko: "쌀쌀한 편입니다. 긴팔, 긴바지 또는 얇은 레이어링을 추천합니다.",
			En: "Chilly conditions. Long sleeves and tights or light layering are recommended.",
		},
	},
	TierTempCool: {
		tag: Text{Ko: "조금 쌀쌀함", En: "A bit chilly"},
		comment: Text{
			Ko: "조금 쌀쌀하지만 러닝하기 좋은 편입니다. 가벼운 레이어링이 잘 어울립니다.",
			En: "A bit chilly but good for running. Light layering works well.",
		},
	},
	TierTempOptimal: {
		tag: Text{Ko: "러닝 최적", En: "Optimal"},
		comment: Text{
			Ko: "러닝하기 최적의 온도입니다. 평소보다 페이스를 조금 올려도 부담이 적습니다.",
			En: "Perfect temperature for running. You can slightly increase your usual pace.",
		},
	},
	TierTempMild: {
		tag: Text{Ko: "적당함", En: "Comfortable"},
		comment: Text{
			Ko: "적당한 온도입니다. 평소 복장으로 무리 없이 러닝하기 좋습니다.",
			En: "Comfortable temperature. Your usual outfit should be fine for running.",
		},
	},
	TierTempWarm: {
		tag: Text{Ko: "다소 따뜻함", En: "Warm"},
		comment: Text{
			Ko: "다소 따뜻한 편입니다. 통풍 잘 되는 옷과 충분한 수분 섭취를 추천합니다.",
			En: "Slightly warm. Wear breathable clothes and make sure to hydrate.",
		},
	},
	TierTempVeryWarm: {
		tag: Text{Ko: "조금 더움", En: "Very warm"},
		comment: Text{
			Ko: "조금 더운 편입니다. 강도 높은 훈련보다는 적당한 강도의 러닝이 좋습니다.",
			En: "Slightly hot. Moderate intensity runs are better than hard workouts.",
		},
	},
	TierTempHot: {
		tag: Text{Ko: "더움", En: "Hot"},
		comment: Text{
			Ko: "더운 편입니다. 강도를 낮추고 자주 수분을 섭취하는 것이 좋습니다.",
			En: "Warm conditions. Lower your intensity and hydrate frequently.",
		},
	},
	TierTempQuiteHot: {
		tag: Text{Ko: "꽤 더움", En: "Quite hot"},
		comment: Text{
			Ko: "상당히 덥습니다. 장거리나 고강도 러닝은 피하고, 그늘 위주 코스를 추천합니다.",
			En: "It is quite hot. Avoid long or high-intensity runs and seek shaded routes.",
		},
	},
	TierTempVeryHot: {
		tag: Text{Ko: "매우 더움", En: "Very hot"},
		comment: Text{
			Ko: "매우 덥습니다. 짧고 가벼운 러닝이 아니면 실외 러닝을 피하는 편이 안전합니다.",
			En: "Very hot. Unless it is a short and easy run, it is safer to avoid outdoor running.",
		},
	},
	TierTempDangerHot: {
		tag: Text{Ko: "위험한 더움", En: "Extremely hot"},
		comment: Text{
			Ko: "위험할 정도로 덥습니다. 실외 러닝은 권장하지 않으며, 실내 운동이나 휴식을 추천합니다.",
			En: "Dangerously hot. Outdoor running is not recommended; consider indoor exercise or rest.",
		},
	},
}

// ClassifyTemperature scores an apparent temperature in °C.
func ClassifyTemperature(apparent float64) FactorResult {
	return resultFor(classify(temperatureBands, apparent), temperatureText)
}

// dangerousTemperature reports whether the apparent temperature triggers the
// safety cap on its own.
func dangerousTemperature(apparent float64) bool {
	return apparent <= DangerColdApparent || apparent >= DangerHotApparent
}
