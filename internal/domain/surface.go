package domain

// Surface tiers.
const (
	TierSurfaceDry          Tier = "surface_dry"
	TierSurfaceHeavySnow    Tier = "surface_heavy_snow"
	TierSurfaceLightSnow    Tier = "surface_light_snow"
	TierSurfaceSlightlyWet  Tier = "surface_slightly_wet"
	TierSurfaceWet          Tier = "surface_wet"
	TierSurfaceVeryWet      Tier = "surface_very_wet"
	TierSurfaceExtremelyWet Tier = "surface_extremely_wet"
)

// Wet badge levels. These strings are part of the published JSON contract.
const (
	BadgeGood = "good"
	BadgeWet  = "wet"
	BadgeBad  = "bad"
)

// WetBadge is the compact surface indicator shown next to a course.
type WetBadge struct {
	Level  string `json:"level"`
	TextKo string `json:"text_ko"`
	TextEn string `json:"text_en"`
}

// surfaceRule is one step of the surface decision list.
type surfaceRule struct {
	tier  Tier
	score int
	match func(p Precipitation) bool
}

// surfaceRules are evaluated in order; the first match wins. The final rule
// always matches.
var surfaceRules = []surfaceRule{
	{TierSurfaceDry, 100, func(p Precipitation) bool {
		return p.RecentPrecip == 0 && p.CurrentPrecip == 0
	}},
	{TierSurfaceHeavySnow, 0, func(p Precipitation) bool {
		return p.RecentSnow >= 6.0 || p.CurrentSnow >= 4.0
	}},
	{TierSurfaceLightSnow, 40, func(p Precipitation) bool {
		return p.RecentSnow >= 1.0 || p.CurrentSnow >= 0.5
	}},
	{TierSurfaceSlightlyWet, 80, func(p Precipitation) bool {
		return p.RecentPrecip < 2.0 && p.CurrentPrecip < 1.0
	}},
	{TierSurfaceWet, 50, func(p Precipitation) bool {
		return p.RecentRain < 10.0 || p.CurrentRain < 4.0
	}},
	{TierSurfaceVeryWet, 20, func(p Precipitation) bool {
		return p.RecentRain < 20.0 || p.CurrentRain < 8.0
	}},
	{TierSurfaceExtremelyWet, 0, func(Precipitation) bool { return true }},
}

var surfaceText = map[Tier]tierText{
	TierSurfaceDry: {
		tag: Text{Ko: "노면 건조", En: "Dry surface"},
		comment: Text{
			Ko: "노면이 건조해서 미끄럼 위험이 적습니다.",
			En: "Surface is dry with low risk of slipping.",
		},
	},
	TierSurfaceHeavySnow: {
		tag: Text{Ko: "눈 많이 쌓임", En: "Heavy snow"},
		comment: Text{
			Ko: "눈이 많이 쌓이거나 얼음 구간이 많아 매우 미끄럽습니다. 실외 러닝보다는 실내 러닝이나 휴식을 권장합니다.",
			En: "There is heavy snow or many icy sections, making it very slippery. Indoor running or rest is recommended instead of outdoor running.",
		},
	},
	TierSurfaceLightSnow: {
		tag: Text{Ko: "눈 조금 쌓임", En: "Some snow"},
		comment: Text{
			Ko: "노면에 눈이 조금 쌓이거나 녹은 물이 있어 미끄러울 수 있습니다. 가능하면 트레일 러닝화나 접지 좋은 러닝화를 착용해 주세요.",
			En: "Some snow or meltwater on the surface may cause slipperiness. Trail running shoes or shoes with good grip are recommended.",
		},
	},
	TierSurfaceSlightlyWet: {
		tag: Text{Ko: "살짝 젖음", En: "Slightly wet"},
		comment: Text{
			Ko: "노면이 살짝 젖어 있습니다. 코너링이나 브레이킹 시에만 미끄럼에 주의하면 러닝에 큰 지장은 없습니다.",
			En: "The surface is slightly wet. As long as you are careful when cornering or braking, running should be fine.",
		},
	},
	TierSurfaceWet: {
		tag: Text{Ko: "젖은 노면", En: "Wet surface"},
		comment: Text{
			Ko: "노면이 젖어 있어 미끄러운 구간이 있을 수 있습니다. 페이스를 약간 낮추고, 특히 내리막·코너 구간에서 발 조심해 주세요.",
			En: "The surface is wet, and some sections may be slippery. Slightly lower your pace and take extra care on downhills and corners.",
		},
	},
	TierSurfaceVeryWet: {
		tag: Text{Ko: "많이 젖음", En: "Very wet"},
		comment: Text{
			Ko: "비가 많이 내려 노면이 꽤 젖어 있고 물웅덩이가 많을 수 있습니다. 발이 쉽게 젖고 미끄러울 수 있으니 강도 높은 훈련은 피하는 것이 좋습니다.",
			En: "It has rained a lot, so the surface is very wet with many puddles. Your feet may get soaked and it can be slippery, so avoid high-intensity workouts.",
		},
	},
	TierSurfaceExtremelyWet: {
		tag: Text{Ko: "매우 젖음", En: "Extremely wet"},
		comment: Text{
			Ko: "폭우 수준의 비가 내리고 있어 노면 상태가 매우 좋지 않습니다. 실외 러닝보다는 실내 러닝이나 휴식을 권장합니다.",
			En: "Rain is at a heavy or torrential level, making the surface very poor. Indoor running or rest is recommended instead of outdoor running.",
		},
	},
}

var surfaceBadges = map[Tier]WetBadge{
	TierSurfaceDry:          {Level: BadgeGood, TextKo: "노면 건조", TextEn: "Dry surface"},
	TierSurfaceHeavySnow:    {Level: BadgeBad, TextKo: "눈 많이 쌓임", TextEn: "Heavy snow/ice"},
	TierSurfaceLightSnow:    {Level: BadgeBad, TextKo: "눈 조금 쌓임", TextEn: "Some snow on surface"},
	TierSurfaceSlightlyWet:  {Level: BadgeWet, TextKo: "살짝 젖음", TextEn: "Slightly wet"},
	TierSurfaceWet:          {Level: BadgeWet, TextKo: "젖은 노면", TextEn: "Wet surface"},
	TierSurfaceVeryWet:      {Level: BadgeBad, TextKo: "많이 젖음", TextEn: "Very wet"},
	TierSurfaceExtremelyWet: {Level: BadgeBad, TextKo: "매우 젖음", TextEn: "Extremely wet"},
}

// ClassifySurface scores footing from the current and trailing rain/snow split.
func ClassifySurface(p Precipitation) FactorResult {
	rule := surfaceRules[len(surfaceRules)-1]
	for _, r := range surfaceRules {
		if r.match(p) {
			rule = r
			break
		}
	}
	t := surfaceText[rule.tier]
	return FactorResult{
		Score:   rule.score,
		Tier:    rule.tier,
		Tag:     t.tag,
		Comment: t.comment,
		Present: true,
	}
}

// BadgeFor returns the wet badge of a surface tier.
func BadgeFor(tier Tier) WetBadge {
	return surfaceBadges[tier]
}
