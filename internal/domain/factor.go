package domain

import "math"

// Text is a pair of Korean and English strings.
type Text struct {
	Ko string `json:"ko"`
	En string `json:"en"`
}

// Tier identifies one band of a classifier. Tags and comments are looked up
// by tier so the thresholds exist once for both languages.
type Tier string

// FactorResult is the outcome of one classifier.
type FactorResult struct {
	Score   int
	Tier    Tier
	Tag     Text
	Comment Text
	// Present is false only for the neutral air result used when no sample
	// was available; such a result contributes no tag and no comment.
	Present bool
}

// band is one row of a classifier table. A value matches when it is below
// upper, or equal to it when inclusive is set.
type band struct {
	upper     float64
	inclusive bool
	score     int
	tier      Tier
}

func (b band) matches(v float64) bool {
	if b.inclusive {
		return v <= b.upper
	}
	return v < b.upper
}

// classify returns the first band matching v. Tables end with a +Inf band so
// every finite value matches.
func classify(bands []band, v float64) band {
	for _, b := range bands {
		if b.matches(v) {
			return b
		}
	}
	return bands[len(bands)-1]
}

// tierText holds the bilingual copy for one tier.
type tierText struct {
	tag     Text
	comment Text
}

func resultFor(b band, texts map[Tier]tierText) FactorResult {
	t := texts[b.tier]
	return FactorResult{
		Score:   b.score,
		Tier:    b.tier,
		Tag:     t.tag,
		Comment: t.comment,
		Present: true,
	}
}

var inf = math.Inf(1)
