package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// KST is the source timezone of every observation (UTC+9, no DST).
var KST = time.FixedZone("KST", 9*60*60)

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for processed_at and generated_at
// stamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time in KST from the package clock.
func Now() time.Time {
	return clock.Now().In(KST)
}
