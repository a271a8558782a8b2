package engine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via
// SetClock. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for lead-time derivation. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// TimeToImpactHours derives the defense lead time from a close-approach
// timestamp. Approaches in the past yield zero lead time.
func TimeToImpactHours(closeApproach time.Time) float64 {
	d := closeApproach.Sub(clock.Now())
	if d < 0 {
		return 0
	}
	return d.Hours()
}
