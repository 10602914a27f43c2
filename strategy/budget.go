package strategy

import "time"

// plentyOfTimeThreshold is in minutes-equivalent units: clock minutes plus
// increment seconds.
const plentyOfTimeThreshold = 10.0

// TimeBudget is the remaining clock state for a decision. It is a read-only
// input; fields left at zero count as zero. Negative values are not
// validated and propagate arithmetically.
type TimeBudget struct {
	// Total, when nonzero, is a fixed time for the move and takes
	// precedence over the per-color clocks.
	Total time.Duration

	WhiteClock time.Duration
	WhiteInc   time.Duration
	BlackClock time.Duration
	BlackInc   time.Duration
}

// Remaining returns the clock and increment for the side to move.
func (t TimeBudget) Remaining(whiteToMove bool) (clock, inc time.Duration) {
	if t.Total != 0 {
		return t.Total, 0
	}
	if whiteToMove {
		return t.WhiteClock, t.WhiteInc
	}
	return t.BlackClock, t.BlackInc
}

// PlentyOfTime reports whether the clock justifies a full search. The
// inequality is strict: exactly at the threshold counts as low on time.
func PlentyOfTime(clock, inc time.Duration) bool {
	return clock.Minutes()+inc.Seconds() > plentyOfTimeThreshold
}
