package play

import "time"

// Remaining returns the whole seconds left of a limitSec countdown started at
// startedAt, sampled at now. It is derived from the wall-clock delta only, so
// it can be sampled at any cadence without drift. The result is clamped to
// [0, limitSec]; a clock that moved backwards reads as the full limit.
func Remaining(limitSec int, startedAt, now time.Time) int {
	if limitSec <= 0 {
		return 0
	}
	elapsed := int(now.Sub(startedAt) / time.Second)
	left := limitSec - elapsed
	if left < 0 {
		return 0
	}
	if left > limitSec {
		return limitSec
	}
	return left
}
