package radar

import "time"

// throttleClock holds the independent rate-limiter timestamps. Each gate is
// check-then-set: a passing call consumes the window immediately, so the
// decision and the timestamp update cannot be split by another event.
type throttleClock struct {
	lastDraw        time.Time
	lastImpactSound time.Time
	lastGlobalPulse time.Time
}

// allowDraw is the global admission gate. Any event arriving less than
// minGap after the last accepted event is rejected outright.
func (t *throttleClock) allowDraw(now time.Time, minGap time.Duration) bool {
	if !t.lastDraw.IsZero() && now.Sub(t.lastDraw) < minGap {
		return false
	}
	t.lastDraw = now
	return true
}

// allowImpactSound rate-limits the critical impact cue.
func (t *throttleClock) allowImpactSound(now time.Time, minGap time.Duration) bool {
	if !t.lastImpactSound.IsZero() && now.Sub(t.lastImpactSound) < minGap {
		return false
	}
	t.lastImpactSound = now
	return true
}

// allowGlobalPulse rate-limits the level-3 global pulse, independently of
// the other gates.
func (t *throttleClock) allowGlobalPulse(now time.Time, minGap time.Duration) bool {
	if !t.lastGlobalPulse.IsZero() && now.Sub(t.lastGlobalPulse) < minGap {
		return false
	}
	t.lastGlobalPulse = now
	return true
}
