package radar

import "time"

// PressureDecayFunc optionally decays defense pressure before each event is
// counted. It receives the current pressure and the time since the last
// accepted event and returns the adjusted pressure. The default engine
// leaves this nil, keeping pressure strictly monotonic.
type PressureDecayFunc func(pressure int, sinceLast time.Duration) int

// escalationState aggregates accepted-event pressure into the 1..3
// escalation level. The level is always recomputed from pressure, never
// adjusted independently.
type escalationState struct {
	pressure     int
	level        int
	lastAccepted time.Time
}

func newEscalationState() escalationState {
	return escalationState{level: 1}
}

// levelFor maps cumulative pressure to an escalation level.
func levelFor(pressure int) int {
	switch {
	case pressure > 12:
		return 3
	case pressure > 6:
		return 2
	default:
		return 1
	}
}

// bump counts one accepted event and recomputes the level. It returns the
// new level and whether it changed. decay, when non-nil, is applied to the
// stored pressure before the increment.
func (e *escalationState) bump(now time.Time, decay PressureDecayFunc) (level int, changed bool) {
	if decay != nil && !e.lastAccepted.IsZero() {
		p := decay(e.pressure, now.Sub(e.lastAccepted))
		if p >= 0 && p < e.pressure {
			e.pressure = p
		}
	}
	e.pressure++
	e.lastAccepted = now

	old := e.level
	e.level = levelFor(e.pressure)
	return e.level, e.level != old
}

func (e *escalationState) reset() {
	e.pressure = 0
	e.level = 1
	e.lastAccepted = time.Time{}
}
