package radar

import (
	"fmt"
	"strconv"
	"time"
)

// Params holds the engine's timing and threshold contracts. Cosmetic
// parameters (colors, radii, growth rates) live in constants.go instead.
type Params struct {
	DrawMinGap        time.Duration // global admission window between accepted events
	ImpactSoundMinGap time.Duration // critical impact cue rate limit
	GlobalPulseMinGap time.Duration // level-3 global pulse rate limit

	ClusterThreshold   int // heat count at which an origin is a cluster
	MaxOriginIntensity int // display cap on the origin intensity counter
	RecentTargetCap    int // ring buffer size for interception targets

	PacketStep   float64 // packet progress per tick (0.02 → 50 ticks end to end)
	BeamSegments int     // directional sub-segments per beam

	InterceptStagger time.Duration // per-target offset in the choreography

	ShieldRevertNormal   time.Duration // intensify revert delay
	ShieldRevertCritical time.Duration

	// PressureDecay optionally bleeds defense pressure between events.
	// Nil keeps pressure strictly monotonic.
	PressureDecay PressureDecayFunc
}

// DefaultParams returns the canonical engine tuning.
func DefaultParams() Params {
	return Params{
		DrawMinGap:           60 * time.Millisecond,
		ImpactSoundMinGap:    500 * time.Millisecond,
		GlobalPulseMinGap:    1500 * time.Millisecond,
		ClusterThreshold:     4,
		MaxOriginIntensity:   8,
		RecentTargetCap:      5,
		PacketStep:           0.02,
		BeamSegments:         14,
		InterceptStagger:     120 * time.Millisecond,
		ShieldRevertNormal:   700 * time.Millisecond,
		ShieldRevertCritical: 1400 * time.Millisecond,
	}
}

// responseDelay is the interception response delay keyed by the severity of
// the triggering event. Only critical events trigger the choreography
// today, but the table covers every tier.
func responseDelay(sev Severity) time.Duration {
	switch sev {
	case SeverityCritical:
		return 80 * time.Millisecond
	case SeverityHigh:
		return 160 * time.Millisecond
	case SeverityLow:
		return 340 * time.Millisecond
	default:
		return 260 * time.Millisecond
	}
}

// Engine ingests attack events and drives the effect choreography. All
// methods must be called from a single goroutine: the host loop calls Tick
// once per frame and HandleAttackEvent for each incoming event, so shared
// state needs no locking and the throttle's check-then-set is race-free.
type Engine struct {
	surface Surface
	sounds  Sounds
	display Display
	log     *EventLog
	params  Params

	clock func() time.Time

	sched   taskQueue
	effects []effect

	throttle   throttleClock
	origins    originTracker
	escalation escalationState
	targets    recentTargets
	stats      threatStats
	shield     *shieldDome

	attackCount int
	tick        int
}

// NewEngine creates an engine with the default tuning. sounds and display
// may be nil; audio and counter updates are then skipped.
func NewEngine(surface Surface, sounds Sounds, display Display) *Engine {
	return NewEngineWithParams(surface, sounds, display, DefaultParams())
}

// NewEngineWithParams creates an engine with explicit tuning.
func NewEngineWithParams(surface Surface, sounds Sounds, display Display, params Params) *Engine {
	return &Engine{
		surface:    surface,
		sounds:     sounds,
		display:    display,
		log:        NewEventLog(false),
		params:     params,
		clock:      time.Now,
		origins:    newOriginTracker(),
		escalation: newEscalationState(),
		targets:    newRecentTargets(params.RecentTargetCap),
		stats:      newThreatStats(),
	}
}

// Log exposes the structured engine log.
func (e *Engine) Log() *EventLog {
	return e.log
}

// HandleAttackEvent is the sole entry point. The throttle gate runs before
// any state mutation, so a rejected event changes nothing at all.
func (e *Engine) HandleAttackEvent(ev AttackEvent) {
	now := e.clock()

	if !e.throttle.allowDraw(now, e.params.DrawMinGap) {
		e.log.AddVerbose(e.tick, "event", "throttled", ev.String(), 0)
		return
	}

	if e.shield == nil {
		e.shield = newShieldDome(e.surface, ev.Destination)
		e.log.Add(e.tick, "shield", "created", ev.Destination.String(), 0)
	}

	e.attackCount++
	level, changed := e.escalation.bump(now, e.params.PressureDecay)
	if changed {
		e.log.Add(e.tick, "escalation", "level_change", strconv.Itoa(level), float64(level))
	}
	switch level {
	case 2:
		e.playClip(ClipAlarmLow)
	case 3:
		e.playClip(ClipAlarmHigh)
	}

	intensity := e.origins.recordOrigin(ev.Origin, e.params.MaxOriginIntensity)
	cluster := e.origins.recordHeat(ev.Origin, e.params.ClusterThreshold)

	e.spawn("origin_pulse", newRingEffect(e.surface, ev.Origin, Style{
		Color:   ev.Severity.Color(),
		Weight:  1.5 + float32(intensity)*0.2,
		Opacity: originPulseOpacity,
	}, originPulseStartRadius, originPulseGrowth, originPulseFade))
	e.spawn("origin_aura", newAuraEffect(e.surface, ev.Origin, intensity))
	if cluster {
		e.log.Add(e.tick, "heat", "cluster", ev.Origin.String(), float64(e.origins.heatCount(ev.Origin)))
		e.spawn("cluster_warning", newClusterEffect(e.surface, ev.Origin, now))
	}

	e.targets.push(ev.Destination)

	e.spawn("beam", newBeamEffect(e.surface, ev.Origin, ev.Destination, ev.Severity, e.params.BeamSegments))
	dest := ev.Destination
	sev := ev.Severity
	e.spawn("packet", newPacketEffect(e.surface, ev.Origin, ev.Destination, ev.Severity, e.params.PacketStep, func() {
		e.spawn("impact_flash", newFlashEffect(e.surface, dest, sev))
	}))

	if ev.Severity == SeverityCritical {
		e.handleCritical(ev, level, now)
	}

	e.log.Add(e.tick, "event", "accepted", ev.String(), float64(e.attackCount))
	e.stats.record(ev, now)
	e.publishCounters(ev)
}

// handleCritical runs the critical-severity escalation: impact visuals,
// dome intensification, tiered pulses, and the interception choreography.
func (e *Engine) handleCritical(ev AttackEvent, level int, now time.Time) {
	e.spawn("impact_flash", newFlashEffect(e.surface, ev.Destination, ev.Severity))
	e.spawn("shield_impact", newRingEffect(e.surface, e.shield.anchor, Style{
		Color:       shieldColor,
		Weight:      2,
		Opacity:     0.9,
		FillColor:   shieldColor,
		FillOpacity: 0.2,
	}, shieldMinRadius, shieldImpactGrowth, shieldImpactFade))

	revert := e.params.ShieldRevertNormal
	if ev.Severity == SeverityCritical {
		revert = e.params.ShieldRevertCritical
	}
	e.shield.intensify(ev.Severity, &e.sched, now, revert, func() {
		e.log.Add(e.tick, "shield", "reverted", "", 0)
	})
	e.log.Add(e.tick, "shield", "intensified", ev.Severity.String(), 0)

	if level >= 2 {
		e.spawn("orbital_pulse", newRingEffect(e.surface, e.shield.anchor, Style{
			Color:   orbitalColor,
			Weight:  1.5,
			Opacity: 0.7,
		}, orbitalStartRadius, orbitalGrowth, orbitalFade))
	}
	if level == 3 && e.throttle.allowGlobalPulse(now, e.params.GlobalPulseMinGap) {
		e.spawn("global_pulse", newRingEffect(e.surface, e.shield.anchor, Style{
			Color:   ev.Severity.Color(),
			Weight:  2.5,
			Opacity: 0.6,
		}, globalStartRadius, globalGrowth, globalFade))
	}

	if e.throttle.allowImpactSound(now, e.params.ImpactSoundMinGap) {
		e.playClip(ClipImpact)
	}

	e.scheduleInterception(ev.Severity, now)
}

// scheduleInterception arms the interception choreography after the
// severity-specific response delay. Targets are snapshotted when the delay
// fires, not when it is scheduled.
func (e *Engine) scheduleInterception(sev Severity, now time.Time) {
	delay := responseDelay(sev)
	e.log.Add(e.tick, "intercept", "scheduled", sev.String(), delay.Seconds()*1000)
	e.sched.after(now, delay, func() {
		if e.shield == nil {
			e.log.Add(e.tick, "intercept", "skipped", "no shield dome", 0)
			return
		}
		targets := e.targets.list()
		e.log.Add(e.tick, "intercept", "fired", fmt.Sprintf("%d targets", len(targets)), float64(len(targets)))
		e.playClip(ClipIntercept)
		anchor := e.shield.anchor
		fireTime := e.clock()
		for i, tgt := range targets {
			tgt := tgt
			e.sched.after(fireTime, time.Duration(i)*e.params.InterceptStagger, func() {
				if e.shield == nil {
					return
				}
				e.spawn("intercept_beam", newInterceptEffect(e.surface, anchor, tgt))
				e.log.Add(e.tick, "intercept", "beam", tgt.String(), 0)
			})
		}
	})
}

// Tick advances the engine one frame: due delayed tasks run first, then the
// shield idle pulse, then every live effect. Finished effects are reaped.
func (e *Engine) Tick() {
	e.tick++
	now := e.clock()

	e.sched.runDue(now)

	if e.shield != nil {
		e.shield.idleTick()
	}

	// Advance callbacks may spawn new effects (the packet's arrival flash);
	// those land on a fresh e.effects slice and start animating next tick,
	// so the compaction below never touches them.
	advancing := e.effects
	e.effects = nil
	live := advancing[:0]
	for _, fx := range advancing {
		if fx.advance(now) {
			live = append(live, fx)
		}
	}
	// Zero the reaped tail so finished effects can be collected.
	for i := len(live); i < len(advancing); i++ {
		advancing[i] = nil
	}
	e.effects = append(live, e.effects...)
}

// Reset tears the engine back to its initial state: all pending tasks are
// dropped, every live effect and the shield dome release their surface
// handles, and every counter returns to zero.
func (e *Engine) Reset() {
	e.sched.clear()
	for _, fx := range e.effects {
		fx.stop()
	}
	e.effects = nil
	if e.shield != nil {
		e.shield.remove()
		e.shield = nil
	}
	e.throttle = throttleClock{}
	e.origins.reset()
	e.escalation.reset()
	e.targets.reset()
	e.stats.reset()
	e.attackCount = 0
	e.log.Add(e.tick, "event", "reset", "", 0)
}

// spawn registers a new live effect.
func (e *Engine) spawn(name string, fx effect) {
	e.effects = append(e.effects, fx)
	e.log.Add(e.tick, "effect", name, "", 0)
}

// playClip plays an audio cue, swallowing playback failures: a broken audio
// backend degrades the show, it never blocks ingestion.
func (e *Engine) playClip(c Clip) {
	if e.sounds == nil {
		return
	}
	if err := e.sounds.Play(c); err != nil {
		e.log.AddVerbose(e.tick, "audio", "failed", fmt.Sprintf("%s: %v", c, err), 0)
		return
	}
	e.log.AddVerbose(e.tick, "audio", "play", c.String(), 0)
}

// publishCounters pushes the HUD analytics after an accepted event.
func (e *Engine) publishCounters(ev AttackEvent) {
	if e.display == nil {
		return
	}
	e.display.SetText("low", strconv.Itoa(e.stats.counts[SeverityLow]))
	e.display.SetText("med", strconv.Itoa(e.stats.counts[SeverityMedium]))
	e.display.SetText("high", strconv.Itoa(e.stats.counts[SeverityHigh]))
	e.display.SetText("crit", strconv.Itoa(e.stats.counts[SeverityCritical]))
	e.display.SetText("total", strconv.Itoa(e.attackCount))
	e.display.SetText("level", strconv.Itoa(e.escalation.level))
	e.display.SetText("pressure", strconv.Itoa(e.escalation.pressure))
	e.display.SetText("velocity", fmt.Sprintf("%d / min", e.stats.perMinute()))
	e.display.SetText("surge", strconv.Itoa(e.stats.surge))
	e.display.SetText("origins", e.stats.originsText(5))
	e.display.SetText("intel", ev.String())
}

// --- Read-side accessors (HUD, report, headless driver, tests) ---

// AttackCount returns the number of accepted events.
func (e *Engine) AttackCount() int { return e.attackCount }

// DefensePressure returns the cumulative pressure counter.
func (e *Engine) DefensePressure() int { return e.escalation.pressure }

// EscalationLevel returns the current 1..3 escalation level.
func (e *Engine) EscalationLevel() int { return e.escalation.level }

// RecentTargets returns the destination ring buffer, oldest first.
func (e *Engine) RecentTargets() []GeoPoint { return e.targets.list() }

// LiveEffects returns the number of effects still animating.
func (e *Engine) LiveEffects() int { return len(e.effects) }

// PendingTasks returns the number of delayed tasks not yet fired.
func (e *Engine) PendingTasks() int { return e.sched.pending() }

// ShieldAnchor returns the shield dome anchor, if the dome exists.
func (e *Engine) ShieldAnchor() (GeoPoint, bool) {
	if e.shield == nil {
		return GeoPoint{}, false
	}
	return e.shield.anchor, true
}

// HeatCount returns the raw heat counter for an origin.
func (e *Engine) HeatCount(p GeoPoint) int { return e.origins.heatCount(p) }

// SurgeLevel returns the 0..100 surge meter value.
func (e *Engine) SurgeLevel() int { return e.stats.surge }

// EventsPerMinute returns the trailing-window threat velocity.
func (e *Engine) EventsPerMinute() int { return e.stats.perMinute() }
