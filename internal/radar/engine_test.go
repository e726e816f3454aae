package radar

import (
	"errors"
	"testing"
	"time"
)

func TestScenarioSingleMediumEvent(t *testing.T) {
	rig := NewTestRig(DefaultParams())
	dest := GeoPoint{Lat: 20, Lng: 20}

	rig.Send(AttackEvent{Origin: GeoPoint{Lat: 10, Lng: 10}, Destination: dest, Severity: SeverityMedium})

	if got := rig.Engine.AttackCount(); got != 1 {
		t.Fatalf("attackCount=%d, want 1", got)
	}
	if got := rig.Engine.EscalationLevel(); got != 1 {
		t.Fatalf("level=%d, want 1", got)
	}

	// The packet advances 0.02 per tick: alive through tick 49, arriving on
	// tick 50, which spawns the impact flash at the destination.
	rig.TickFor(49, 16*time.Millisecond)
	if got := rig.Engine.Log().Count("effect", "impact_flash"); got != 0 {
		t.Fatalf("impact flash before packet arrival: %d", got)
	}

	rig.TickFor(1, 16*time.Millisecond)
	if got := rig.Engine.Log().Count("effect", "impact_flash"); got != 1 {
		t.Fatalf("impact flash after 50 ticks: %d, want 1", got)
	}
	if got := len(rig.Surface.At("marker", dest)); got == 0 {
		t.Error("impact flash marker should sit at the destination")
	}
}

func TestImpactFlashAnimatesAndReleasesHandles(t *testing.T) {
	rig := NewTestRig(DefaultParams())
	dest := GeoPoint{Lat: 20, Lng: 20}

	rig.Send(AttackEvent{Origin: GeoPoint{Lat: 10, Lng: 10}, Destination: dest, Severity: SeverityMedium})

	// 400 ticks outlives every effect this event spawns, including the
	// flash the packet spawns mid-tick on arrival. It must keep advancing
	// after the tick that spawned it, fade out, and release its marker and
	// ring; only the shield dome holds a surface handle afterwards.
	rig.TickFor(400, 16*time.Millisecond)

	if got := rig.Engine.LiveEffects(); got != 0 {
		t.Fatalf("live effects=%d, want 0", got)
	}
	if got := rig.Surface.Live(); got != 1 {
		t.Fatalf("live shapes=%d, want 1 (dome only); %s", got, rig.Surface.Describe())
	}
	if got := len(rig.Surface.At("marker", dest)); got != 0 {
		t.Errorf("flash marker still at destination after fade, count=%d", got)
	}
}

func TestScenarioCriticalStorm(t *testing.T) {
	rig := NewTestRig(DefaultParams())

	for i := 0; i < 13; i++ {
		rig.Send(criticalEvent(5, 5, 20, 20))
		rig.Advance(70 * time.Millisecond)
	}

	if got := rig.Engine.DefensePressure(); got != 13 {
		t.Fatalf("pressure=%d, want 13", got)
	}
	if got := rig.Engine.EscalationLevel(); got != 3 {
		t.Fatalf("level=%d, want 3", got)
	}

	// Level 3 is first reached on the 13th event, so exactly one global
	// pulse has fired so far.
	if got := rig.Engine.Log().Count("effect", "global_pulse"); got != 1 {
		t.Fatalf("global pulses=%d, want 1", got)
	}

	// Keep the storm going: every following critical qualifies, but the
	// pulse stays limited to one per 1.5s window.
	for i := 0; i < 27; i++ {
		rig.Send(criticalEvent(5, 5, 20, 20))
		rig.Advance(70 * time.Millisecond)
	}
	// 27 more events span 1.89s; at most one more window opens.
	if got := rig.Engine.Log().Count("effect", "global_pulse"); got != 2 {
		t.Errorf("global pulses=%d, want 2 (one per 1.5s window)", got)
	}
}

func TestScenarioRapidPairSecondIgnored(t *testing.T) {
	rig := NewTestRig(DefaultParams())

	rig.Send(mediumEvent(10, 10, 20, 20))
	created := rig.Surface.Created
	rig.Advance(10 * time.Millisecond)
	rig.Send(criticalEvent(30, 30, 40, 40))

	if got := rig.Engine.AttackCount(); got != 1 {
		t.Errorf("attackCount=%d, want 1", got)
	}
	if rig.Surface.Created != created {
		t.Errorf("rejected event spawned shapes: %d → %d", created, rig.Surface.Created)
	}
	if got := rig.Engine.PendingTasks(); got != 0 {
		t.Errorf("rejected critical must not schedule tasks, pending=%d", got)
	}
}

func TestUnknownSeverityFallsBackToMedium(t *testing.T) {
	cases := map[string]Severity{
		"low":      SeverityLow,
		"MEDIUM":   SeverityMedium,
		" high ":   SeverityHigh,
		"CRITICAL": SeverityCritical,
		"weird":    SeverityMedium,
		"":         SeverityMedium,
	}
	for in, want := range cases {
		if got := ParseSeverity(in); got != want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAudioFailureDoesNotBlockVisuals(t *testing.T) {
	rig := NewTestRig(DefaultParams(), WithSoundError(errors.New("no device")))

	for i := 0; i < 8; i++ {
		rig.Send(criticalEvent(float64(i), 0, 20, 20))
		rig.Advance(70 * time.Millisecond)
	}

	if got := rig.Engine.AttackCount(); got != 8 {
		t.Fatalf("attackCount=%d, want 8: audio failure must not stop ingestion", got)
	}
	if rig.Surface.Created == 0 {
		t.Error("visual effects should still spawn with a dead audio backend")
	}
}

func TestNilSoundsAndDisplayAreAccepted(t *testing.T) {
	e := NewEngine(NewMemorySurface(), nil, nil)
	e.HandleAttackEvent(criticalEvent(1, 1, 2, 2))
	e.Tick()

	if got := e.AttackCount(); got != 1 {
		t.Errorf("attackCount=%d, want 1", got)
	}
}

func TestCountersPublishedToDisplay(t *testing.T) {
	rig := NewTestRig(DefaultParams())

	rig.Send(criticalEvent(5, 5, 20, 20))
	rig.Advance(70 * time.Millisecond)
	rig.Send(mediumEvent(6, 6, 20, 20))

	if got := rig.Display.Get("crit"); got != "1" {
		t.Errorf("crit=%q, want 1", got)
	}
	if got := rig.Display.Get("med"); got != "1" {
		t.Errorf("med=%q, want 1", got)
	}
	if got := rig.Display.Get("total"); got != "2" {
		t.Errorf("total=%q, want 2", got)
	}
	if got := rig.Display.Get("velocity"); got != "2 / min" {
		t.Errorf("velocity=%q, want %q", got, "2 / min")
	}
	// One critical (+20), one other (−2).
	if got := rig.Display.Get("surge"); got != "18" {
		t.Errorf("surge=%q, want 18", got)
	}
}

func TestResetReturnsEngineToInitialState(t *testing.T) {
	rig := NewTestRig(DefaultParams())

	for i := 0; i < 6; i++ {
		rig.Send(criticalEvent(float64(i), 0, 20, 20))
		rig.TickFor(2, 16*time.Millisecond)
		rig.Advance(70 * time.Millisecond)
	}
	if rig.Surface.Live() == 0 {
		t.Fatal("expected live shapes before reset")
	}

	rig.Engine.Reset()

	if rig.Surface.Live() != 0 {
		t.Errorf("reset must release all handles, %s", rig.Surface.Describe())
	}
	if rig.Engine.AttackCount() != 0 || rig.Engine.DefensePressure() != 0 {
		t.Errorf("counters survive reset: attacks=%d pressure=%d",
			rig.Engine.AttackCount(), rig.Engine.DefensePressure())
	}
	if rig.Engine.EscalationLevel() != 1 {
		t.Errorf("level=%d, want 1", rig.Engine.EscalationLevel())
	}
	if _, ok := rig.Engine.ShieldAnchor(); ok {
		t.Error("dome survives reset")
	}

	// The engine accepts fresh traffic after a reset, recreating the dome.
	rig.Advance(70 * time.Millisecond)
	rig.Send(mediumEvent(1, 1, 30, 30))
	if anchor, ok := rig.Engine.ShieldAnchor(); !ok || anchor.Lat != 30 {
		t.Errorf("dome should be recreated at the new first destination, got %v ok=%v", anchor, ok)
	}
}
