package radar

import (
	"testing"
	"time"
)

var testTime = time.Unix(1700000000, 0)

func TestPacketAdvancesByFixedStep(t *testing.T) {
	s := NewMemorySurface()
	arrived := false
	from := GeoPoint{Lat: 10, Lng: 10}
	to := GeoPoint{Lat: 20, Lng: 20}
	p := newPacketEffect(s, from, to, SeverityMedium, 0.02, func() { arrived = true })

	for i := 0; i < 25; i++ {
		if !p.advance(testTime) {
			t.Fatalf("packet finished early at tick %d", i+1)
		}
	}
	// Halfway: the marker sits at the midpoint.
	sh := s.Shapes[1]
	if sh == nil {
		t.Fatal("packet marker missing")
	}
	if sh.Position.Lat != 15 || sh.Position.Lng != 15 {
		t.Errorf("midpoint position %v, want (15,15)", sh.Position)
	}

	for i := 0; i < 24; i++ {
		if !p.advance(testTime) {
			t.Fatalf("packet finished early at tick %d", 26+i)
		}
	}
	if arrived {
		t.Fatal("arrival callback fired before progress reached 1")
	}
	if p.advance(testTime) {
		t.Fatal("packet should finish on tick 50")
	}
	if !arrived {
		t.Error("arrival callback did not fire")
	}
	if s.Live() != 0 {
		t.Errorf("packet marker not released: %s", s.Describe())
	}
}

func TestBeamCreatesGlowCoreAndSegments(t *testing.T) {
	s := NewMemorySurface()
	b := newBeamEffect(s, GeoPoint{Lat: 0, Lng: 0}, GeoPoint{Lat: 10, Lng: 10}, SeverityHigh, 14)

	if got := s.Count("line"); got != 16 {
		t.Fatalf("lines=%d, want 16 (glow + core + 14 segments)", got)
	}

	// Opacity fades monotonically until every handle is released.
	prev := 1.0
	for b.advance(testTime) {
		if b.life >= prev {
			t.Fatalf("beam life not decreasing: %v >= %v", b.life, prev)
		}
		prev = b.life
	}
	if s.Live() != 0 {
		t.Errorf("beam handles not released: %s", s.Describe())
	}
}

func TestImpactFlashRingGrowsAndFades(t *testing.T) {
	s := NewMemorySurface()
	f := newFlashEffect(s, GeoPoint{Lat: 20, Lng: 20}, SeverityCritical)

	if s.Count("marker") != 1 || s.Count("circle") != 1 {
		t.Fatalf("flash should hold a marker and a ring: %s", s.Describe())
	}

	var ring *MemShape
	for _, sh := range s.Shapes {
		if sh.Kind == "circle" {
			ring = sh
		}
	}
	startRadius := ring.Radius
	startOpacity := ring.Style.Opacity

	f.advance(testTime)
	if ring.Radius <= startRadius {
		t.Errorf("ring radius should grow: %v → %v", startRadius, ring.Radius)
	}
	if ring.Style.Opacity >= startOpacity {
		t.Errorf("ring opacity should decay: %v → %v", startOpacity, ring.Style.Opacity)
	}

	for f.advance(testTime) {
	}
	if s.Live() != 0 {
		t.Errorf("flash handles not released: %s", s.Describe())
	}
}

func TestClusterWarningExpiresAfterDeadline(t *testing.T) {
	s := NewMemorySurface()
	now := testTime
	c := newClusterEffect(s, GeoPoint{Lat: 5, Lng: 5}, now)

	if !c.advance(now.Add(2400 * time.Millisecond)) {
		t.Fatal("cluster warning expired before 2.5s")
	}
	if c.advance(now.Add(2500 * time.Millisecond)) {
		t.Fatal("cluster warning should expire at 2.5s")
	}
	if s.Live() != 0 {
		t.Errorf("cluster handles not released: %s", s.Describe())
	}
}

func TestAuraScalesWithIntensityAndFades(t *testing.T) {
	s := NewMemorySurface()
	dim := newAuraEffect(s, GeoPoint{Lat: 1, Lng: 1}, 1)
	bright := newAuraEffect(s, GeoPoint{Lat: 2, Lng: 2}, 8)

	if bright.opacity <= dim.opacity {
		t.Errorf("aura opacity should scale with intensity: %v vs %v", dim.opacity, bright.opacity)
	}

	ticks := 0
	for dim.advance(testTime) {
		ticks++
		if ticks > auraLifeTicks+1 {
			t.Fatal("aura never expired")
		}
	}
	bright.stop()
	if s.Live() != 0 {
		t.Errorf("aura handles not released: %s", s.Describe())
	}
}

func TestInterceptBeamTravelsThenFades(t *testing.T) {
	s := NewMemorySurface()
	ic := newInterceptEffect(s, GeoPoint{Lat: 20, Lng: 20}, GeoPoint{Lat: 30, Lng: 30})

	if s.Count("line") != 1 || s.Count("marker") != 1 {
		t.Fatalf("intercept should hold a guide line and a head: %s", s.Describe())
	}

	// Head travels outward and is released on landing.
	for s.Count("marker") == 1 {
		if !ic.advance(testTime) {
			t.Fatal("intercept finished while head was still travelling")
		}
	}
	if s.Count("line") != 1 {
		t.Fatal("guide line should outlive the head")
	}

	// Then the line fades and everything is gone.
	for ic.advance(testTime) {
	}
	if s.Live() != 0 {
		t.Errorf("intercept handles not released: %s", s.Describe())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := NewMemorySurface()
	f := newFlashEffect(s, GeoPoint{Lat: 1, Lng: 1}, SeverityLow)

	f.stop()
	removed := s.Removed
	f.stop()
	if s.Removed != removed {
		t.Error("second stop removed handles again")
	}
	if f.advance(testTime) {
		t.Error("stopped effect must report done")
	}
}
