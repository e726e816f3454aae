package radar

import (
	"testing"
	"time"
)

func TestClusterTriggersAtThreshold(t *testing.T) {
	rig := NewTestRig(DefaultParams())
	origin := GeoPoint{Lat: 5, Lng: 5}

	for i := 0; i < 3; i++ {
		rig.Send(AttackEvent{Origin: origin, Destination: GeoPoint{Lat: float64(20 + i), Lng: 20}, Severity: SeverityMedium})
		rig.Advance(70 * time.Millisecond)
	}
	if got := rig.Engine.Log().Count("effect", "cluster_warning"); got != 0 {
		t.Fatalf("cluster warning before the 4th event: %d", got)
	}

	rig.Send(AttackEvent{Origin: origin, Destination: GeoPoint{Lat: 30, Lng: 30}, Severity: SeverityMedium})
	if got := rig.Engine.Log().Count("effect", "cluster_warning"); got != 1 {
		t.Fatalf("4th event from one origin must trigger the cluster warning, got %d", got)
	}

	// The counter never decays, so every further event stays clustered.
	rig.Advance(70 * time.Millisecond)
	rig.Send(AttackEvent{Origin: origin, Destination: GeoPoint{Lat: 31, Lng: 31}, Severity: SeverityMedium})
	if got := rig.Engine.Log().Count("effect", "cluster_warning"); got != 2 {
		t.Errorf("5th event should warn again, got %d", got)
	}
}

func TestExactKeyMatching(t *testing.T) {
	rig := NewTestRig(DefaultParams())

	// Two near-identical origins are distinct keys: neither ever clusters.
	a := GeoPoint{Lat: 5, Lng: 5}
	b := GeoPoint{Lat: 5.0000001, Lng: 5}
	for i := 0; i < 3; i++ {
		rig.Send(AttackEvent{Origin: a, Destination: GeoPoint{Lat: 20, Lng: 20}, Severity: SeverityMedium})
		rig.Advance(70 * time.Millisecond)
		rig.Send(AttackEvent{Origin: b, Destination: GeoPoint{Lat: 20, Lng: 20}, Severity: SeverityMedium})
		rig.Advance(70 * time.Millisecond)
	}

	if got := rig.Engine.Log().Count("effect", "cluster_warning"); got != 0 {
		t.Errorf("proximity must not merge origin keys, got %d cluster warnings", got)
	}
	if got := rig.Engine.HeatCount(a); got != 3 {
		t.Errorf("heat(a)=%d, want 3", got)
	}
	if got := rig.Engine.HeatCount(b); got != 3 {
		t.Errorf("heat(b)=%d, want 3", got)
	}
}

func TestOriginIntensityCap(t *testing.T) {
	tr := newOriginTracker()
	p := GeoPoint{Lat: 1, Lng: 2}

	var last int
	for i := 0; i < 12; i++ {
		last = tr.recordOrigin(p, 8)
	}
	if last != 8 {
		t.Errorf("intensity must cap at 8, got %d", last)
	}
	if tr.intensity[p.Key()] != 12 {
		t.Errorf("underlying counter keeps growing, got %d", tr.intensity[p.Key()])
	}
}

func TestHeatNeverDecays(t *testing.T) {
	tr := newOriginTracker()
	p := GeoPoint{Lat: 1, Lng: 2}

	for i := 1; i <= 6; i++ {
		isCluster := tr.recordHeat(p, 4)
		if want := i >= 4; isCluster != want {
			t.Errorf("event %d: isCluster=%v, want %v", i, isCluster, want)
		}
	}
}
