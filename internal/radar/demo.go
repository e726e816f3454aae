package radar

import (
	"math/rand"
	"time"
)

// Demo is a synthetic attack generator for running the board without a
// live feed. Events come from a handful of weighted hotspots and mostly
// land near headquarters, with random spread and cadence.
type Demo struct {
	rng  *rand.Rand
	next time.Time
}

// hq is the default destination the demo clusters around.
var hq = GeoPoint{Lat: 41.59, Lng: -93.62}

// demoHotspots are the origin regions, roughly weighted by how often
// each shows up. Repeated entries raise the weight.
var demoHotspots = []GeoPoint{
	{Lat: 39.9, Lng: 116.4},
	{Lat: 39.9, Lng: 116.4},
	{Lat: 55.75, Lng: 37.62},
	{Lat: 55.75, Lng: 37.62},
	{Lat: 37.57, Lng: 126.98},
	{Lat: 52.52, Lng: 13.4},
	{Lat: -23.55, Lng: -46.63},
	{Lat: 28.61, Lng: 77.21},
	{Lat: 6.52, Lng: 3.37},
	{Lat: 40.71, Lng: -74.0},
}

func NewDemo(seed int64) *Demo {
	return &Demo{rng: rand.New(rand.NewSource(seed))}
}

func (d *Demo) jitter(p GeoPoint, spread float64) GeoPoint {
	return GeoPoint{
		Lat: p.Lat + (d.rng.Float64()-0.5)*spread,
		Lng: p.Lng + (d.rng.Float64()-0.5)*spread,
	}
}

func (d *Demo) severity() Severity {
	switch r := d.rng.Float64(); {
	case r < 0.40:
		return SeverityLow
	case r < 0.70:
		return SeverityMedium
	case r < 0.90:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// Poll returns the next synthetic event once its moment has arrived, or
// false until then. Call once per tick.
func (d *Demo) Poll(now time.Time) (AttackEvent, bool) {
	if d.next.IsZero() {
		d.next = now
	}
	if now.Before(d.next) {
		return AttackEvent{}, false
	}
	d.next = now.Add(time.Duration(150+d.rng.Intn(750)) * time.Millisecond)

	origin := d.jitter(demoHotspots[d.rng.Intn(len(demoHotspots))], 6)
	dest := d.jitter(hq, 2)
	// A slice of traffic goes after secondary targets instead.
	if d.rng.Float64() < 0.2 {
		dest = d.jitter(demoHotspots[d.rng.Intn(len(demoHotspots))], 8)
	}
	return AttackEvent{Origin: origin, Destination: dest, Severity: d.severity()}, true
}
