package radar

import "time"

// effect is a transient self-owned animation. advance is called once per
// engine tick and returns false when the effect has finished; a finished
// effect has already released its surface handles. stop releases the
// handles early (engine reset) and is idempotent.
type effect interface {
	advance(now time.Time) bool
	stop()
}

// --- Expanding ring ---

// ringEffect is an expanding, fading ring: radius grows by a fixed
// increment and stroke/fill opacity decay by a fixed step each tick until
// the stroke reaches zero.
type ringEffect struct {
	s         Surface
	ring      Handle
	radius    float64
	growth    float64
	opacity   float64
	fillRatio float64 // fill opacity as a fraction of stroke opacity
	fade      float64
	done      bool
}

func newRingEffect(s Surface, at GeoPoint, st Style, startRadius, growth, fade float64) *ringEffect {
	ratio := 0.0
	if st.Opacity > 0 {
		ratio = st.FillOpacity / st.Opacity
	}
	return &ringEffect{
		s:         s,
		ring:      s.Circle(at, startRadius, st),
		radius:    startRadius,
		growth:    growth,
		opacity:   st.Opacity,
		fillRatio: ratio,
		fade:      fade,
	}
}

func (r *ringEffect) advance(time.Time) bool {
	if r.done {
		return false
	}
	r.radius += r.growth
	r.opacity -= r.fade
	if r.opacity <= 0 {
		r.stop()
		return false
	}
	fill := r.opacity * r.fillRatio
	r.s.SetRadius(r.ring, r.radius)
	r.s.SetStyle(r.ring, StylePatch{Opacity: &r.opacity, FillOpacity: &fill})
	return true
}

func (r *ringEffect) stop() {
	if r.done {
		return
	}
	r.done = true
	r.s.Remove(r.ring)
}

// --- Impact flash ---

// flashEffect is an impact flash: a marker plus an expanding fading ring.
// Both shapes are released together when the ring opacity runs out.
type flashEffect struct {
	ring   *ringEffect
	s      Surface
	marker Handle
	done   bool
}

func newFlashEffect(s Surface, at GeoPoint, sev Severity) *flashEffect {
	col := sev.Color()
	marker := s.Marker(at, Style{
		Color:   col,
		Opacity: 0.95,
		Radius:  flashMarkerRadius,
	})
	ring := newRingEffect(s, at, Style{
		Color:       col,
		Weight:      1.5,
		Opacity:     0.85,
		FillColor:   col,
		FillOpacity: 0.25,
	}, flashRingStartRadius, flashRingGrowth, flashRingFade)
	return &flashEffect{ring: ring, s: s, marker: marker}
}

func (f *flashEffect) advance(now time.Time) bool {
	if f.done {
		return false
	}
	if !f.ring.advance(now) {
		f.stop()
		return false
	}
	return true
}

func (f *flashEffect) stop() {
	if f.done {
		return
	}
	f.done = true
	f.ring.stop()
	f.s.Remove(f.marker)
}

// --- Origin aura ---

// auraEffect is the translucent disc around a hot origin. Its opacity
// scales with the capped origin intensity and fades linearly over a fixed
// number of ticks; the underlying counter never decays.
type auraEffect struct {
	s       Surface
	disc    Handle
	opacity float64
	step    float64
	done    bool
}

func newAuraEffect(s Surface, at GeoPoint, intensity int) *auraEffect {
	op := auraBaseOpacity + auraOpacityPerHit*float64(intensity)
	radius := auraBaseRadius + auraRadiusPerHit*float64(intensity)
	disc := s.Circle(at, radius, Style{
		Color:       auraColor,
		Weight:      1,
		Opacity:     op,
		FillColor:   auraColor,
		FillOpacity: op * 0.5,
	})
	return &auraEffect{
		s:       s,
		disc:    disc,
		opacity: op,
		step:    op / float64(auraLifeTicks),
	}
}

func (a *auraEffect) advance(time.Time) bool {
	if a.done {
		return false
	}
	a.opacity -= a.step
	if a.opacity <= 0 {
		a.stop()
		return false
	}
	fill := a.opacity * 0.5
	a.s.SetStyle(a.disc, StylePatch{Opacity: &a.opacity, FillOpacity: &fill})
	return true
}

func (a *auraEffect) stop() {
	if a.done {
		return
	}
	a.done = true
	a.s.Remove(a.disc)
}

// --- Cluster warning ---

// clusterEffect marks an origin that crossed the heat threshold: a marker
// inside a slowly breathing ring, removed wholesale once its deadline
// passes.
type clusterEffect struct {
	s        Surface
	marker   Handle
	ring     Handle
	radius   float64
	dir      float64
	deadline time.Time
	done     bool
}

func newClusterEffect(s Surface, at GeoPoint, now time.Time) *clusterEffect {
	col := clusterColor
	marker := s.Marker(at, Style{Color: col, Opacity: 1, Radius: clusterMarkerRadius})
	ring := s.Circle(at, clusterRingRadius, Style{
		Color:   col,
		Weight:  2,
		Opacity: 0.9,
	})
	return &clusterEffect{
		s:        s,
		marker:   marker,
		ring:     ring,
		radius:   clusterRingRadius,
		dir:      1,
		deadline: now.Add(clusterWarningLife),
	}
}

func (c *clusterEffect) advance(now time.Time) bool {
	if c.done {
		return false
	}
	if !now.Before(c.deadline) {
		c.stop()
		return false
	}
	c.radius += clusterRingBreath * c.dir
	if c.radius >= clusterRingRadius*1.4 || c.radius <= clusterRingRadius {
		c.dir = -c.dir
	}
	c.s.SetRadius(c.ring, c.radius)
	return true
}

func (c *clusterEffect) stop() {
	if c.done {
		return
	}
	c.done = true
	c.s.Remove(c.marker)
	c.s.Remove(c.ring)
}
