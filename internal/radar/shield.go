package radar

import "time"

// shieldDome is the singleton defensive perimeter, anchored at the
// destination of the first accepted event. It idles with a triangle-wave
// radius pulse and can be transiently intensified; a delayed task reverts
// the style to baseline. A later intensify supersedes any pending revert.
type shieldDome struct {
	s      Surface
	handle Handle
	anchor GeoPoint
	base   Style

	radius float64
	dir    float64

	revert TaskHandle
}

func newShieldDome(s Surface, anchor GeoPoint) *shieldDome {
	base := Style{
		Color:       shieldColor,
		Weight:      shieldBaseWeight,
		Opacity:     shieldBaseOpacity,
		FillColor:   shieldColor,
		FillOpacity: shieldBaseFill,
	}
	return &shieldDome{
		s:      s,
		handle: s.Circle(anchor, shieldMinRadius, base),
		anchor: anchor,
		base:   base,
		radius: shieldMinRadius,
		dir:    1,
	}
}

// idleTick advances the radius pulse one step, reversing at each bound.
func (d *shieldDome) idleTick() {
	d.radius += shieldPulseStep * d.dir
	if d.radius >= shieldMaxRadius {
		d.radius = shieldMaxRadius
		d.dir = -1
	} else if d.radius <= shieldMinRadius {
		d.radius = shieldMinRadius
		d.dir = 1
	}
	d.s.SetRadius(d.handle, d.radius)
}

// intensify boosts the dome style by a severity-dependent delta and
// schedules the revert to baseline. Any pending revert is cancelled first;
// since every revert restores the same baseline, last writer wins.
func (d *shieldDome) intensify(sev Severity, q *taskQueue, now time.Time, revertAfter time.Duration, onRevert func()) {
	boost := 0.25
	weight := d.base.Weight + 1
	if sev == SeverityCritical {
		boost = 0.4
		weight = d.base.Weight + 2.5
	}
	op := d.base.Opacity + boost
	if op > 1 {
		op = 1
	}
	fill := d.base.FillOpacity + boost*0.5
	d.s.SetStyle(d.handle, StylePatch{Opacity: &op, Weight: &weight, FillOpacity: &fill})

	if d.revert != 0 {
		q.cancel(d.revert)
	}
	d.revert = q.after(now, revertAfter, func() {
		d.revert = 0
		d.applyBaseline()
		if onRevert != nil {
			onRevert()
		}
	})
}

// applyBaseline restores the creation-time style.
func (d *shieldDome) applyBaseline() {
	op := d.base.Opacity
	weight := d.base.Weight
	fill := d.base.FillOpacity
	d.s.SetStyle(d.handle, StylePatch{Opacity: &op, Weight: &weight, FillOpacity: &fill})
}

// remove releases the dome's surface handle (engine reset only).
func (d *shieldDome) remove() {
	d.s.Remove(d.handle)
}
