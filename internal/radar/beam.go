package radar

import "time"

// --- Primary beam ---

// beamEffect is the origin→destination strike visual: a wide low-opacity
// glow stroke, a narrow bright core stroke, and a run of progressively more
// opaque sub-segments that convey direction. The whole bundle fades out by
// a fixed opacity step per tick.
type beamEffect struct {
	s     Surface
	parts []beamPart
	life  float64 // 1 → 0
	decay float64
	done  bool
}

type beamPart struct {
	h    Handle
	base float64 // opacity at life=1
}

func newBeamEffect(s Surface, from, to GeoPoint, sev Severity, segments int) *beamEffect {
	col := sev.Color()
	weight := float32(1.5)
	if sev == SeverityCritical {
		weight = 2.5
	}

	parts := make([]beamPart, 0, segments+2)
	glow := s.Line([]GeoPoint{from, to}, Style{
		Color:   col,
		Weight:  weight * 4,
		Opacity: beamGlowOpacity,
	})
	parts = append(parts, beamPart{h: glow, base: beamGlowOpacity})

	core := s.Line([]GeoPoint{from, to}, Style{
		Color:   col,
		Weight:  weight,
		Opacity: beamCoreOpacity,
	})
	parts = append(parts, beamPart{h: core, base: beamCoreOpacity})

	// Directional segments: opacity ramps up toward the destination.
	for i := 0; i < segments; i++ {
		a := lerp(from, to, float64(i)/float64(segments))
		b := lerp(from, to, float64(i+1)/float64(segments))
		op := beamCoreOpacity * float64(i+1) / float64(segments)
		seg := s.Line([]GeoPoint{a, b}, Style{
			Color:   col,
			Weight:  weight + 1,
			Opacity: op,
		})
		parts = append(parts, beamPart{h: seg, base: op})
	}

	return &beamEffect{s: s, parts: parts, life: 1, decay: beamLifeDecay}
}

func (b *beamEffect) advance(time.Time) bool {
	if b.done {
		return false
	}
	b.life -= b.decay
	if b.life <= 0 {
		b.stop()
		return false
	}
	for _, p := range b.parts {
		op := p.base * b.life
		b.s.SetStyle(p.h, StylePatch{Opacity: &op})
	}
	return true
}

func (b *beamEffect) stop() {
	if b.done {
		return
	}
	b.done = true
	for _, p := range b.parts {
		b.s.Remove(p.h)
	}
}

// --- Packet tracer ---

// packetEffect is a single marker advanced by a fixed progress step per
// tick, linearly interpolated origin→destination. On arrival the marker is
// removed and onArrive runs (the engine uses it to spawn the impact flash).
type packetEffect struct {
	s        Surface
	marker   Handle
	from, to GeoPoint
	progress float64
	step     float64
	onArrive func()
	done     bool
}

func newPacketEffect(s Surface, from, to GeoPoint, sev Severity, step float64, onArrive func()) *packetEffect {
	marker := s.Marker(from, Style{
		Color:   sev.Color(),
		Opacity: 1,
		Radius:  packetMarkerRadius,
	})
	return &packetEffect{
		s:        s,
		marker:   marker,
		from:     from,
		to:       to,
		step:     step,
		onArrive: onArrive,
	}
}

func (p *packetEffect) advance(time.Time) bool {
	if p.done {
		return false
	}
	p.progress += p.step
	if p.progress >= 1 {
		p.stop()
		if p.onArrive != nil {
			p.onArrive()
		}
		return false
	}
	p.s.SetPosition(p.marker, lerp(p.from, p.to, p.progress))
	return true
}

func (p *packetEffect) stop() {
	if p.done {
		return
	}
	p.done = true
	p.s.Remove(p.marker)
}

// --- Intercept beam ---

// interceptEffect is one defensive response beam from the shield anchor
// toward a recent target: a dim guide line with a bright head marker that
// travels outward, then the line fades and everything is released.
type interceptEffect struct {
	s        Surface
	line     Handle
	head     Handle
	from, to GeoPoint
	progress float64
	opacity  float64
	done     bool
}

func newInterceptEffect(s Surface, from, to GeoPoint) *interceptEffect {
	line := s.Line([]GeoPoint{from, to}, Style{
		Color:   interceptColor,
		Weight:  1.2,
		Opacity: interceptLineOpacity,
	})
	head := s.Marker(from, Style{
		Color:   interceptColor,
		Opacity: 1,
		Radius:  interceptHeadRadius,
	})
	return &interceptEffect{
		s:       s,
		line:    line,
		head:    head,
		from:    from,
		to:      to,
		opacity: interceptLineOpacity,
	}
}

func (ic *interceptEffect) advance(time.Time) bool {
	if ic.done {
		return false
	}
	if ic.progress < 1 {
		ic.progress += interceptStep
		if ic.progress >= 1 {
			ic.progress = 1
			ic.s.Remove(ic.head)
			ic.head = NoHandle
			return true
		}
		ic.s.SetPosition(ic.head, lerp(ic.from, ic.to, ic.progress))
		return true
	}
	// Head has landed; fade the guide line out.
	ic.opacity -= interceptLineFade
	if ic.opacity <= 0 {
		ic.stop()
		return false
	}
	ic.s.SetStyle(ic.line, StylePatch{Opacity: &ic.opacity})
	return true
}

func (ic *interceptEffect) stop() {
	if ic.done {
		return
	}
	ic.done = true
	if ic.head != NoHandle {
		ic.s.Remove(ic.head)
		ic.head = NoHandle
	}
	ic.s.Remove(ic.line)
}
