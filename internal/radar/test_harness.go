package radar

import (
	"fmt"
	"time"
)

// TestRig is a headless engine harness used by tests and by the
// headless-report command. It drives the engine with a fake clock and
// records every surface, audio, and display interaction, so runs are fully
// deterministic and have no Ebiten dependency.
type TestRig struct {
	Engine  *Engine
	Surface *MemorySurface
	Sounds  *MemorySounds
	Display *MemoryDisplay

	now time.Time
}

// RigOption configures a TestRig during construction.
type RigOption func(*TestRig)

// WithStart sets the rig's initial clock value.
func WithStart(t time.Time) RigOption {
	return func(r *TestRig) { r.now = t }
}

// WithSoundError makes every Play call fail, for failure-isolation tests.
func WithSoundError(err error) RigOption {
	return func(r *TestRig) { r.Sounds.Err = err }
}

// NewTestRig constructs a rig with the given params and options.
func NewTestRig(params Params, opts ...RigOption) *TestRig {
	r := &TestRig{
		Surface: NewMemorySurface(),
		Sounds:  &MemorySounds{},
		Display: NewMemoryDisplay(),
		now:     time.Unix(1700000000, 0),
	}
	for _, o := range opts {
		o(r)
	}
	r.Engine = NewEngineWithParams(r.Surface, r.Sounds, r.Display, params)
	r.Engine.clock = func() time.Time { return r.now }
	return r
}

// Now returns the rig clock.
func (r *TestRig) Now() time.Time { return r.now }

// Advance moves the rig clock forward without ticking.
func (r *TestRig) Advance(d time.Duration) {
	r.now = r.now.Add(d)
}

// Tick runs one engine tick at the current clock.
func (r *TestRig) Tick() {
	r.Engine.Tick()
}

// TickFor runs n ticks, advancing the clock by dt before each.
func (r *TestRig) TickFor(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		r.Advance(dt)
		r.Engine.Tick()
	}
}

// Send hands one event to the engine at the current clock.
func (r *TestRig) Send(ev AttackEvent) {
	r.Engine.HandleAttackEvent(ev)
}

// SendSpaced sends each event gap apart, ticking once after each send.
func (r *TestRig) SendSpaced(evs []AttackEvent, gap time.Duration) {
	for _, ev := range evs {
		r.Engine.HandleAttackEvent(ev)
		r.Engine.Tick()
		r.Advance(gap)
	}
}

// --- Memory collaborators ---

// MemShape is one recorded shape on a MemorySurface.
type MemShape struct {
	Kind     string // line, circle, marker
	Points   []GeoPoint
	Center   GeoPoint
	Position GeoPoint
	Radius   float64
	Style    Style
}

// MemorySurface is a Surface that records shapes instead of drawing them.
type MemorySurface struct {
	Shapes  map[Handle]*MemShape
	next    Handle
	Created int
	Removed int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{Shapes: make(map[Handle]*MemShape)}
}

func (m *MemorySurface) add(sh *MemShape) Handle {
	m.next++
	m.Created++
	m.Shapes[m.next] = sh
	return m.next
}

func (m *MemorySurface) Line(points []GeoPoint, st Style) Handle {
	pts := make([]GeoPoint, len(points))
	copy(pts, points)
	return m.add(&MemShape{Kind: "line", Points: pts, Style: st})
}

func (m *MemorySurface) Circle(center GeoPoint, radius float64, st Style) Handle {
	return m.add(&MemShape{Kind: "circle", Center: center, Radius: radius, Style: st})
}

func (m *MemorySurface) Marker(at GeoPoint, st Style) Handle {
	return m.add(&MemShape{Kind: "marker", Center: at, Position: at, Style: st})
}

func (m *MemorySurface) SetStyle(h Handle, patch StylePatch) {
	if sh, ok := m.Shapes[h]; ok {
		patch.apply(&sh.Style)
	}
}

func (m *MemorySurface) SetPosition(h Handle, at GeoPoint) {
	if sh, ok := m.Shapes[h]; ok {
		sh.Position = at
	}
}

func (m *MemorySurface) SetRadius(h Handle, radius float64) {
	if sh, ok := m.Shapes[h]; ok {
		sh.Radius = radius
	}
}

func (m *MemorySurface) Remove(h Handle) {
	if _, ok := m.Shapes[h]; ok {
		delete(m.Shapes, h)
		m.Removed++
	}
}

// Live returns the number of shapes currently held.
func (m *MemorySurface) Live() int {
	return len(m.Shapes)
}

// Count returns the number of live shapes of the given kind.
func (m *MemorySurface) Count(kind string) int {
	n := 0
	for _, sh := range m.Shapes {
		if sh.Kind == kind {
			n++
		}
	}
	return n
}

// At returns the live shapes of the given kind centred on p.
func (m *MemorySurface) At(kind string, p GeoPoint) []*MemShape {
	var out []*MemShape
	for _, sh := range m.Shapes {
		if sh.Kind == kind && sh.Center == p {
			out = append(out, sh)
		}
	}
	return out
}

// MemorySounds records played clips; Err, when set, is returned from every
// Play call.
type MemorySounds struct {
	Played []Clip
	Err    error
}

func (m *MemorySounds) Play(c Clip) error {
	m.Played = append(m.Played, c)
	return m.Err
}

// CountClip returns how many times c was played.
func (m *MemorySounds) CountClip(c Clip) int {
	n := 0
	for _, p := range m.Played {
		if p == c {
			n++
		}
	}
	return n
}

// MemoryDisplay records the latest text per panel id.
type MemoryDisplay struct {
	Texts map[string]string
}

func NewMemoryDisplay() *MemoryDisplay {
	return &MemoryDisplay{Texts: make(map[string]string)}
}

func (m *MemoryDisplay) SetText(id, text string) {
	m.Texts[id] = text
}

// Get returns the current text for id, or "" if never set.
func (m *MemoryDisplay) Get(id string) string {
	return m.Texts[id]
}

// Describe is a debugging helper for test failures.
func (m *MemorySurface) Describe() string {
	return fmt.Sprintf("surface: live=%d created=%d removed=%d (lines=%d circles=%d markers=%d)",
		m.Live(), m.Created, m.Removed, m.Count("line"), m.Count("circle"), m.Count("marker"))
}
