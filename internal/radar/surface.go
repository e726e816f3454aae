package radar

import "image/color"

// Handle identifies a shape owned by a Surface. Handles are opaque to the
// engine; zero is never a live handle.
type Handle int64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// Style is the full visual style of a shape at creation time.
type Style struct {
	Color       color.RGBA // stroke colour
	Weight      float32    // stroke width in pixels
	Opacity     float64    // stroke opacity 0..1
	FillColor   color.RGBA
	FillOpacity float64 // 0 = unfilled
	Radius      float32 // marker radius in pixels (markers only)
}

// StylePatch is a partial style mutation. Nil fields are left unchanged.
type StylePatch struct {
	Color       *color.RGBA
	Weight      *float32
	Opacity     *float64
	FillColor   *color.RGBA
	FillOpacity *float64
}

// apply writes the non-nil patch fields onto st.
func (p StylePatch) apply(st *Style) {
	if p.Color != nil {
		st.Color = *p.Color
	}
	if p.Weight != nil {
		st.Weight = *p.Weight
	}
	if p.Opacity != nil {
		st.Opacity = *p.Opacity
	}
	if p.FillColor != nil {
		st.FillColor = *p.FillColor
	}
	if p.FillOpacity != nil {
		st.FillOpacity = *p.FillOpacity
	}
}

// Surface is the geospatial rendering surface the engine draws on. Radii
// and line points are in geographic degrees; the implementation projects
// them however it likes. All methods are called from the engine's single
// goroutine.
type Surface interface {
	Line(points []GeoPoint, st Style) Handle
	Circle(center GeoPoint, radius float64, st Style) Handle
	Marker(at GeoPoint, st Style) Handle
	SetStyle(h Handle, patch StylePatch)
	SetPosition(h Handle, at GeoPoint)
	SetRadius(h Handle, radius float64)
	Remove(h Handle)
}

// Clip identifies a short audio cue.
type Clip int

const (
	ClipAlarmLow  Clip = iota // escalation level 2 tone
	ClipAlarmHigh             // escalation level 3 tone
	ClipImpact                // critical impact
	ClipIntercept             // interception launch
)

func (c Clip) String() string {
	switch c {
	case ClipAlarmLow:
		return "alarm_low"
	case ClipAlarmHigh:
		return "alarm_high"
	case ClipImpact:
		return "impact"
	case ClipIntercept:
		return "intercept"
	default:
		return "unknown"
	}
}

// Sounds plays short fire-and-forget audio cues. Playback failures are the
// player's to report and the engine's to ignore.
type Sounds interface {
	Play(c Clip) error
}

// Display is the on-screen counter/text sink. SetText overwrites the text
// for a panel element; repeated writes with the same value are harmless.
type Display interface {
	SetText(id, text string)
}
