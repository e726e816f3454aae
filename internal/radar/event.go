package radar

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Key returns the exact-value map key for this point. Two points are the
// same origin only if their coordinates match bit-for-bit; there is no
// proximity bucketing.
func (p GeoPoint) Key() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.Lat, p.Lng)
}

// lerp returns the point at fraction t along the straight segment p→q.
func lerp(p, q GeoPoint, t float64) GeoPoint {
	return GeoPoint{
		Lat: p.Lat + (q.Lat-p.Lat)*t,
		Lng: p.Lng + (q.Lng-p.Lng)*t,
	}
}

// Severity is the ordinal attack classification.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical

	severityCount = 4
)

// ParseSeverity maps a feed severity string to a Severity. Unknown values
// fall back to medium rather than erroring.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "medium"
	}
}

// Color returns the display colour for this severity tier.
func (s Severity) Color() color.RGBA {
	switch s {
	case SeverityLow:
		return color.RGBA{R: 0, G: 255, B: 255, A: 255} // cyan
	case SeverityHigh:
		return color.RGBA{R: 255, G: 85, B: 0, A: 255} // orange
	case SeverityCritical:
		return color.RGBA{R: 255, G: 0, B: 51, A: 255} // red
	default:
		return color.RGBA{R: 255, G: 170, B: 0, A: 255} // amber
	}
}

// AttackEvent is one attack observation handed to the engine. It is
// immutable once received.
type AttackEvent struct {
	Origin      GeoPoint
	Destination GeoPoint
	Severity    Severity
}

func (ev AttackEvent) String() string {
	return fmt.Sprintf("%s %s -> %s", ev.Severity, ev.Origin, ev.Destination)
}
