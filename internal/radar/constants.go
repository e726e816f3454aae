package radar

import (
	"image/color"
	"time"
)

// Cosmetic effect parameters. These shape the choreography but carry no
// correctness weight; the timing and sequencing contracts live in Params.

// Origin pulse: expanding ring at the attack origin, 1.2–2.0s visual fade.
const (
	originPulseStartRadius = 0.6 // degrees
	originPulseGrowth      = 0.09
	originPulseFade        = 0.011
	originPulseOpacity     = 0.9
)

// Origin aura disc, scaled by capped intensity.
const (
	auraBaseRadius    = 1.0
	auraRadiusPerHit  = 0.35
	auraBaseOpacity   = 0.12
	auraOpacityPerHit = 0.05
	auraLifeTicks     = 90
)

var auraColor = color.RGBA{R: 255, G: 120, B: 40, A: 255}

// Cluster warning: breathing ring over a hot origin.
const (
	clusterMarkerRadius = 3.0 // pixels
	clusterRingRadius   = 2.2 // degrees
	clusterRingBreath   = 0.03
	clusterWarningLife  = 2500 * time.Millisecond
)

var clusterColor = color.RGBA{R: 255, G: 40, B: 40, A: 255}

// Primary beam.
const (
	beamGlowOpacity = 0.18
	beamCoreOpacity = 0.85
	beamLifeDecay   = 0.009
)

// Packet tracer and impact flash.
const (
	packetMarkerRadius   = 2.5 // pixels
	flashMarkerRadius    = 3.5
	flashRingStartRadius = 0.8 // degrees
	flashRingGrowth      = 0.16
	flashRingFade        = 0.03
)

// Shield dome baseline and idle pulse.
const (
	shieldMinRadius   = 3.0 // degrees
	shieldMaxRadius   = 4.2
	shieldPulseStep   = 0.02
	shieldBaseWeight  = float32(1.5)
	shieldBaseOpacity = 0.45
	shieldBaseFill    = 0.08
)

var shieldColor = color.RGBA{R: 0, G: 200, B: 255, A: 255}

// Escalation visuals for critical events.
const (
	shieldImpactGrowth = 0.2
	shieldImpactFade   = 0.035
	orbitalStartRadius = 6.0
	orbitalGrowth      = 0.3
	orbitalFade        = 0.02
	globalStartRadius  = 10.0
	globalGrowth       = 0.9
	globalFade         = 0.015
)

var orbitalColor = color.RGBA{R: 120, G: 160, B: 255, A: 255}

// Intercept beams.
const (
	interceptLineOpacity = 0.5
	interceptLineFade    = 0.06
	interceptHeadRadius  = 2.0 // pixels
	interceptStep        = 0.05
)

var interceptColor = color.RGBA{R: 80, G: 255, B: 180, A: 255}
