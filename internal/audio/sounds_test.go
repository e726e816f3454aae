package audio

import (
	"math"
	"testing"
	"time"

	"pewmap/internal/radar"
)

func TestPlayBeforeInitializeFails(t *testing.T) {
	p := NewPlayer()
	if err := p.Play(radar.ClipImpact); err == nil {
		t.Fatal("Play before Initialize must return an error")
	}
}

func TestEveryClipHasASpec(t *testing.T) {
	clips := []radar.Clip{
		radar.ClipAlarmLow,
		radar.ClipAlarmHigh,
		radar.ClipImpact,
		radar.ClipIntercept,
	}
	for _, c := range clips {
		if _, ok := clipSpecs[c]; !ok {
			t.Errorf("clip %v has no spec", c)
		}
	}
}

func TestToneGeneratorEnvelope(t *testing.T) {
	spec := clipSpec{freq: 440, duration: 100 * time.Millisecond, harmonic: 0.2}
	g := newToneGenerator(sampleRate, spec)

	buf := make([][2]float64, sampleRate.N(spec.duration))
	n, ok := g.Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("Stream = (%d,%v), want full buffer", n, ok)
	}

	peak := 0.0
	for _, s := range buf {
		if v := math.Abs(s[0]); v > peak {
			peak = v
		}
		if s[0] != s[1] {
			t.Fatal("tone must be identical in both channels")
		}
	}
	if peak == 0 {
		t.Fatal("tone is silent")
	}
	if peak > 0.5 {
		t.Fatalf("peak %v exceeds headroom", peak)
	}

	// The tail must have decayed well below the early peak.
	tail := math.Abs(buf[len(buf)-1][0])
	if tail > peak/2 {
		t.Fatalf("release did not decay: tail %v vs peak %v", tail, peak)
	}
	if g.Err() != nil {
		t.Fatalf("Err = %v", g.Err())
	}
}
