// Package audio plays the short synthesized cues the attack board asks
// for. Everything is generated, no sample assets.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"pewmap/internal/radar"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// clipSpec describes one cue: a base tone, how long it rings, and an
// optional second harmonic for bite.
type clipSpec struct {
	freq     float64
	duration time.Duration
	harmonic float64 // 0 = pure tone
}

var clipSpecs = map[radar.Clip]clipSpec{
	radar.ClipAlarmLow:  {freq: 440, duration: 180 * time.Millisecond, harmonic: 0.2},
	radar.ClipAlarmHigh: {freq: 880, duration: 260 * time.Millisecond, harmonic: 0.35},
	radar.ClipImpact:    {freq: 140, duration: 220 * time.Millisecond, harmonic: 0.5},
	radar.ClipIntercept: {freq: 620, duration: 120 * time.Millisecond, harmonic: 0.15},
}

// Player is the beep-backed cue player. It implements radar.Sounds.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer. Safe to call more
// than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself has no Close.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.mixer.Clear()
	p.initialized = false
}

// Play queues the cue for c. Fire and forget: the tone plays out on the
// mixer and is dropped when it ends.
func (p *Player) Play(c radar.Clip) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return fmt.Errorf("audio: player not initialized")
	}
	spec, ok := clipSpecs[c]
	if !ok {
		return fmt.Errorf("audio: unknown clip %v", c)
	}

	streamer := beep.Take(sampleRate.N(spec.duration), newToneGenerator(sampleRate, spec))
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}

// toneGenerator produces a sine cue with a fast attack and exponential
// release, plus an optional harmonic.
type toneGenerator struct {
	sr   beep.SampleRate
	spec clipSpec
	pos  int
}

func newToneGenerator(sr beep.SampleRate, spec clipSpec) *toneGenerator {
	return &toneGenerator{sr: sr, spec: spec}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	total := float64(g.sr.N(g.spec.duration))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.25 * math.Sin(2*math.Pi*g.spec.freq*t)
		if g.spec.harmonic > 0 {
			sample += 0.25 * g.spec.harmonic * math.Sin(2*math.Pi*g.spec.freq*2*t)
		}

		attack := math.Min(float64(g.pos)/(float64(g.sr)*0.005), 1.0)
		release := math.Exp(-4 * float64(g.pos) / total)
		sample *= attack * release

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
