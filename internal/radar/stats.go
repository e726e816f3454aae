package radar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// velocityWindow is the sliding window for the events-per-minute readout.
const velocityWindow = 60 * time.Second

// Surge meter steps: each accepted critical event pushes the meter up,
// anything else bleeds it down.
const (
	surgeGainCritical = 20
	surgeBleed        = 2
	surgeMax          = 100
)

// originCount is one row of the top-origins panel.
type originCount struct {
	Key   string
	Count int
}

// threatStats aggregates accepted events into the HUD analytics: severity
// counters, top origins, threat velocity, and the surge meter. It holds no
// engine state and only ever observes accepted events.
type threatStats struct {
	counts  [severityCount]int
	origins map[string]int
	times   []time.Time
	surge   int
}

func newThreatStats() threatStats {
	return threatStats{origins: make(map[string]int)}
}

// record folds one accepted event into the aggregates.
func (t *threatStats) record(ev AttackEvent, now time.Time) {
	t.counts[ev.Severity]++
	t.origins[ev.Origin.Key()]++

	t.times = append(t.times, now)
	cutoff := now.Add(-velocityWindow)
	trim := 0
	for trim < len(t.times) && t.times[trim].Before(cutoff) {
		trim++
	}
	t.times = t.times[trim:]

	if ev.Severity == SeverityCritical {
		t.surge += surgeGainCritical
		if t.surge > surgeMax {
			t.surge = surgeMax
		}
	} else {
		t.surge -= surgeBleed
		if t.surge < 0 {
			t.surge = 0
		}
	}
}

// perMinute returns the number of accepted events in the trailing window.
func (t *threatStats) perMinute() int {
	return len(t.times)
}

// topOrigins returns the n busiest origin keys, count descending, key
// ascending on ties so output is deterministic.
func (t *threatStats) topOrigins(n int) []originCount {
	out := make([]originCount, 0, len(t.origins))
	for k, c := range t.origins {
		out = append(out, originCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// originsText formats the top-origins panel body.
func (t *threatStats) originsText(n int) string {
	rows := t.topOrigins(n)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s : %d", r.Key, r.Count)
	}
	return strings.Join(lines, "\n")
}

func (t *threatStats) reset() {
	t.counts = [severityCount]int{}
	t.origins = make(map[string]int)
	t.times = nil
	t.surge = 0
}
