package radar

import (
	"fmt"
	"sort"
	"strings"
)

// reportTailLines is how many log lines the debug report includes.
const reportTailLines = 40

// DebugReport renders a plain-text snapshot of the engine: counters,
// escalation, heat table, recent targets, live effects, and the log tail.
// The windowed host copies it to the clipboard on a key press.
func (e *Engine) DebugReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- pewmap engine report ---\n")
	fmt.Fprintf(&b, "tick=%d attacks=%d pressure=%d level=%d\n",
		e.tick, e.attackCount, e.escalation.pressure, e.escalation.level)
	fmt.Fprintf(&b, "effects_live=%d tasks_pending=%d surge=%d velocity=%d/min\n",
		len(e.effects), e.sched.pending(), e.stats.surge, e.stats.perMinute())

	if e.shield != nil {
		fmt.Fprintf(&b, "shield: anchor=%s radius=%.2f\n", e.shield.anchor, e.shield.radius)
	} else {
		b.WriteString("shield: none\n")
	}

	fmt.Fprintf(&b, "\nseverity counts: low=%d med=%d high=%d crit=%d\n",
		e.stats.counts[SeverityLow], e.stats.counts[SeverityMedium],
		e.stats.counts[SeverityHigh], e.stats.counts[SeverityCritical])

	b.WriteString("\nheat zones:\n")
	keys := make([]string, 0, len(e.origins.heat))
	for k := range e.origins.heat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		b.WriteString("(none)\n")
	}
	for _, k := range keys {
		marker := ""
		if e.origins.heat[k] >= e.params.ClusterThreshold {
			marker = "  CLUSTER"
		}
		fmt.Fprintf(&b, "%-24s heat=%-3d intensity=%d%s\n",
			k, e.origins.heat[k], e.origins.intensity[k], marker)
	}

	b.WriteString("\nrecent targets (oldest first):\n")
	targets := e.targets.list()
	if len(targets) == 0 {
		b.WriteString("(none)\n")
	}
	for i, t := range targets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}

	fmt.Fprintf(&b, "\nlast %d log entries:\n", reportTailLines)
	for _, entry := range e.log.Tail(reportTailLines) {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}
