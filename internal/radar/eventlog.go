package radar

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded engine event.
type LogEntry struct {
	Tick     int
	Category string  // event, escalation, heat, effect, shield, intercept, audio
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] effect    impact_flash     (20.00,20.00)
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-10s %-18s %s", e.Tick, e.Category, e.Key, e.Value)
}

// logMaxEntries bounds the log. The runtime readers only look at the tail
// (the HUD ticker and the report's last lines), so once the cap is hit the
// oldest half is dropped; headless runs and tests stay far below it.
const logMaxEntries = 16384

// EventLog collects structured engine events, machine-readable; tests
// assert against it and the HUD ticker reads the tail. Unlike the display
// panels it is never overwritten in place, only trimmed from the front at
// the cap.
type EventLog struct {
	entries []LogEntry
	verbose bool
}

// NewEventLog creates an EventLog. Verbose mode also records per-tick
// bookkeeping entries.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry, dropping the oldest half of the log when the
// cap is reached.
func (l *EventLog) Add(tick int, category, key, value string, numVal float64) {
	if len(l.entries) >= logMaxEntries {
		keep := logMaxEntries / 2
		trimmed := make([]LogEntry, keep)
		copy(trimmed, l.entries[len(l.entries)-keep:])
		l.entries = trimmed
	}
	l.entries = append(l.entries, LogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *EventLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !l.verbose {
		return
	}
	l.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []LogEntry {
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Last returns the most recent entry matching category+key, or false if none.
func (l *EventLog) Last(category, key string) (LogEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns the last n entries, oldest first.
func (l *EventLog) Tail(n int) []LogEntry {
	if n >= len(l.entries) {
		return l.entries
	}
	return l.entries[len(l.entries)-n:]
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
