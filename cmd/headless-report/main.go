package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"pewmap/internal/radar"
)

type runStats struct {
	runIndex int
	seed     int64

	firstClusterTick   int
	firstLevel2Tick    int
	firstLevel3Tick    int
	firstInterceptTick int

	accepted       int
	clusters       int
	levelChanges   int
	intensified    int
	reverted       int
	interceptsHit  int
	interceptsSkip int
	globalPulses   int
	effectsSpawned int

	finalPressure int
	finalLevel    int
	finalSurge    int
	perMinute     int
	liveShapes    int
	topOrigins    string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (one tick is 16ms of board time)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	fmt.Printf("=== Headless Attack Board Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runOnce(runIndex int, seed int64, ticks int) runStats {
	rig := radar.NewTestRig(radar.DefaultParams())
	demo := radar.NewDemo(seed)

	const dt = 16 * time.Millisecond
	for i := 0; i < ticks; i++ {
		rig.Advance(dt)
		if ev, ok := demo.Poll(rig.Now()); ok {
			rig.Send(ev)
		}
		rig.Tick()
	}

	log := rig.Engine.Log()

	return runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstClusterTick:   firstTick(log, "heat", "cluster", ""),
		firstLevel2Tick:    firstTick(log, "escalation", "level_change", "2"),
		firstLevel3Tick:    firstTick(log, "escalation", "level_change", "3"),
		firstInterceptTick: firstTick(log, "intercept", "fired", ""),
		accepted:           log.Count("event", "accepted"),
		clusters:           log.Count("heat", "cluster"),
		levelChanges:       log.Count("escalation", "level_change"),
		intensified:        log.Count("shield", "intensified"),
		reverted:           log.Count("shield", "reverted"),
		interceptsHit:      log.Count("intercept", "fired"),
		interceptsSkip:     log.Count("intercept", "skipped"),
		globalPulses:       log.Count("effect", "global_pulse"),
		effectsSpawned:     len(log.Filter("effect", "")),
		finalPressure:      rig.Engine.DefensePressure(),
		finalLevel:         rig.Engine.EscalationLevel(),
		finalSurge:         rig.Engine.SurgeLevel(),
		perMinute:          rig.Engine.EventsPerMinute(),
		liveShapes:         rig.Surface.Live(),
		topOrigins:         rig.Display.Get("origins"),
	}
}

func firstTick(log *radar.EventLog, category, key, contains string) int {
	for _, e := range log.Filter(category, key) {
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_cluster=%d first_level2=%d first_level3=%d first_intercept=%d\n",
		rs.firstClusterTick, rs.firstLevel2Tick, rs.firstLevel3Tick, rs.firstInterceptTick)
	fmt.Printf("event_totals: accepted=%d clusters=%d level_changes=%d effects=%d\n",
		rs.accepted, rs.clusters, rs.levelChanges, rs.effectsSpawned)
	fmt.Printf("shield: intensified=%d reverted=%d\n", rs.intensified, rs.reverted)
	fmt.Printf("intercepts: fired=%d skipped=%d global_pulses=%d\n",
		rs.interceptsHit, rs.interceptsSkip, rs.globalPulses)
	fmt.Printf("final_state: pressure=%d level=%d surge=%d velocity=%d/min live_shapes=%d\n",
		rs.finalPressure, rs.finalLevel, rs.finalSurge, rs.perMinute, rs.liveShapes)
	if rs.topOrigins != "" {
		fmt.Println("top_origins:")
		for _, line := range strings.Split(rs.topOrigins, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalAccepted := 0
	totalClusters := 0
	totalLevelChanges := 0
	totalIntensified := 0
	totalReverted := 0
	totalFired := 0
	totalSkipped := 0
	totalPulses := 0
	totalEffects := 0

	clusterTicks := make([]int, 0, len(all))
	level3Ticks := make([]int, 0, len(all))
	interceptTicks := make([]int, 0, len(all))
	levelDist := map[int]int{}

	for _, rs := range all {
		totalAccepted += rs.accepted
		totalClusters += rs.clusters
		totalLevelChanges += rs.levelChanges
		totalIntensified += rs.intensified
		totalReverted += rs.reverted
		totalFired += rs.interceptsHit
		totalSkipped += rs.interceptsSkip
		totalPulses += rs.globalPulses
		totalEffects += rs.effectsSpawned
		if rs.firstClusterTick >= 0 {
			clusterTicks = append(clusterTicks, rs.firstClusterTick)
		}
		if rs.firstLevel3Tick >= 0 {
			level3Ticks = append(level3Ticks, rs.firstLevel3Tick)
		}
		if rs.firstInterceptTick >= 0 {
			interceptTicks = append(interceptTicks, rs.firstInterceptTick)
		}
		levelDist[rs.finalLevel]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: accepted=%.1f clusters=%.1f level_changes=%.1f effects=%.1f\n",
		avg(totalAccepted, len(all)), avg(totalClusters, len(all)), avg(totalLevelChanges, len(all)), avg(totalEffects, len(all)))
	fmt.Printf("avg_shield_per_run: intensified=%.1f reverted=%.1f\n",
		avg(totalIntensified, len(all)), avg(totalReverted, len(all)))
	fmt.Printf("avg_response_per_run: intercepts_fired=%.1f intercepts_skipped=%.1f global_pulses=%.1f\n",
		avg(totalFired, len(all)), avg(totalSkipped, len(all)), avg(totalPulses, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_cluster=%s first_level3=%s first_intercept=%s\n",
		avgTickString(clusterTicks), avgTickString(level3Ticks), avgTickString(interceptTicks))

	levels := make([]int, 0, len(levelDist))
	for lvl := range levelDist {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	parts := make([]string, 0, len(levels))
	for _, lvl := range levels {
		parts = append(parts, fmt.Sprintf("level%d=%d", lvl, levelDist[lvl]))
	}
	fmt.Printf("final_level_distribution: %s\n", strings.Join(parts, " "))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
