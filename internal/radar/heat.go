package radar

// originTracker keeps the per-origin counters. Both counters grow for the
// life of the engine; only the visuals they feed decay.
type originTracker struct {
	intensity map[string]int // display intensity, capped on read
	heat      map[string]int // cluster counter, uncapped
}

func newOriginTracker() originTracker {
	return originTracker{
		intensity: make(map[string]int),
		heat:      make(map[string]int),
	}
}

// recordOrigin increments the intensity counter for p and returns it capped
// at maxCap.
func (o *originTracker) recordOrigin(p GeoPoint, maxCap int) int {
	k := p.Key()
	o.intensity[k]++
	if o.intensity[k] > maxCap {
		return maxCap
	}
	return o.intensity[k]
}

// recordHeat increments the heat counter for p and reports whether the
// origin has reached the cluster threshold.
func (o *originTracker) recordHeat(p GeoPoint, threshold int) bool {
	k := p.Key()
	o.heat[k]++
	return o.heat[k] >= threshold
}

// heatCount returns the raw heat counter for p.
func (o *originTracker) heatCount(p GeoPoint) int {
	return o.heat[p.Key()]
}

func (o *originTracker) reset() {
	o.intensity = make(map[string]int)
	o.heat = make(map[string]int)
}
