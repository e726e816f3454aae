package radar

// recentTargets is a bounded FIFO of the latest attack destinations,
// oldest first. It feeds the interception choreography and nothing else.
type recentTargets struct {
	pts []GeoPoint
	cap int
}

func newRecentTargets(capacity int) recentTargets {
	return recentTargets{cap: capacity}
}

// push appends p, evicting the oldest entry when the buffer is full.
func (r *recentTargets) push(p GeoPoint) {
	r.pts = append(r.pts, p)
	if len(r.pts) > r.cap {
		r.pts = r.pts[1:]
	}
}

// list returns a copy of the buffer, oldest to newest.
func (r *recentTargets) list() []GeoPoint {
	out := make([]GeoPoint, len(r.pts))
	copy(out, r.pts)
	return out
}

func (r *recentTargets) reset() {
	r.pts = nil
}
