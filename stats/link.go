package stats

// LinkStatistics tracks the arrival counter for every (router, port) link
// in the topology (spec.md §3 "LinkStatistics[router][port]"). Cleared on
// reset.
type LinkStatistics struct {
	arrivals [][]int64
}

// NewLinkStatistics allocates a LinkStatistics for a topology with the
// given per-router port counts (ports[router] = number of ports on that
// router).
func NewLinkStatistics(ports []int) *LinkStatistics {
	arrivals := make([][]int64, len(ports))
	for r, n := range ports {
		arrivals[r] = make([]int64, n)
	}
	return &LinkStatistics{arrivals: arrivals}
}

// RecordArrival increments the arrival counter for (router, port).
func (l *LinkStatistics) RecordArrival(router, port int) {
	l.arrivals[router][port]++
}

// Arrivals returns the current arrival count for (router, port).
func (l *LinkStatistics) Arrivals(router, port int) int64 {
	return l.arrivals[router][port]
}

// All returns every arrival count in router-major, port-minor order —
// the traversal the report layer uses for AverageLinkUtilization /
// MaximumLinkUtilization (spec.md §4.3).
func (l *LinkStatistics) All() []int64 {
	var out []int64
	for _, row := range l.arrivals {
		out = append(out, row...)
	}
	return out
}

// Reset zeroes every arrival counter in place.
func (l *LinkStatistics) Reset() {
	for _, row := range l.arrivals {
		for i := range row {
			row[i] = 0
		}
	}
}
