// Package stats implements the statistics accumulators and report
// generation described in spec.md §4.3: per-server, per-traffic, and
// global counters, temporal bucketing, user-defined event-driven
// statistics, and the fixed set of report columns consumed by the outer
// simulator.
//
// Grounded on original_source/src/measures.rs for the accumulator shape
// and on the teacher's sim/metrics.go (Metrics.Print -> Report.WriteTo)
// and sim/metrics_utils.go (CalculatePercentile -> gonum/stat.Quantile,
// Bin -> Histogram) for the Go reporting idiom.
package stats

// Jain computes the Jain fairness index of x: (Σx)² / (n · Σx²). Returns 0
// for an empty slice, matching "no data" rather than panicking — the
// report layer treats a zero-server window as having no fairness signal
// to report, not a fault.
func Jain(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum, sumSquares float64
	for _, v := range x {
		sum += v
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return 0
	}
	return (sum * sum) / (float64(len(x)) * sumSquares)
}

// Histogram is a sparse, on-demand-growing bucket count, mirroring the
// original's HashMap<usize,usize> histograms (message_latency_histogram,
// per-hop counts) rendered densely (missing buckets are zero) on export.
type Histogram map[int]int

// Add increments the bucket for value/boxSize (boxSize <= 0 degenerates
// to bucket 0, the "no boxing" case).
func (h Histogram) Add(value, boxSize int) {
	bucket := 0
	if boxSize > 0 {
		bucket = value / boxSize
	}
	h[bucket]++
}

// Dense renders the histogram as a zero-filled slice from bucket 0 through
// the highest observed bucket (inclusive), matching spec.md §6's
// "message_latency_histogram: array indexed by delay/box_size; missing
// buckets are zero".
func (h Histogram) Dense() []int {
	max := -1
	for k := range h {
		if k > max {
			max = k
		}
	}
	if max < 0 {
		return nil
	}
	out := make([]int, max+1)
	for k, v := range h {
		out[k] = v
	}
	return out
}
