package stats

import "github.com/toposim/toposim/message"

// TaskStateKind mirrors traffic.TaskState without importing the traffic
// package (stats must stay below traffic in the dependency order: traffic
// variants record into stats, not the reverse). Callers translate their
// own TaskState enum into TaskStateKind at the call site.
type TaskStateKind int

const (
	StateGenerating TaskStateKind = iota
	StateWaitingData
	StateWaitingCycle
	StateUnspecifiedWait
	StateFinishedGenerating
	StateFinished
)

// taskStateCount is how many distinct TaskStateKind values exist, sizing
// TrafficStatistics.taskStateHistograms.
const taskStateCount = int(StateFinished) + 1

// TrafficTotals is the flat per-traffic totals TrafficStatistics.Totals
// carries — the counters spec.md §6 documents under `traffic_statistics`
// (total_created_messages, total_consumed_messages, total_created_phits,
// total_consumed_phits, total_message_delay, cycle_last_created_message,
// cycle_last_consumed_message).
type TrafficTotals struct {
	CreatedMessages      int64
	ConsumedMessages     int64
	CreatedPhits         int64
	ConsumedPhits        int64
	TotalMessageDelay    int64
	CycleLastCreated     message.Cycle
	CycleLastConsumed    message.Cycle
	HasCreated           bool
	HasConsumed          bool
}

// AverageMessageDelay returns TotalMessageDelay/ConsumedMessages, matching
// spec.md §6's "total_message_delay (as per-message average)".
func (t TrafficTotals) AverageMessageDelay() float64 {
	if t.ConsumedMessages == 0 {
		return 0
	}
	return float64(t.TotalMessageDelay) / float64(t.ConsumedMessages)
}

// TrafficStatistics is the recursive accumulator a Traffic's
// StatisticsSource exposes: per-traffic totals, a delay histogram keyed
// by delay/BoxSize, per-bucket task-state observation histograms (one per
// TaskStateKind), optional temporal totals, and an optional tree of
// sub-traffic statistics mirroring the traffic composition (spec.md §3
// "TrafficStatistics (recursive)").
//
// Grounded on original_source/src/measures.rs's TrafficStatistics and the
// teacher's sim/metrics.go Metrics struct for the Go field-bag shape.
type TrafficStatistics struct {
	Totals             TrafficTotals
	BoxSize            int
	DelayHistogram     Histogram
	taskStateHistograms [taskStateCount]Histogram
	Temporal           *TemporalTotals // nil unless temporalStep > 0
	temporalStep       int
	SubTraffics        []*TrafficStatistics
}

// TemporalTotals holds per-bucket totals, the `temporal` sub-object of
// spec.md §6's traffic_statistics output.
type TemporalTotals struct {
	CreatedMessages  Histogram
	ConsumedMessages Histogram
	CreatedPhits     Histogram
	ConsumedPhits    Histogram
}

// NewTrafficStatistics allocates an empty accumulator. boxSize sizes the
// delay/task-state histograms (spec.md §3's "delay histogram keyed by
// delay/box_size"); temporalStep <= 0 disables the `temporal` sub-object.
func NewTrafficStatistics(boxSize, temporalStep int) *TrafficStatistics {
	ts := &TrafficStatistics{
		BoxSize:        boxSize,
		DelayHistogram: Histogram{},
		temporalStep:   temporalStep,
	}
	for i := range ts.taskStateHistograms {
		ts.taskStateHistograms[i] = Histogram{}
	}
	if temporalStep > 0 {
		ts.Temporal = &TemporalTotals{
			CreatedMessages:  Histogram{},
			ConsumedMessages: Histogram{},
			CreatedPhits:     Histogram{},
			ConsumedPhits:    Histogram{},
		}
	}
	return ts
}

// RecordMessageCreated accounts for one message of size phits created at
// cycle.
func (t *TrafficStatistics) RecordMessageCreated(phits int64, cycle message.Cycle) {
	t.Totals.CreatedMessages++
	t.Totals.CreatedPhits += phits
	t.Totals.CycleLastCreated = cycle
	t.Totals.HasCreated = true
	if t.Temporal != nil {
		t.Temporal.CreatedMessages.Add(int(cycle), t.temporalStep)
		t.Temporal.CreatedPhits.addN(int(cycle), t.temporalStep, phits)
	}
}

// RecordMessageConsumed accounts for one message of size phits, with total
// delay, consumed at cycle.
func (t *TrafficStatistics) RecordMessageConsumed(phits int64, delay int64, cycle message.Cycle) {
	t.Totals.ConsumedMessages++
	t.Totals.ConsumedPhits += phits
	t.Totals.TotalMessageDelay += delay
	t.Totals.CycleLastConsumed = cycle
	t.Totals.HasConsumed = true
	t.DelayHistogram.Add(int(delay), t.BoxSize)
	if t.Temporal != nil {
		t.Temporal.ConsumedMessages.Add(int(cycle), t.temporalStep)
		t.Temporal.ConsumedPhits.addN(int(cycle), t.temporalStep, phits)
	}
}

// RecordTaskState accounts for one observation of task being in state at
// cycle, bucketed by cycle/BoxSize (spec.md §3 "per-cycle task-state
// bitmaps bucketed by cycle/box_size for each observed state"; rendered
// externally as the generating_tasks_histogram family, spec.md §6).
func (t *TrafficStatistics) RecordTaskState(state TaskStateKind, cycle message.Cycle) {
	t.taskStateHistograms[state].Add(int(cycle), t.BoxSize)
}

// TaskStateHistogram returns the dense per-bucket observation counts for
// state.
func (t *TrafficStatistics) TaskStateHistogram(state TaskStateKind) []int {
	return t.taskStateHistograms[state].Dense()
}

// addN increments a histogram bucket by n rather than by one, used for
// the temporal phit totals (each event carries a size, not a unit count).
func (h Histogram) addN(value, boxSize int, n int64) {
	bucket := 0
	if boxSize > 0 {
		bucket = value / boxSize
	}
	h[bucket] += int(n)
}
