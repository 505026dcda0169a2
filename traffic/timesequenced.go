package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// TimeSequenced, unlike Sequence, switches sub-traffics strictly by cycle:
// each entry is active for its configured duration of cycles, in order,
// regardless of whether it reports finished early.
//
// Grounded on original_source/src/traffic/sequences.rs's TimeSequenced.
type TimeSequenced struct {
	members       []Traffic
	durations     []message.Cycle
	cumulative    []message.Cycle // cumulative[i] = cycle at which members[i] starts
}

func init() {
	Register("TimeSequenced", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		items := cv.RequireField("TimeSequenced", "traffics").AsArray("TimeSequenced", "traffics")
		durationsField := cv.RequireField("TimeSequenced", "times").AsArray("TimeSequenced", "times")
		members := make([]Traffic, len(items))
		for i, item := range items {
			members[i] = Build(item, topo, prng)
		}
		durations := make([]message.Cycle, len(durationsField))
		cumulative := make([]message.Cycle, len(durationsField))
		var acc message.Cycle
		for i, d := range durationsField {
			durations[i] = message.Cycle(d.AsUsize("TimeSequenced", "times"))
			cumulative[i] = acc
			acc += durations[i]
		}
		return &TimeSequenced{members: members, durations: durations, cumulative: cumulative}
	})
}

func (t *TimeSequenced) NumberTasks() int {
	max := 0
	for _, m := range t.members {
		if n := m.NumberTasks(); n > max {
			max = n
		}
	}
	return max
}

// activeIndex finds which entry is active at cycle, returning the last
// entry once cycle runs past the configured total duration.
func (t *TimeSequenced) activeIndex(cycle message.Cycle) int {
	for i := len(t.cumulative) - 1; i >= 0; i-- {
		if cycle >= t.cumulative[i] {
			return i
		}
	}
	return 0
}

func (t *TimeSequenced) ProbabilityPerCycle(task int) float32 {
	if len(t.members) == 0 {
		return 0.0
	}
	return t.members[0].ProbabilityPerCycle(task)
}

func (t *TimeSequenced) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if len(t.members) == 0 {
		return false
	}
	return t.members[t.activeIndex(cycle)].ShouldGenerate(task, cycle, r)
}

func (t *TimeSequenced) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if len(t.members) == 0 {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	return t.members[t.activeIndex(cycle)].GenerateMessage(task, cycle, topo, r)
}

func (t *TimeSequenced) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	if len(t.members) == 0 {
		return false
	}
	return t.members[t.activeIndex(cycle)].Consume(task, m, cycle, topo, r)
}

func (t *TimeSequenced) IsFinished() bool {
	last := len(t.cumulative) - 1
	if last < 0 {
		return true
	}
	finishCycle := t.cumulative[last] + t.durations[last]
	return t.activeIndex(finishCycle) == last && t.members[last].IsFinished()
}

func (t *TimeSequenced) TaskState(task int, cycle message.Cycle) (State, bool) {
	if len(t.members) == 0 {
		return State{Kind: Finished}, true
	}
	return t.members[t.activeIndex(cycle)].TaskState(task, cycle)
}
