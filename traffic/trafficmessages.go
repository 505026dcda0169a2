package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// TrafficMessages wraps an inner Traffic and stops it once a global cap of
// num_messages total messages has been generated across all tasks. An
// optional per-task cap additionally bounds any single task's contribution.
//
// Grounded on original_source/src/traffic/basic.rs's TrafficMessages.
type TrafficMessages struct {
	inner          Traffic
	numMessages    int
	perTaskLimit   *int
	generatedTotal int
	generatedTask  []int
}

func init() {
	Register("Messages", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		innerCV := cv.RequireField("Messages", "traffic")
		num := cv.RequireField("Messages", "num_messages").AsUsize("Messages", "num_messages")
		inner := Build(innerCV, topo, prng)
		tm := &TrafficMessages{
			inner:         inner,
			numMessages:   num,
			generatedTask: make([]int, inner.NumberTasks()),
		}
		if v, ok := cv.Field("num_messages_per_task"); ok {
			n := v.AsUsize("Messages", "num_messages_per_task")
			tm.perTaskLimit = &n
		}
		return tm
	})
}

func (t *TrafficMessages) NumberTasks() int { return t.inner.NumberTasks() }

func (t *TrafficMessages) capped(task int) bool {
	if t.generatedTotal >= t.numMessages {
		return true
	}
	if t.perTaskLimit != nil && t.generatedTask[task] >= *t.perTaskLimit {
		return true
	}
	return false
}

func (t *TrafficMessages) ProbabilityPerCycle(task int) float32 {
	if t.capped(task) {
		return 0.0
	}
	return t.inner.ProbabilityPerCycle(task)
}

func (t *TrafficMessages) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if t.capped(task) {
		return false
	}
	return t.inner.ShouldGenerate(task, cycle, r)
}

func (t *TrafficMessages) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	m, err := t.inner.GenerateMessage(task, cycle, topo, r)
	if err == nil {
		t.generatedTotal++
		t.generatedTask[task]++
	}
	return m, err
}

func (t *TrafficMessages) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	return t.inner.Consume(task, m, cycle, topo, r)
}

func (t *TrafficMessages) IsFinished() bool {
	if t.generatedTotal < t.numMessages {
		return false
	}
	return t.inner.IsFinished()
}

func (t *TrafficMessages) TaskState(task int, cycle message.Cycle) (State, bool) {
	if t.capped(task) {
		return State{Kind: FinishedGenerating}, true
	}
	return t.inner.TaskState(task, cycle)
}
