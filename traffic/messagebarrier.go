package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// MessageBarrier wraps an inner Traffic with a collective synchronization
// point: each task may generate at most messagesBeforeBarrier messages
// through the inner traffic before it must wait; once every task has both
// sent and had consumed its full quota, the barrier resets and all tasks
// resume generating through the inner traffic.
//
// Grounded on original_source/src/traffic/collectives.rs's MessageBarrier.
type MessageBarrier struct {
	tasks                 int
	inner                 Traffic
	messagesBeforeBarrier int
	sent                  []int
	consumed              []int
}

func init() {
	Register("MessageBarrier", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		innerCV := cv.RequireField("MessageBarrier", "traffic")
		count := cv.RequireField("MessageBarrier", "messages_before_barrier").AsUsize("MessageBarrier", "messages_before_barrier")
		inner := Build(innerCV, topo, prng)
		tasks := inner.NumberTasks()
		return &MessageBarrier{
			tasks:                 tasks,
			inner:                 inner,
			messagesBeforeBarrier: count,
			sent:                  make([]int, tasks),
			consumed:              make([]int, tasks),
		}
	})
}

func (b *MessageBarrier) NumberTasks() int { return b.tasks }

func (b *MessageBarrier) atBarrier(task int) bool {
	return b.sent[task] >= b.messagesBeforeBarrier
}

// maybeReset clears every counter once all tasks have both sent and had
// consumed their full quota for this round.
func (b *MessageBarrier) maybeReset() {
	for t := 0; t < b.tasks; t++ {
		if b.sent[t] < b.messagesBeforeBarrier || b.consumed[t] < b.messagesBeforeBarrier {
			return
		}
	}
	for t := 0; t < b.tasks; t++ {
		b.sent[t] = 0
		b.consumed[t] = 0
	}
}

func (b *MessageBarrier) ProbabilityPerCycle(task int) float32 {
	if b.atBarrier(task) {
		return 0.0
	}
	return b.inner.ProbabilityPerCycle(task)
}

func (b *MessageBarrier) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if b.atBarrier(task) {
		return false
	}
	return b.inner.ShouldGenerate(task, cycle, r)
}

func (b *MessageBarrier) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if b.atBarrier(task) {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	m, err := b.inner.GenerateMessage(task, cycle, topo, r)
	if err == nil {
		b.sent[task]++
	}
	return m, err
}

func (b *MessageBarrier) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	ok := b.inner.Consume(task, m, cycle, topo, r)
	if ok {
		b.consumed[task]++
		b.maybeReset()
	}
	return ok
}

func (b *MessageBarrier) IsFinished() bool { return b.inner.IsFinished() }

func (b *MessageBarrier) TaskState(task int, cycle message.Cycle) (State, bool) {
	if b.atBarrier(task) {
		return State{Kind: UnspecifiedWait}, true
	}
	return b.inner.TaskState(task, cycle)
}
