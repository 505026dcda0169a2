package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Burst gives each task a fixed quota of messages_per_task to emit. It is
// finished when every task has exhausted its quota and no message remains
// outstanding. An optional expected_messages_to_consume_per_task drives a
// richer per-task state: FinishedGenerating until consumption catches up,
// then Finished (spec.md §4.2, scenario 5 "Burst termination").
//
// Grounded on original_source/src/traffic/basic.rs's Burst.
type Burst struct {
	tasks                    int
	pattern                  pattern.Pattern
	messageSize              int64
	pendingMessages          []int
	generatedMessages        map[uint64]bool
	expectedMessagesToConsume *int
	totalConsumedPerTask     []int
	nextID                   uint64
}

func init() {
	Register("Burst", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("Burst", "tasks").AsUsize("Burst", "tasks")
		mpt := cv.RequireField("Burst", "messages_per_task").AsUsize("Burst", "messages_per_task")
		size := cv.RequireField("Burst", "message_size").AsUsize("Burst", "message_size")
		patCV := cv.RequireField("Burst", "pattern")
		pending := make([]int, tasks)
		for i := range pending {
			pending[i] = mpt
		}
		b := &Burst{
			tasks:                tasks,
			pattern:              buildPattern(patCV, tasks, tasks, topo, prng),
			messageSize:          int64(size),
			pendingMessages:      pending,
			generatedMessages:    make(map[uint64]bool),
			totalConsumedPerTask: make([]int, tasks),
		}
		if v, ok := cv.Field("expected_messages_to_consume_per_task"); ok {
			n := v.AsUsize("Burst", "expected_messages_to_consume_per_task")
			b.expectedMessagesToConsume = &n
		}
		return b
	})
}

func (b *Burst) NumberTasks() int { return b.tasks }

func (b *Burst) ProbabilityPerCycle(task int) float32 {
	if b.pendingMessages[task] > 0 {
		return 1.0
	}
	return 0.0
}

func (b *Burst) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return b.pendingMessages[task] > 0
}

func (b *Burst) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= b.tasks {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	b.pendingMessages[origin]--
	destination := b.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	id := b.nextID
	b.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: b.messageSize, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	b.generatedMessages[id] = true
	return m, nil
}

func (b *Burst) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	b.totalConsumedPerTask[task]++
	id, _ := message.PopUint64Header(m)
	if !b.generatedMessages[id] {
		return false
	}
	delete(b.generatedMessages, id)
	return true
}

func (b *Burst) IsFinished() bool {
	if len(b.generatedMessages) > 0 {
		return false
	}
	for _, pm := range b.pendingMessages {
		if pm > 0 {
			return false
		}
	}
	return true
}

func (b *Burst) TaskState(task int, cycle message.Cycle) (State, bool) {
	if b.pendingMessages[task] > 0 {
		return State{Kind: Generating}, true
	}
	if b.expectedMessagesToConsume != nil {
		if b.totalConsumedPerTask[task] < *b.expectedMessagesToConsume {
			return State{Kind: FinishedGenerating}, true
		}
		return State{Kind: Finished}, true
	}
	return State{Kind: FinishedGenerating}, true
}
