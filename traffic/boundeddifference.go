package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// BoundedDifference gives each task an allowance of outstanding messages
// (generated but not yet consumed); it withholds generation once a task's
// allowance reaches zero, restoring it as each message is consumed. Like
// Homogeneous, generation is a Bernoulli-per-cycle decision; the allowance
// only gates it.
//
// Grounded on original_source/src/traffic/operations.rs's BoundedDifference.
type BoundedDifference struct {
	tasks             int
	pattern           pattern.Pattern
	messageSize       int64
	load              float32
	allowance         []int
	generatedMessages map[uint64]int // id -> origin, to credit the right task back on consume
	nextID            uint64
}

func init() {
	Register("BoundedDifference", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("BoundedDifference", "tasks").AsUsize("BoundedDifference", "tasks")
		load := cv.RequireField("BoundedDifference", "load").AsNumber("BoundedDifference", "load")
		size := cv.RequireField("BoundedDifference", "message_size").AsUsize("BoundedDifference", "message_size")
		bound := cv.RequireField("BoundedDifference", "bound").AsUsize("BoundedDifference", "bound")
		patCV := cv.RequireField("BoundedDifference", "pattern")
		allowance := make([]int, tasks)
		for i := range allowance {
			allowance[i] = bound
		}
		return &BoundedDifference{
			tasks:             tasks,
			pattern:           buildPattern(patCV, tasks, tasks, topo, prng),
			messageSize:       int64(size),
			load:              float32(load),
			allowance:         allowance,
			generatedMessages: make(map[uint64]int),
		}
	})
}

func (b *BoundedDifference) NumberTasks() int { return b.tasks }

func (b *BoundedDifference) rate() float32 {
	r := b.load / float32(b.messageSize)
	if r > 1.0 {
		return 1.0
	}
	return r
}

func (b *BoundedDifference) ProbabilityPerCycle(task int) float32 {
	if b.allowance[task] <= 0 {
		return 0.0
	}
	return b.rate()
}

func (b *BoundedDifference) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if b.allowance[task] <= 0 {
		return false
	}
	return r.Float32() < b.rate()
}

func (b *BoundedDifference) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= b.tasks {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	destination := b.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	id := b.nextID
	b.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: b.messageSize, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	b.generatedMessages[id] = origin
	b.allowance[origin]--
	return m, nil
}

func (b *BoundedDifference) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, _ := message.PopUint64Header(m)
	origin, ok := b.generatedMessages[id]
	if !ok {
		return false
	}
	delete(b.generatedMessages, id)
	b.allowance[origin]++
	return true
}

func (b *BoundedDifference) IsFinished() bool { return false }

func (b *BoundedDifference) TaskState(task int, cycle message.Cycle) (State, bool) {
	if b.allowance[task] <= 0 {
		return State{Kind: WaitingData}, true
	}
	return State{Kind: Generating}, true
}
