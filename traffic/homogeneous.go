package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Homogeneous is the Bernoulli-per-cycle generator: each cycle, with
// probability load/messageSize, a task emits one message of the
// configured size using the configured pattern. Outstanding messages are
// tracked by a monotonic id; never finishes on its own.
//
// Grounded on original_source/src/traffic/basic.rs's Homogeneous, with the
// Bernoulli decision itself adapted from the teacher's
// sim/workload/arrival.go Poisson/Gamma per-cycle sampling idiom
// generalized to a fixed-probability coin flip per cycle.
type Homogeneous struct {
	tasks             int
	pattern           pattern.Pattern
	messageSize       int64
	load              float32
	generatedMessages map[uint64]bool
	nextID            uint64
}

func init() {
	Register("HomogeneousTraffic", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("HomogeneousTraffic", "tasks").AsUsize("HomogeneousTraffic", "tasks")
		load := cv.RequireField("HomogeneousTraffic", "load").AsNumber("HomogeneousTraffic", "load")
		size := cv.RequireField("HomogeneousTraffic", "message_size").AsUsize("HomogeneousTraffic", "message_size")
		patCV := cv.RequireField("HomogeneousTraffic", "pattern")
		return &Homogeneous{
			tasks:             tasks,
			pattern:           buildPattern(patCV, tasks, tasks, topo, prng),
			messageSize:       int64(size),
			load:              float32(load),
			generatedMessages: make(map[uint64]bool),
		}
	})
}

func (h *Homogeneous) NumberTasks() int { return h.tasks }

func (h *Homogeneous) ProbabilityPerCycle(task int) float32 {
	r := h.load / float32(h.messageSize)
	if r > 1.0 {
		return 1.0
	}
	return r
}

func (h *Homogeneous) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	rate := h.ProbabilityPerCycle(task)
	if rate > 1.0 {
		return true
	}
	return r.Float32() < rate
}

func (h *Homogeneous) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= h.tasks {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	destination := h.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	id := h.nextID
	h.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: h.messageSize, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	h.generatedMessages[id] = true
	return m, nil
}

func (h *Homogeneous) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, _ := message.PopUint64Header(m)
	if !h.generatedMessages[id] {
		return false
	}
	delete(h.generatedMessages, id)
	return true
}

func (h *Homogeneous) IsFinished() bool { return false }

func (h *Homogeneous) TaskState(task int, cycle message.Cycle) (State, bool) {
	return State{Kind: Generating}, true
}
