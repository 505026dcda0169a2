package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// burstKind is one kind of burst in a MultimodalBurst: total messages of
// size bytes, sent every step cycles, through pattern.
type burstKind struct {
	pattern pattern.Pattern
	total   int
	size    int64
	step    message.Cycle
}

// MultimodalBurst gives each task a fixed list of burst kinds; kinds are
// served round-robin, one message per kind per its own step period, until
// every kind's total quota is exhausted.
//
// Grounded on original_source/src/traffic/sequences.rs's MultimodalBurst.
type MultimodalBurst struct {
	tasks             int
	kinds             []burstKind
	remaining         [][]int // remaining[task][kind]
	lastSent          [][]message.Cycle
	currentKind       []int
	generatedMessages map[uint64]bool
	nextID            uint64
}

func init() {
	Register("MultimodalBurst", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("MultimodalBurst", "tasks").AsUsize("MultimodalBurst", "tasks")
		kindsField := cv.RequireField("MultimodalBurst", "kinds").AsArray("MultimodalBurst", "kinds")
		kinds := make([]burstKind, len(kindsField))
		for i, k := range kindsField {
			total := k.RequireField("MultimodalBurst", "total").AsUsize("MultimodalBurst", "total")
			size := k.RequireField("MultimodalBurst", "message_size").AsUsize("MultimodalBurst", "message_size")
			step := k.OptionalField("step", config.Number(0)).AsUsize("MultimodalBurst", "step")
			patCV := k.RequireField("MultimodalBurst", "pattern")
			kinds[i] = burstKind{
				pattern: buildPattern(patCV, tasks, tasks, topo, prng),
				total:   total,
				size:    int64(size),
				step:    message.Cycle(step),
			}
		}
		remaining := make([][]int, tasks)
		lastSent := make([][]message.Cycle, tasks)
		for t := 0; t < tasks; t++ {
			remaining[t] = make([]int, len(kinds))
			lastSent[t] = make([]message.Cycle, len(kinds))
			for k, kind := range kinds {
				remaining[t][k] = kind.total
				lastSent[t][k] = -1
			}
		}
		return &MultimodalBurst{
			tasks:             tasks,
			kinds:             kinds,
			remaining:         remaining,
			lastSent:          lastSent,
			currentKind:       make([]int, tasks),
			generatedMessages: make(map[uint64]bool),
		}
	})
}

func (b *MultimodalBurst) NumberTasks() int { return b.tasks }

// nextReadyKind returns the first kind index (starting from currentKind,
// wrapping) that still has quota and is past its step cooldown, or -1.
func (b *MultimodalBurst) nextReadyKind(task int, cycle message.Cycle) int {
	n := len(b.kinds)
	for i := 0; i < n; i++ {
		k := (b.currentKind[task] + i) % n
		if b.remaining[task][k] <= 0 {
			continue
		}
		if b.lastSent[task][k] < 0 || cycle-b.lastSent[task][k] >= b.kinds[k].step {
			return k
		}
	}
	return -1
}

func (b *MultimodalBurst) ProbabilityPerCycle(task int) float32 {
	return 1.0
}

func (b *MultimodalBurst) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return b.nextReadyKind(task, cycle) >= 0
}

func (b *MultimodalBurst) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= b.tasks {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	k := b.nextReadyKind(origin, cycle)
	if k < 0 {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	kind := b.kinds[k]
	destination := kind.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	b.remaining[origin][k]--
	b.lastSent[origin][k] = cycle
	b.currentKind[origin] = (k + 1) % len(b.kinds)
	id := b.nextID
	b.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: kind.size, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	b.generatedMessages[id] = true
	return m, nil
}

func (b *MultimodalBurst) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, _ := message.PopUint64Header(m)
	if !b.generatedMessages[id] {
		return false
	}
	delete(b.generatedMessages, id)
	return true
}

func (b *MultimodalBurst) IsFinished() bool {
	if len(b.generatedMessages) > 0 {
		return false
	}
	for t := 0; t < b.tasks; t++ {
		for k := range b.kinds {
			if b.remaining[t][k] > 0 {
				return false
			}
		}
	}
	return true
}

func (b *MultimodalBurst) TaskState(task int, cycle message.Cycle) (State, bool) {
	if b.nextReadyKind(task, cycle) >= 0 {
		return State{Kind: Generating}, true
	}
	for k := range b.kinds {
		if b.remaining[task][k] > 0 {
			return State{Kind: WaitingCycle, Cycle: b.lastSent[task][k] + b.kinds[k].step}, true
		}
	}
	return State{Kind: FinishedGenerating}, true
}
