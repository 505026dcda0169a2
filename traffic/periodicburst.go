package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// PeriodicBurst emits messages_per_task messages at cycle offset, then again
// every period cycles, stopping once the cycle would reach finish. Each
// scheduled burst is tracked via a per-task queue of remaining-message
// counts; a task is Generating only during an active burst window.
//
// Grounded on original_source/src/traffic/basic.rs's PeriodicBurst.
type PeriodicBurst struct {
	tasks             int
	pattern           pattern.Pattern
	messageSize       int64
	messagesPerTask   int
	offset            message.Cycle
	period            message.Cycle
	finish            message.Cycle
	pendingThisBurst  []int
	generatedMessages map[uint64]bool
	nextID            uint64
}

func init() {
	Register("PeriodicBurst", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("PeriodicBurst", "tasks").AsUsize("PeriodicBurst", "tasks")
		mpt := cv.RequireField("PeriodicBurst", "messages_per_task").AsUsize("PeriodicBurst", "messages_per_task")
		size := cv.RequireField("PeriodicBurst", "message_size").AsUsize("PeriodicBurst", "message_size")
		offset := cv.RequireField("PeriodicBurst", "offset").AsUsize("PeriodicBurst", "offset")
		period := cv.RequireField("PeriodicBurst", "period").AsUsize("PeriodicBurst", "period")
		finish := cv.RequireField("PeriodicBurst", "finish").AsUsize("PeriodicBurst", "finish")
		patCV := cv.RequireField("PeriodicBurst", "pattern")
		return &PeriodicBurst{
			tasks:             tasks,
			pattern:           buildPattern(patCV, tasks, tasks, topo, prng),
			messageSize:       int64(size),
			messagesPerTask:   mpt,
			offset:            message.Cycle(offset),
			period:            message.Cycle(period),
			finish:            message.Cycle(finish),
			pendingThisBurst:  make([]int, tasks),
			generatedMessages: make(map[uint64]bool),
		}
	})
}

// inBurstWindow reports whether cycle falls on or after a scheduled burst
// start and before the next one (or before finish), refreshing the pending
// quota for task the first time a new window is observed.
func (p *PeriodicBurst) refreshWindow(task int, cycle message.Cycle) bool {
	if cycle < p.offset || cycle >= p.finish {
		return false
	}
	elapsed := cycle - p.offset
	if p.period <= 0 {
		return elapsed == 0
	}
	return elapsed%p.period == 0
}

func (p *PeriodicBurst) NumberTasks() int { return p.tasks }

func (p *PeriodicBurst) ProbabilityPerCycle(task int) float32 {
	if p.pendingThisBurst[task] > 0 {
		return 1.0
	}
	return 0.0
}

func (p *PeriodicBurst) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if p.refreshWindow(task, cycle) && p.pendingThisBurst[task] == 0 {
		p.pendingThisBurst[task] = p.messagesPerTask
	}
	return p.pendingThisBurst[task] > 0
}

func (p *PeriodicBurst) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= p.tasks {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	p.pendingThisBurst[origin]--
	destination := p.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	id := p.nextID
	p.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: p.messageSize, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	p.generatedMessages[id] = true
	return m, nil
}

func (p *PeriodicBurst) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, _ := message.PopUint64Header(m)
	if !p.generatedMessages[id] {
		return false
	}
	delete(p.generatedMessages, id)
	return true
}

func (p *PeriodicBurst) IsFinished() bool {
	return len(p.generatedMessages) == 0
}

func (p *PeriodicBurst) TaskState(task int, cycle message.Cycle) (State, bool) {
	if cycle >= p.finish {
		return State{Kind: FinishedGenerating}, true
	}
	if p.pendingThisBurst[task] > 0 {
		return State{Kind: Generating}, true
	}
	next := p.offset
	if cycle >= p.offset && p.period > 0 {
		elapsed := cycle - p.offset
		next = p.offset + (elapsed/p.period+1)*p.period
	}
	return State{Kind: WaitingCycle, Cycle: next}, true
}
