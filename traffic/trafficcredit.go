package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// TrafficCredit gives each task a starting credit balance (drawn from
// initial_credits_pattern, reinterpreted as a per-task count rather than a
// destination) and lets it generate exactly that many messages, one credit
// spent per message. message_size_pattern, if given, draws a destination
// chosen size per message instead of a fixed message_size.
//
// Grounded on original_source/src/traffic/mini_apps.rs's TrafficCredit.
type TrafficCredit struct {
	tasks             int
	pattern           pattern.Pattern
	messageSize       int64
	sizePattern       pattern.Pattern
	credits           []int
	generatedMessages map[uint64]bool
	nextID            uint64
}

func init() {
	Register("TrafficCredit", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("TrafficCredit", "tasks").AsUsize("TrafficCredit", "tasks")
		patCV := cv.RequireField("TrafficCredit", "pattern")
		creditsField := cv.RequireField("TrafficCredit", "initial_credits").AsArray("TrafficCredit", "initial_credits")
		credits := make([]int, len(creditsField))
		for i, c := range creditsField {
			credits[i] = c.AsUsize("TrafficCredit", "initial_credits")
		}
		tc := &TrafficCredit{
			tasks:             tasks,
			pattern:           buildPattern(patCV, tasks, tasks, topo, prng),
			credits:           credits,
			generatedMessages: make(map[uint64]bool),
		}
		if v, ok := cv.Field("message_size"); ok {
			tc.messageSize = int64(v.AsUsize("TrafficCredit", "message_size"))
		}
		if v, ok := cv.Field("message_size_pattern"); ok {
			tc.sizePattern = buildPattern(v, tasks, tasks, topo, prng)
		}
		return tc
	})
}

func (t *TrafficCredit) NumberTasks() int { return t.tasks }

func (t *TrafficCredit) ProbabilityPerCycle(task int) float32 {
	if t.credits[task] > 0 {
		return 1.0
	}
	return 0.0
}

func (t *TrafficCredit) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return t.credits[task] > 0
}

func (t *TrafficCredit) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= t.tasks || t.credits[origin] <= 0 {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	destination := t.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	size := t.messageSize
	if t.sizePattern != nil {
		size = int64(t.sizePattern.GetDestination(origin, topo, r))
	}
	t.credits[origin]--
	id := t.nextID
	t.nextID++
	m := message.Message{Origin: origin, Destination: destination, Size: size, CreationCycle: cycle}
	m = m.PushHeader(message.Uint64Header(id))
	t.generatedMessages[id] = true
	return m, nil
}

func (t *TrafficCredit) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, _ := message.PopUint64Header(m)
	if !t.generatedMessages[id] {
		return false
	}
	delete(t.generatedMessages, id)
	return true
}

func (t *TrafficCredit) IsFinished() bool {
	if len(t.generatedMessages) > 0 {
		return false
	}
	for _, c := range t.credits {
		if c > 0 {
			return false
		}
	}
	return true
}

func (t *TrafficCredit) TaskState(task int, cycle message.Cycle) (State, bool) {
	if t.credits[task] > 0 {
		return State{Kind: Generating}, true
	}
	return State{Kind: FinishedGenerating}, true
}
