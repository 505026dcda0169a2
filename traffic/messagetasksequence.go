package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// messageStep is one step of a per-task message sequence: send one message
// of size using pattern, then wait for it to be consumed before moving on.
type messageStep struct {
	pattern pattern.Pattern
	size    int64
}

// MessageTaskSequence walks every task through the same ordered list of
// steps, one outstanding message at a time: a task only generates its step
// i+1 message after step i's message has been consumed. Each message
// carries an (id, child-index) pair header, where child-index is the step
// index, letting Consume verify it is completing the step it expects.
//
// Grounded on original_source/src/traffic/sequences.rs's
// MessageTaskSequence.
type MessageTaskSequence struct {
	tasks       int
	steps       []messageStep
	stepIndex   []int
	outstanding []*uint64 // per-task outstanding message id, nil if none in flight
	nextID      uint64
}

func init() {
	Register("MessageTaskSequence", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("MessageTaskSequence", "tasks").AsUsize("MessageTaskSequence", "tasks")
		stepsField := cv.RequireField("MessageTaskSequence", "steps").AsArray("MessageTaskSequence", "steps")
		steps := make([]messageStep, len(stepsField))
		for i, step := range stepsField {
			size := step.RequireField("MessageTaskSequence", "message_size").AsUsize("MessageTaskSequence", "message_size")
			patCV := step.RequireField("MessageTaskSequence", "pattern")
			steps[i] = messageStep{
				pattern: buildPattern(patCV, tasks, tasks, topo, prng),
				size:    int64(size),
			}
		}
		return &MessageTaskSequence{
			tasks:       tasks,
			steps:       steps,
			stepIndex:   make([]int, tasks),
			outstanding: make([]*uint64, tasks),
		}
	})
}

func (m *MessageTaskSequence) NumberTasks() int { return m.tasks }

func (m *MessageTaskSequence) taskReady(task int) bool {
	return m.stepIndex[task] < len(m.steps) && m.outstanding[task] == nil
}

func (m *MessageTaskSequence) ProbabilityPerCycle(task int) float32 {
	if m.taskReady(task) {
		return 1.0
	}
	return 0.0
}

func (m *MessageTaskSequence) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return m.taskReady(task)
}

func (m *MessageTaskSequence) GenerateMessage(origin int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if origin < 0 || origin >= m.tasks || !m.taskReady(origin) {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	step := m.steps[m.stepIndex[origin]]
	destination := step.pattern.GetDestination(origin, topo, r)
	if origin == destination {
		return message.Message{}, ErrSelfMessage
	}
	id := m.nextID
	m.nextID++
	msg := message.Message{Origin: origin, Destination: destination, Size: step.size, CreationCycle: cycle}
	msg = msg.PushHeader(message.PairHeader(uint32(id), uint32(m.stepIndex[origin])))
	m.outstanding[origin] = &id
	return msg, nil
}

func (m *MessageTaskSequence) Consume(task int, msg message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	id, childIndex, _ := message.PopPairHeader(msg)
	expected := m.outstanding[task]
	if expected == nil || uint64(id) != *expected || int(childIndex) != m.stepIndex[task] {
		return false
	}
	m.outstanding[task] = nil
	m.stepIndex[task]++
	return true
}

func (m *MessageTaskSequence) IsFinished() bool {
	for t := 0; t < m.tasks; t++ {
		if m.stepIndex[t] < len(m.steps) || m.outstanding[t] != nil {
			return false
		}
	}
	return true
}

func (m *MessageTaskSequence) TaskState(task int, cycle message.Cycle) (State, bool) {
	if m.stepIndex[task] >= len(m.steps) {
		if m.outstanding[task] != nil {
			return State{Kind: FinishedGenerating}, true
		}
		return State{Kind: Finished}, true
	}
	if m.outstanding[task] != nil {
		return State{Kind: WaitingData}, true
	}
	return State{Kind: Generating}, true
}
