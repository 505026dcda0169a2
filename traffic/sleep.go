package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Sleep never generates or consumes a message; every task reports
// WaitingCycle until cycle_to_wake, then FinishedGenerating. It exists to
// model idle tasks inside a Sequence/TimeSequenced composition.
//
// Grounded on original_source/src/traffic/basic.rs's Sleep.
type Sleep struct {
	tasks       int
	cycleToWake message.Cycle
}

func init() {
	Register("Sleep", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("Sleep", "tasks").AsUsize("Sleep", "tasks")
		wake := cv.RequireField("Sleep", "cycle_to_wake").AsUsize("Sleep", "cycle_to_wake")
		return &Sleep{tasks: tasks, cycleToWake: message.Cycle(wake)}
	})
}

func (s *Sleep) NumberTasks() int                      { return s.tasks }
func (s *Sleep) ProbabilityPerCycle(task int) float32   { return 0.0 }
func (s *Sleep) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return false
}

func (s *Sleep) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	return message.Message{}, ErrOriginOutsideTraffic
}

func (s *Sleep) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	return false
}

func (s *Sleep) IsFinished() bool { return false }

func (s *Sleep) TaskState(task int, cycle message.Cycle) (State, bool) {
	if cycle < s.cycleToWake {
		return State{Kind: WaitingCycle, Cycle: s.cycleToWake}, true
	}
	return State{Kind: FinishedGenerating}, true
}
