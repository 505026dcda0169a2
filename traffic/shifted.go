package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Shifted relabels an inner Traffic's task indices by a constant shift
// modulo NumberTasks: outer task t is served as inner task
// (t - shift + tasks) % tasks.
//
// Grounded on original_source/src/traffic/operations.rs's Shifted.
type Shifted struct {
	inner Traffic
	shift int
}

func init() {
	Register("ShiftedTraffic", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		shift := cv.RequireField("ShiftedTraffic", "shift").AsUsize("ShiftedTraffic", "shift")
		innerCV := cv.RequireField("ShiftedTraffic", "traffic")
		return &Shifted{inner: Build(innerCV, topo, prng), shift: shift}
	})
}

func (s *Shifted) tasks() int { return s.inner.NumberTasks() }

func (s *Shifted) outerToInner(task int) int {
	n := s.tasks()
	return ((task-s.shift)%n + n) % n
}

func (s *Shifted) innerToOuter(task int) int {
	n := s.tasks()
	return (task + s.shift) % n
}

func (s *Shifted) NumberTasks() int { return s.tasks() }

func (s *Shifted) ProbabilityPerCycle(task int) float32 {
	return s.inner.ProbabilityPerCycle(s.outerToInner(task))
}

func (s *Shifted) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	return s.inner.ShouldGenerate(s.outerToInner(task), cycle, r)
}

func (s *Shifted) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	m, err := s.inner.GenerateMessage(s.outerToInner(task), cycle, topo, r)
	if err != nil {
		return message.Message{}, err
	}
	m.Origin = s.innerToOuter(m.Origin)
	m.Destination = s.innerToOuter(m.Destination)
	return m, nil
}

func (s *Shifted) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	m.Origin = s.outerToInner(m.Origin)
	m.Destination = s.outerToInner(m.Destination)
	return s.inner.Consume(s.outerToInner(task), m, cycle, topo, r)
}

func (s *Shifted) IsFinished() bool { return s.inner.IsFinished() }

func (s *Shifted) TaskState(task int, cycle message.Cycle) (State, bool) {
	return s.inner.TaskState(s.outerToInner(task), cycle)
}
