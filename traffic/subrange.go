package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// SubRangeTraffic restricts an inner Traffic, defined over [0, end-start),
// to serve only tasks in the outer range [start, end); tasks outside that
// range are not served (TaskState's ok return is false).
//
// Grounded on original_source/src/traffic/basic.rs's SubRangeTraffic.
type SubRangeTraffic struct {
	start, end int
	inner      Traffic
}

func init() {
	Register("SubRangeTraffic", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		start := cv.RequireField("SubRangeTraffic", "start").AsUsize("SubRangeTraffic", "start")
		end := cv.RequireField("SubRangeTraffic", "end").AsUsize("SubRangeTraffic", "end")
		innerCV := cv.RequireField("SubRangeTraffic", "traffic")
		return &SubRangeTraffic{
			start: start,
			end:   end,
			inner: Build(innerCV, topo, prng),
		}
	})
}

func (s *SubRangeTraffic) NumberTasks() int { return s.end }

func (s *SubRangeTraffic) inRange(task int) bool { return task >= s.start && task < s.end }

func (s *SubRangeTraffic) ProbabilityPerCycle(task int) float32 {
	if !s.inRange(task) {
		return 0.0
	}
	return s.inner.ProbabilityPerCycle(task - s.start)
}

func (s *SubRangeTraffic) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	if !s.inRange(task) {
		return false
	}
	return s.inner.ShouldGenerate(task-s.start, cycle, r)
}

func (s *SubRangeTraffic) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if !s.inRange(task) {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	m, err := s.inner.GenerateMessage(task-s.start, cycle, topo, r)
	if err != nil {
		return message.Message{}, err
	}
	m.Origin += s.start
	m.Destination += s.start
	return m, nil
}

func (s *SubRangeTraffic) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	if !s.inRange(task) {
		return false
	}
	m.Origin -= s.start
	m.Destination -= s.start
	return s.inner.Consume(task-s.start, m, cycle, topo, r)
}

func (s *SubRangeTraffic) IsFinished() bool { return s.inner.IsFinished() }

func (s *SubRangeTraffic) TaskState(task int, cycle message.Cycle) (State, bool) {
	if !s.inRange(task) {
		return State{}, false
	}
	return s.inner.TaskState(task-s.start, cycle)
}
