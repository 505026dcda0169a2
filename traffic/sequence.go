package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Sequence runs a list of sub-traffics one at a time, advancing to the next
// once the current one IsFinished. An optional periodNumber repeats the
// whole list that many times before Sequence itself reports finished.
//
// Grounded on original_source/src/traffic/sequences.rs's Sequence.
type Sequence struct {
	members      []Traffic
	periodNumber *int
	current      int
	period       int
}

func init() {
	Register("Sequence", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		items := cv.RequireField("Sequence", "traffics").AsArray("Sequence", "traffics")
		members := make([]Traffic, len(items))
		for i, item := range items {
			members[i] = Build(item, topo, prng)
		}
		s := &Sequence{members: members}
		if v, ok := cv.Field("period_number"); ok {
			n := v.AsUsize("Sequence", "period_number")
			s.periodNumber = &n
		}
		return s
	})
}

func (s *Sequence) NumberTasks() int {
	max := 0
	for _, m := range s.members {
		if n := m.NumberTasks(); n > max {
			max = n
		}
	}
	return max
}

// advance moves current forward past any already-finished members and
// bumps period when the list wraps.
func (s *Sequence) advance() {
	for s.current < len(s.members) && s.members[s.current].IsFinished() {
		s.current++
		if s.current >= len(s.members) {
			if s.periodNumber == nil || s.period+1 < *s.periodNumber {
				s.period++
				s.current = 0
			} else {
				return
			}
		}
	}
}

func (s *Sequence) doneForGood() bool {
	return s.current >= len(s.members)
}

func (s *Sequence) active() (Traffic, bool) {
	s.advance()
	if s.doneForGood() {
		return nil, false
	}
	return s.members[s.current], true
}

func (s *Sequence) ProbabilityPerCycle(task int) float32 {
	t, ok := s.active()
	if !ok {
		return 0.0
	}
	return t.ProbabilityPerCycle(task)
}

func (s *Sequence) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	t, ok := s.active()
	if !ok {
		return false
	}
	return t.ShouldGenerate(task, cycle, r)
}

func (s *Sequence) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	t, ok := s.active()
	if !ok {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	return t.GenerateMessage(task, cycle, topo, r)
}

func (s *Sequence) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	t, ok := s.active()
	if !ok {
		return false
	}
	return t.Consume(task, m, cycle, topo, r)
}

func (s *Sequence) IsFinished() bool {
	s.advance()
	return s.doneForGood()
}

func (s *Sequence) TaskState(task int, cycle message.Cycle) (State, bool) {
	t, ok := s.active()
	if !ok {
		return State{Kind: Finished}, true
	}
	return t.TaskState(task, cycle)
}
