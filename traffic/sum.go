package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/stats"
	"github.com/toposim/toposim/topology"
)

// Sum (TrafficSum) combines several sub-traffics over the same task index
// space. Each cycle, a task's candidate children are tried in a fixed
// per-task shuffled order (computed once at construction so the choice is
// reproducible); the first child that is ready to generate for that task
// wins the cycle. Every generated message is tagged with its child's index
// so Consume can route the payload back to the right child. IsFinished
// only considers the subset named by finish_when (default: all children).
//
// Grounded on original_source/src/traffic/operations.rs's TrafficSum.
type Sum struct {
	tasks        int
	children     []Traffic
	order        [][]int // order[task] = candidate child indices, shuffled
	finishWhen   []int
	childStats   []*stats.TrafficStatistics
	pendingChild []int // pendingChild[task]: child picked by the last ShouldGenerate, -1 if none
}

func init() {
	Register("Sum", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		items := cv.RequireField("Sum", "traffics").AsArray("Sum", "traffics")
		children := make([]Traffic, len(items))
		tasks := 0
		for i, item := range items {
			children[i] = Build(item, topo, prng)
			if n := children[i].NumberTasks(); n > tasks {
				tasks = n
			}
		}
		r := prng.ForSubsystem(rng.SubsystemGlobal)
		order := make([][]int, tasks)
		for t := 0; t < tasks; t++ {
			candidates := make([]int, len(children))
			for i := range candidates {
				candidates[i] = i
			}
			r.Shuffle(len(candidates), func(a, b int) { candidates[a], candidates[b] = candidates[b], candidates[a] })
			order[t] = candidates
		}
		finishWhen := make([]int, len(children))
		for i := range finishWhen {
			finishWhen[i] = i
		}
		if v, ok := cv.Field("finish_when"); ok {
			arr := v.AsArray("Sum", "finish_when")
			finishWhen = make([]int, len(arr))
			for i, e := range arr {
				finishWhen[i] = e.AsUsize("Sum", "finish_when")
			}
		}
		childStats := make([]*stats.TrafficStatistics, len(children))
		for i := range childStats {
			childStats[i] = stats.NewTrafficStatistics(0, 0)
		}
		pendingChild := make([]int, tasks)
		for t := range pendingChild {
			pendingChild[t] = -1
		}
		return &Sum{
			tasks:        tasks,
			children:     children,
			order:        order,
			finishWhen:   finishWhen,
			childStats:   childStats,
			pendingChild: pendingChild,
		}
	})
}

func (s *Sum) NumberTasks() int { return s.tasks }

// pickChild returns the first candidate child index, in this task's fixed
// shuffled order, that both serves task and is ready to generate.
func (s *Sum) pickChild(task int, cycle message.Cycle, r *rand.Rand, probe bool) int {
	for _, i := range s.order[task] {
		if task >= s.children[i].NumberTasks() {
			continue
		}
		if probe {
			if s.children[i].ShouldGenerate(task, cycle, r) {
				return i
			}
		} else {
			if _, ok := s.children[i].TaskState(task, cycle); ok {
				return i
			}
		}
	}
	return -1
}

func (s *Sum) ProbabilityPerCycle(task int) float32 {
	var total float32
	for _, i := range s.order[task] {
		if task < s.children[i].NumberTasks() {
			total += s.children[i].ProbabilityPerCycle(task)
		}
	}
	if total > 1.0 {
		return 1.0
	}
	return total
}

// ShouldGenerate probes every candidate child once and caches the winning
// index for the matching GenerateMessage call: a probabilistic child's
// ShouldGenerate draws randomness, so re-probing in GenerateMessage would
// both consume the RNG twice and risk picking a different (or no) child
// than the one this call just committed to.
func (s *Sum) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	i := s.pickChild(task, cycle, r, true)
	s.pendingChild[task] = i
	return i >= 0
}

func (s *Sum) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	i := s.pendingChild[task]
	s.pendingChild[task] = -1
	if i < 0 {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	m, err := s.children[i].GenerateMessage(task, cycle, topo, r)
	if err != nil {
		return message.Message{}, err
	}
	s.childStats[i].RecordMessageCreated(m.Size, cycle)
	m = m.PushHeader(message.Uint32Header(uint32(i)))
	return m, nil
}

func (s *Sum) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	i, rest := message.PopUint32Header(m)
	if int(i) >= len(s.children) {
		return false
	}
	ok := s.children[i].Consume(task, rest, cycle, topo, r)
	if ok {
		delay := int64(cycle - rest.CreationCycle)
		s.childStats[i].RecordMessageConsumed(rest.Size, delay, cycle)
	}
	return ok
}

func (s *Sum) IsFinished() bool {
	for _, i := range s.finishWhen {
		if !s.children[i].IsFinished() {
			return false
		}
	}
	return true
}

func (s *Sum) TaskState(task int, cycle message.Cycle) (State, bool) {
	i := s.pickChild(task, cycle, nil, false)
	if i < 0 {
		return State{}, false
	}
	return s.children[i].TaskState(task, cycle)
}

// Statistics implements StatisticsSource, aggregating each child's
// TrafficStatistics into SubTraffics (spec.md §4.3 "Traffic statistics
// tree... mirrors the traffic composition") and rolling their totals up
// into the returned node's own Totals.
func (s *Sum) Statistics() any {
	agg := stats.NewTrafficStatistics(0, 0)
	agg.SubTraffics = append([]*stats.TrafficStatistics(nil), s.childStats...)
	for _, child := range s.childStats {
		agg.Totals.CreatedMessages += child.Totals.CreatedMessages
		agg.Totals.ConsumedMessages += child.Totals.ConsumedMessages
		agg.Totals.CreatedPhits += child.Totals.CreatedPhits
		agg.Totals.ConsumedPhits += child.Totals.ConsumedPhits
		agg.Totals.TotalMessageDelay += child.Totals.TotalMessageDelay
		if child.Totals.HasCreated {
			agg.Totals.HasCreated = true
			if child.Totals.CycleLastCreated > agg.Totals.CycleLastCreated {
				agg.Totals.CycleLastCreated = child.Totals.CycleLastCreated
			}
		}
		if child.Totals.HasConsumed {
			agg.Totals.HasConsumed = true
			if child.Totals.CycleLastConsumed > agg.Totals.CycleLastConsumed {
				agg.Totals.CycleLastConsumed = child.Totals.CycleLastConsumed
			}
		}
	}
	return agg
}
