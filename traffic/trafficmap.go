package traffic

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// TrafficMap injects an inner Traffic, defined over a smaller index space,
// into the outer task space via a Pattern applied once at construction:
// for each inner task i, GetDestination(i) (over the outer size) gives the
// outer task that stands in for it. Collisions (two inner tasks mapped to
// the same outer task) are a construction-time panic.
//
// Grounded on original_source/src/traffic/operations.rs's TrafficMap.
type TrafficMap struct {
	tasks         int
	inner         Traffic
	innerToOuter  []int
	outerToInner  map[int]int
}

func init() {
	Register("TrafficMap", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		tasks := cv.RequireField("TrafficMap", "tasks").AsUsize("TrafficMap", "tasks")
		innerCV := cv.RequireField("TrafficMap", "traffic")
		mapCV := cv.RequireField("TrafficMap", "map")
		inner := Build(innerCV, topo, prng)
		n := inner.NumberTasks()
		mapper := buildPattern(mapCV, n, tasks, topo, prng)
		r := prng.ForSubsystem(rng.SubsystemGlobal)

		innerToOuter := make([]int, n)
		outerToInner := make(map[int]int, n)
		for i := 0; i < n; i++ {
			outer := mapper.GetDestination(i, topo, r)
			if outer < 0 || outer >= tasks {
				panic(fmt.Sprintf("traffic.TrafficMap: map sent inner task %d to out-of-range outer task %d", i, outer))
			}
			if _, exists := outerToInner[outer]; exists {
				panic(fmt.Sprintf("traffic.TrafficMap: collision mapping inner task %d onto outer task %d", i, outer))
			}
			innerToOuter[i] = outer
			outerToInner[outer] = i
		}
		return &TrafficMap{tasks: tasks, inner: inner, innerToOuter: innerToOuter, outerToInner: outerToInner}
	})
}

func (t *TrafficMap) NumberTasks() int { return t.tasks }

func (t *TrafficMap) ProbabilityPerCycle(task int) float32 {
	i, ok := t.outerToInner[task]
	if !ok {
		return 0.0
	}
	return t.inner.ProbabilityPerCycle(i)
}

func (t *TrafficMap) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	i, ok := t.outerToInner[task]
	if !ok {
		return false
	}
	return t.inner.ShouldGenerate(i, cycle, r)
}

func (t *TrafficMap) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	i, ok := t.outerToInner[task]
	if !ok {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	m, err := t.inner.GenerateMessage(i, cycle, topo, r)
	if err != nil {
		return message.Message{}, err
	}
	m.Origin = t.innerToOuter[m.Origin]
	m.Destination = t.innerToOuter[m.Destination]
	return m, nil
}

func (t *TrafficMap) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	i, ok := t.outerToInner[task]
	if !ok {
		return false
	}
	innerOrigin, okO := t.outerToInner[m.Origin]
	innerDestination, okD := t.outerToInner[m.Destination]
	if !okO || !okD {
		return false
	}
	m.Origin = innerOrigin
	m.Destination = innerDestination
	return t.inner.Consume(i, m, cycle, topo, r)
}

func (t *TrafficMap) IsFinished() bool { return t.inner.IsFinished() }

func (t *TrafficMap) TaskState(task int, cycle message.Cycle) (State, bool) {
	i, ok := t.outerToInner[task]
	if !ok {
		return State{}, false
	}
	return t.inner.TaskState(i, cycle)
}
