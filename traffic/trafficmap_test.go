package traffic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/rng"
)

func embeddedMapCV(pairs [][2]int) config.Value {
	vals := make([]config.Value, len(pairs))
	for i, p := range pairs {
		vals[i] = config.Array([]config.Value{
			config.Number(float64(p[0])),
			config.Number(float64(p[1])),
		})
	}
	return config.Object("EmbeddedMap", []config.Field{
		{Name: "map", Value: config.Array(vals)},
	})
}

func trafficMapCV(tasks int, mapper config.Value, inner config.Value) config.Value {
	return config.Object("TrafficMap", []config.Field{
		{Name: "tasks", Value: config.Number(float64(tasks))},
		{Name: "map", Value: mapper},
		{Name: "traffic", Value: inner},
	})
}

// Scenario: TrafficMap injects a 2-task inner traffic into a larger 4-task
// outer space via an explicit map; tasks outside the map's image are not
// served, and a generated message's endpoints are translated to outer
// indices so a peer TrafficMap-mapped task can consume it.
func TestTrafficMapInjectsIntoLargerOuterSpace(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(24))
	mapper := embeddedMapCV([][2]int{{0, 1}, {1, 3}})
	tr := Build(trafficMapCV(4, mapper, burstCV(2, 1, 8)), topo, prng)
	r := rand.New(rand.NewSource(1))

	require.Equal(t, 4, tr.NumberTasks())

	_, ok := tr.TaskState(0, 0)
	require.False(t, ok, "outer task 0 has no inner task mapped to it")
	require.False(t, tr.ShouldGenerate(2, 0, r), "outer task 2 has no inner task mapped to it")

	require.True(t, tr.ShouldGenerate(1, 0, r), "outer task 1 is inner task 0")
	m, err := tr.GenerateMessage(1, 0, topo, r)
	require.NoError(t, err)
	require.Equal(t, 1, m.Origin)
	require.Equal(t, 3, m.Destination, "inner destination 1 must be translated to outer task 3")

	require.True(t, tr.Consume(m.Destination, m, 0, topo, r))
}

// Scenario: a map sending two inner tasks onto the same outer task is a
// construction-time panic.
func TestTrafficMapPanicsOnCollision(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(24))
	mapper := embeddedMapCV([][2]int{{0, 1}, {1, 1}})

	require.Panics(t, func() {
		Build(trafficMapCV(4, mapper, burstCV(2, 1, 8)), topo, prng)
	})
}
