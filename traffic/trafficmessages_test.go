package traffic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/rng"
)

func trafficMessagesCV(numMessages int, perTaskLimit *int, inner config.Value) config.Value {
	fields := []config.Field{
		{Name: "traffic", Value: inner},
		{Name: "num_messages", Value: config.Number(float64(numMessages))},
	}
	if perTaskLimit != nil {
		fields = append(fields, config.Field{Name: "num_messages_per_task", Value: config.Number(float64(*perTaskLimit))})
	}
	return config.Object("Messages", fields)
}

// Scenario: Messages stops all generation once the global cap of messages
// has been generated, even though the wrapped traffic itself never finishes.
func TestTrafficMessagesStopsAtGlobalCap(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(25))
	tr := Build(trafficMessagesCV(2, nil, homogeneousCVForSum(2, 8.0, 8.0)), topo, prng)
	r := rand.New(rand.NewSource(1))

	require.False(t, tr.IsFinished())

	require.True(t, tr.ShouldGenerate(0, 0, r))
	m1, err := tr.GenerateMessage(0, 0, topo, r)
	require.NoError(t, err)
	require.True(t, tr.Consume(m1.Destination, m1, 0, topo, r))

	require.True(t, tr.ShouldGenerate(1, 0, r))
	m2, err := tr.GenerateMessage(1, 0, topo, r)
	require.NoError(t, err)
	require.True(t, tr.Consume(m2.Destination, m2, 0, topo, r))

	require.True(t, tr.IsFinished(), "global cap of 2 messages reached")
	require.False(t, tr.ShouldGenerate(0, 1, r), "no further generation once the cap is hit")
	state, ok := tr.TaskState(0, 1)
	require.True(t, ok)
	require.Equal(t, FinishedGenerating, state.Kind)
}

// Scenario: a per-task limit additionally bounds a single task's
// contribution below the global cap.
func TestTrafficMessagesEnforcesPerTaskLimit(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(26))
	limit := 1
	tr := Build(trafficMessagesCV(10, &limit, burstCV(2, 5, 8)), topo, prng)
	r := rand.New(rand.NewSource(1))

	require.True(t, tr.ShouldGenerate(0, 0, r))
	m, err := tr.GenerateMessage(0, 0, topo, r)
	require.NoError(t, err)
	require.True(t, tr.Consume(m.Destination, m, 0, topo, r))

	require.False(t, tr.ShouldGenerate(0, 1, r), "task 0 already hit its per-task limit of 1")
	require.True(t, tr.ShouldGenerate(1, 0, r), "task 1's own per-task limit is untouched")
}
