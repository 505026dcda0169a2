package traffic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
)

func multimodalKind(total, size int) config.Value {
	return config.Object("Kind", []config.Field{
		{Name: "total", Value: config.Number(float64(total))},
		{Name: "message_size", Value: config.Number(float64(size))},
		{Name: "pattern", Value: config.Object("Uniform", []config.Field{
			{Name: "allow_self", Value: config.Bool(false)},
		})},
	})
}

func multimodalBurstCV(tasks int, kinds ...config.Value) config.Value {
	return config.Object("MultimodalBurst", []config.Field{
		{Name: "tasks", Value: config.Number(float64(tasks))},
		{Name: "kinds", Value: config.Array(kinds)},
	})
}

// Scenario: kinds are served round-robin, and the traffic finishes once
// every kind's quota is exhausted and every message has been consumed.
func TestMultimodalBurstServesKindsRoundRobin(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(9))
	tr := Build(multimodalBurstCV(2, multimodalKind(2, 4), multimodalKind(1, 8)), topo, prng)
	r := rand.New(rand.NewSource(1))

	var sizes []int64
	var outstanding []message.Message
	for cycle := message.Cycle(0); cycle < 4; cycle++ {
		if !tr.ShouldGenerate(0, cycle, r) {
			continue
		}
		m, err := tr.GenerateMessage(0, cycle, topo, r)
		require.NoError(t, err)
		sizes = append(sizes, m.Size)
		outstanding = append(outstanding, m)
	}
	require.Equal(t, []int64{4, 8, 4}, sizes, "kinds must be served round-robin, one message per kind per turn")
	require.False(t, tr.ShouldGenerate(0, 4, r), "both kinds' quotas are exhausted")
	require.False(t, tr.IsFinished(), "messages are still outstanding")

	for _, m := range outstanding {
		require.True(t, tr.Consume(m.Destination, m, 5, topo, r))
	}
	require.True(t, tr.IsFinished(), "finished once every kind's quota is sent and consumed")
}
