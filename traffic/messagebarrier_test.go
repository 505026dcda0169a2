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

func messageBarrierCV(messagesPerTask, messagesBeforeBarrier int) config.Value {
	return config.Object("MessageBarrier", []config.Field{
		{Name: "traffic", Value: burstCV(2, messagesPerTask, 8)},
		{Name: "messages_before_barrier", Value: config.Number(float64(messagesBeforeBarrier))},
	})
}

// Scenario: between two barrier openings, no task's sent count exceeds
// messages_before_barrier, and the barrier only resets once every task has
// both sent and had consumed its full quota. With tasks=2 and Uniform's
// allow_self:false pattern, routing is deterministic (0<->1), so every
// sent message is guaranteed a consumer.
func TestMessageBarrierCapsSentCountBetweenOpenings(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(8))
	tr := Build(messageBarrierCV(2, 2), topo, prng)
	r := rand.New(rand.NewSource(3))

	sent := make([]int, 2)
	var outstanding []message.Message
	for cycle := message.Cycle(0); cycle < 10; cycle++ {
		for task := 0; task < 2; task++ {
			if !tr.ShouldGenerate(task, cycle, r) {
				continue
			}
			m, err := tr.GenerateMessage(task, cycle, topo, r)
			require.NoError(t, err)
			sent[task]++
			require.LessOrEqual(t, sent[task], 2, "no task may send past messages_before_barrier before a reset")
			outstanding = append(outstanding, m)
		}
	}
	require.Equal(t, []int{2, 2}, sent, "every task must stop exactly at its quota once at the barrier")

	for _, m := range outstanding {
		require.True(t, tr.Consume(m.Destination, m, 10, topo, r))
	}
	require.True(t, tr.ShouldGenerate(0, 11, r), "the barrier must reset once every task has sent and consumed its full quota")
}
