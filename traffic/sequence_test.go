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

func sequenceCV(members ...config.Value) config.Value {
	return config.Object("Sequence", []config.Field{
		{Name: "traffics", Value: config.Array(members)},
	})
}

// Scenario: Sequence runs its members one at a time, only advancing to the
// next once the current one is finished.
func TestSequenceAdvancesOnceMemberFinishes(t *testing.T) {
	topo := testtopology.New(3, 1)
	prng := rng.New(rng.NewSimulationKey(15))
	tr := Build(sequenceCV(burstCV(3, 1, 8), burstCV(3, 1, 8)), topo, prng)
	r := rand.New(rand.NewSource(1))

	var cycle message.Cycle
	firstRoundOutstanding := []message.Message{}
	for task := 0; task < 3; task++ {
		require.True(t, tr.ShouldGenerate(task, cycle, r))
		m, err := tr.GenerateMessage(task, cycle, topo, r)
		require.NoError(t, err)
		firstRoundOutstanding = append(firstRoundOutstanding, m)
	}
	// The first member's quota is exhausted but not yet consumed, so
	// Sequence must still be serving it, not the second member.
	require.False(t, tr.ShouldGenerate(0, cycle+1, r), "first member's quota is exhausted; Sequence must not yet expose the second member's readiness without a consume")

	cycle++
	for _, m := range firstRoundOutstanding {
		require.True(t, tr.Consume(m.Destination, m, cycle, topo, r))
	}

	require.True(t, tr.ShouldGenerate(0, cycle, r), "Sequence must advance to the second member once the first finishes")
}

func TestSequenceFinishesAfterAllMembers(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(16))
	cv := config.Object("Sequence", []config.Field{
		{Name: "traffics", Value: config.Array([]config.Value{burstCV(2, 1, 8)})},
		{Name: "period_number", Value: config.Number(1)},
	})
	tr := Build(cv, topo, prng)
	r := rand.New(rand.NewSource(1))

	require.False(t, tr.IsFinished())
	m0, err := tr.GenerateMessage(0, 0, topo, r)
	require.NoError(t, err)
	m1, err := tr.GenerateMessage(1, 0, topo, r)
	require.NoError(t, err)
	require.True(t, tr.Consume(m0.Destination, m0, 1, topo, r))
	require.True(t, tr.Consume(m1.Destination, m1, 1, topo, r))

	require.True(t, tr.IsFinished(), "Sequence with a single, now-finished member must itself be finished")
}
