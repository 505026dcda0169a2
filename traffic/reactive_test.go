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

func reactiveBurstCV(tasks, size int) config.Value {
	return config.Object("Burst", []config.Field{
		{Name: "tasks", Value: config.Number(float64(tasks))},
		{Name: "messages_per_task", Value: config.Number(1)},
		{Name: "message_size", Value: config.Number(float64(size))},
		{Name: "pattern", Value: config.Object("Uniform", []config.Field{
			{Name: "allow_self", Value: config.Bool(false)},
		})},
	})
}

func reactiveCV(tasks int) config.Value {
	return config.Object("Reactive", []config.Field{
		{Name: "action_traffic", Value: reactiveBurstCV(tasks, 8)},
		{Name: "reaction_traffic", Value: reactiveBurstCV(tasks, 4)},
	})
}

// Scenario: a reaction must be attributed to the original sender of the
// action message, not to whichever task happened to consume it, and the
// reply itself must be the one decided at consume time rather than
// re-derived later.
func TestReactiveQueuesReplyToOriginalSenderNotConsumer(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(3))
	tr := Build(reactiveCV(2), topo, prng)
	r := rand.New(rand.NewSource(11))

	cycle := message.Cycle(0)
	m0, err := tr.GenerateMessage(0, cycle, topo, r)
	require.NoError(t, err)
	require.Equal(t, 0, m0.Origin)
	require.Equal(t, 1, m0.Destination)

	m1, err := tr.GenerateMessage(1, cycle, topo, r)
	require.NoError(t, err)
	require.Equal(t, 1, m1.Origin)
	require.Equal(t, 0, m1.Destination)

	// Task 1 consumes the action message task 0 sent it; the reaction is
	// owed by task 0 (the sender), not task 1 (the consumer).
	require.True(t, tr.Consume(1, m0, cycle, topo, r))
	// Task 0 consumes the action message task 1 sent it; the reaction is
	// owed by task 1.
	require.True(t, tr.Consume(0, m1, cycle, topo, r))

	cycle++
	require.True(t, tr.ShouldGenerate(0, cycle, r), "task 0 must have a reaction queued, not task 1")
	reply, err := tr.GenerateMessage(0, cycle, topo, r)
	require.NoError(t, err)
	require.Equal(t, 0, reply.Origin, "the reply must originate from the sender that was owed a reaction")
	require.Equal(t, int64(4), reply.Size, "the reply must come from reaction_traffic, not action_traffic")

	require.True(t, tr.ShouldGenerate(1, cycle, r), "task 1 must also have a reaction queued")
	reply1, err := tr.GenerateMessage(1, cycle, topo, r)
	require.NoError(t, err)
	require.Equal(t, 1, reply1.Origin)
}

// Scenario: once a reply is generated, a task with no further pending
// reactions falls back to action_traffic.
func TestReactiveFallsBackToActionAfterReplyDrained(t *testing.T) {
	topo := testtopology.New(2, 1)
	prng := rng.New(rng.NewSimulationKey(4))
	tr := Build(reactiveCV(2), topo, prng)
	r := rand.New(rand.NewSource(2))

	cycle := message.Cycle(0)
	m0, err := tr.GenerateMessage(0, cycle, topo, r)
	require.NoError(t, err)
	require.True(t, tr.Consume(1, m0, cycle, topo, r))

	cycle++
	require.True(t, tr.ShouldGenerate(0, cycle, r))
	_, err = tr.GenerateMessage(0, cycle, topo, r)
	require.NoError(t, err)

	// Task 0's single reaction has been drained; action_traffic's quota
	// was already spent in the first cycle, so it should have nothing
	// left to generate.
	require.False(t, tr.ShouldGenerate(0, cycle, r))
}
