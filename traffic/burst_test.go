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

func burstCV(tasks, messagesPerTask, size int) config.Value {
	return config.Object("Burst", []config.Field{
		{Name: "tasks", Value: config.Number(float64(tasks))},
		{Name: "messages_per_task", Value: config.Number(float64(messagesPerTask))},
		{Name: "message_size", Value: config.Number(float64(size))},
		{Name: "pattern", Value: config.Object("Uniform", nil)},
	})
}

// Scenario: Burst terminates — every task exhausts its quota and every
// generated message is eventually consumed, at which point IsFinished is
// true and stays true.
func TestBurstTerminates(t *testing.T) {
	topo := testtopology.New(5, 1)
	prng := rng.New(rng.NewSimulationKey(42))
	tr := Build(burstCV(5, 3, 8), topo, prng)
	r := rand.New(rand.NewSource(7))

	require.False(t, tr.IsFinished())

	var cycle message.Cycle
	outstanding := map[int][]message.Message{}
	for cycle = 0; cycle < 1000 && !tr.IsFinished(); cycle++ {
		for task := 0; task < tr.NumberTasks(); task++ {
			if tr.ShouldGenerate(task, cycle, r) {
				m, err := tr.GenerateMessage(task, cycle, topo, r)
				require.NoError(t, err)
				outstanding[m.Destination] = append(outstanding[m.Destination], m)
			}
		}
		for task, msgs := range outstanding {
			for _, m := range msgs {
				require.True(t, tr.Consume(task, m, cycle, topo, r))
			}
			delete(outstanding, task)
		}
	}

	require.True(t, tr.IsFinished(), "Burst must terminate once every task's quota is generated and consumed")
	require.True(t, tr.IsFinished(), "IsFinished must stay true once reached")
}

func TestBurstRejectsOutOfRangeOrigin(t *testing.T) {
	topo := testtopology.New(3, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	tr := Build(burstCV(3, 1, 8), topo, prng)
	r := rand.New(rand.NewSource(1))

	_, err := tr.GenerateMessage(3, 0, topo, r)
	require.ErrorIs(t, err, ErrOriginOutsideTraffic)
}
