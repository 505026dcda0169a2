package traffic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/stats"
)

// Scenario: Sum payload round-trip — a message generated through one of
// Sum's children carries enough header information (the child index) that
// Consume routes it back to the same child and that child accepts it,
// regardless of which child produced it.
func TestSumRoutesConsumeBackToGeneratingChild(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(17))
	cv := config.Object("Sum", []config.Field{
		{Name: "traffics", Value: config.Array([]config.Value{
			burstCV(6, 4, 8),
			burstCV(6, 4, 8),
		})},
	})
	tr := Build(cv, topo, prng)
	r := rand.New(rand.NewSource(3))

	var cycle message.Cycle
	generatedAny := false
	for cycle = 0; cycle < 200 && !tr.IsFinished(); cycle++ {
		for task := 0; task < tr.NumberTasks(); task++ {
			if !tr.ShouldGenerate(task, cycle, r) {
				continue
			}
			m, err := tr.GenerateMessage(task, cycle, topo, r)
			require.NoError(t, err)
			generatedAny = true
			require.True(t, tr.Consume(m.Destination, m, cycle, topo, r),
				"Sum must route a generated message's payload back to the child that produced it")
		}
	}
	require.True(t, generatedAny, "test setup should have produced at least one message")
}

func homogeneousCVForSum(tasks int, load, size float64) config.Value {
	return config.Object("HomogeneousTraffic", []config.Field{
		{Name: "tasks", Value: config.Number(float64(tasks))},
		{Name: "load", Value: config.Number(load)},
		{Name: "message_size", Value: config.Number(size)},
		{Name: "pattern", Value: config.Object("Uniform", nil)},
	})
}

// Scenario: Sum must not re-probe a probabilistic child's ShouldGenerate
// between ShouldGenerate and the matching GenerateMessage. Homogeneous
// draws r.Float32() inside ShouldGenerate, so re-probing with an advanced
// RNG state could pick a different child or find none ready, breaking the
// contract that GenerateMessage may be called whenever ShouldGenerate just
// returned true for that task/cycle.
func TestSumCachesShouldGenerateDecisionForProbabilisticChild(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(23))
	cv := config.Object("Sum", []config.Field{
		{Name: "traffics", Value: config.Array([]config.Value{
			homogeneousCVForSum(6, 0.5, 1.0),
		})},
	})
	tr := Build(cv, topo, prng)
	r := rand.New(rand.NewSource(5))

	for cycle := message.Cycle(0); cycle < 500; cycle++ {
		for task := 0; task < tr.NumberTasks(); task++ {
			if !tr.ShouldGenerate(task, cycle, r) {
				continue
			}
			m, err := tr.GenerateMessage(task, cycle, topo, r)
			require.NoError(t, err, "GenerateMessage must succeed whenever ShouldGenerate just returned true")
			require.True(t, tr.Consume(m.Destination, m, cycle, topo, r))
		}
	}
}

func TestSumStatisticsTracksPerChildCounts(t *testing.T) {
	topo := testtopology.New(4, 1)
	prng := rng.New(rng.NewSimulationKey(5))
	cv := config.Object("Sum", []config.Field{
		{Name: "traffics", Value: config.Array([]config.Value{
			burstCV(4, 2, 8),
		})},
	})
	tr := Build(cv, topo, prng)
	r := rand.New(rand.NewSource(9))

	var cycle message.Cycle
	for cycle = 0; cycle < 100 && !tr.IsFinished(); cycle++ {
		for task := 0; task < tr.NumberTasks(); task++ {
			if !tr.ShouldGenerate(task, cycle, r) {
				continue
			}
			m, err := tr.GenerateMessage(task, cycle, topo, r)
			require.NoError(t, err)
			require.True(t, tr.Consume(m.Destination, m, cycle, topo, r))
		}
	}

	src, ok := tr.(StatisticsSource)
	require.True(t, ok, "Sum must implement StatisticsSource")
	snap, ok := src.Statistics().(*stats.TrafficStatistics)
	require.True(t, ok)
	require.Len(t, snap.SubTraffics, 1)
	require.Equal(t, snap.SubTraffics[0].Totals.CreatedMessages, snap.SubTraffics[0].Totals.ConsumedMessages,
		"every generated message was consumed in this test")
	require.EqualValues(t, 8, snap.SubTraffics[0].Totals.CreatedMessages, "4 tasks * 2 messages_per_task")
	require.Equal(t, snap.Totals.CreatedMessages, snap.SubTraffics[0].Totals.CreatedMessages)
}
