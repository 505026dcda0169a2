package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

func TestInmediateSequencePatternPlaysBackPerOriginIndependently(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("InmediateSequencePattern", []config.Field{
		{Name: "sequence", Value: config.Array([]config.Value{config.Number(2), config.Number(1), config.Number(0)})},
	})
	p := Build(cv, prng)
	p.Initialize(2, 3, nil, nil)

	require.Equal(t, 2, p.GetDestination(0, nil, nil))
	require.Equal(t, 1, p.GetDestination(0, nil, nil))
	require.Equal(t, 0, p.GetDestination(0, nil, nil))
	require.Equal(t, 0, p.GetDestination(0, nil, nil)) // exhausted: returns 0

	// A different origin has an independent, unexhausted cursor.
	require.Equal(t, 2, p.GetDestination(1, nil, nil))
}

// ElementComposition chains destination(n+1) = pattern(destination(n)),
// starting from origin; over a Circulant(+1) this walks the full cycle.
func TestElementCompositionChainsState(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("ElementComposition", []config.Field{
		{Name: "pattern", Value: config.Object("Circulant", []config.Field{{Name: "generators", Value: config.Array([]config.Value{config.Number(1)})}})},
	})
	p := Build(cv, prng)
	p.Initialize(4, 4, nil, nil)

	require.Equal(t, 1, p.GetDestination(0, nil, nil))
	require.Equal(t, 2, p.GetDestination(0, nil, nil))
	require.Equal(t, 3, p.GetDestination(0, nil, nil))
	require.Equal(t, 0, p.GetDestination(0, nil, nil))
}
