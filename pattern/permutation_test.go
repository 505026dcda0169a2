package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

func TestRandomPermutationIsBijection(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(9))
	p := Build(config.Object("RandomPermutation", nil), prng)
	r := rand.New(rand.NewSource(9))
	const n = 30
	p.Initialize(n, n, nil, r)

	seen := make([]bool, n)
	for x := 0; x < n; x++ {
		d := p.GetDestination(x, nil, r)
		require.GreaterOrEqual(t, d, 0)
		require.Less(t, d, n)
		require.False(t, seen[d])
		seen[d] = true
	}
}

// Reproducibility: identical config + seed must yield byte-identical
// destinations across runs (spec.md determinism requirement), exercised
// here via RandomPermutation's optional internal "seed" field, which makes
// the permutation independent of the shared RNG stream.
func TestRandomPermutationWithSeedIsReproducibleAcrossGlobalRNGs(t *testing.T) {
	build := func(globalSeed int64) Pattern {
		prng := rng.New(rng.NewSimulationKey(1))
		cv := config.Object("RandomPermutation", []config.Field{{Name: "seed", Value: config.Number(55)}})
		p := Build(cv, prng)
		p.Initialize(12, 12, nil, rand.New(rand.NewSource(globalSeed)))
		return p
	}
	p1 := build(1)
	p2 := build(999)
	for x := 0; x < 12; x++ {
		require.Equal(t, p1.GetDestination(x, nil, nil), p2.GetDestination(x, nil, nil))
	}
}
