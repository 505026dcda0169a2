package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

// Scenario: RandomInvolution over (8,8): P(P(x))==x and P(x)!=x for every x.
func TestRandomInvolutionIsFixedPointFree(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(3))
	p := Build(config.Object("RandomInvolution", nil), prng)
	r := rand.New(rand.NewSource(3))
	p.Initialize(8, 8, nil, r)

	for x := 0; x < 8; x++ {
		px := p.GetDestination(x, nil, r)
		require.NotEqual(t, x, px, "involution must not have fixed points")
		require.Equal(t, x, p.GetDestination(px, nil, r), "applying the involution twice must return the origin")
	}
}

func TestRandomInvolutionRequiresEvenSize(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	p := Build(config.Object("RandomInvolution", nil), prng)
	require.Panics(t, func() {
		p.Initialize(7, 7, nil, rand.New(rand.NewSource(1)))
	})
}

func TestRandomInvolutionIsBijection(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(11))
	p := Build(config.Object("RandomInvolution", nil), prng)
	r := rand.New(rand.NewSource(11))
	const n = 16
	p.Initialize(n, n, nil, r)

	seen := make([]bool, n)
	for x := 0; x < n; x++ {
		d := p.GetDestination(x, nil, r)
		require.False(t, seen[d], "involution must be a bijection")
		seen[d] = true
	}
}
