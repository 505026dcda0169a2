package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

// Scenario: Uniform{allow_self:false} over (10,10), 200 samples from
// origin 5 with a fixed seed: every index in 0..10 except 5 must appear
// at least once, and 5 must never appear.
func TestUniformExcludesSelfAndCoversRange(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1234))
	p := Build(config.Object("Uniform", nil), prng)
	r := rand.New(rand.NewSource(99))
	p.Initialize(10, 10, nil, r)

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		d := p.GetDestination(5, nil, r)
		require.NotEqual(t, 5, d, "allow_self=false must never return the origin")
		require.GreaterOrEqual(t, d, 0)
		require.Less(t, d, 10)
		seen[d] = true
	}
	for i := 0; i < 10; i++ {
		if i == 5 {
			continue
		}
		require.Truef(t, seen[i], "destination %d never appeared across 200 samples", i)
	}
}

func TestUniformAllowSelfCanReturnOrigin(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("Uniform", []config.Field{{Name: "allow_self", Value: config.Bool(true)}})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(7))
	p.Initialize(4, 4, nil, r)

	sawSelf := false
	for i := 0; i < 500; i++ {
		if p.GetDestination(2, nil, r) == 2 {
			sawSelf = true
			break
		}
	}
	require.True(t, sawSelf, "allow_self=true should eventually return the origin")
}

func TestUniformPanicsBeforeInitialize(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	p := Build(config.Object("Uniform", nil), prng)
	require.Panics(t, func() {
		p.GetDestination(0, nil, rand.New(rand.NewSource(1)))
	})
}
