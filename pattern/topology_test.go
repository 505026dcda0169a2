package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/rng"
)

// UniformDistance over an 8-router ring with 1 server per router: every
// server is at ring-distance 1 from exactly two others (its neighbours),
// so distance=1 must always resolve to one of those two servers.
func TestUniformDistanceOverRing(t *testing.T) {
	topo := testtopology.New(8, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("UniformDistance", []config.Field{{Name: "distance", Value: config.Number(1)}})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(8, 8, topo, r)

	for origin := 0; origin < 8; origin++ {
		for i := 0; i < 20; i++ {
			d := p.GetDestination(origin, topo, r)
			expectedNeighbours := []int{(origin + 1) % 8, (origin - 1 + 8) % 8}
			require.Contains(t, expectedNeighbours, d)
		}
	}
}

func TestUniformDistanceRequiresDivisorSize(t *testing.T) {
	topo := testtopology.New(8, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("UniformDistance", []config.Field{{Name: "distance", Value: config.Number(1)}})
	p := Build(cv, prng)
	require.Panics(t, func() {
		p.Initialize(9, 9, topo, rand.New(rand.NewSource(1)))
	})
}

// RestrictedMiddleUniform with a maximum_index that excludes every router
// must fall back to elsePattern.
func TestRestrictedMiddleUniformFallsBackToElse(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("RestrictedMiddleUniform", []config.Field{
		{Name: "distances_to_source", Value: config.Array([]config.Value{config.Number(100)})},
		{Name: "else", Value: config.Object("Identity", nil)},
	})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(6, 6, topo, r)
	for origin := 0; origin < 6; origin++ {
		require.Equal(t, origin, p.GetDestination(origin, topo, r))
	}
}

func TestRestrictedMiddleUniformPanicsWithoutElseAndEmptyPool(t *testing.T) {
	topo := testtopology.New(6, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("RestrictedMiddleUniform", []config.Field{
		{Name: "distances_to_source", Value: config.Array([]config.Value{config.Number(100)})},
	})
	p := Build(cv, prng)
	require.Panics(t, func() {
		p.Initialize(6, 6, topo, rand.New(rand.NewSource(1)))
	})
}

// Components over a ring with the ring's own link class disallowed treats
// every router as its own singleton component, so the pattern degenerates
// to routing within a single-server component: destination must equal the
// server attached to the same router as the origin.
func TestComponentsPatternWithDisallowedLinkClassIsPerRouter(t *testing.T) {
	topo := testtopology.New(5, 1)
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("Components", []config.Field{
		{Name: "component_classes", Value: config.Array([]config.Value{})},
		{Name: "global_pattern", Value: config.Object("Identity", nil)},
	})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(5, 5, topo, r)
	for origin := 0; origin < 5; origin++ {
		require.Equal(t, origin, p.GetDestination(origin, topo, r))
	}
}
