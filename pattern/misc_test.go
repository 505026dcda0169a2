package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

func TestRoundRobinCyclesThroughPatternsPerOrigin(t *testing.T) {
	rr := &RoundRobin{patterns: []Pattern{&constantPattern{target: 1}, &constantPattern{target: 2}, &constantPattern{target: 3}}}
	rr.Initialize(2, 4, nil, nil)
	require.Equal(t, 1, rr.GetDestination(0, nil, nil))
	require.Equal(t, 2, rr.GetDestination(0, nil, nil))
	require.Equal(t, 3, rr.GetDestination(0, nil, nil))
	require.Equal(t, 1, rr.GetDestination(0, nil, nil))
	// A different origin has its own independent cursor.
	require.Equal(t, 1, rr.GetDestination(1, nil, nil))
}

func TestRoundRobinRequiresAtLeastOnePattern(t *testing.T) {
	rr := &RoundRobin{}
	require.Panics(t, func() {
		rr.Initialize(2, 2, nil, nil)
	})
}

func TestSwitchRoutesByIndexingPattern(t *testing.T) {
	sw := &Switch{
		indexing: &constantPattern{target: 1},
		patterns: []Pattern{&constantPattern{target: 10}, &constantPattern{target: 20}},
	}
	sw.Initialize(3, 30, nil, rand.New(rand.NewSource(1)))
	require.Equal(t, 20, sw.GetDestination(0, nil, nil))
}

func TestRandomMixRespectsWeightExtremes(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("RandomMix", []config.Field{
		{Name: "patterns", Value: config.Array([]config.Value{
			config.Object("Identity", nil),
			config.Object("Identity", nil),
		})},
		{Name: "weights", Value: config.Array([]config.Value{config.Number(1), config.Number(0)})},
	})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(5, 5, nil, r)
	for i := 0; i < 20; i++ {
		require.Equal(t, 2, p.GetDestination(2, nil, r))
	}
}

func TestHotspotsSamplesOnlyFromConfiguredPool(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("Hotspots", []config.Field{
		{Name: "destinations", Value: config.Array([]config.Value{config.Number(3), config.Number(7)})},
	})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(10, 10, nil, r)
	for i := 0; i < 50; i++ {
		require.Contains(t, []int{3, 7}, p.GetDestination(0, nil, r))
	}
}

func TestHotspotsRequiresNonEmptyPool(t *testing.T) {
	p := Build(config.Object("Hotspots", nil), rng.New(rng.NewSimulationKey(1)))
	require.Panics(t, func() {
		p.Initialize(10, 10, nil, rand.New(rand.NewSource(1)))
	})
}

func TestEmbeddedMapAppliesExplicitPairs(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("EmbeddedMap", []config.Field{
		{Name: "map", Value: config.Array([]config.Value{
			config.Array([]config.Value{config.Number(0), config.Number(2)}),
			config.Array([]config.Value{config.Number(1), config.Number(0)}),
		})},
	})
	p := Build(cv, prng)
	p.Initialize(3, 3, nil, nil)
	require.Equal(t, 2, p.GetDestination(0, nil, nil))
	require.Equal(t, 0, p.GetDestination(1, nil, nil))
	require.Panics(t, func() { p.GetDestination(2, nil, nil) })
}

func TestEmbeddedMapDuplicateOriginPanics(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("EmbeddedMap", []config.Field{
		{Name: "map", Value: config.Array([]config.Value{
			config.Array([]config.Value{config.Number(0), config.Number(1)}),
			config.Array([]config.Value{config.Number(0), config.Number(2)}),
		})},
	})
	require.Panics(t, func() {
		Build(cv, prng)
	})
}

func TestDebugForwardsAndDetectsNonPermutation(t *testing.T) {
	d := &Debug{pattern: &constantPattern{target: 0}, checkPermutation: true}
	require.Panics(t, func() {
		d.Initialize(3, 3, nil, rand.New(rand.NewSource(1)))
	})
}

func TestDebugForwardsDestinationUnchanged(t *testing.T) {
	d := &Debug{pattern: &identityUpTo{}}
	d.Initialize(5, 5, nil, rand.New(rand.NewSource(1)))
	for x := 0; x < 5; x++ {
		require.Equal(t, x, d.GetDestination(x, nil, rand.New(rand.NewSource(1))))
	}
}

// Stencil over a 1-D task space of 4 must alternate between the successor
// (shift +1) and predecessor (shift -1) neighbour.
func TestStencilAlternatesSuccessorAndPredecessor(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("Stencil", []config.Field{
		{Name: "task_space", Value: config.Array([]config.Value{config.Number(4)})},
	})
	p := Build(cv, prng)
	r := rand.New(rand.NewSource(1))
	p.Initialize(4, 4, nil, r)
	require.Equal(t, 1, p.GetDestination(0, nil, r))
	require.Equal(t, 3, p.GetDestination(0, nil, r))
	require.Equal(t, 1, p.GetDestination(0, nil, r))
}

func TestLinearTransformAppliesMatrixModTargetSides(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("LinearTransform", []config.Field{
		{Name: "source_size", Value: config.Array([]config.Value{config.Number(4)})},
		{Name: "target_size", Value: config.Array([]config.Value{config.Number(4)})},
		{Name: "matrix", Value: config.Array([]config.Value{
			config.Array([]config.Value{config.Number(3)}),
		})},
	})
	p := Build(cv, prng)
	p.Initialize(4, 4, nil, nil)
	// 3*3 mod 4 = 1
	require.Equal(t, 1, p.GetDestination(3, nil, nil))
}

func TestCartesianFactorWeightsDimensions(t *testing.T) {
	prng := rng.New(rng.NewSimulationKey(1))
	cv := config.Object("CartesianFactor", []config.Field{
		{Name: "sides", Value: config.Array([]config.Value{config.Number(4), config.Number(4)})},
		{Name: "factors", Value: config.Array([]config.Value{config.Number(1), config.Number(2)})},
	})
	p := Build(cv, prng)
	p.Initialize(16, 100, nil, nil)
	data := cartesian.New([]int{4, 4})
	origin := data.Pack([]int{1, 3}) // 1*1 + 3*2 = 7
	require.Equal(t, 7, p.GetDestination(origin, nil, nil))
}

func TestProductPatternIsKroneckerOfBlockAndGlobal(t *testing.T) {
	block := &identityUpTo{}
	global := &constantPattern{target: 1}
	pp := &ProductPattern{blockSize: 3, blockPattern: block, globalPattern: global}
	pp.Initialize(9, 9, nil, nil)
	// origin 4 = block 1, local 1 -> global dest 1, local dest 1 -> 1*3+1=4
	require.Equal(t, 4, pp.GetDestination(4, nil, nil))
}
