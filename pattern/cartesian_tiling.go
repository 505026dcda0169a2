package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CartesianTiling extends a base pattern by giving it a Cartesian
// representation and a number of repetitions per dimension: it translates
// a permutation on a small Cartesian space into one on a larger space
// formed by repeating it along each dimension. Grounded on
// original_source/src/pattern/transformations.rs's CartesianTiling.
type CartesianTiling struct {
	base
	pattern     Pattern
	baseData    cartesian.Data
	repetitions []int
	finalData   cartesian.Data
}

func init() {
	Register("CartesianTiling", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sides := cv.RequireField("CartesianTiling", "sides").UsizeArray("CartesianTiling", "sides")
		repetitions := cv.RequireField("CartesianTiling", "repetitions").UsizeArray("CartesianTiling", "repetitions")
		pat := Build(cv.RequireField("CartesianTiling", "pattern"), prng)
		baseData := cartesian.New(sides)
		finalSides := make([]int, len(sides))
		for i, s := range sides {
			finalSides[i] = s * repetitions[i]
		}
		return &CartesianTiling{
			pattern:     pat,
			baseData:    baseData,
			repetitions: repetitions,
			finalData:   cartesian.New(finalSides),
		}
	})
}

func (p *CartesianTiling) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	factor := 1
	for _, rep := range p.repetitions {
		factor *= rep
	}
	p.markInitialized("CartesianTiling", sourceSize, targetSize)
	baseSourceSize := sourceSize / factor
	baseTargetSize := targetSize / factor
	p.pattern.Initialize(baseSourceSize, baseTargetSize, topo, r)
}

func (p *CartesianTiling) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	upOrigin := p.finalData.Unpack(origin)
	n := len(upOrigin)
	baseUpOrigin := make([]int, n)
	for i := 0; i < n; i++ {
		baseUpOrigin[i] = upOrigin[i] % p.baseData.Sides[i]
	}
	baseOrigin := p.baseData.Pack(baseUpOrigin)
	baseDestination := p.pattern.GetDestination(baseOrigin, topo, r)
	baseUpDestination := p.baseData.Unpack(baseDestination)
	upDestination := make([]int, n)
	for i := 0; i < n; i++ {
		size := p.baseData.Sides[i]
		tile := upOrigin[i] / size
		upDestination[i] = baseUpDestination[i] + size*tile
	}
	return p.finalData.Pack(upDestination)
}
