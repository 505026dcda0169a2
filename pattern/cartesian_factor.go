package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CartesianFactor maps a Cartesian origin to a scalar destination via a
// per-dimension floating point factor: destination = floor(sum(coord*factor))
// mod target_size. Grounded on
// original_source/src/pattern/transformations.rs's CartesianFactor.
type CartesianFactor struct {
	base
	data    cartesian.Data
	factors []float64
}

func init() {
	Register("CartesianFactor", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sides := cv.RequireField("CartesianFactor", "sides").UsizeArray("CartesianFactor", "sides")
		factors := cv.RequireField("CartesianFactor", "factors").Float64Array("CartesianFactor", "factors")
		return &CartesianFactor{data: cartesian.New(sides), factors: factors}
	})
}

func (p *CartesianFactor) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if sourceSize != p.data.Size {
		panic(fmt.Sprintf("pattern.CartesianFactor: sizes do not agree. source_size=%d, cartesian size=%d", sourceSize, p.data.Size))
	}
	p.markInitialized("CartesianFactor", sourceSize, targetSize)
}

func (p *CartesianFactor) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	up := p.data.Unpack(origin)
	sum := 0.0
	for i, coord := range up {
		sum += float64(coord) * p.factors[i]
	}
	return int(sum) % p.targetSize
}
