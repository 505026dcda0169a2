package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Identity requires source_size == target_size; f(x) = x.
type Identity struct {
	base
}

func init() {
	Register("Identity", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &Identity{}
	})
}

func (p *Identity) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("Identity", sourceSize, targetSize)
	p.markInitialized("Identity", sourceSize, targetSize)
}

func (p *Identity) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	return origin
}
