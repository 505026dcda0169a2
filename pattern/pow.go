package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Pow composes a pattern with itself a fixed number of times. Grounded on
// original_source/src/pattern/operations.rs's Pow.
type Pow struct {
	base
	pattern  Pattern
	exponent int
}

func init() {
	Register("Pow", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &Pow{
			pattern:  Build(cv.RequireField("Pow", "pattern"), prng),
			exponent: cv.RequireField("Pow", "exponent").AsUsize("Pow", "exponent"),
		}
	})
}

func (p *Pow) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Pow", sourceSize, targetSize)
	p.pattern.Initialize(sourceSize, targetSize, topo, r)
}

func (p *Pow) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	destination := origin
	for i := 0; i < p.exponent; i++ {
		destination = p.pattern.GetDestination(destination, topo, r)
	}
	return destination
}
