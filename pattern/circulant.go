package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Circulant: f(x) = (x + g) mod size where g is sampled uniformly from a
// configured, non-empty generator list at each call. Modulus uses
// Euclidean remainder (non-negative result).
// Grounded on original_source/src/pattern/probabilistic.rs's Circulant.
type Circulant struct {
	base
	generators []int
}

func init() {
	Register("Circulant", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		gens := cv.RequireField("Circulant", "generators").IntArray("Circulant", "generators")
		if len(gens) == 0 {
			panic("pattern.Circulant: cannot build with an empty set of generators")
		}
		return &Circulant{generators: gens}
	})
}

func (p *Circulant) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Circulant", sourceSize, targetSize)
}

func (p *Circulant) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	g := p.generators[r.Intn(len(p.generators))]
	size := p.targetSize
	d := (origin + g) % size
	if d < 0 {
		d += size
	}
	return d
}
