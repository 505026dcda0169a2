package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RandomPermutation produces, at Initialize, a uniformly random permutation
// of 0..N. If the config carries an optional "seed" field, an internal RNG
// independent of the global RNG drives the shuffle (spec.md §4.1).
// Grounded on original_source/src/pattern.rs's RandomPermutation.
type RandomPermutation struct {
	base
	permutation []int
	ownRNG      *rand.Rand
}

func init() {
	Register("RandomPermutation", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		p := &RandomPermutation{}
		if v, ok := cv.Field("seed"); ok {
			seed := int64(v.AsNumber("RandomPermutation", "seed"))
			p.ownRNG = prng.ForSeed(seed)
		}
		return p
	})
}

func (p *RandomPermutation) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("RandomPermutation", sourceSize, targetSize)
	p.markInitialized("RandomPermutation", sourceSize, targetSize)
	p.permutation = make([]int, sourceSize)
	for i := range p.permutation {
		p.permutation[i] = i
	}
	use := r
	if p.ownRNG != nil {
		use = p.ownRNG
	}
	use.Shuffle(len(p.permutation), func(i, j int) {
		p.permutation[i], p.permutation[j] = p.permutation[j], p.permutation[i]
	})
}

func (p *RandomPermutation) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	return p.permutation[origin]
}
