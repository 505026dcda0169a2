package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// FixedRandom independently and uniformly samples a destination for each
// origin at Initialize (with self-exclusion controlled by allow_self).
// Expected self-collision follows the birthday process.
// Grounded on original_source/src/pattern.rs's FixedRandom.
type FixedRandom struct {
	base
	allowSelf bool
	ownRNG    *rand.Rand
	m         []int
}

func init() {
	Register("FixedRandom", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		p := &FixedRandom{}
		if v, ok := cv.Field("allow_self"); ok {
			p.allowSelf = v.AsBool("FixedRandom", "allow_self")
		}
		if v, ok := cv.Field("seed"); ok {
			p.ownRNG = prng.ForSeed(int64(v.AsNumber("FixedRandom", "seed")))
		}
		return p
	})
}

func (p *FixedRandom) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("FixedRandom", sourceSize, targetSize)
	use := r
	if p.ownRNG != nil {
		use = p.ownRNG
	}
	p.m = make([]int, sourceSize)
	for source := 0; source < sourceSize; source++ {
		n := targetSize
		if !p.allowSelf && targetSize >= source {
			n = targetSize - 1
		}
		elem := use.Intn(n)
		if !p.allowSelf && elem >= source {
			elem++
		}
		p.m[source] = elem
	}
}

func (p *FixedRandom) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	return p.m[origin]
}
