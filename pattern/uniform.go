package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Uniform samples uniformly in 0..target_size. With allow_self=false
// (default), the value equal to origin is excluded, when origin <
// target_size, by swapping it with the last element of the sampling
// range — matching original_source/src/pattern.rs's Uniform.
type Uniform struct {
	base
	allowSelf bool
}

func init() {
	Register("Uniform", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		allowSelf := false
		if v, ok := cv.Field("allow_self"); ok {
			allowSelf = v.AsBool("Uniform", "allow_self")
		}
		return &Uniform{allowSelf: allowSelf}
	})
}

func (p *Uniform) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Uniform", sourceSize, targetSize)
}

func (p *Uniform) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	if p.allowSelf || origin >= p.targetSize {
		return r.Intn(p.targetSize)
	}
	n := p.targetSize
	d := r.Intn(n - 1)
	if d == origin {
		return n - 1
	}
	return d
}
