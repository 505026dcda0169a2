package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Hotspots: pool = explicit destinations ∪ K randomly sampled destinations
// at initialization. GetDestination samples uniformly from the pool; the
// pool must be non-empty. Grounded on
// original_source/src/pattern/probabilistic.rs's Hotspots.
type Hotspots struct {
	base
	destinations            []int
	extraRandomDestinations int
}

func init() {
	Register("Hotspots", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		h := &Hotspots{}
		if v, ok := cv.Field("destinations"); ok {
			h.destinations = v.UsizeArray("Hotspots", "destinations")
		}
		if v, ok := cv.Field("extra_random_destinations"); ok {
			h.extraRandomDestinations = v.AsUsize("Hotspots", "extra_random_destinations")
		}
		return h
	})
}

func (p *Hotspots) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Hotspots", sourceSize, targetSize)
	for i := 0; i < p.extraRandomDestinations; i++ {
		p.destinations = append(p.destinations, r.Intn(targetSize))
	}
	if len(p.destinations) == 0 {
		panic("pattern.Hotspots: requires at least one destination")
	}
}

func (p *Hotspots) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	return p.destinations[r.Intn(len(p.destinations))]
}
