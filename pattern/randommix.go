package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RandomMix selects, at each call, one of a pool of patterns with
// probability proportional to a per-pattern weight. Grounded on
// original_source/src/pattern/probabilistic.rs's RandomMix.
type RandomMix struct {
	base
	patterns    []Pattern
	weights     []int
	totalWeight int
}

func init() {
	Register("RandomMix", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		rm := &RandomMix{}
		for _, pcv := range cv.RequireField("RandomMix", "patterns").AsArray("RandomMix", "patterns") {
			rm.patterns = append(rm.patterns, Build(pcv, prng))
		}
		rm.weights = cv.RequireField("RandomMix", "weights").UsizeArray("RandomMix", "weights")
		return rm
	})
}

func (p *RandomMix) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if len(p.patterns) != len(p.weights) {
		panic("pattern.RandomMix: number of patterns must match number of weights")
	}
	if len(p.patterns) == 0 {
		panic("pattern.RandomMix: requires at least one pattern (and 2 to be sensible)")
	}
	p.markInitialized("RandomMix", sourceSize, targetSize)
	for _, pat := range p.patterns {
		pat.Initialize(sourceSize, targetSize, topo, r)
	}
	total := 0
	for _, w := range p.weights {
		total += w
	}
	p.totalWeight = total
}

func (p *RandomMix) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	w := r.Intn(p.totalWeight)
	index := 0
	for w > p.weights[index] {
		w -= p.weights[index]
		index++
	}
	return p.patterns[index].GetDestination(origin, topo, r)
}
