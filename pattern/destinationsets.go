package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// DestinationSets keeps, per pattern, a precomputed destination for every
// origin, and on each call picks one of those patterns at random according
// to weights. Grounded on
// original_source/src/pattern/operations.rs's DestinationSets.
type DestinationSets struct {
	base
	patterns       []Pattern
	weights        []int
	destinationSet [][]int
}

func init() {
	Register("DestinationSets", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		ds := &DestinationSets{}
		for _, pcv := range cv.RequireField("DestinationSets", "patterns").AsArray("DestinationSets", "patterns") {
			ds.patterns = append(ds.patterns, Build(pcv, prng))
		}
		if v, ok := cv.Field("weights"); ok {
			ds.weights = v.UsizeArray("DestinationSets", "weights")
			if len(ds.weights) != len(ds.patterns) {
				panic("pattern.DestinationSets: the number of patterns must match the number of weights")
			}
		} else {
			ds.weights = make([]int, len(ds.patterns))
			for i := range ds.weights {
				ds.weights[i] = 1
			}
		}
		ds.destinationSet = make([][]int, len(ds.patterns))
		return ds
	})
}

func (p *DestinationSets) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("DestinationSets", sourceSize, targetSize)
	for index, pat := range p.patterns {
		pat.Initialize(sourceSize, targetSize, topo, r)
		for source := 0; source < sourceSize; source++ {
			p.destinationSet[index] = append(p.destinationSet[index], pat.GetDestination(source, topo, r))
		}
	}
}

func (p *DestinationSets) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	total := 0
	for _, w := range p.weights {
		total += w
	}
	w := r.Intn(total)
	index := 0
	for w > p.weights[index] {
		w -= p.weights[index]
		index++
	}
	return p.destinationSet[index][origin]
}
