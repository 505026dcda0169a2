package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Switch uses an indexing pattern (mapping origin to a pattern index) to
// select among a pool of patterns, picking which pattern routes each
// origin to the final destination. Grounded on
// original_source/src/pattern/operations.rs's Switch.
type Switch struct {
	base
	indexing Pattern
	patterns []Pattern
	ownRNG   *rand.Rand
}

func init() {
	Register("Switch", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		s := &Switch{indexing: Build(cv.RequireField("Switch", "indexing"), prng)}
		patternCVs := cv.RequireField("Switch", "patterns").AsArray("Switch", "patterns")
		if v, ok := cv.Field("expand"); ok {
			expand := v.UsizeArray("Switch", "expand")
			for index, pcv := range patternCVs {
				for i := 0; i < expand[index]; i++ {
					s.patterns = append(s.patterns, Build(pcv, prng))
				}
			}
		} else {
			for _, pcv := range patternCVs {
				s.patterns = append(s.patterns, Build(pcv, prng))
			}
		}
		if v, ok := cv.Field("seed"); ok {
			s.ownRNG = prng.ForSeed(int64(v.AsNumber("Switch", "seed")))
		}
		return s
	})
}

func (p *Switch) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Switch", sourceSize, targetSize)
	p.indexing.Initialize(sourceSize, len(p.patterns), topo, r)
	for _, pat := range p.patterns {
		use := r
		if p.ownRNG != nil {
			use = p.ownRNG
		}
		pat.Initialize(sourceSize, targetSize, topo, use)
	}
}

func (p *Switch) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	index := p.indexing.GetDestination(origin, topo, r)
	return p.patterns[index].GetDestination(origin, topo, r)
}
