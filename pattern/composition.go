package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Composition chains a list of patterns: destination = patterns[n-1](...
// patterns[0](origin)). middleSizes optionally states the size between
// consecutive patterns; it defaults to the overall target size. Grounded
// on original_source/src/pattern/operations.rs's Composition.
type Composition struct {
	base
	patterns    []Pattern
	middleSizes []int
}

func init() {
	Register("Composition", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		c := &Composition{}
		for _, pcv := range cv.RequireField("Composition", "patterns").AsArray("Composition", "patterns") {
			c.patterns = append(c.patterns, Build(pcv, prng))
		}
		if v, ok := cv.Field("middle_sizes"); ok {
			c.middleSizes = v.UsizeArray("Composition", "middle_sizes")
		}
		return c
	})
}

func (p *Composition) sizeAt(index, fallback int) int {
	if index < len(p.middleSizes) {
		return p.middleSizes[index]
	}
	return fallback
}

func (p *Composition) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Composition", sourceSize, targetSize)
	for index, pat := range p.patterns {
		currentSource := sourceSize
		if index != 0 {
			currentSource = p.sizeAt(index-1, targetSize)
		}
		currentTarget := p.sizeAt(index, targetSize)
		pat.Initialize(currentSource, currentTarget, topo, r)
	}
}

func (p *Composition) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	destination := origin
	for _, pat := range p.patterns {
		destination = pat.GetDestination(destination, topo, r)
	}
	return destination
}
