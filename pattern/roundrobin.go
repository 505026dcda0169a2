package pattern

import (
	"math/rand"
	"sync"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RoundRobin cycles, per origin, through a pool of patterns: the n-th call
// for a given origin uses patterns[n mod len(patterns)]. Grounded on
// original_source/src/pattern/operations.rs's RoundRobin.
type RoundRobin struct {
	base
	mu       sync.Mutex
	patterns []Pattern
	index    []int
}

func init() {
	Register("RoundRobin", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		rr := &RoundRobin{}
		for _, pcv := range cv.RequireField("RoundRobin", "patterns").AsArray("RoundRobin", "patterns") {
			rr.patterns = append(rr.patterns, Build(pcv, prng))
		}
		return rr
	})
}

func (p *RoundRobin) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if len(p.patterns) == 0 {
		panic("pattern.RoundRobin: requires at least one pattern (and 2 to be sensible)")
	}
	p.markInitialized("RoundRobin", sourceSize, targetSize)
	for _, pat := range p.patterns {
		pat.Initialize(sourceSize, targetSize, topo, r)
	}
	p.index = make([]int, sourceSize)
}

func (p *RoundRobin) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	p.mu.Lock()
	patternIndex := p.index[origin]
	p.index[origin] = (patternIndex + 1) % len(p.patterns)
	p.mu.Unlock()
	return p.patterns[patternIndex].GetDestination(origin, topo, r)
}
