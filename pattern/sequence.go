package pattern

import (
	"math/rand"
	"sync"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// InmediateSequencePattern returns, in order, the values of a fixed
// sequence for every origin independently; once a given origin's sequence
// is exhausted it returns 0. Grounded on
// original_source/src/pattern/extra.rs's InmediateSequencePattern.
type InmediateSequencePattern struct {
	base
	mu       sync.Mutex
	sequence []int
	cursors  [][]int
}

func init() {
	Register("InmediateSequencePattern", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &InmediateSequencePattern{
			sequence: cv.RequireField("InmediateSequencePattern", "sequence").UsizeArray("InmediateSequencePattern", "sequence"),
		}
	})
}

func (p *InmediateSequencePattern) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("InmediateSequencePattern", sourceSize, targetSize)
	p.cursors = make([][]int, sourceSize)
	for i := range p.cursors {
		seq := make([]int, len(p.sequence))
		copy(seq, p.sequence)
		p.cursors[i] = seq
	}
}

func (p *InmediateSequencePattern) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	p.mu.Lock()
	defer p.mu.Unlock()
	queue := p.cursors[origin]
	if len(queue) == 0 {
		return 0
	}
	d := queue[0]
	p.cursors[origin] = queue[1:]
	return d
}

// ElementComposition keeps, per origin, the last destination produced and
// feeds it back as the next call's input to the wrapped pattern: it chains
// destination(n+1) = pattern(destination(n)), starting from destination(0)
// = origin. Grounded on original_source/src/pattern/extra.rs's
// ElementComposition.
type ElementComposition struct {
	base
	mu          sync.Mutex
	pattern     Pattern
	originState []int
}

func init() {
	Register("ElementComposition", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &ElementComposition{pattern: Build(cv.RequireField("ElementComposition", "pattern"), prng)}
	})
}

func (p *ElementComposition) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("ElementComposition", sourceSize, targetSize)
	p.markInitialized("ElementComposition", sourceSize, targetSize)
	p.pattern.Initialize(sourceSize, targetSize, topo, r)
	p.originState = make([]int, sourceSize)
	for i := range p.originState {
		p.originState[i] = i
	}
}

func (p *ElementComposition) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	p.mu.Lock()
	index := p.originState[origin]
	p.mu.Unlock()
	destination := p.pattern.GetDestination(index, topo, r)
	p.mu.Lock()
	p.originState[origin] = destination
	p.mu.Unlock()
	return destination
}
