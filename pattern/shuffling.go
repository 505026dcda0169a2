package pattern

import (
	"math/rand"
	"sync"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// GloballyShufflingDestinations keeps one shuffled list of destinations,
// shared across every origin: each call pops the next destination, and the
// list is rebuilt and reshuffled once exhausted. Grounded on
// original_source/src/pattern/probabilistic.rs's
// GloballyShufflingDestinations.
type GloballyShufflingDestinations struct {
	base
	mu      sync.Mutex
	size    int
	pending []int
}

func init() {
	Register("GloballyShufflingDestinations", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &GloballyShufflingDestinations{}
	})
}

func (p *GloballyShufflingDestinations) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("GloballyShufflingDestinations", sourceSize, targetSize)
	p.size = targetSize
	p.pending = nil
}

func (p *GloballyShufflingDestinations) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		p.pending = make([]int, p.size)
		for i := range p.pending {
			p.pending[i] = i
		}
		r.Shuffle(len(p.pending), func(i, j int) { p.pending[i], p.pending[j] = p.pending[j], p.pending[i] })
	}
	last := len(p.pending) - 1
	d := p.pending[last]
	p.pending = p.pending[:last]
	return d
}

// GroupShufflingDestinations is GloballyShufflingDestinations applied
// independently within each group of groupSize consecutive origins.
// Grounded on original_source/src/pattern/probabilistic.rs's
// GroupShufflingDestinations.
type GroupShufflingDestinations struct {
	base
	mu        sync.Mutex
	groupSize int
	size      int
	pending   [][]int
}

func init() {
	Register("GroupShufflingDestinations", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &GroupShufflingDestinations{
			groupSize: cv.RequireField("GroupShufflingDestinations", "group_size").AsUsize("GroupShufflingDestinations", "group_size"),
		}
	})
}

func (p *GroupShufflingDestinations) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("GroupShufflingDestinations", sourceSize, targetSize)
	p.size = targetSize
	numberOfGroups := (sourceSize + p.groupSize - 1) / p.groupSize
	p.pending = make([][]int, numberOfGroups)
}

func (p *GroupShufflingDestinations) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	group := origin / p.groupSize
	p.mu.Lock()
	defer p.mu.Unlock()
	pending := p.pending[group]
	if len(pending) == 0 {
		pending = make([]int, p.size)
		for i := range pending {
			pending[i] = i
		}
		r.Shuffle(len(pending), func(i, j int) { pending[i], pending[j] = pending[j], pending[i] })
	}
	last := len(pending) - 1
	d := pending[last]
	p.pending[group] = pending[:last]
	return d
}
