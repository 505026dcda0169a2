package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// SubApp selects a subset of `subtasks` nodes (via selectionPattern) to run
// subappPattern, and routes every other node through othersPattern.
// Grounded on original_source/src/pattern/operations.rs's SubApp.
type SubApp struct {
	base
	subtasks         int
	selectionPattern Pattern
	subappPattern    Pattern
	othersPattern    Pattern
	selected         []bool
}

func init() {
	Register("SubApp", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &SubApp{
			subtasks:         cv.RequireField("SubApp", "subtasks").AsUsize("SubApp", "subtasks"),
			selectionPattern: Build(cv.RequireField("SubApp", "selection_pattern"), prng),
			subappPattern:    Build(cv.RequireField("SubApp", "subapp_pattern"), prng),
			othersPattern:    Build(cv.RequireField("SubApp", "others_pattern"), prng),
		}
	})
}

func (p *SubApp) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if p.subtasks > sourceSize {
		panic(fmt.Sprintf("pattern.SubApp: subtasks %d is greater than source size %d", p.subtasks, sourceSize))
	}
	p.markInitialized("SubApp", sourceSize, targetSize)
	p.selectionPattern.Initialize(p.subtasks, targetSize, topo, r)
	p.subappPattern.Initialize(sourceSize, targetSize, topo, r)
	p.othersPattern.Initialize(sourceSize, targetSize, topo, r)

	p.selected = make([]bool, sourceSize)
	for i := 0; i < p.subtasks; i++ {
		destination := p.selectionPattern.GetDestination(i, topo, r)
		p.selected[destination] = true
	}
}

func (p *SubApp) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	if origin >= len(p.selected) {
		panic(fmt.Sprintf("pattern.SubApp: origin %d is beyond the source size %d", origin, len(p.selected)))
	}
	if p.selected[origin] {
		return p.subappPattern.GetDestination(origin, topo, r)
	}
	return p.othersPattern.GetDestination(origin, topo, r)
}
