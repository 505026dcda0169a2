package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CandidatesSelection is a boolean indicator pattern: it returns 1 for
// origins the wrapped pattern selects as a destination, 0 otherwise.
// Grounded on original_source/src/pattern/operations.rs's
// CandidatesSelection.
type CandidatesSelection struct {
	base
	pattern                Pattern
	patternDestinationSize int
	selected               []int
}

func init() {
	Register("CandidatesSelection", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &CandidatesSelection{
			pattern:                Build(cv.RequireField("CandidatesSelection", "pattern"), prng),
			patternDestinationSize: cv.RequireField("CandidatesSelection", "pattern_destination_size").AsUsize("CandidatesSelection", "pattern_destination_size"),
		}
	})
}

func (p *CandidatesSelection) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("CandidatesSelection", sourceSize, targetSize)
	p.pattern.Initialize(sourceSize, p.patternDestinationSize, topo, r)
	selection := make([]int, sourceSize)
	for i := 0; i < sourceSize; i++ {
		selection[p.pattern.GetDestination(i, topo, r)] = 1
	}
	p.selected = selection
}

func (p *CandidatesSelection) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	if origin >= len(p.selected) {
		panic(fmt.Sprintf("pattern.CandidatesSelection: origin %d is beyond the source size %d", origin, len(p.selected)))
	}
	return p.selected[origin]
}
