package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RemappedNodes applies an inner pattern after relabeling node indices
// through a permutation produced by a second pattern: destination(x) =
// fromBase(pattern(intoBase(x))), where fromBase/intoBase are inverses of
// each other. Grounded on original_source/src/pattern.rs's RemappedNodes.
type RemappedNodes struct {
	base
	fromBaseMap []int
	intoBaseMap []int
	pattern     Pattern
	mapPattern  Pattern
}

func init() {
	Register("RemappedNodes", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &RemappedNodes{
			pattern:    Build(cv.RequireField("RemappedNodes", "pattern"), prng),
			mapPattern: Build(cv.RequireField("RemappedNodes", "map"), prng),
		}
	})
}

func (p *RemappedNodes) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("RemappedNodes", sourceSize, targetSize)
	p.markInitialized("RemappedNodes", sourceSize, targetSize)
	n := sourceSize
	p.mapPattern.Initialize(n, n, topo, r)
	p.fromBaseMap = make([]int, n)
	for inner := 0; inner < n; inner++ {
		p.fromBaseMap[inner] = p.mapPattern.GetDestination(inner, topo, r)
	}
	intoBase := make([]int, n)
	for i := range intoBase {
		intoBase[i] = -1
	}
	for inside, outside := range p.fromBaseMap {
		if intoBase[outside] != -1 {
			panic(fmt.Sprintf("pattern.RemappedNodes: two inside nodes (%d and %d) mapped to the same outer index (%d)", inside, intoBase[outside], outside))
		}
		intoBase[outside] = inside
	}
	for _, v := range intoBase {
		if v == -1 {
			panic("pattern.RemappedNodes: node not mapped")
		}
	}
	p.intoBaseMap = intoBase
	p.pattern.Initialize(n, n, topo, r)
}

func (p *RemappedNodes) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	innerOrigin := p.intoBaseMap[origin]
	innerDest := p.pattern.GetDestination(innerOrigin, topo, r)
	return p.fromBaseMap[innerDest]
}
