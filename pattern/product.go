package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// ProductPattern divides the node set into blocks of blockSize elements; the
// destination of origin i in block j is blockPattern(i) within block
// globalPattern(j). It is the Kronecker product of the block and global
// graphs. Grounded on original_source/src/pattern/operations.rs's
// ProductPattern.
type ProductPattern struct {
	base
	blockSize     int
	blockPattern  Pattern
	globalPattern Pattern
}

func init() {
	Register("Product", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &ProductPattern{
			blockSize:     cv.RequireField("Product", "block_size").AsUsize("Product", "block_size"),
			blockPattern:  Build(cv.RequireField("Product", "block_pattern"), prng),
			globalPattern: Build(cv.RequireField("Product", "global_pattern"), prng),
		}
	})
}

func (p *ProductPattern) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("Product", sourceSize, targetSize)
	p.markInitialized("Product", sourceSize, targetSize)
	p.blockPattern.Initialize(p.blockSize, p.blockSize, topo, r)
	globalSize := sourceSize / p.blockSize
	p.globalPattern.Initialize(globalSize, globalSize, topo, r)
}

func (p *ProductPattern) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	local := origin % p.blockSize
	global := origin / p.blockSize
	localDest := p.blockPattern.GetDestination(local, topo, r)
	globalDest := p.globalPattern.GetDestination(global, topo, r)
	return globalDest*p.blockSize + localDest
}
