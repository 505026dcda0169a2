package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CartesianEmbedding embeds a smaller Cartesian source space into a larger
// Cartesian destination space by reinterpreting coordinates directly; each
// source side must not exceed the matching destination side. Grounded on
// original_source/src/pattern/transformations.rs's CartesianEmbedding.
type CartesianEmbedding struct {
	base
	sourceData cartesian.Data
	destData   cartesian.Data
}

func init() {
	Register("CartesianEmbedding", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sourceSides := cv.RequireField("CartesianEmbedding", "source_sides").UsizeArray("CartesianEmbedding", "source_sides")
		destSides := cv.RequireField("CartesianEmbedding", "destination_sides").UsizeArray("CartesianEmbedding", "destination_sides")
		if len(sourceSides) != len(destSides) {
			panic("pattern.CartesianEmbedding: different number of dimensions between source_sides and destination_sides")
		}
		for index, ss := range sourceSides {
			if ss > destSides[index] {
				panic(fmt.Sprintf("pattern.CartesianEmbedding: source is greater than destination at side %d. %d>%d", index, ss, destSides[index]))
			}
		}
		return &CartesianEmbedding{
			sourceData: cartesian.New(sourceSides),
			destData:   cartesian.New(destSides),
		}
	})
}

func (p *CartesianEmbedding) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if sourceSize != p.sourceData.Size {
		panic(fmt.Sprintf("pattern.CartesianEmbedding: source sizes do not agree. source_size=%d, source_sides=%v", sourceSize, p.sourceData.Sides))
	}
	if targetSize != p.destData.Size {
		panic(fmt.Sprintf("pattern.CartesianEmbedding: destination sizes do not agree. target_size=%d, destination_sides=%v", targetSize, p.destData.Sides))
	}
	p.markInitialized("CartesianEmbedding", sourceSize, targetSize)
}

func (p *CartesianEmbedding) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	return p.destData.Pack(p.sourceData.Unpack(origin))
}
