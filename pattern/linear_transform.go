package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// LinearTransform maps a Cartesian source point to a Cartesian destination
// point through a matrix: destination[i] = sum_j(matrix[i][j]*source[j])
// mod target_size.sides[i]. Grounded on
// original_source/src/pattern/transformations.rs's LinearTransform.
type LinearTransform struct {
	base
	sourceData cartesian.Data
	targetData cartesian.Data
	matrix     [][]int
}

func init() {
	Register("LinearTransform", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sourceSides := cv.RequireField("LinearTransform", "source_size").UsizeArray("LinearTransform", "source_size")
		targetSides := cv.RequireField("LinearTransform", "target_size").UsizeArray("LinearTransform", "target_size")
		rows := cv.RequireField("LinearTransform", "matrix").AsArray("LinearTransform", "matrix")
		matrix := make([][]int, len(rows))
		for i, row := range rows {
			matrix[i] = row.IntArray("LinearTransform", "matrix")
		}
		return &LinearTransform{
			sourceData: cartesian.New(sourceSides),
			targetData: cartesian.New(targetSides),
			matrix:     matrix,
		}
	})
}

func (p *LinearTransform) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if sourceSize != p.sourceData.Size || targetSize != p.targetData.Size {
		panic(fmt.Sprintf("pattern.LinearTransform: source_size(%d)!=cartesian source size(%d) or target_size(%d)!=cartesian target size(%d)",
			sourceSize, p.sourceData.Size, targetSize, p.targetData.Size))
	}
	if len(p.matrix) != len(p.targetData.Sides) {
		panic(fmt.Sprintf("pattern.LinearTransform: the matrix has %d lines, but there are %d target dimensions", len(p.matrix), len(p.targetData.Sides)))
	}
	for i, line := range p.matrix {
		if len(line) != len(p.sourceData.Sides) {
			panic(fmt.Sprintf("pattern.LinearTransform: line %d of the matrix has %d elements, but there are %d source dimensions", i, len(line), len(p.sourceData.Sides)))
		}
	}
	p.markInitialized("LinearTransform", sourceSize, targetSize)
}

func (p *LinearTransform) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	upOrigin := p.sourceData.Unpack(origin)
	result := make([]int, len(p.targetData.Sides))
	for index, line := range p.matrix {
		sum := 0
		for j, coefficient := range line {
			sum += coefficient * upOrigin[j]
		}
		result[index] = euclidModInt(sum, p.targetData.Sides[index])
	}
	return p.targetData.Pack(result)
}
