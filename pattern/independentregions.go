package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// IndependentRegions partitions the node set into independent regions, each
// with its own pattern. Sizes may be given explicitly or as relative
// weights, in which case proportionalVecWithSum distributes target_size
// proportionally via the largest-remainder (Hamilton) method, guaranteeing
// the sizes sum exactly. Grounded on
// original_source/src/pattern/operations.rs's IndependentRegions and its
// proportional_vec_with_sum helper.
type IndependentRegions struct {
	base
	sizes         []int
	patterns      []Pattern
	relativeSizes []float64
}

func init() {
	Register("IndependentRegions", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		ir := &IndependentRegions{}
		for _, pcv := range cv.RequireField("IndependentRegions", "patterns").AsArray("IndependentRegions", "patterns") {
			ir.patterns = append(ir.patterns, Build(pcv, prng))
		}
		_, hasSizes := cv.Field("sizes")
		_, hasRelative := cv.Field("relative_sizes")
		if hasSizes && hasRelative {
			panic("pattern.IndependentRegions: cannot set both sizes and relative_sizes")
		}
		if !hasSizes && !hasRelative {
			panic("pattern.IndependentRegions: must set one of sizes or relative_sizes")
		}
		if hasSizes {
			ir.sizes = cv.RequireField("IndependentRegions", "sizes").UsizeArray("IndependentRegions", "sizes")
		} else {
			ir.relativeSizes = cv.RequireField("IndependentRegions", "relative_sizes").Float64Array("IndependentRegions", "relative_sizes")
		}
		n := len(ir.sizes)
		if n == 0 {
			n = len(ir.relativeSizes)
		}
		if len(ir.patterns) != n {
			panic("pattern.IndependentRegions: different number of entries in patterns vs sizes/relative_sizes")
		}
		return ir
	})
}

// proportionalVecWithSum distributes targetSum across weights so the
// result sums exactly to targetSum, using the largest-remainder method:
// each entry is floor(weight*targetSum/totalWeight), with the remaining
// units assigned to the entries with the largest fractional remainder.
func proportionalVecWithSum(weights []float64, targetSum int) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	result := make([]int, len(weights))
	remainders := make([]float64, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w * float64(targetSum) / total
		floor := int(exact)
		result[i] = floor
		remainders[i] = exact - float64(floor)
		assigned += floor
	}
	remaining := targetSum - assigned
	for remaining > 0 {
		best := -1
		for i := range weights {
			if best == -1 || remainders[i] > remainders[best] {
				best = i
			}
		}
		result[best]++
		remainders[best] = -1
		remaining--
	}
	return result
}

func (p *IndependentRegions) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("IndependentRegions", sourceSize, targetSize)
	p.markInitialized("IndependentRegions", sourceSize, targetSize)
	if p.relativeSizes != nil {
		p.sizes = proportionalVecWithSum(p.relativeSizes, sourceSize)
	}
	sum := 0
	for _, s := range p.sizes {
		sum += s
	}
	if sum != sourceSize {
		panic(fmt.Sprintf("pattern.IndependentRegions: sizes %v do not add up to the source_size %d", p.sizes, sourceSize))
	}
	for regionIndex, size := range p.sizes {
		p.patterns[regionIndex].Initialize(size, size, topo, r)
	}
}

func (p *IndependentRegions) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	regionIndex := 0
	regionOffset := 0
	for origin >= p.sizes[regionIndex] {
		origin -= p.sizes[regionIndex]
		regionOffset += p.sizes[regionIndex]
		regionIndex++
	}
	return p.patterns[regionIndex].GetDestination(origin, topo, r) + regionOffset
}
