package pattern

import (
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CartesianCut selects a block out of a Cartesian source/destination set and
// applies one pattern within the block and another over the remainder. The
// block may be strided and offset per dimension. Grounded on
// original_source/src/pattern/transformations.rs's CartesianCut.
type CartesianCut struct {
	base
	uncutData        cartesian.Data
	cutData          cartesian.Data
	cutOffsets       []int
	cutStrides       []int
	cutPattern       Pattern
	remainderPattern Pattern
}

func init() {
	Register("CartesianCut", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		uncutSides := cv.RequireField("CartesianCut", "uncut_sides").UsizeArray("CartesianCut", "uncut_sides")
		cutSides := cv.RequireField("CartesianCut", "cut_sides").UsizeArray("CartesianCut", "cut_sides")
		n := len(uncutSides)
		if len(cutSides) != n {
			panic("pattern.CartesianCut: dimensions for uncut_sides and cut_sides must match")
		}
		cutOffsets := make([]int, n)
		if v, ok := cv.Field("cut_offsets"); ok {
			cutOffsets = v.UsizeArray("CartesianCut", "cut_offsets")
		}
		if len(cutOffsets) != n {
			panic("pattern.CartesianCut: dimensions for cut_offsets do not match")
		}
		cutStrides := make([]int, n)
		for i := range cutStrides {
			cutStrides[i] = 1
		}
		if v, ok := cv.Field("cut_strides"); ok {
			cutStrides = v.UsizeArray("CartesianCut", "cut_strides")
		}
		if len(cutStrides) != n {
			panic("pattern.CartesianCut: dimensions for cut_strides do not match")
		}
		cutPattern := Build(cv.RequireField("CartesianCut", "cut_pattern"), prng)
		var remainderPattern Pattern
		if v, ok := cv.Field("remainder_pattern"); ok {
			remainderPattern = Build(v, prng)
		} else {
			remainderPattern = &Identity{}
		}
		return &CartesianCut{
			uncutData:        cartesian.New(uncutSides),
			cutData:          cartesian.New(cutSides),
			cutOffsets:       cutOffsets,
			cutStrides:       cutStrides,
			cutPattern:       cutPattern,
			remainderPattern: remainderPattern,
		}
	})
}

func (p *CartesianCut) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("CartesianCut", sourceSize, targetSize)
	cutSize := p.cutData.Size
	p.cutPattern.Initialize(cutSize, cutSize, topo, r)
	p.remainderPattern.Initialize(sourceSize-cutSize, targetSize-cutSize, topo, r)
}

// fromCut maps an index within the cut block (0..cutData.Size) to the full
// index space.
func (p *CartesianCut) fromCut(cutIndex int) int {
	coordinates := p.cutData.Unpack(cutIndex)
	wholeIndex := 0
	hypersize := 1
	for dim := 0; dim < len(coordinates); dim++ {
		coordinate := coordinates[dim]*p.cutStrides[dim] + p.cutOffsets[dim]
		wholeIndex += coordinate * hypersize
		hypersize *= p.uncutData.Sides[dim]
	}
	return wholeIndex
}

// fromRemainder maps an index within the remainder region to the full index
// space. Indices beyond the uncut block pass through unchanged; the
// original construction left the in-block remainder case unresolved
// (`todo!()` upstream), so it is handled here as an identity shift by the
// cut size, matching the convention used by get_destination's own margin
// callers (origin - cut_count).
func (p *CartesianCut) fromRemainder(remainderIndex int) int {
	if remainderIndex >= p.uncutData.Size {
		return remainderIndex
	}
	return remainderIndex + p.cutData.Size
}

func (p *CartesianCut) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	cutSize := p.cutData.Size
	if origin >= p.uncutData.Size {
		base := origin - cutSize
		return p.fromRemainder(p.remainderPattern.GetDestination(base, topo, r))
	}
	coordinates := p.uncutData.Unpack(origin)
	cutCount := 0
	for dim := len(coordinates) - 1; dim >= 0; dim-- {
		if coordinates[dim] < p.cutOffsets[dim] {
			return p.fromRemainder(p.remainderPattern.GetDestination(origin-cutCount, topo, r))
		}
		hypercutInstances := (coordinates[dim] - p.cutOffsets[dim] + p.cutStrides[dim] - 1) / p.cutStrides[dim]
		hypercutSize := 1
		for _, side := range p.cutData.Sides[0:dim] {
			hypercutSize *= side
		}
		if hypercutInstances >= p.cutData.Sides[dim] {
			cutCount += p.cutData.Sides[dim] * hypercutSize
			return p.fromRemainder(p.remainderPattern.GetDestination(origin-cutCount, topo, r))
		}
		cutCount += hypercutInstances * hypercutSize
		if (coordinates[dim]-p.cutOffsets[dim])%p.cutStrides[dim] != 0 {
			return p.fromRemainder(p.remainderPattern.GetDestination(origin-cutCount, topo, r))
		}
	}
	return p.fromCut(p.cutPattern.GetDestination(cutCount, topo, r))
}
