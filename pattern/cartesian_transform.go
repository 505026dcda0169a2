package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// CartesianTransform interprets origin/destination as points of a Cartesian
// space and applies, in order, a per-dimension multiplier, shift, a
// dimension permutation, a per-dimension complement, a projection to 0,
// a per-call random roll, and finally a per-dimension sub-pattern. Any
// stage is a no-op when its field is absent.
// Grounded on original_source/src/pattern/transformations.rs's
// CartesianTransform.
type CartesianTransform struct {
	base
	data       cartesian.Data
	multiplier []int
	shift      []int
	permute    []int
	complement []bool
	project    []bool
	random     []bool
	patterns   []Pattern
}

func init() {
	Register("CartesianTransform", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sides := cv.RequireField("CartesianTransform", "sides").UsizeArray("CartesianTransform", "sides")
		p := &CartesianTransform{data: cartesian.New(sides)}
		if v, ok := cv.Field("multiplier"); ok {
			p.multiplier = v.IntArray("CartesianTransform", "multiplier")
		}
		if v, ok := cv.Field("shift"); ok {
			p.shift = v.UsizeArray("CartesianTransform", "shift")
		}
		if v, ok := cv.Field("permute"); ok {
			p.permute = v.UsizeArray("CartesianTransform", "permute")
		}
		if v, ok := cv.Field("complement"); ok {
			p.complement = v.BoolArray("CartesianTransform", "complement")
		}
		if v, ok := cv.Field("project"); ok {
			p.project = v.BoolArray("CartesianTransform", "project")
		}
		if v, ok := cv.Field("random"); ok {
			p.random = v.BoolArray("CartesianTransform", "random")
		}
		if v, ok := cv.Field("patterns"); ok {
			for _, pcv := range v.AsArray("CartesianTransform", "patterns") {
				p.patterns = append(p.patterns, Build(pcv, prng))
			}
		}
		return p
	})
}

func euclidModInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func (p *CartesianTransform) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	if sourceSize != targetSize {
		panic(fmt.Sprintf("pattern.CartesianTransform: source_size(%d) must equal target_size(%d)", sourceSize, targetSize))
	}
	if sourceSize != p.data.Size {
		panic(fmt.Sprintf("pattern.CartesianTransform: source_size(%d) must equal cartesian size(%d)", sourceSize, p.data.Size))
	}
	p.markInitialized("CartesianTransform", sourceSize, targetSize)
	for index, pat := range p.patterns {
		side := p.data.Sides[index]
		pat.Initialize(side, side, topo, r)
	}
}

func (p *CartesianTransform) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	up := p.data.Unpack(origin)

	if p.multiplier != nil {
		for i := range up {
			up[i] = euclidModInt(up[i]*p.multiplier[i], p.data.Sides[i])
		}
	}
	if p.shift != nil {
		for i := range up {
			up[i] = (up[i] + p.shift[i]) % p.data.Sides[i]
		}
	}
	if p.permute != nil {
		permuted := make([]int, len(up))
		for i, src := range p.permute {
			permuted[i] = up[src]
		}
		up = permuted
	}
	if p.complement != nil {
		for i := range up {
			if p.complement[i] {
				up[i] = p.data.Sides[i] - 1 - up[i]
			}
		}
	}
	if p.project != nil {
		for i := range up {
			if p.project[i] {
				up[i] = 0
			}
		}
	}
	if p.random != nil {
		for i := range up {
			if p.random[i] {
				up[i] = r.Intn(p.data.Sides[i])
			}
		}
	}
	if p.patterns != nil {
		for i := range up {
			up[i] = p.patterns[i].GetDestination(up[i], topo, r)
		}
	}
	return p.data.Pack(up)
}
