package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// OverflowPolicy controls Sum's behaviour when the summed destination
// reaches or exceeds the target size.
type OverflowPolicy int

const (
	// OverflowPanic panics naming the offending origin and sum (default,
	// matches original_source/src/pattern/operations.rs's Sum).
	OverflowPanic OverflowPolicy = iota
	// OverflowSaturate clamps the result to target_size-1.
	OverflowSaturate
)

// Sum adds the destinations produced by each of its sub-patterns for the
// same origin: dest(a) = p1(a) + p2(a) + ... Grounded on
// original_source/src/pattern/operations.rs's Sum.
type Sum struct {
	base
	patterns    []Pattern
	middleSizes []int
	overflow    OverflowPolicy
}

func init() {
	Register("Sum", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		s := &Sum{}
		for _, pcv := range cv.RequireField("Sum", "patterns").AsArray("Sum", "patterns") {
			s.patterns = append(s.patterns, Build(pcv, prng))
		}
		if v, ok := cv.Field("middle_sizes"); ok {
			s.middleSizes = v.UsizeArray("Sum", "middle_sizes")
		}
		if v, ok := cv.Field("overflow"); ok {
			switch v.AsString("Sum", "overflow") {
			case "panic":
				s.overflow = OverflowPanic
			case "saturate":
				s.overflow = OverflowSaturate
			default:
				panic(fmt.Sprintf("pattern.Sum: unknown overflow policy %q", v.AsString("Sum", "overflow")))
			}
		}
		return s
	})
}

func (p *Sum) sizeAt(index, fallback int) int {
	if index < len(p.middleSizes) {
		return p.middleSizes[index]
	}
	return fallback
}

func (p *Sum) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Sum", sourceSize, targetSize)
	for index, pat := range p.patterns {
		pat.Initialize(sourceSize, p.sizeAt(index, targetSize), topo, r)
	}
}

func (p *Sum) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	destination := 0
	for _, pat := range p.patterns {
		destination += pat.GetDestination(origin, topo, r)
	}
	if destination >= p.targetSize {
		if p.overflow == OverflowSaturate {
			return p.targetSize - 1
		}
		panic(fmt.Sprintf("pattern.Sum: origin %d overflowed the target size (sum=%d, target_size=%d)", origin, destination, p.targetSize))
	}
	return destination
}
