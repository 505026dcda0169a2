package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Inverse builds and applies the inverse of the given pattern: the
// underlying pattern must be injective (no two origins share a
// destination) over the sizes it is initialized with. Grounded on
// original_source/src/pattern/operations.rs's Inverse.
type Inverse struct {
	base
	pattern            Pattern
	inverseValues      []int // -1 = none
	defaultDestination *int
}

func init() {
	Register("Inverse", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		inv := &Inverse{pattern: Build(cv.RequireField("Inverse", "pattern"), prng)}
		if v, ok := cv.Field("default_destination"); ok {
			d := v.AsUsize("Inverse", "default_destination")
			inv.defaultDestination = &d
		}
		return inv
	})
}

func (p *Inverse) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Inverse", sourceSize, targetSize)
	p.pattern.Initialize(sourceSize, targetSize, topo, r)
	source := make([]int, sourceSize)
	for i := range source {
		source[i] = -1
	}
	for i := 0; i < sourceSize; i++ {
		destination := p.pattern.GetDestination(i, topo, r)
		if source[destination] != -1 {
			panic(fmt.Sprintf("pattern.Inverse: destination %d is already used by origin %d", destination, source[destination]))
		}
		source[destination] = i
	}
	p.inverseValues = source
}

func (p *Inverse) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	if origin >= len(p.inverseValues) {
		panic(fmt.Sprintf("pattern.Inverse: origin %d is beyond the source size %d", origin, len(p.inverseValues)))
	}
	if d := p.inverseValues[origin]; d != -1 {
		return d
	}
	if p.defaultDestination != nil {
		return *p.defaultDestination
	}
	panic(fmt.Sprintf("pattern.Inverse: origin %d has no destination and there is no default destination", origin))
}
