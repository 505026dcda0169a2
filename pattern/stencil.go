package pattern

import (
	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
)

// Stencil is sugar over RoundRobin+CartesianTransform: given a task_space
// of N dimensions, it alternates, per call, between sending to the
// successor and predecessor neighbour along each dimension — the
// communication pattern of a stencil/halo-exchange application. Grounded
// on original_source/src/pattern/extra.rs's EncapsulatedPattern::new and
// its get_stencil_pattern helper, reimplemented by constructing the
// equivalent RoundRobin/CartesianTransform tree directly instead of
// round-tripping through the ConfigValue grammar.
func init() {
	Register("Stencil", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		sides := cv.RequireField("Stencil", "task_space").UsizeArray("Stencil", "task_space")
		n := len(sides)
		var transforms []Pattern
		for i := 0; i < n; i++ {
			succShift := make([]int, n)
			succShift[i] = 1
			transforms = append(transforms, &CartesianTransform{data: cartesian.New(sides), shift: succShift})

			predShift := make([]int, n)
			predShift[i] = euclidModInt(sides[i]-1, sides[i])
			transforms = append(transforms, &CartesianTransform{data: cartesian.New(sides), shift: predShift})
		}
		return &RoundRobin{patterns: transforms}
	})
}
