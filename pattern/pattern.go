// Package pattern implements Pattern, the compositional algebra of maps
// from a source index set to a destination index set (spec.md §4.1).
//
// Every variant is identified by its ConfigValue Object tag and built
// through a plug table keyed by tag (spec.md §9, "Design notes":
// "vtables or equivalent are acceptable for open extensibility... which
// the spec explicitly permits via a plug table keyed by tag"). Each
// variant file registers itself via an init() function, mirroring the
// teacher's sim/kv and sim/latency register.go idiom of wiring
// implementations into a shared registry at package-init time.
//
// State machine (spec.md §4.1): built -> initialized -> serving.
// GetDestination called before Initialize is a bug and must panic.
package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Pattern maps (sourceSize, targetSize) -> (origin -> destination).
//
// Contract (spec.md §4.1):
//   - Initialize is called exactly once before any other call.
//   - GetDestination requires origin < sourceSize and guarantees the
//     returned value is < targetSize.
//   - Unless documented otherwise, repeated GetDestination calls with the
//     same origin must return the same destination (determinism).
type Pattern interface {
	Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand)
	GetDestination(origin int, topo topology.Topology, r *rand.Rand) int
}

// Builder constructs a Pattern from a ConfigValue Object. prng is the
// simulation-wide partitioned RNG, used only by variants documented as
// needing an RNG independent from the per-call RNG (e.g. RandomPermutation's
// optional "seed" field, Switch's per-child "seed").
type Builder func(cv config.Value, prng *rng.PartitionedRNG) Pattern

var registry = map[string]Builder{}

// Register adds a tag -> Builder mapping to the plug table. Called from
// variant files' init() functions.
func Register(tag string, b Builder) {
	if _, exists := registry[tag]; exists {
		panic(fmt.Sprintf("pattern: tag %q registered twice", tag))
	}
	registry[tag] = b
}

// Build dispatches on cv.Tag, panicking with the tag name if unknown
// (spec.md §6: "unknown tags panic with the tag name").
func Build(cv config.Value, prng *rng.PartitionedRNG) Pattern {
	if cv.Kind != config.KindObject {
		panic(fmt.Sprintf("pattern: expected an Object naming a Pattern variant, got %s", cv.Kind))
	}
	b, ok := registry[cv.Tag]
	if !ok {
		panic(fmt.Sprintf("pattern: unknown Pattern tag %q", cv.Tag))
	}
	return b(cv, prng)
}

// base tracks the built/initialized state shared by every variant and
// gives a uniform panic message for the built->initialized transition.
type base struct {
	tag         string
	initialized bool
	sourceSize  int
	targetSize  int
}

func (b *base) markInitialized(tag string, sourceSize, targetSize int) {
	b.tag = tag
	b.initialized = true
	b.sourceSize = sourceSize
	b.targetSize = targetSize
}

func (b *base) requireInitialized() {
	if !b.initialized {
		panic(fmt.Sprintf("pattern.%s: GetDestination called before Initialize", b.tag))
	}
}

func (b *base) requireOrigin(origin int) {
	b.requireInitialized()
	if origin < 0 || origin >= b.sourceSize {
		panic(fmt.Sprintf("pattern.%s: origin %d out of range [0,%d)", b.tag, origin, b.sourceSize))
	}
}

func requireEqual(tag string, sourceSize, targetSize int) {
	if sourceSize != targetSize {
		panic(fmt.Sprintf("pattern.%s: source_size(%d) must equal target_size(%d)", tag, sourceSize, targetSize))
	}
}
