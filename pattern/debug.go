package pattern

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Debug transparently forwards to an inner pattern, logging every
// GetDestination call at debug level and optionally checking, at
// Initialize time, that the inner pattern is a permutation. Grounded on
// original_source/src/pattern/extra.rs's DebugPattern; the logging is
// adapted to this repository's logrus-based ambient stack in place of the
// original's println! diagnostics.
type Debug struct {
	base
	pattern          Pattern
	checkPermutation bool
}

func init() {
	Register("Debug", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		d := &Debug{pattern: Build(cv.RequireField("Debug", "pattern"), prng)}
		if v, ok := cv.Field("check_permutation"); ok {
			d.checkPermutation = v.AsBool("Debug", "check_permutation")
		}
		return d
	})
}

func (p *Debug) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Debug", sourceSize, targetSize)
	p.pattern.Initialize(sourceSize, targetSize, topo, r)
	if !p.checkPermutation {
		return
	}
	requireEqual("Debug", sourceSize, targetSize)
	hits := make([]bool, targetSize)
	for origin := 0; origin < sourceSize; origin++ {
		dst := p.pattern.GetDestination(origin, topo, r)
		if hits[dst] {
			panic("pattern.Debug: destination hit at least twice, inner pattern is not a permutation")
		}
		hits[dst] = true
	}
}

func (p *Debug) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	dst := p.pattern.GetDestination(origin, topo, r)
	logrus.WithFields(logrus.Fields{"origin": origin, "destination": dst}).Debug("pattern.Debug: get_destination")
	return dst
}
