package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RestrictedMiddleUniform samples destinations uniformly from those for
// which some router in [minimumIndex,maximumIndex] satisfies configured
// distance-to-source / distance-to-destination / direct-distance
// constraints; sources with no legal destination fall back to elsePattern.
// Grounded on original_source/src/pattern/probabilistic.rs's
// RestrictedMiddleUniform.
type RestrictedMiddleUniform struct {
	base
	minimumIndex                  *int
	maximumIndex                  *int
	distancesToSource              []int
	distancesToDestination         []int
	distancesSourceToDestination   []int
	elsePattern                    Pattern
	switchLevel                    bool
	concentration                  int
	pool                           [][]int
}

func init() {
	Register("RestrictedMiddleUniform", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		rmu := &RestrictedMiddleUniform{}
		if v, ok := cv.Field("minimum_index"); ok {
			n := v.AsUsize("RestrictedMiddleUniform", "minimum_index")
			rmu.minimumIndex = &n
		}
		if v, ok := cv.Field("maximum_index"); ok {
			n := v.AsUsize("RestrictedMiddleUniform", "maximum_index")
			rmu.maximumIndex = &n
		}
		if v, ok := cv.Field("distances_to_source"); ok {
			rmu.distancesToSource = v.UsizeArray("RestrictedMiddleUniform", "distances_to_source")
		}
		if v, ok := cv.Field("distances_to_destination"); ok {
			rmu.distancesToDestination = v.UsizeArray("RestrictedMiddleUniform", "distances_to_destination")
		}
		if v, ok := cv.Field("distances_source_to_destination"); ok {
			rmu.distancesSourceToDestination = v.UsizeArray("RestrictedMiddleUniform", "distances_source_to_destination")
		}
		if v, ok := cv.Field("else"); ok {
			rmu.elsePattern = Build(v, prng)
		}
		if v, ok := cv.Field("switch_level"); ok {
			rmu.switchLevel = v.AsBool("RestrictedMiddleUniform", "switch_level")
		}
		return rmu
	})
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func (p *RestrictedMiddleUniform) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	n := topo.NumServers()
	if p.switchLevel {
		n = topo.NumRouters()
	}
	if sourceSize != targetSize {
		panic(fmt.Sprintf("pattern.RestrictedMiddleUniform: needs source_size(%d)==target_size(%d)", sourceSize, targetSize))
	}
	if sourceSize%n != 0 {
		panic(fmt.Sprintf("pattern.RestrictedMiddleUniform: needs the number of nodes(%d) to be a divisor of source_size(%d)", n, sourceSize))
	}
	p.markInitialized("RestrictedMiddleUniform", sourceSize, targetSize)
	p.concentration = sourceSize / n

	middleMin := 0
	if p.minimumIndex != nil {
		middleMin = *p.minimumIndex
	}
	middleMax := topo.NumRouters() - 1
	if p.maximumIndex != nil {
		middleMax = *p.maximumIndex
	}

	p.pool = make([][]int, n)
	for source := 0; source < n; source++ {
		sourceSwitch := switchOf(topo, source, p.switchLevel)
		var found []int
		for destination := 0; destination < n; destination++ {
			destinationSwitch := switchOf(topo, destination, p.switchLevel)
			ok := false
			for middle := middleMin; middle <= middleMax; middle++ {
				if p.distancesToSource != nil && !containsInt(p.distancesToSource, topo.Distance(sourceSwitch, middle)) {
					continue
				}
				if p.distancesToDestination != nil && !containsInt(p.distancesToDestination, topo.Distance(middle, destinationSwitch)) {
					continue
				}
				if p.distancesSourceToDestination != nil && !containsInt(p.distancesSourceToDestination, topo.Distance(sourceSwitch, destinationSwitch)) {
					continue
				}
				ok = true
				break
			}
			if ok {
				found = append(found, destination)
			}
		}
		if p.elsePattern == nil && len(found) == 0 {
			panic(fmt.Sprintf("pattern.RestrictedMiddleUniform: empty set of destinations for switch %d and there is no else clause set", sourceSwitch))
		}
		p.pool[source] = found
	}
	if p.elsePattern != nil {
		p.elsePattern.Initialize(sourceSize, targetSize, topo, r)
	}
}

func (p *RestrictedMiddleUniform) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	pool := p.pool[origin/p.concentration]
	if len(pool) == 0 {
		return p.elsePattern.GetDestination(origin, topo, r)
	}
	d := pool[r.Intn(len(pool))]
	return d*p.concentration + origin%p.concentration
}
