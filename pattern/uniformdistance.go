package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// UniformDistance samples uniformly among the servers (or switches, if
// switchLevel) attached to routers exactly `distance` hops from the
// origin's router. It autoscales over a topology size multiple via
// concentration = source_size/n. Grounded on
// original_source/src/pattern/probabilistic.rs's UniformDistance.
type UniformDistance struct {
	base
	distance     int
	switchLevel  bool
	concentration int
	pool         [][]int
}

func init() {
	Register("UniformDistance", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		ud := &UniformDistance{distance: cv.RequireField("UniformDistance", "distance").AsUsize("UniformDistance", "distance")}
		if v, ok := cv.Field("switch_level"); ok {
			ud.switchLevel = v.AsBool("UniformDistance", "switch_level")
		}
		return ud
	})
}

func switchOf(topo topology.Topology, index int, switchLevel bool) int {
	if switchLevel {
		return index
	}
	loc, _ := topo.ServerNeighbour(index)
	if loc.Kind != topology.LocationRouterPort {
		panic("pattern: unconnected server")
	}
	return loc.Router
}

func (p *UniformDistance) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	n := topo.NumServers()
	if p.switchLevel {
		n = topo.NumRouters()
	}
	if sourceSize != targetSize {
		panic(fmt.Sprintf("pattern.UniformDistance: needs source_size(%d)==target_size(%d)", sourceSize, targetSize))
	}
	if sourceSize%n != 0 {
		panic(fmt.Sprintf("pattern.UniformDistance: needs the number of nodes(%d) to be a divisor of source_size(%d)", n, sourceSize))
	}
	p.markInitialized("UniformDistance", sourceSize, targetSize)
	p.concentration = sourceSize / n
	p.pool = make([][]int, n)
	for i := 0; i < n; i++ {
		source := switchOf(topo, i, p.switchLevel)
		var found []int
		for j := 0; j < n; j++ {
			destination := switchOf(topo, j, p.switchLevel)
			if topo.Distance(source, destination) == p.distance {
				found = append(found, j)
			}
		}
		p.pool[i] = found
	}
}

func (p *UniformDistance) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	pool := p.pool[origin/p.concentration]
	d := pool[r.Intn(len(pool))]
	return d*p.concentration + origin%p.concentration
}
