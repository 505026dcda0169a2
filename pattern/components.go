package pattern

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// ComponentsPattern partitions the topology's routers into connected
// components under a subset of link classes, applies globalPattern among
// the components, and picks a random server within the destination
// component. Unlike every other variant it consults the topology directly
// rather than treating node indices as opaque, so it cannot be nested as a
// sub-pattern of something that doesn't pass a real topology. Grounded on
// original_source/src/pattern/extra.rs's ComponentsPattern.
type ComponentsPattern struct {
	base
	componentClasses []int
	globalPattern    Pattern
	components       [][]int
}

func init() {
	Register("Components", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &ComponentsPattern{
			componentClasses: cv.RequireField("Components", "component_classes").UsizeArray("Components", "component_classes"),
			globalPattern:     Build(cv.RequireField("Components", "global_pattern"), prng),
		}
	})
}

func (p *ComponentsPattern) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("Components", sourceSize, targetSize)
	maxClass := 0
	for _, c := range p.componentClasses {
		if c+1 > maxClass {
			maxClass = c + 1
		}
	}
	allowed := make([]bool, maxClass)
	for _, c := range p.componentClasses {
		allowed[c] = true
	}
	p.components = topo.Components(allowed)
	p.globalPattern.Initialize(len(p.components), len(p.components), topo, r)
}

func (p *ComponentsPattern) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	loc, _ := topo.ServerNeighbour(origin)
	if loc.Kind != topology.LocationRouterPort {
		panic(fmt.Sprintf("pattern.Components: unconnected server %d", origin))
	}
	routerOrigin := loc.Router
	global := -1
	for g, component := range p.components {
		for _, router := range component {
			if router == routerOrigin {
				global = g
				break
			}
		}
		if global != -1 {
			break
		}
	}
	if global == -1 {
		panic(fmt.Sprintf("pattern.Components: could not find component of router %d", routerOrigin))
	}
	globalDest := p.globalPattern.GetDestination(global, topo, r)
	component := p.components[globalDest]
	dest := component[r.Intn(len(component))]
	radix := topo.Ports(dest)
	var candidates []int
	for port := 0; port < radix; port++ {
		loc, _ := topo.Neighbour(dest, port)
		if loc.Kind == topology.LocationServerPort {
			candidates = append(candidates, loc.Server)
		}
	}
	return candidates[r.Intn(len(candidates))]
}
