// Package testtopology provides a small deterministic Topology
// implementation for exercising Pattern and Traffic variants that need a
// real topology (UniformDistance, RestrictedMiddleUniform, Components).
//
// Grounded on the teacher's sim/internal/testutil fixtures (shared,
// hand-rolled test infrastructure kept alongside the package it supports)
// and original_source/src/topology/mod.rs's Topology trait, which Ring
// implements directly as a 1-D torus: NumRouters routers arranged in a
// cycle, each with Concentration attached servers.
package testtopology

import (
	"fmt"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/topology"
)

// LinkClass indices used by Ring: 0 is the ring link class (router<->router),
// 1 is the server attachment link class.
const (
	RingLinkClass   = 0
	ServerLinkClass = 1
)

// Ring is a 1-D torus of n routers, each with concentration attached
// servers, and ports 0/1 wired to the previous/next router respectively.
type Ring struct {
	n             int
	concentration int
}

// New builds a Ring topology of n routers with the given number of servers
// attached to each router. Panics if n < 1 or concentration < 0.
func New(n, concentration int) *Ring {
	if n < 1 {
		panic(fmt.Sprintf("testtopology.Ring: n must be >= 1, got %d", n))
	}
	if concentration < 0 {
		panic(fmt.Sprintf("testtopology.Ring: concentration must be >= 0, got %d", concentration))
	}
	return &Ring{n: n, concentration: concentration}
}

func (t *Ring) NumRouters() int { return t.n }
func (t *Ring) NumServers() int { return t.n * t.concentration }

// Ports is 2 (previous, next) plus one per attached server.
func (t *Ring) Ports(router int) int { return 2 + t.concentration }

func (t *Ring) Degree(router int) int { return t.Ports(router) }

// Distance is the cyclic distance around the ring.
func (t *Ring) Distance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if other := t.n - d; other < d {
		d = other
	}
	return d
}

func (t *Ring) Neighbour(router, port int) (topology.Location, int) {
	switch {
	case port == 0:
		prev := router - 1
		if prev < 0 {
			prev += t.n
		}
		return topology.Location{Kind: topology.LocationRouterPort, Router: prev, Port: 1}, RingLinkClass
	case port == 1:
		next := (router + 1) % t.n
		return topology.Location{Kind: topology.LocationRouterPort, Router: next, Port: 0}, RingLinkClass
	case port < 2+t.concentration:
		server := router*t.concentration + (port - 2)
		return topology.Location{Kind: topology.LocationServerPort, Server: server}, ServerLinkClass
	default:
		panic(fmt.Sprintf("testtopology.Ring: router %d has no port %d", router, port))
	}
}

func (t *Ring) ServerNeighbour(server int) (topology.Location, int) {
	if server < 0 || server >= t.NumServers() {
		panic(fmt.Sprintf("testtopology.Ring: server %d out of range", server))
	}
	router := server / t.concentration
	return topology.Location{Kind: topology.LocationRouterPort, Router: router, Port: 2 + server%t.concentration}, ServerLinkClass
}

// Components returns the trivial single-component partition when the ring
// link class is allowed, or n singleton components otherwise.
func (t *Ring) Components(allowedLinkClasses []bool) [][]int {
	allowRing := len(allowedLinkClasses) > RingLinkClass && allowedLinkClasses[RingLinkClass]
	if !allowRing {
		components := make([][]int, t.n)
		for i := range components {
			components[i] = []int{i}
		}
		return components
	}
	all := make([]int, t.n)
	for i := range all {
		all[i] = i
	}
	return [][]int{all}
}

// CartesianData exposes the ring as a 1-D cartesian space.
func (t *Ring) CartesianData() (cartesian.Data, bool) {
	return cartesian.New([]int{t.n}), true
}
