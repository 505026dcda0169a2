// Package topology declares the Topology interface the core consumes.
// The topology graph itself, routing, and router microarchitecture are
// out of scope (spec.md §1): this package is an interface boundary only.
//
// Grounded on original_source/src/topology/mod.rs's Topology trait,
// trimmed to the operations spec.md §6 documents the core as calling.
package topology

import "github.com/toposim/toposim/cartesian"

// LocationKind discriminates Location variants.
type LocationKind int

const (
	LocationNone LocationKind = iota
	LocationRouterPort
	LocationServerPort
)

// Location is the sum RouterPort{router,port} | ServerPort(server) | None.
type Location struct {
	Kind   LocationKind
	Router int
	Port   int
	Server int
}

// Topology is the minimum surface the core calls (spec.md §6).
type Topology interface {
	NumRouters() int
	NumServers() int
	Ports(router int) int
	Degree(router int) int
	Distance(a, b int) int
	// Neighbour returns the Location and link class reached from a given
	// router's port.
	Neighbour(router, port int) (Location, int)
	// ServerNeighbour returns the Location and link class a server attaches
	// to.
	ServerNeighbour(server int) (Location, int)
	// Components partitions routers into connected components under the
	// subset of link classes named true in allowedLinkClasses (indexed by
	// link class).
	Components(allowedLinkClasses []bool) [][]int
	// CartesianData optionally exposes a product-of-ranges view of the
	// router index space; ok is false when the topology has none.
	CartesianData() (cartesian.Data, bool)
}
