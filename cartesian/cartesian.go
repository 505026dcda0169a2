// Package cartesian implements CartesianData, the coordinate (un)packing
// helper used by the product-of-ranges Pattern variants (CartesianTransform,
// LinearTransform, CartesianTiling, CartesianEmbedding, CartesianCut,
// CartesianFactor) and optionally exposed by a Topology
// (cartesian_data() -> Option<CartesianData>, spec.md §6).
//
// Grounded on original_source/src/topology/cartesian.rs's CartesianData.
package cartesian

import "fmt"

// Data is a product-of-ranges coordinate encoding: Size == product(Sides).
type Data struct {
	Sides []int
	Size  int
}

// New builds a Data from a list of per-dimension sides.
func New(sides []int) Data {
	size := 1
	for _, s := range sides {
		size *= s
	}
	return Data{Sides: append([]int(nil), sides...), Size: size}
}

// Unpack returns the little-endian digit expansion of index: coordinate i
// varies fastest for i=0. Panics if index is out of range.
func (d Data) Unpack(index int) []int {
	if index < 0 || index >= d.Size {
		panic(fmt.Sprintf("cartesian: index %d is out of range for size %d", index, d.Size))
	}
	coords := make([]int, len(d.Sides))
	for i, side := range d.Sides {
		coords[i] = index % side
		index /= side
	}
	return coords
}

// Pack is the inverse of Unpack; it validates each coordinate against its
// side and panics (naming the offending coordinate) if out of range.
func (d Data) Pack(coords []int) int {
	for i, c := range coords {
		if i >= len(d.Sides) {
			break
		}
		if c < 0 || c >= d.Sides[i] {
			panic(fmt.Sprintf("cartesian: coordinate %d (=%d) is out of range for side %d", i, c, d.Sides[i]))
		}
	}
	r := 0
	stride := 1
	for i, side := range d.Sides {
		r += coords[i] * stride
		stride *= side
	}
	return r
}
