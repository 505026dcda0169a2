package pattern

import (
	"fmt"
	"math/bits"
	"math/rand"
	"sync"

	"github.com/toposim/toposim/cartesian"
	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// RecursiveDistanceHalving simulates the communication steps of a
// recursive-doubling all-gather/all-reduce over a hypercube embedding of
// source_size (which must be a power of two): the n-th call for an origin
// flips the bit selected by neighboursOrder[n] (default: bit n itself).
// Once every bit has been flipped, it returns origin unchanged. Grounded
// on original_source/src/pattern/extra.rs's RecursiveDistanceHalving.
type RecursiveDistanceHalving struct {
	base
	mu              sync.Mutex
	data            cartesian.Data
	state           []int
	neighboursOrder [][]int
}

func init() {
	Register("RecursiveDistanceHalving", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		rdh := &RecursiveDistanceHalving{}
		if v, ok := cv.Field("neighbours_order"); ok {
			ns := v.UsizeArray("RecursiveDistanceHalving", "neighbours_order")
			max := 0
			for _, n := range ns {
				if n > max {
					max = n
				}
			}
			bitsCount := bits.Len(uint(max)) + 1
			order := make([][]int, len(ns))
			for i, n := range ns {
				row := make([]int, bitsCount)
				for b := 0; b < bitsCount; b++ {
					row[b] = n % 2
					n /= 2
				}
				order[i] = row
			}
			rdh.neighboursOrder = order
		}
		return rdh
	})
}

func (p *RecursiveDistanceHalving) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("RecursiveDistanceHalving", sourceSize, targetSize)
	if sourceSize&(sourceSize-1) != 0 {
		panic(fmt.Sprintf("pattern.RecursiveDistanceHalving: source size %d must be a power of 2", sourceSize))
	}
	p.markInitialized("RecursiveDistanceHalving", sourceSize, targetSize)
	pow := bits.TrailingZeros(uint(sourceSize))
	sides := make([]int, pow)
	for i := range sides {
		sides[i] = 2
	}
	p.data = cartesian.New(sides)
	p.state = make([]int, sourceSize)
}

func (p *RecursiveDistanceHalving) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	p.mu.Lock()
	defer p.mu.Unlock()
	index := p.state[origin]
	if index >= len(p.data.Sides) {
		return origin
	}
	sourceCoord := p.data.Unpack(origin)
	var toSend []int
	if p.neighboursOrder != nil {
		toSend = p.neighboursOrder[index]
	} else {
		toSend = p.data.Unpack(1 << uint(index))
	}
	dest := make([]int, len(sourceCoord))
	for i := range dest {
		dest[i] = sourceCoord[i] ^ toSend[i]
	}
	p.state[origin]++
	return p.data.Pack(dest)
}

// BinomialTree simulates traffic over a binomial tree embedded in a
// hypercube: upwards==true walks each node towards the root (node 0),
// upwards==false walks from the root downwards to its children in
// increasing dimension order. Grounded on
// original_source/src/pattern/extra.rs's BinomialTree.
type BinomialTree struct {
	base
	mu       sync.Mutex
	upwards  bool
	data     cartesian.Data
	state    []int
}

func init() {
	Register("BinomialTree", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		return &BinomialTree{upwards: cv.RequireField("BinomialTree", "upwards").AsBool("BinomialTree", "upwards")}
	})
}

func (p *BinomialTree) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	requireEqual("BinomialTree", sourceSize, targetSize)
	if sourceSize&(sourceSize-1) != 0 {
		panic(fmt.Sprintf("pattern.BinomialTree: source size %d must be a power of 2", sourceSize))
	}
	p.markInitialized("BinomialTree", sourceSize, targetSize)
	treeOrder := bits.TrailingZeros(uint(sourceSize))
	sides := make([]int, treeOrder)
	for i := range sides {
		sides[i] = 2
	}
	p.data = cartesian.New(sides)
	p.state = make([]int, sourceSize)
}

func firstOneIndex(coord []int) int {
	for i, v := range coord {
		if v == 1 {
			return i
		}
	}
	return -1
}

func (p *BinomialTree) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	if origin >= p.data.Size {
		panic(fmt.Sprintf("pattern.BinomialTree: origin %d is beyond the source size %d", origin, p.data.Size))
	}
	sourceCoord := p.data.Unpack(origin)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.upwards {
		if origin == 0 {
			return 0
		}
		index := firstOneIndex(sourceCoord)
		if p.state[origin] == 1 {
			return origin
		}
		p.state[origin] = 1
		sourceCoord[index] = 0
		return p.data.Pack(sourceCoord)
	}
	first := firstOneIndex(sourceCoord)
	if origin == 0 {
		first = len(p.data.Sides)
	}
	sonIndex := p.state[origin]
	if first > sonIndex {
		p.state[origin]++
		return origin + (1 << uint(sonIndex))
	}
	return origin
}
