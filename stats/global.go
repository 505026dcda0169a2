package stats

import "github.com/toposim/toposim/message"

// GlobalMeasurement is the current accounting window: counters for
// created/consumed phits, consumed packets, consumed messages, the delay
// sums behind the §4.3 report formulas, a per-hop-count histogram, a
// per-virtual-channel usage vector, and the cycle the window began at
// (spec.md §3 "GlobalMeasurement").
//
// Grounded on original_source/src/measures.rs's Statistics struct.
type GlobalMeasurement struct {
	CreatedPhits          int64
	ConsumedPhits         int64
	ConsumedPackets       int64
	ConsumedMessages      int64
	TotalMessageDelay     int64
	TotalNetworkDelay     int64
	TotalHopCount         int64
	HopCountHistogram     []int64 // grows on demand; index = hop count
	VirtualChannelUsage   []int64 // grows on demand; index = VC id
	BeginCycle            message.Cycle
}

// NewGlobalMeasurement returns a zeroed window beginning at begin.
func NewGlobalMeasurement(begin message.Cycle) *GlobalMeasurement {
	return &GlobalMeasurement{BeginCycle: begin}
}

func growInt64(s []int64, n int) []int64 {
	if n < len(s) {
		return s
	}
	out := make([]int64, n+1)
	copy(out, s)
	return out
}

// RecordPhitCreated accounts for n phits created at the root Traffic.
func (g *GlobalMeasurement) RecordPhitCreated(n int64) {
	g.CreatedPhits += n
}

// RecordPhitConsumed accounts for n phits consumed at their destination.
func (g *GlobalMeasurement) RecordPhitConsumed(n int64) {
	g.ConsumedPhits += n
}

// RecordPacketConsumed accounts for one consumed packet with the given
// hop count and network delay, growing HopCountHistogram on demand to
// accommodate the observed maximum (spec.md §4.3).
func (g *GlobalMeasurement) RecordPacketConsumed(hops int, networkDelay int64) {
	g.ConsumedPackets++
	g.TotalNetworkDelay += networkDelay
	g.TotalHopCount += int64(hops)
	g.HopCountHistogram = growInt64(g.HopCountHistogram, hops)
	g.HopCountHistogram[hops]++
}

// RecordMessageConsumed accounts for one consumed message with the given
// total delay.
func (g *GlobalMeasurement) RecordMessageConsumed(delay int64) {
	g.ConsumedMessages++
	g.TotalMessageDelay += delay
}

// RecordPhitHop accounts for one phit advancing one hop on virtual channel
// vc, growing VirtualChannelUsage on demand.
func (g *GlobalMeasurement) RecordPhitHop(vc int) {
	g.VirtualChannelUsage = growInt64(g.VirtualChannelUsage, vc)
	g.VirtualChannelUsage[vc]++
}

// Reset zeroes every counter and stamps BeginCycle to nextBegin, matching
// spec.md §4.3's cycle-aligned reset. Histogram/usage vectors are
// discarded (not shrunk in place) since a fresh window has no history.
func (g *GlobalMeasurement) Reset(nextBegin message.Cycle) {
	*g = GlobalMeasurement{BeginCycle: nextBegin}
}
