package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/toposim/toposim/message"
)

// PacketMeasurement is one retained per-packet sample, kept only when
// percentile output has been requested (spec.md §3
// "PacketMeasurement samples").
type PacketMeasurement struct {
	ConsumedCycle message.Cycle
	Hops          int
	Delay         int64
}

// PacketSamples is an append-only collection of PacketMeasurement values,
// retained when percentile extraction is configured. Percentile
// extraction itself is the consumer's responsibility (spec.md §4.3
// "Percentiles"); this type just owns the raw samples and a convenience
// Quantile helper built on gonum/stat, the library the teacher's own
// CalculatePercentile util hand-rolls a replacement for.
type PacketSamples struct {
	samples []PacketMeasurement
}

// NewPacketSamples returns an empty sample set.
func NewPacketSamples() *PacketSamples { return &PacketSamples{} }

// Record appends one sample.
func (p *PacketSamples) Record(m PacketMeasurement) {
	p.samples = append(p.samples, m)
}

// Len reports how many samples have been retained.
func (p *PacketSamples) Len() int { return len(p.samples) }

// All returns the retained samples in recording order.
func (p *PacketSamples) All() []PacketMeasurement {
	return p.samples
}

// delayQuantile computes the p-th (0..1) quantile of the retained
// delays via gonum/stat.Quantile, which requires its input sorted
// ascending and empirically interpolated (stat.Empirical).
func (p *PacketSamples) delayQuantile(q float64) float64 {
	if len(p.samples) == 0 {
		return 0
	}
	delays := make([]float64, len(p.samples))
	for i, s := range p.samples {
		delays[i] = float64(s.Delay)
	}
	sort.Float64s(delays)
	return stat.Quantile(q, stat.Empirical, delays, nil)
}

// DelayPercentile returns the p-th percentile (0..100) of retained packet
// delays.
func (p *PacketSamples) DelayPercentile(p100 float64) float64 {
	return p.delayQuantile(p100 / 100.0)
}

// HopsPercentile returns the p-th percentile (0..100) of retained packet
// hop counts.
func (p *PacketSamples) HopsPercentile(p100 float64) float64 {
	if len(p.samples) == 0 {
		return 0
	}
	hops := make([]float64, len(p.samples))
	for i, s := range p.samples {
		hops[i] = float64(s.Hops)
	}
	sort.Float64s(hops)
	return stat.Quantile(p100/100.0, stat.Empirical, hops, nil)
}
