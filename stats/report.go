package stats

import (
	"fmt"
	"io"
)

// ColumnKind enumerates the report column kinds spec.md §4.3 documents.
type ColumnKind int

const (
	BeginEndCycle ColumnKind = iota
	InjectedLoad
	AcceptedLoad
	ServerGenerationJainIndex
	ServerConsumptionJainIndex
	AverageMessageDelay
	AveragePacketNetworkDelay
	AveragePacketHops
	AverageLinkUtilization
	MaximumLinkUtilization
)

func (c ColumnKind) header() string {
	switch c {
	case BeginEndCycle:
		return "begin-end cycle"
	case InjectedLoad:
		return "injected load"
	case AcceptedLoad:
		return "accepted load"
	case ServerGenerationJainIndex:
		return "gen. Jain"
	case ServerConsumptionJainIndex:
		return "cons. Jain"
	case AverageMessageDelay:
		return "avg msg delay"
	case AveragePacketNetworkDelay:
		return "avg net delay"
	case AveragePacketHops:
		return "avg hops"
	case AverageLinkUtilization:
		return "avg link util"
	case MaximumLinkUtilization:
		return "max link util"
	default:
		return "?"
	}
}

// ReportWindow is the set of inputs one report row is computed from: the
// window's measurement, the per-server counts feeding the two Jain-index
// columns, the per-link arrival counts feeding the two link-utilization
// columns, the number of servers/links, and the number of cycles the
// window spans.
type ReportWindow struct {
	Global            *GlobalMeasurement
	EndCycle          int64
	Cycles            int64
	NumServers        int
	ServerCreated     []float64 // len == NumServers
	ServerConsumed    []float64 // len == NumServers
	LinkArrivals      []int64   // one entry per (router,port), from LinkStatistics.All()
	NumPorts          int       // total number of (router,port) links, for AverageLinkUtilization's denominator
}

// value computes one column's value for w, per the exact formulas of
// spec.md §4.3.
func (c ColumnKind) value(w ReportWindow) float64 {
	switch c {
	case BeginEndCycle:
		return float64(w.EndCycle)
	case InjectedLoad:
		if w.Cycles == 0 || w.NumServers == 0 {
			return 0
		}
		return float64(w.Global.CreatedPhits) / float64(w.Cycles*int64(w.NumServers))
	case AcceptedLoad:
		if w.Cycles == 0 || w.NumServers == 0 {
			return 0
		}
		return float64(w.Global.ConsumedPhits) / float64(w.Cycles*int64(w.NumServers))
	case ServerGenerationJainIndex:
		return Jain(w.ServerCreated)
	case ServerConsumptionJainIndex:
		return Jain(w.ServerConsumed)
	case AverageMessageDelay:
		if w.Global.ConsumedMessages == 0 {
			return 0
		}
		return float64(w.Global.TotalMessageDelay) / float64(w.Global.ConsumedMessages)
	case AveragePacketNetworkDelay:
		if w.Global.ConsumedPackets == 0 {
			return 0
		}
		return float64(w.Global.TotalNetworkDelay) / float64(w.Global.ConsumedPackets)
	case AveragePacketHops:
		if w.Global.ConsumedPackets == 0 {
			return 0
		}
		return float64(w.Global.TotalHopCount) / float64(w.Global.ConsumedPackets)
	case AverageLinkUtilization:
		if w.Cycles == 0 || w.NumPorts == 0 {
			return 0
		}
		var sum int64
		for _, a := range w.LinkArrivals {
			sum += a
		}
		return float64(sum) / float64(w.Cycles*int64(w.NumPorts))
	case MaximumLinkUtilization:
		if w.Cycles == 0 {
			return 0
		}
		var max int64
		for _, a := range w.LinkArrivals {
			if a > max {
				max = a
			}
		}
		return float64(max) / float64(w.Cycles)
	default:
		return 0
	}
}

// Report formats one header + one row per accumulated ReportWindow, in
// the space-padded, right-aligned textual form spec.md §6 "Report
// columns output" documents, mirroring the teacher's Metrics.Print table
// idiom (sim/metrics.go) generalized from a single printf block to a
// configurable column list.
type Report struct {
	Columns []ColumnKind
	Windows []ReportWindow
}

// NewReport builds a Report over the given column list (spec.md §4.3's
// fixed ten; callers may narrow to a subset for a specific output mode).
func NewReport(columns []ColumnKind) *Report {
	return &Report{Columns: columns}
}

// AddWindow appends one computed row's inputs.
func (r *Report) AddWindow(w ReportWindow) {
	r.Windows = append(r.Windows, w)
}

const columnWidth = 16

// WriteTo writes the header followed by one row per window, each field
// right-aligned to columnWidth and space-separated.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, c := range r.Columns {
		n, err := fmt.Fprintf(w, "%*s", columnWidth, c.header())
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	n, err := fmt.Fprintln(w)
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, win := range r.Windows {
		for _, c := range r.Columns {
			var n int
			var err error
			if c == BeginEndCycle {
				n, err = fmt.Fprintf(w, "%*d", columnWidth, int64(c.value(win)))
			} else {
				n, err = fmt.Fprintf(w, "%*.6f", columnWidth, c.value(win))
			}
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
		n, err := fmt.Fprintln(w)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
