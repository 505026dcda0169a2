package stats

import "github.com/toposim/toposim/message"

// ServerWindow is one temporal bucket's worth of per-server accounting —
// the payload ServerStatistics.Temporal grows on demand (spec.md §3
// "ServerStatistics[server]: current window plus an optional
// temporal-bucketed vector").
type ServerWindow struct {
	BeginCycle message.Cycle
	Created    int64
	Consumed   int64
}

// ServerStatistics tracks one server's generation/consumption counts,
// optional temporal bucketing, last-activity cycles, and the number of
// cycles the server's Traffic wanted to generate but was refused
// ("missed generation").
type ServerStatistics struct {
	Current             ServerWindow
	Temporal            []ServerWindow // indexed by cycle/temporalStep; nil if temporalStep == 0
	temporalStep        int
	LastCreatedCycle    message.Cycle
	LastConsumedCycle   message.Cycle
	HasCreated          bool
	HasConsumed         bool
	MissedGenerations   int64
}

// NewServerStatistics returns a zeroed ServerStatistics. temporalStep <= 0
// disables temporal bucketing for this server (spec.md §4.3: "when
// temporal_step > 0").
func NewServerStatistics(temporalStep int) *ServerStatistics {
	return &ServerStatistics{temporalStep: temporalStep}
}

func (s *ServerStatistics) bucket(cycle message.Cycle) *ServerWindow {
	if s.temporalStep <= 0 {
		return nil
	}
	idx := int(cycle) / s.temporalStep
	for idx >= len(s.Temporal) {
		s.Temporal = append(s.Temporal, ServerWindow{})
	}
	b := &s.Temporal[idx]
	if b.BeginCycle == 0 && b.Created == 0 && b.Consumed == 0 {
		b.BeginCycle = message.Cycle(idx) * message.Cycle(s.temporalStep)
	}
	return b
}

// RecordCreated accounts for one message created at cycle.
func (s *ServerStatistics) RecordCreated(cycle message.Cycle) {
	s.Current.Created++
	s.LastCreatedCycle = cycle
	s.HasCreated = true
	if b := s.bucket(cycle); b != nil {
		b.Created++
	}
}

// RecordConsumed accounts for one message consumed at cycle.
func (s *ServerStatistics) RecordConsumed(cycle message.Cycle) {
	s.Current.Consumed++
	s.LastConsumedCycle = cycle
	s.HasConsumed = true
	if b := s.bucket(cycle); b != nil {
		b.Consumed++
	}
}

// RecordMissedGeneration accounts for one cycle where ShouldGenerate
// wanted to emit but the outer loop declined (e.g. network backpressure;
// out of scope for the core itself but the counter is part of the
// documented accumulator).
func (s *ServerStatistics) RecordMissedGeneration() {
	s.MissedGenerations++
}

// Reset clears the current window in place; Temporal history, like
// LinkStatistics and GlobalMeasurement, is cleared (spec.md §4.3:
// "servers and links are individually reset").
func (s *ServerStatistics) Reset() {
	s.Current = ServerWindow{}
}
