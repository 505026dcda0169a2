// Package traffic implements Traffic, the per-task message generation and
// consumption contract driving the simulation's per-cycle loop (spec.md
// §4.2).
//
// Every variant is identified by its ConfigValue Object tag and built
// through a plug table keyed by tag, mirroring pattern.Register/pattern.Build
// (spec.md §9's "plug table keyed by tag" design note applies identically
// to Traffic). Each variant file registers itself via an init() function.
//
// State machine (spec.md §4.2): a task progresses Generating ->
// (WaitingData | WaitingCycle | UnspecifiedWait) -> FinishedGenerating ->
// Finished, and must never regress from Finished to an earlier state.
package traffic

import (
	"fmt"
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// TaskState is the state of one task within a Traffic (spec.md §4.2).
type TaskState int

const (
	Generating TaskState = iota
	WaitingData
	WaitingCycle
	UnspecifiedWait
	FinishedGenerating
	Finished
)

func (s TaskState) String() string {
	switch s {
	case Generating:
		return "Generating"
	case WaitingData:
		return "WaitingData"
	case WaitingCycle:
		return "WaitingCycle"
	case UnspecifiedWait:
		return "UnspecifiedWait"
	case FinishedGenerating:
		return "FinishedGenerating"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// State pairs a TaskState with the optional cycle payload WaitingCycle
// carries. A nil *State from TaskState means "not served by this traffic".
type State struct {
	Kind  TaskState
	Cycle message.Cycle // meaningful only when Kind == WaitingCycle
}

// ErrorKind enumerates Traffic.GenerateMessage failure reasons (spec.md
// §4.2).
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	// ErrOriginOutsideTraffic: origin is not served by this traffic variant.
	ErrOriginOutsideTraffic
	// ErrSelfMessage: origin equals destination.
	ErrSelfMessage
)

func (e ErrorKind) Error() string {
	switch e {
	case ErrOriginOutsideTraffic:
		return "traffic: origin outside traffic"
	case ErrSelfMessage:
		return "traffic: self message"
	default:
		return "traffic: no error"
	}
}

// Traffic is the per-task message generation/consumption contract.
//
// Contract (spec.md §4.2):
//   - NumberTasks is fixed at construction.
//   - ShouldGenerate is the authoritative generation decision; the root
//     loop must consult it each cycle per task, and it must return false
//     once a task has left the Generating state.
//   - GenerateMessage requires task < NumberTasks and must be called only
//     after ShouldGenerate returned true.
//   - Consume returns true iff this traffic produced and fully accounted
//     for the message; wrappers that layer payloads must peel their own
//     header before delegating to a child.
//   - IsFinished must be true iff every task is Finished and no message
//     remains outstanding.
type Traffic interface {
	NumberTasks() int
	ProbabilityPerCycle(task int) float32
	ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool
	GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error)
	Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool
	IsFinished() bool
	TaskState(task int, cycle message.Cycle) (State, bool)
}

// StatisticsSource is implemented by Traffic variants that aggregate
// statistics over children (Sum), exposing a snapshot for the reporting
// layer.
type StatisticsSource interface {
	Statistics() any
}

// Builder constructs a Traffic from a ConfigValue Object. topo and prng
// are threaded through exactly as pattern.Builder receives prng: builders
// that wrap a Pattern call pattern.Build(cv, prng) and then Initialize it
// against topo; builders that wrap a sub-Traffic call Build recursively.
type Builder func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic

var registry = map[string]Builder{}

// Register adds a tag -> Builder mapping to the plug table.
func Register(tag string, b Builder) {
	if _, exists := registry[tag]; exists {
		panic(fmt.Sprintf("traffic: tag %q registered twice", tag))
	}
	registry[tag] = b
}

// Build dispatches on cv.Tag, panicking with the tag name if unknown.
func Build(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
	if cv.Kind != config.KindObject {
		panic(fmt.Sprintf("traffic: expected an Object naming a Traffic variant, got %s", cv.Kind))
	}
	b, ok := registry[cv.Tag]
	if !ok {
		panic(fmt.Sprintf("traffic: unknown Traffic tag %q", cv.Tag))
	}
	return b(cv, topo, prng)
}

// buildPattern constructs and initializes a Pattern field over
// (sourceSize, targetSize), the idiom every pattern-carrying Traffic
// variant uses at construction time (spec.md §4.2: "Homogeneous... using
// the configured pattern").
func buildPattern(cv config.Value, sourceSize, targetSize int, topo topology.Topology, prng *rng.PartitionedRNG) pattern.Pattern {
	p := pattern.Build(cv, prng)
	p.Initialize(sourceSize, targetSize, topo, prng.ForSubsystem(rng.SubsystemGlobal))
	return p
}

func requireRange(tag string, task, tasks int) {
	if task < 0 || task >= tasks {
		panic(fmt.Sprintf("traffic.%s: task %d out of range [0,%d)", tag, task, tasks))
	}
}
