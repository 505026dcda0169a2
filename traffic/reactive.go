package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// Reactive drives action_traffic normally. Whenever a task consumes an
// action message, the message's sender is owed a reply: Consume pre-builds
// that reply through reaction_traffic right away (at the sender's identity,
// not the consumer's) and queues it, so the sender's next GenerateMessage
// call pops the already-decided reply instead of re-running
// reaction_traffic's should_generate/generate_message later with a possibly
// different outcome.
//
// Grounded on original_source/src/traffic/basic.rs's Reactive.
type Reactive struct {
	action, reaction Traffic
	pendingReplies   [][]message.Message // pendingReplies[origin], FIFO
}

func init() {
	Register("Reactive", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		actionCV := cv.RequireField("Reactive", "action_traffic")
		reactionCV := cv.RequireField("Reactive", "reaction_traffic")
		action := Build(actionCV, topo, prng)
		return &Reactive{
			action:         action,
			reaction:       Build(reactionCV, topo, prng),
			pendingReplies: make([][]message.Message, action.NumberTasks()),
		}
	})
}

func (r *Reactive) NumberTasks() int { return r.action.NumberTasks() }

func (r *Reactive) hasPending(task int) bool {
	return task >= 0 && task < len(r.pendingReplies) && len(r.pendingReplies[task]) > 0
}

func (r *Reactive) active(task int) Traffic {
	if r.hasPending(task) {
		return r.reaction
	}
	return r.action
}

func (r *Reactive) ProbabilityPerCycle(task int) float32 {
	return r.active(task).ProbabilityPerCycle(task)
}

func (r *Reactive) ShouldGenerate(task int, cycle message.Cycle, rnd *rand.Rand) bool {
	if r.hasPending(task) {
		return true
	}
	return r.action.ShouldGenerate(task, cycle, rnd)
}

func (r *Reactive) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, rnd *rand.Rand) (message.Message, error) {
	if r.hasPending(task) {
		m := r.pendingReplies[task][0]
		r.pendingReplies[task] = r.pendingReplies[task][1:]
		return m, nil
	}
	return r.action.GenerateMessage(task, cycle, topo, rnd)
}

// Consume accounts an action message consumed by task. On success, the
// message's origin (the sender awaiting a reaction) has its reply message
// built and queued immediately, using reaction_traffic's own
// should_generate/generate_message evaluated at origin's identity. If the
// action doesn't claim the message, it falls through to reaction_traffic,
// which is how a queued reply itself gets consumed by its original sender.
func (r *Reactive) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, rnd *rand.Rand) bool {
	if r.action.Consume(task, m, cycle, topo, rnd) {
		origin := m.Origin
		if origin >= 0 && origin < len(r.pendingReplies) && r.reaction.ShouldGenerate(origin, cycle, rnd) {
			reply, err := r.reaction.GenerateMessage(origin, cycle, topo, rnd)
			if err == nil {
				r.pendingReplies[origin] = append(r.pendingReplies[origin], reply)
			}
		}
		return true
	}
	return r.reaction.Consume(task, m, cycle, topo, rnd)
}

func (r *Reactive) IsFinished() bool {
	return r.action.IsFinished() && r.reaction.IsFinished()
}

func (r *Reactive) TaskState(task int, cycle message.Cycle) (State, bool) {
	return r.active(task).TaskState(task, cycle)
}
