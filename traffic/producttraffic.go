package traffic

import (
	"math/rand"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/message"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// ProductTraffic factors the task space as global_size blocks of
// block_traffic.NumberTasks() tasks each. Within a block, message
// generation/consumption follows block_traffic verbatim; which global
// block a message targets is chosen by global_pattern over the block
// index. Each generated message carries its (global origin, global
// destination) block-index pair as a header so Consume can recover which
// global block the payload belongs to.
//
// Grounded on original_source/src/traffic/operations.rs's ProductTraffic.
type ProductTraffic struct {
	blockSize    int
	globalSize   int
	blockTraffic Traffic
	globalPattern pattern.Pattern
}

func init() {
	Register("ProductTraffic", func(cv config.Value, topo topology.Topology, prng *rng.PartitionedRNG) Traffic {
		globalSize := cv.RequireField("ProductTraffic", "global_size").AsUsize("ProductTraffic", "global_size")
		blockCV := cv.RequireField("ProductTraffic", "block_traffic")
		patCV := cv.RequireField("ProductTraffic", "global_pattern")
		block := Build(blockCV, topo, prng)
		return &ProductTraffic{
			blockSize:     block.NumberTasks(),
			globalSize:    globalSize,
			blockTraffic:  block,
			globalPattern: buildPattern(patCV, globalSize, globalSize, topo, prng),
		}
	})
}

func (p *ProductTraffic) NumberTasks() int { return p.blockSize * p.globalSize }

func (p *ProductTraffic) split(task int) (global, local int) {
	return task / p.blockSize, task % p.blockSize
}

func (p *ProductTraffic) ProbabilityPerCycle(task int) float32 {
	_, local := p.split(task)
	return p.blockTraffic.ProbabilityPerCycle(local)
}

func (p *ProductTraffic) ShouldGenerate(task int, cycle message.Cycle, r *rand.Rand) bool {
	_, local := p.split(task)
	return p.blockTraffic.ShouldGenerate(local, cycle, r)
}

func (p *ProductTraffic) GenerateMessage(task int, cycle message.Cycle, topo topology.Topology, r *rand.Rand) (message.Message, error) {
	if task < 0 || task >= p.NumberTasks() {
		return message.Message{}, ErrOriginOutsideTraffic
	}
	globalOrigin, local := p.split(task)
	m, err := p.blockTraffic.GenerateMessage(local, cycle, topo, r)
	if err != nil {
		return message.Message{}, err
	}
	globalDestination := p.globalPattern.GetDestination(globalOrigin, topo, r)
	m = m.PushHeader(message.PairHeader(uint32(globalOrigin), uint32(globalDestination)))
	m.Origin = globalOrigin*p.blockSize + local
	m.Destination = globalDestination*p.blockSize + m.Destination
	if m.Origin == m.Destination {
		return message.Message{}, ErrSelfMessage
	}
	return m, nil
}

func (p *ProductTraffic) Consume(task int, m message.Message, cycle message.Cycle, topo topology.Topology, r *rand.Rand) bool {
	globalOrigin, globalDestination, rest := message.PopPairHeader(m)
	_ = globalOrigin
	_ = globalDestination
	_, local := p.split(task)
	rest.Origin = rest.Origin % p.blockSize
	rest.Destination = rest.Destination % p.blockSize
	return p.blockTraffic.Consume(local, rest, cycle, topo, r)
}

func (p *ProductTraffic) IsFinished() bool { return p.blockTraffic.IsFinished() }

func (p *ProductTraffic) TaskState(task int, cycle message.Cycle) (State, bool) {
	_, local := p.split(task)
	return p.blockTraffic.TaskState(local, cycle)
}
