package pattern

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/rng"
	"github.com/toposim/toposim/topology"
)

// FileMap / EmbeddedMap: a permutation given as (origin, destination)
// pairs read from a file or supplied inline. The resulting map must be a
// function — duplicate origins panic rather than being silently
// overwritten (spec.md §4.1), unlike original_source/src/pattern.rs's
// FileMap, which overwrites on duplicate; spec.md explicitly hardens this.
type FileMap struct {
	base
	permutation []int // -1 = unset
}

func init() {
	Register("FileMap", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		filename := cv.RequireField("FileMap", "filename").AsString("FileMap", "filename")
		f, err := os.Open(filename)
		if err != nil {
			panic(fmt.Sprintf("pattern.FileMap: could not open pattern file %q: %v", filename, err))
		}
		defer f.Close()

		pm := &FileMap{}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			words := strings.Fields(line)
			if len(words) < 2 {
				panic(fmt.Sprintf("pattern.FileMap: malformed line %q in %q", line, filename))
			}
			origin, err1 := strconv.Atoi(words[0])
			destination, err2 := strconv.Atoi(words[1])
			if err1 != nil || err2 != nil {
				panic(fmt.Sprintf("pattern.FileMap: malformed line %q in %q", line, filename))
			}
			pm.set(origin, destination)
		}
		if err := scanner.Err(); err != nil {
			panic(fmt.Sprintf("pattern.FileMap: error reading %q: %v", filename, err))
		}
		return pm
	})

	Register("EmbeddedMap", func(cv config.Value, prng *rng.PartitionedRNG) Pattern {
		pairs := cv.RequireField("EmbeddedMap", "map").AsArray("EmbeddedMap", "map")
		pm := &FileMap{}
		for _, pair := range pairs {
			coords := pair.UsizeArray("EmbeddedMap", "map")
			if len(coords) != 2 {
				panic("pattern.EmbeddedMap: each map entry must be an [origin,destination] pair")
			}
			pm.set(coords[0], coords[1])
		}
		return pm
	})
}

func (p *FileMap) set(origin, destination int) {
	for len(p.permutation) <= origin || len(p.permutation) <= destination {
		p.permutation = append(p.permutation, -1)
	}
	if p.permutation[origin] != -1 {
		panic(fmt.Sprintf("pattern.FileMap: duplicate origin %d (existing destination %d, new %d)", origin, p.permutation[origin], destination))
	}
	p.permutation[origin] = destination
}

func (p *FileMap) Initialize(sourceSize, targetSize int, topo topology.Topology, r *rand.Rand) {
	p.markInitialized("FileMap", sourceSize, targetSize)
	for len(p.permutation) < sourceSize {
		p.permutation = append(p.permutation, -1)
	}
}

func (p *FileMap) GetDestination(origin int, topo topology.Topology, r *rand.Rand) int {
	p.requireOrigin(origin)
	d := p.permutation[origin]
	if d < 0 {
		panic(fmt.Sprintf("pattern.FileMap: origin %d has no destination in the map", origin))
	}
	return d
}
