package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureSpec is the YAML-described topology fixture consumed by the
// `cmd describe`/`cmd simulate` demo commands (SPEC_FULL.md §7): this
// repo ships no production Topology implementation (routing, router
// microarchitecture, and the graph itself are out of scope per spec.md
// §1), so the fixture just parametrizes the one deterministic topology
// the repo does carry, internal/testtopology.Ring.
type FixtureSpec struct {
	Routers       int `yaml:"routers"`
	Concentration int `yaml:"concentration"`
}

// LoadFixtureSpec reads and strictly decodes a FixtureSpec from path,
// mirroring the teacher's workload.LoadWorkloadSpec idiom: strict
// decoding (unknown fields are an error) and an error wrapped with the
// offending path.
func LoadFixtureSpec(path string) (FixtureSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FixtureSpec{}, fmt.Errorf("config: reading fixture %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec FixtureSpec
	if err := dec.Decode(&spec); err != nil {
		return FixtureSpec{}, fmt.Errorf("config: parsing fixture %s: %w", path, err)
	}
	if spec.Routers <= 0 {
		return FixtureSpec{}, fmt.Errorf("config: fixture %s: routers must be > 0", path)
	}
	return spec, nil
}
