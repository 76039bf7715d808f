package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/epidemic-sim/sim"
)

// defaultSeed is used when neither the scenario file nor --seed sets one.
const defaultSeed = 42

// Scenario represents the full scenario YAML structure (see defaults.yaml).
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Version string     `yaml:"version"`
	Seed    int64      `yaml:"seed"`
	Config  sim.Config `yaml:"config"`
}

// defaultScenario is the scenario used when no file is given.
func defaultScenario() Scenario {
	return Scenario{
		Version: "1",
		Seed:    defaultSeed,
		Config:  sim.DefaultConfig(),
	}
}

// loadScenario parses a scenario file on top of the default scenario, so a file
// only needs to list the values it changes. Unknown keys are rejected.
func loadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (Scenario, error) {
	sc := defaultScenario()

	// Strict field checking: typos must cause errors
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("parse scenario YAML: %w", err)
	}
	return sc, nil
}
