package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of a batch run. Command line flags
// override any value set here.
type Scenario struct {
	Instance   string `yaml:"instance"`
	Policy     string `yaml:"policy"`
	Visualizer string `yaml:"visualizer"`
	Trials     int    `yaml:"trials"`
	// Seed of zero selects a time-derived, non-reproducible seed.
	Seed       uint64 `yaml:"seed"`
	Output     string `yaml:"output"`
	FlushEvery int    `yaml:"flush_every"`
	PlotDir    string `yaml:"plot_dir"`
}

// DefaultScenario holds the values used when neither the scenario file
// nor a flag sets them.
func DefaultScenario() Scenario {
	return Scenario{
		Policy:     "random",
		Visualizer: "none",
		Trials:     1,
		Output:     "data_output.tsv",
	}
}

// LoadScenario reads a scenario file and overlays it on the defaults.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return s, nil
}
