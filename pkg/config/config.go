// Package config loads the solver settings consumed by the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"meshnodal/pkg/analysis"
)

type Config struct {
	Solver struct {
		// Backend picks the linear solver: "dense" (default) or "sparse".
		Backend string `yaml:"backend" validate:"omitempty,oneof=dense sparse"`
	} `yaml:"solver"`

	// Mesh requests loop-current decomposition in addition to the
	// nodal solve.
	Mesh bool `yaml:"mesh"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Solver.Backend = "dense"
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Backend maps the configured backend name onto the analysis option.
func (c *Config) Backend() analysis.Backend {
	if c.Solver.Backend == "sparse" {
		return analysis.BackendSparse
	}
	return analysis.BackendDense
}
