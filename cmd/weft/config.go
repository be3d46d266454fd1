package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/weft/weight"
)

// Config is the optional YAML configuration accepted by every command. All
// fields are optional; zero values leave the package defaults untouched.
type Config struct {
	// WeightSeparator separates printed composite weight components.
	// Must be exactly one character when set.
	WeightSeparator string `yaml:"weight_separator"`

	// WeightParentheses encloses printed composite weights. Must be empty
	// or exactly two characters (open then close).
	WeightParentheses string `yaml:"weight_parentheses"`

	// Semiring names the weight algebra used to interpret automata:
	// "tropical" (default) or "tropical_tropical" (pair of tropicals).
	Semiring string `yaml:"semiring"`
}

// semiring is the algebra every command interprets automata over, resolved
// once from the config.
var semiring = weight.TropicalSemiring

// applyConfig loads the YAML file at path, if any, and installs its
// settings as the process-wide defaults.
func applyConfig(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.WeightSeparator != "" {
		if len(cfg.WeightSeparator) != 1 {
			return fmt.Errorf("config %s: weight_separator must be one character", path)
		}
		weight.DefaultSeparator = cfg.WeightSeparator
	}
	if cfg.WeightParentheses != "" {
		if len(cfg.WeightParentheses) != 2 {
			return fmt.Errorf("config %s: weight_parentheses must be two characters", path)
		}
		weight.DefaultParentheses = cfg.WeightParentheses
	}
	switch cfg.Semiring {
	case "", "tropical":
		semiring = weight.TropicalSemiring
	case "tropical_tropical":
		semiring = weight.NewPairSemiring(weight.TropicalSemiring, weight.TropicalSemiring)
	default:
		return fmt.Errorf("config %s: unknown semiring %q", path, cfg.Semiring)
	}

	return nil
}
