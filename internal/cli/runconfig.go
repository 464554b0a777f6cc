package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultMaskScale is the upscaling factor for saved error masks; a
// 64x64 mask becomes 512x512.
const defaultMaskScale = 8

// RunConfig is the yaml run configuration. Command line flags override
// values loaded from the file.
type RunConfig struct {
	// Backend selects the device: "softpipe", "wgpu", or empty for the
	// best available.
	Backend string `yaml:"backend"`

	// Filter keeps only cases whose namespaced name contains the
	// substring.
	Filter string `yaml:"filter"`

	// Orderings restricts the run to the named orderings; empty means
	// all of them.
	Orderings []string `yaml:"orderings"`

	// Artifacts is a directory receiving PNG error masks for every
	// failed channel. Empty disables artifact output.
	Artifacts string `yaml:"artifacts"`

	// MaskScale is the integer upscaling factor for saved masks.
	MaskScale int `yaml:"mask_scale"`
}

// DefaultRunConfig returns the configuration used when no file and no
// flags are given: every ordering on the best available backend.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{MaskScale: defaultMaskScale}
}

// LoadRunConfig reads and validates a yaml run configuration.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MaskScale < 1 {
		return nil, fmt.Errorf("%s: mask_scale %d out of range", path, cfg.MaskScale)
	}
	if _, err := orderingsFromNames(cfg.Orderings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
