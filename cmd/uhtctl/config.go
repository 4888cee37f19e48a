package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var flagConfigPath string

// CLIConfig holds optional defaults applied when the matching flags are
// not set on the command line.
type CLIConfig struct {
	DefaultSort  string `yaml:"default_sort,omitempty"`
	DefaultOrder string `yaml:"default_order,omitempty"`
}

// loadCLIConfig reads the file named by --config. Without the flag it
// returns an empty config rather than hunting for well-known paths.
func loadCLIConfig() (CLIConfig, error) {
	var cfg CLIConfig
	if flagConfigPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(flagConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %s: %w", flagConfigPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid YAML in %s: %w", flagConfigPath, err)
	}
	return cfg, nil
}
