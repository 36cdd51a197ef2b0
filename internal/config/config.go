package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const SourceFileExt = ".sk"

// DefaultConfigFile is picked up from the working directory when no
// --config flag is given.
const DefaultConfigFile = "skein.yaml"

// DefaultExpressions are evaluated when the command line names none.
var DefaultExpressions = []string{
	"((K a) b)",
	"(((S K) K) x)",
}

// ColorMode values for RunConfig.Color and the --color flags.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// RunConfig is the YAML run configuration. Zero fields mean "not set";
// command-line flags override anything set here.
type RunConfig struct {
	Defs        string   `yaml:"defs"`
	Trace       string   `yaml:"trace"`
	Precompile  *bool    `yaml:"precompile"`
	Color       string   `yaml:"color"`
	Expressions []string `yaml:"expressions"`
}

func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &RunConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	switch cfg.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("parsing %s: color must be auto, always or never, got %q", path, cfg.Color)
	}
	return cfg, nil
}
