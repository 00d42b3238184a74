// Package config loads the YAML file naming which profiles to analyze and
// which benchmark reports to compare.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v3"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
)

// Config is the root of the configuration file
type Config struct {
	Profiles   ProfilesConfig   `yaml:"profiles"`
	Benchmarks BenchmarksConfig `yaml:"benchmarks"`
}

// ProfilesConfig selects the speedscope files and how they are reported
type ProfilesConfig struct {
	TopN    int      `yaml:"top_n"`
	Files   []string `yaml:"files"`
	Targets []string `yaml:"targets"`
}

// BenchmarksConfig lists the report pairs to compare
type BenchmarksConfig struct {
	OldLabel string           `yaml:"old_label"`
	NewLabel string           `yaml:"new_label"`
	Cases    []benchmark.Case `yaml:"cases"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Profiles: ProfilesConfig{
			TopN:    analyzer.DefaultTopN,
			Files:   []string{"profile.speedscope1.json", "profile.speedscope3.json"},
			Targets: append([]string(nil), analyzer.DefaultTargets...),
		},
		Benchmarks: BenchmarksConfig{
			OldLabel: "old",
			NewLabel: "new",
		},
	}
}

// Load reads a configuration file, expanding ${VAR} references from the
// environment before decoding. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration bytes on top of Default
func Parse(data []byte) (*Config, error) {
	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Profiles.TopN < 0 {
		return fmt.Errorf("profiles.top_n must not be negative, got %d", c.Profiles.TopN)
	}

	for i, bc := range c.Benchmarks.Cases {
		if err := ValidateCase(bc); err != nil {
			return fmt.Errorf("benchmarks.cases[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateCase checks that a benchmark case names both of its reports
func ValidateCase(bc benchmark.Case) error {
	switch {
	case bc.Name == "":
		return fmt.Errorf("name is required")
	case bc.Old == "":
		return fmt.Errorf("old is required")
	case bc.New == "":
		return fmt.Errorf("new is required")
	}
	return nil
}

// AnalyzerOptions returns the profile analysis options
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		TopN:    c.Profiles.TopN,
		Targets: c.Profiles.Targets,
	}
}
