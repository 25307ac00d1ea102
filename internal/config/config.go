// Package config loads pokerodds defaults from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

const (
	// DefaultTrials matches the sample count the CLI has always used.
	DefaultTrials   = 30000
	DefaultWorkers  = 8
	DefaultLogLevel = "info"
)

// Config represents the complete configuration after defaults are applied.
type Config struct {
	Simulation SimulationSettings
	Log        LogSettings
}

// SimulationSettings contains simulator defaults.
type SimulationSettings struct {
	Trials  int    `hcl:"trials,optional"`
	Workers int    `hcl:"workers,optional"`
	Seed    *int64 `hcl:"seed,optional"`
}

// LogSettings contains logger configuration.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// file mirrors the HCL layout; both blocks may be omitted.
type file struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Trials:  DefaultTrials,
			Workers: DefaultWorkers,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults for missing values and validates
// the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Simulation != nil {
		config.Simulation = *raw.Simulation
	}
	if raw.Log != nil {
		config.Log = *raw.Log
	}

	// Apply defaults for missing values
	if config.Simulation.Trials == 0 {
		config.Simulation.Trials = DefaultTrials
	}
	if config.Simulation.Workers == 0 {
		config.Simulation.Workers = DefaultWorkers
	}
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("simulation: trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", c.Simulation.Workers)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Encode renders the configuration as HCL. An unset seed is omitted.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&file{Simulation: &c.Simulation, Log: &c.Log}, f.Body())
	return f.Bytes()
}

// Write saves the configuration to filename atomically. An existing file is
// only replaced when overwrite is set.
func (c *Config) Write(filename string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("%s already exists", filename)
		}
	}
	return writeFileAtomic(filename, c.Encode(), 0o644)
}
