// Package config holds the runtime options of the simulator, sourced
// from command-line flags or an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSymlinkPath is where PTY mode links the slave device unless
// overridden.
const DefaultSymlinkPath = "/tmp/ttySIMULATOR"

// Config holds all recognized options. PipePath and SerialPort select
// the output sink; when neither is set a PTY is allocated. ReplayFile
// switches from live generation to cycle-by-cycle log replay.
type Config struct {
	PipePath    string
	SerialPort  string
	ReplayFile  string
	Interval    time.Duration
	SymlinkPath string
	Inertial    string
	ListenAddr  string
	Seed        int64
	Quiet       bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    time.Second,
		SymlinkPath: DefaultSymlinkPath,
		Inertial:    "nfimu",
	}
}

// fileConfig mirrors Config for YAML decoding, with the interval as a
// duration string so files can say "500ms" or "2s".
type fileConfig struct {
	Pipe     string `yaml:"pipe"`
	Serial   string `yaml:"serial"`
	Replay   string `yaml:"replay"`
	Interval string `yaml:"interval"`
	Symlink  string `yaml:"symlink"`
	Inertial string `yaml:"inertial"`
	Listen   string `yaml:"listen"`
	Seed     int64  `yaml:"seed"`
	Quiet    bool   `yaml:"quiet"`
}

// Load reads a YAML config file; keys absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	cfg.PipePath = fc.Pipe
	cfg.SerialPort = fc.Serial
	cfg.ReplayFile = fc.Replay
	cfg.ListenAddr = fc.Listen
	cfg.Seed = fc.Seed
	cfg.Quiet = fc.Quiet
	if fc.Symlink != "" {
		cfg.SymlinkPath = fc.Symlink
	}
	if fc.Inertial != "" {
		cfg.Inertial = fc.Inertial
	}
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return Config{}, fmt.Errorf("parse config %s: interval: %w", path, err)
		}
		cfg.Interval = d
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and returns an error if it cannot
// be run.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidInterval
	}
	if c.PipePath != "" && c.SerialPort != "" {
		return ErrConflictingOutputs
	}
	if c.Inertial != "nfimu" && c.Inertial != "imuag" {
		return ErrInvalidInertial
	}
	return nil
}
