// Package config handles loading and parsing the driver's configuration.
package config

import "github.com/BurntSushi/toml"

// Config holds all configuration for a driver run.
// We use struct tags to explicitly map TOML keys to struct fields.
type Config struct {
	LogLevel string `toml:"log_level"` // trace, debug, info, warn or error
	Verify   bool   `toml:"verify"`    // Check index consistency after the run
	Metrics  bool   `toml:"metrics"`   // Dump Prometheus metrics after the run
	Output   string `toml:"output"`    // Path for JSON result records, empty for none
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Verify:   false,
		Metrics:  false,
		Output:   "",
	}
}

// Load reads a configuration file from the given path and populates the Config struct.
func (c *Config) Load(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}
