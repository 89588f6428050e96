// Package config handles meshgen configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all meshgen settings.
type Config struct {
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir      string `yaml:"dir" toml:"dir"`             // Directory for outputs named by the model
	Format   string `yaml:"format" toml:"format"`       // obj, stl or glb
	STLASCII bool   `yaml:"stl_ascii" toml:"stl_ascii"` // Text STL instead of binary
}

// MeshConfig holds default tessellation for curved primitives.
type MeshConfig struct {
	Segments int `yaml:"segments" toml:"segments"`
	Rings    int `yaml:"rings" toml:"rings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    ".",
			Format: "obj",
		},
		Mesh: MeshConfig{
			Segments: 32,
			Rings:    16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that have a fixed domain.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "obj", "stl", "glb":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Mesh.Segments < 3 {
		return fmt.Errorf("%w: mesh segments %d, need at least 3", ErrInvalidConfig, c.Mesh.Segments)
	}
	if c.Mesh.Rings < 2 {
		return fmt.Errorf("%w: mesh rings %d, need at least 2", ErrInvalidConfig, c.Mesh.Rings)
	}
	return nil
}
