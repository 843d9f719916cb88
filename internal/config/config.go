// Package config loads the batch runner's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpiro/idf-reader/internal/logging"
)

// TablesConfig locates the consumption reference tables.
type TablesConfig struct {
	// Dir is the directory holding the per-edition CSV tables.
	Dir string `yaml:"dir"`
}

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	File   string `yaml:"file"`
}

// ToLogging converts the YAML section into a logging.Config.
func (lc LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: lc.Output,
		File:   lc.File,
	}
}

// Config is the full configuration of a batch run.
type Config struct {
	Tables  TablesConfig  `yaml:"tables"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tables: TablesConfig{Dir: "data"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads path and merges its top-level sections onto the defaults.
// A missing file is not an error; the defaults are returned unchanged.
// Unknown keys in the file are ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
