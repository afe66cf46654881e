package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tristendillon/swan2flowdroid/core/logger"
	"gopkg.in/yaml.v3"
)

const FileName = "swan2flowdroid.yaml"

type Config struct {
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
	Watch   Watch   `yaml:"watch"`
}

type Output struct {
	// Suffix replaces everything after the first dot of the input path when
	// no output path is given.
	Suffix string `yaml:"suffix"`
}

type Logging struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

type Watch struct {
	DebounceMs int `yaml:"debounce_ms"`
}

func (w Watch) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

func Default() *Config {
	return &Config{
		Output: Output{
			Suffix: ".flowdroid.txt",
		},
		Watch: Watch{
			DebounceMs: 500,
		},
	}
}

// Load reads the config at path. With an empty path it looks for
// swan2flowdroid.yaml in the working directory and falls back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		candidate := filepath.Join(wd, FileName)
		if _, err := os.Stat(candidate); err != nil {
			logger.Debug("No config file found, using default config")
			return Default(), nil
		}
		path = candidate
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = Default().Output.Suffix
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = Default().Watch.DebounceMs
	}
	logger.Debug("Config file found: %s", path)
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}
