package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "CPUSIM_CONFIG"
	EnvAddr       = "CPUSIM_ADDR"
)

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Workers   int    `yaml:"workers"`    // concurrent cases per batch (<= 0: unlimited)
	Output    string `yaml:"output"`     // text, table, json, yaml
	Metrics   bool   `yaml:"metrics"`    // include schedule metrics in output
	Addr      string `yaml:"addr"`       // HTTP listen address

	// DefaultQuantum is used for round-robin cases that do not set one.
	DefaultQuantum int `yaml:"default_quantum"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Workers:   runtime.NumCPU(),
		Output:    "text",
		Addr:      ":8080",
	}
}

// Load returns the defaults overlaid with the YAML file at path and then the
// environment. An empty path falls back to $CPUSIM_CONFIG; no file at all is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Addr = addr
	}
	return cfg, nil
}
