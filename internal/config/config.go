package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the conventional configuration file name.
	ConfigFileName = "superfine.yaml"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "superfine"
)

// Config is the complete superfine.yaml configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`

	// Devtools contains inspector server configuration.
	Devtools DevtoolsConfig `yaml:"devtools,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// Bench contains defaults for the bench subcommand.
	Bench BenchConfig `yaml:"bench,omitempty"`
}

// DevtoolsConfig configures the inspector server.
type DevtoolsConfig struct {
	// Enabled starts the inspector alongside the runtime.
	Enabled bool `yaml:"enabled,omitempty"`

	// Port is the inspector port. 0 binds an ephemeral port.
	Port int `yaml:"port,omitempty"`
}

// MetricsConfig configures metric naming.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace,omitempty"`
}

// BenchConfig holds defaults for the bench subcommand.
type BenchConfig struct {
	// Rows is the synthetic list size.
	Rows int `yaml:"rows,omitempty"`

	// Updates is the number of update rounds to drive.
	Updates int `yaml:"updates,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Metrics:  MetricsConfig{Namespace: DefaultNamespace},
		Bench:    BenchConfig{Rows: 100, Updates: 1000},
	}
}

// Load reads path and merges it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
