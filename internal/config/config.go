// Package config loads runtime defaults for the paramcut command line tool:
// the engine's lowest-label and FIFO-bucket switches, the default
// negative-capacity rounding policy, logging settings, and metrics serving.
// The numerical tolerance is not among them: it is a fixed constant of the
// paramcut package. It layers defaults,
// an optional YAML file, and environment variables, in that order, using
// koanf the same way the wider internal tooling this binary is modeled on
// does.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "PARAMCUT_"
	configEnvVar = "PARAMCUT_CONFIG_PATH"
)

// Config holds the runtime settings cmd/paramcut reads before building a
// Session, plus the logging settings internal/logging needs.
type Config struct {
	Solver  SolverConfig  `koanf:"solver"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// SolverConfig controls the pseudoflow engine's runtime strategy defaults.
type SolverConfig struct {
	LowestLabel           bool `koanf:"lowest_label"`
	FifoBuckets           bool `koanf:"fifo_buckets"`
	RoundNegativeCapacity bool `koanf:"round_negative_capacity"`
}

// LogConfig mirrors internal/logging.Config's knobs, kept separate so the
// config package has no import dependency on the logging package.
type LogConfig struct {
	Level    string `koanf:"level"`
	Format   string `koanf:"format"`
	Output   string `koanf:"output"`
	FilePath string `koanf:"file_path"`
}

// MetricsConfig controls whether cmd/paramcut serves Prometheus metrics and
// on which address.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Loader loads a Config from defaults, an optional file, and the environment.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigPaths overrides the list of file paths searched for a config
// file when PARAMCUT_CONFIG_PATH is unset.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// NewLoader returns a Loader with the standard search paths and env prefix.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"paramcut.yaml",
			"config/paramcut.yaml",
			"/etc/paramcut/paramcut.yaml",
		},
		envPrefix: envPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the default/file/env layering and returns the resulting Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("paramcut config: load defaults: %w", err)
	}

	if err := l.loadConfigFile(); err != nil {
		fmt.Fprintf(os.Stderr, "paramcut config: %v\n", err)
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("paramcut config: load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("paramcut config: unmarshal: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"solver.lowest_label":             false,
		"solver.fifo_buckets":             false,
		"solver.round_negative_capacity":  false,
		"log.level":                       "info",
		"log.format":                      "json",
		"log.output":                      "stdout",
		"log.file_path":                   "",
		"metrics.enabled":                 false,
		"metrics.addr":                    ":9090",
	}
	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	if p := os.Getenv(configEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return l.k.Load(file.Provider(p), yaml.Parser())
		}
	}

	for _, p := range l.configPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return l.k.Load(file.Provider(abs), yaml.Parser())
		}
	}

	return fmt.Errorf("no config file found in %v", l.configPaths)
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, l.envPrefix)), "_", ".")
	}), nil)
}

// Load is a convenience wrapper around NewLoader().Load().
func Load() (*Config, error) {
	return NewLoader().Load()
}
