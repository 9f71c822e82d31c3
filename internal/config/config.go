// Package config provides configuration loading for the vecrank CLI.
// It uses koanf to merge environment variables with optional file overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/vecrank/rank"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "VECRANK_"

// Default configuration values.
const (
	DefaultDamping     = 0.85
	DefaultIterations  = 30
	DefaultNeighbors   = 10
	DefaultDecayLambda = 0.01
	DefaultEFSearch    = 64
	DefaultZeroMass    = "uniform"
	DefaultLogLevel    = "info"
	DefaultOverQuery   = true
)

// Configuration errors.
var (
	ErrInvalidDamping    = errors.New("damping must be within [0, 1]")
	ErrInvalidIterations = errors.New("iterations must be positive")
	ErrInvalidNeighbors  = errors.New("neighbors must be positive")
	ErrInvalidWorkers    = errors.New("workers must not be negative")
	ErrInvalidEFSearch   = errors.New("ef_search must be positive")
	ErrInvalidLogLevel   = errors.New("log_level must be one of debug, info, warn, error")
)

// Config represents the CLI configuration.
type Config struct {
	Damping     float64 `koanf:"damping"`
	Iterations  int     `koanf:"iterations"`
	Neighbors   int     `koanf:"neighbors"`
	DecayLambda float64 `koanf:"decay_lambda"`
	Workers     int     `koanf:"workers"` // 0 uses GOMAXPROCS
	EFSearch    int     `koanf:"ef_search"`
	OverQuery   bool    `koanf:"over_query"`
	Seed        int64   `koanf:"seed"` // 0 leaves index construction unseeded
	ZeroMass    string  `koanf:"zero_mass"`
	LogLevel    string  `koanf:"log_level"`
}

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over file values, which take
// precedence over defaults.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	l := loader{k: k}
	cfg := &Config{
		Damping:     l.getFloat("damping", DefaultDamping),
		Iterations:  l.getInt("iterations", DefaultIterations),
		Neighbors:   l.getInt("neighbors", DefaultNeighbors),
		DecayLambda: l.getFloat("decay_lambda", DefaultDecayLambda),
		Workers:     l.getInt("workers", 0),
		EFSearch:    l.getInt("ef_search", DefaultEFSearch),
		OverQuery:   l.getBool("over_query", DefaultOverQuery),
		Seed:        int64(l.getInt("seed", 0)),
		ZeroMass:    l.getString("zero_mass", DefaultZeroMass),
		LogLevel:    l.getString("log_level", DefaultLogLevel),
	}

	errs := append(l.errs, cfg.Validate()...)
	return cfg, errs
}

// Validate checks that all values are usable.
// Returns a slice of errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.Damping < 0 || c.Damping > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidDamping, c.Damping))
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidIterations, c.Iterations))
	}
	if c.Neighbors < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidNeighbors, c.Neighbors))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers))
	}
	if c.EFSearch < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidEFSearch, c.EFSearch))
	}
	if _, err := rank.ParseZeroMassPolicy(c.ZeroMass); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// ZeroMassPolicy returns the parsed zero-mass policy.
func (c *Config) ZeroMassPolicy() rank.ZeroMassPolicy {
	p, _ := rank.ParseZeroMassPolicy(c.ZeroMass)
	return p
}

// SlogLevel returns the parsed log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}

// EnvKey returns the environment variable that overrides koanfKey.
func EnvKey(koanfKey string) string {
	return EnvPrefix + strings.ToUpper(koanfKey)
}

// loader resolves each key from the environment, then koanf, then a default,
// collecting parse errors.
type loader struct {
	k    *koanf.Koanf
	errs []error
}

func (l *loader) getString(key, def string) string {
	if val := os.Getenv(EnvKey(key)); val != "" {
		return val
	}
	if l.k.Exists(key) {
		return l.k.String(key)
	}
	return def
}

func (l *loader) getInt(key string, def int) int {
	if val := os.Getenv(EnvKey(key)); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			l.errs = append(l.errs, fmt.Errorf("invalid %s: %w", EnvKey(key), err))
			return def
		}
		return n
	}
	if l.k.Exists(key) {
		return l.k.Int(key)
	}
	return def
}

func (l *loader) getFloat(key string, def float64) float64 {
	if val := os.Getenv(EnvKey(key)); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			l.errs = append(l.errs, fmt.Errorf("invalid %s: %w", EnvKey(key), err))
			return def
		}
		return f
	}
	if l.k.Exists(key) {
		return l.k.Float64(key)
	}
	return def
}

func (l *loader) getBool(key string, def bool) bool {
	if val := os.Getenv(EnvKey(key)); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		default:
			l.errs = append(l.errs, fmt.Errorf("invalid %s: %q", EnvKey(key), val))
			return def
		}
	}
	if l.k.Exists(key) {
		return l.k.Bool(key)
	}
	return def
}
