package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// minModelSamples is the smallest training set that still leaves residual
// degrees of freedom for a four-parameter fit.
const minModelSamples = 10

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Synthetic training configuration.
	ModelSeed    uint64
	ModelSamples int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	seed, err := parseModelSeed()
	if err != nil {
		return nil, err
	}

	samples, err := parseModelSamples()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", "127.0.0.1:5001"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		ModelSeed:       seed,
		ModelSamples:    samples,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseModelSeed() (uint64, error) {
	s := sharedcfg.EnvOrDefault("MODEL_SEED", "42")
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid MODEL_SEED: %w", err)
	}
	return seed, nil
}

func parseModelSamples() (int, error) {
	s := sharedcfg.EnvOrDefault("MODEL_SAMPLES", "1200")
	n, err := strconv.Atoi(s)
	if err != nil || n < minModelSamples {
		return 0, fmt.Errorf("invalid MODEL_SAMPLES: must be an integer >= %d", minModelSamples)
	}
	return n, nil
}
