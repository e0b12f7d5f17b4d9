package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-typograf/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "TYPOGRAF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// Nil pointers mean the variable is unset.
type envConfig struct {
	ConfigPath string         // TYPOGRAF_CONFIG: config name or path
	Endpoint   string         // TYPOGRAF_ENDPOINT: service URL
	Timeout    *time.Duration // TYPOGRAF_TIMEOUT: request timeout
	Retries    *int           // TYPOGRAF_RETRIES: retry count
	RateLimit  *float64       // TYPOGRAF_RATE_LIMIT: requests per second
	Workers    *int           // TYPOGRAF_WORKERS: batch workers
	Quotes1    string         // TYPOGRAF_QUOTES1: first-level quotes
	Quotes2    string         // TYPOGRAF_QUOTES2: nested quotes
	Format     string         // TYPOGRAF_FORMAT: entity format
	OutputDir  string         // TYPOGRAF_OUTPUT_DIR: batch output directory
}

// knownEnvVars lists valid TYPOGRAF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TYPOGRAF_CONFIG":     true,
	"TYPOGRAF_ENDPOINT":   true,
	"TYPOGRAF_TIMEOUT":    true,
	"TYPOGRAF_RETRIES":    true,
	"TYPOGRAF_RATE_LIMIT": true,
	"TYPOGRAF_WORKERS":    true,
	"TYPOGRAF_QUOTES1":    true,
	"TYPOGRAF_QUOTES2":    true,
	"TYPOGRAF_FORMAT":     true,
	"TYPOGRAF_OUTPUT_DIR": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are logged and ignored.
func loadEnvConfig(logger *log.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TYPOGRAF_CONFIG"),
		Endpoint:   os.Getenv("TYPOGRAF_ENDPOINT"),
		Quotes1:    os.Getenv("TYPOGRAF_QUOTES1"),
		Quotes2:    os.Getenv("TYPOGRAF_QUOTES2"),
		Format:     os.Getenv("TYPOGRAF_FORMAT"),
		OutputDir:  os.Getenv("TYPOGRAF_OUTPUT_DIR"),
	}

	if v := os.Getenv("TYPOGRAF_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = &d
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "TYPOGRAF_TIMEOUT", "value", v)
		}
	}
	cfg.Retries = envInt(logger, "TYPOGRAF_RETRIES")
	cfg.Workers = envInt(logger, "TYPOGRAF_WORKERS")

	if v := os.Getenv("TYPOGRAF_RATE_LIMIT"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 {
			cfg.RateLimit = &r
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "TYPOGRAF_RATE_LIMIT", "value", v)
		}
	}

	return cfg
}

// envInt parses a non-negative integer variable.
func envInt(logger *log.Logger, name string) *int {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid environment variable", "name", name, "value", v)
		return nil
	}
	return &n
}

// warnUnknownEnvVars logs warnings for unrecognized TYPOGRAF_* variables.
// Helps catch typos like TYPOGRAF_QUOTE1 instead of TYPOGRAF_QUOTES1.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// Called after the config file is loaded and before flags are merged, so
// the order is: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Endpoint != "" {
		cfg.Service.Endpoint = env.Endpoint
	}
	if env.Timeout != nil {
		cfg.Service.Timeout = *env.Timeout
	}
	if env.Retries != nil {
		cfg.Service.Retries = *env.Retries
	}
	if env.RateLimit != nil {
		cfg.Service.RateLimit = *env.RateLimit
	}
	if env.Workers != nil {
		cfg.Batch.Workers = *env.Workers
	}
	if env.Quotes1 != "" {
		cfg.Quotes.Primary = env.Quotes1
	}
	if env.Quotes2 != "" {
		cfg.Quotes.Secondary = env.Quotes2
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
