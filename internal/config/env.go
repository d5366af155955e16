// Package config loads process settings from the environment and rules
// tuning from YAML files.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the lifecards commands.
type Config struct {
	// DBPath is the SQLite score database. Empty keeps scores in memory.
	DBPath string `env:"LIFECARDS_DB_PATH"`
	// TuningFile optionally overrides the built-in rules.
	TuningFile string `env:"LIFECARDS_TUNING_FILE"`
	// Seed fixes the RNG. Zero picks a random seed.
	Seed       int64 `env:"LIFECARDS_SEED"        envDefault:"0"`
	HTTPPort   int   `env:"LIFECARDS_HTTP_PORT"   envDefault:"8080"`
	TCPPort    int   `env:"LIFECARDS_TCP_PORT"    envDefault:"9090"`
	MaxTurns   int   `env:"LIFECARDS_MAX_TURNS"   envDefault:"500"`
	ScoreLimit int   `env:"LIFECARDS_SCORE_LIMIT" envDefault:"10"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the commands cannot start with.
func (c Config) Validate() error {
	for name, port := range map[string]int{"http port": c.HTTPPort, "tcp port": c.TCPPort} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%s %d out of range", name, port)
		}
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max turns must be >= 1, got %d", c.MaxTurns)
	}
	if c.ScoreLimit < 1 {
		return fmt.Errorf("score limit must be >= 1, got %d", c.ScoreLimit)
	}
	return nil
}
