// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultFormEndpoint = "https://formspree.io/f/maqbaoey"
	DefaultFormSource   = "Be Awesome Productions - Broadcast Mode"
)

type Config struct {
	// Dir overrides the state directory (default ~/.broadcast).
	Dir string `env:"BROADCAST_DIR"`

	Format  string `env:"BROADCAST_FORMAT" envDefault:"json"`
	Catalog string `env:"BROADCAST_CATALOG"`
	Brand   string `env:"BROADCAST_BRAND" envDefault:"Be Awesome Productions"`

	FormEndpoint  string        `env:"BROADCAST_FORM_ENDPOINT" envDefault:"https://formspree.io/f/maqbaoey"`
	FormSource    string        `env:"BROADCAST_FORM_SOURCE" envDefault:"Be Awesome Productions - Broadcast Mode"`
	SubmitTimeout time.Duration `env:"BROADCAST_SUBMIT_TIMEOUT" envDefault:"15s"`

	// PrefersReducedMotion is the OS-level motion preference. NO_MOTION is honoured too.
	PrefersReducedMotion bool `env:"BROADCAST_PREFERS_REDUCED_MOTION"`
	NoMotion             bool `env:"NO_MOTION"`

	// LogLevel enables the file logger when non-empty (debug|info|warn|error).
	LogLevel string `env:"BROADCAST_LOG_LEVEL"`
	LogFile  string `env:"BROADCAST_LOG_FILE"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ReducedMotion reports the OS-level reduced motion signal.
func (c Config) ReducedMotion() bool {
	return c.PrefersReducedMotion || c.NoMotion
}
