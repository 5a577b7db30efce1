package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg using `env` struct tags.
//
// Example:
//
//	type Config struct {
//	    Endpoint string        `env:"REVIEWS_ENDPOINT" envDefault:"http://localhost:5000/reviews"`
//	    Interval time.Duration `env:"CAROUSEL_INTERVAL" envDefault:"4s"`
//	}
func Load(cfg any) error {
	return LoadWithPrefix(cfg, "")
}

// LoadWithPrefix behaves like Load but prepends prefix to every variable
// name, so independent carousels can share one environment.
func LoadWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
