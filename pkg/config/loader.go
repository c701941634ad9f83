package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables using its `env` struct tags.
//
// Example:
//
//	type Config struct {
//	    Port          int    `env:"HTTP_PORT" envDefault:"8080"`
//	    AdminPassword string `env:"ADMIN_PASSWORD"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
