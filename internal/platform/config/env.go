// Package config holds the configuration helpers every command shares:
// environment parsing into tagged structs and the fatal-exit path.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables according to its
// `env` struct tags. Defaults declared on the tags apply when a variable
// is unset; flag parsing in the command layer runs after this and wins.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
