// Package config loads process configuration for ledger commands.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every ledger environment variable.
const EnvPrefix = "TAXLEDGER_"

// ParseEnv loads configuration from TAXLEDGER_-prefixed environment variables.
//
// Struct tags name the variable without the prefix, so `env:"LEDGER_PORT"`
// reads TAXLEDGER_LEDGER_PORT.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
