// Package ledger parses ledger service flags and launches the service.
package ledger

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/taxledger/internal/platform/cmd"
	server "github.com/louisbranch/taxledger/internal/services/ledger/app"
)

// Config holds ledger command configuration.
type Config struct {
	Port                int    `env:"LEDGER_PORT" envDefault:"8095"`
	HTTPPort            int    `env:"LEDGER_HTTP_PORT" envDefault:"8096"`
	DBPath              string `env:"LEDGER_DB_PATH" envDefault:"data/ledger.db"`
	Owner               string `env:"LEDGER_OWNER"`
	EnforceSeasonWindow bool   `env:"LEDGER_ENFORCE_SEASON_WINDOW" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The ledger gRPC server port")
	fs.IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "The ledger HTTP gateway port (0 disables it)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the ledger SQLite database")
	fs.StringVar(&cfg.Owner, "owner", cfg.Owner, "Principal that owns the season and filing registries")
	fs.BoolVar(&cfg.EnforceSeasonWindow, "enforce-season-window", cfg.EnforceSeasonWindow, "Reject filings submitted outside an open season")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Owner = strings.TrimSpace(cfg.Owner)
	if cfg.Owner == "" {
		return Config{}, errors.New("ledger owner is required (-owner or TAXLEDGER_LEDGER_OWNER)")
	}
	return cfg, nil
}

// ServerConfig converts the command configuration into server settings.
func (c Config) ServerConfig() server.Config {
	cfg := server.Config{
		GRPCAddr:            fmt.Sprintf(":%d", c.Port),
		DBPath:              c.DBPath,
		Owner:               c.Owner,
		EnforceSeasonWindow: c.EnforceSeasonWindow,
	}
	if c.HTTPPort > 0 {
		cfg.HTTPAddr = fmt.Sprintf(":%d", c.HTTPPort)
	}
	return cfg
}

// Run starts the ledger gRPC API and HTTP gateway.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLedger, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
