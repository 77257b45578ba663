// Package main runs ledger operator commands.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/taxledger/internal/cmd/ledgerctl"
	entrypoint "github.com/louisbranch/taxledger/internal/platform/cmd"
	"github.com/louisbranch/taxledger/internal/platform/config"
)

func main() {
	cfg, err := ledgerctl.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLedgerCtl, func(ctx context.Context) error {
		return ledgerctl.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
