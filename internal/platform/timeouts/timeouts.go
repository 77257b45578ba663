// Package timeouts defines shared timeout constants for ledger transports.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the ledger.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single ledgerctl request.
const GRPCRequest = 5 * time.Second

// ReadHeader limits how long the HTTP gateway waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown bounds graceful server shutdown and the telemetry flush.
const Shutdown = 5 * time.Second
