// Package audit contains durable operational audit writes for ledger
// transport calls.
//
// Audit records are separate from the ledger journal: they describe who
// called what and how it ended, not accepted state changes. Distributed
// tracing lives in package internal/platform/otel.
package audit
