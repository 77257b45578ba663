// Package metadata defines the ledger's gRPC request headers and the
// interceptor that lifts them into request context.
//
//   - CallerHeader: the principal authenticated upstream.
//   - HeightHeader: the block height the call is evaluated at.
//   - RequestIDHeader: correlates logs, audit records and journal events.
package metadata
