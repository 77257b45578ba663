// Package events defines canonical ledger audit event names.
package events

const (
	// GRPCRead captures audit events for read-only gRPC handlers.
	GRPCRead = "telemetry.grpc.read"
	// GRPCWrite captures audit events for mutating gRPC handlers.
	GRPCWrite = "telemetry.grpc.write"
	// HTTPRead captures audit events for the read-only HTTP gateway.
	HTTPRead = "telemetry.http.read"
)
