// Package ledger exposes the season, filing and journal services over gRPC.
//
// Messages are plain Go structs carried by the JSON codec registered in
// internal/platform/grpc/jsoncodec. Service descriptors and typed clients
// are written by hand; clients select the codec per call.
package ledger
