// Package interceptors holds ledger gRPC server interceptors.
package interceptors

import (
	"context"
	"log"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
	"github.com/louisbranch/taxledger/internal/platform/requestctx"
	"github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/ledger"
	grpcmeta "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit/events"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuditInterceptor emits one audit event for each unary call handled by the
// ledger service. Emit failures are logged and never fail the call.
func AuditInterceptor(store storage.AuditEventStore) grpc.UnaryServerInterceptor {
	emitter := audit.NewEmitter(store)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if store == nil {
			return resp, err
		}

		methodKind := classifyMethodKind(info.FullMethod)
		eventName := events.GRPCWrite
		if methodKind == "read" {
			eventName = events.GRPCRead
		}

		severity := audit.SeverityInfo
		code := codes.OK
		if err != nil {
			code = status.Code(err)
			severity = audit.SeverityWarn
			if code == codes.Internal || code == codes.Unknown {
				severity = audit.SeverityError
			}
		}

		attributes := map[string]any{
			"method_kind": methodKind,
		}
		if height, ok := requestctx.HeightFromContext(ctx); ok {
			attributes["height"] = height
		}
		if reason := apperrors.CodeFromStatus(err); err != nil && reason != apperrors.CodeUnknown {
			attributes["reason"] = string(reason)
		}

		var traceID, spanID string
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
			spanID = sc.SpanID().String()
		}

		emitErr := emitter.Emit(ctx, storage.AuditEvent{
			EventName:  eventName,
			Severity:   string(severity),
			Method:     info.FullMethod,
			Caller:     requestctx.CallerFromContext(ctx),
			RequestID:  grpcmeta.RequestIDFromContext(ctx),
			StatusCode: code.String(),
			TraceID:    traceID,
			SpanID:     spanID,
			Attributes: attributes,
		})
		if emitErr != nil {
			log.Printf("audit emit %s: %v", info.FullMethod, emitErr)
		}

		return resp, err
	}
}

func classifyMethodKind(fullMethod string) string {
	if ledger.ReadMethods[fullMethod] {
		return "read"
	}
	return "write"
}
