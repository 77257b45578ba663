package metadata

import (
	"context"
	"strconv"
	"strings"

	"github.com/louisbranch/taxledger/internal/platform/id"
	"github.com/louisbranch/taxledger/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// CallerHeader carries the authenticated principal.
	CallerHeader = "x-taxledger-caller"
	// HeightHeader carries the block height as a base-10 integer.
	HeightHeader = "x-taxledger-height"
	// RequestIDHeader carries the request correlation id.
	RequestIDHeader = "x-taxledger-request-id"
)

type requestIDContextKey struct{}

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	if len(md) == 0 {
		return ""
	}
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// OutgoingContext attaches caller, height and request id headers for a
// client call. Empty values are omitted.
func OutgoingContext(ctx context.Context, caller string, height uint64, requestID string) context.Context {
	pairs := []string{HeightHeader, strconv.FormatUint(height, 10)}
	if caller != "" {
		pairs = append(pairs, CallerHeader, caller)
	}
	if requestID != "" {
		pairs = append(pairs, RequestIDHeader, requestID)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// UnaryServerInterceptor stores the caller, height and a request id in
// context for every unary call, generating the id when the client sent none.
// The request id is echoed in response headers.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		updatedCtx, requestID, err := ensureRequestMetadata(ctx, idGenerator)
		if err != nil {
			return nil, err
		}
		if err := grpc.SetHeader(updatedCtx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(updatedCtx, req)
	}
}

func ensureRequestMetadata(ctx context.Context, idGenerator func() (string, error)) (context.Context, string, error) {
	md, _ := metadata.FromIncomingContext(ctx)

	requestID := FirstMetadataValue(md, RequestIDHeader)
	if requestID == "" {
		generatedID, err := idGenerator()
		if err != nil {
			return nil, "", status.Errorf(codes.Internal, "ensure request metadata: %v", err)
		}
		requestID = generatedID
	}
	updatedCtx := WithRequestID(ctx, requestID)

	if caller := FirstMetadataValue(md, CallerHeader); caller != "" {
		updatedCtx = requestctx.WithCaller(updatedCtx, caller)
	}
	if raw := FirstMetadataValue(md, HeightHeader); raw != "" {
		height, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, "", status.Errorf(codes.InvalidArgument, "invalid %s %q", HeightHeader, raw)
		}
		updatedCtx = requestctx.WithHeight(updatedCtx, height)
	}
	return updatedCtx, requestID, nil
}
