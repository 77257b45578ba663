// Package requestctx carries the authenticated caller and block height for a
// single ledger request.
package requestctx

import "context"

type callerContextKey struct{}

type heightContextKey struct{}

// WithCaller stores the authenticated principal in context.
func WithCaller(ctx context.Context, caller string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the principal stored in context.
func CallerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(callerContextKey{}).(string)
	return value
}

// WithHeight stores the block height the request is evaluated at.
func WithHeight(ctx context.Context, height uint64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, heightContextKey{}, height)
}

// HeightFromContext returns the block height stored in context and whether
// one was set.
func HeightFromContext(ctx context.Context) (uint64, bool) {
	if ctx == nil {
		return 0, false
	}
	value, ok := ctx.Value(heightContextKey{}).(uint64)
	return value, ok
}
