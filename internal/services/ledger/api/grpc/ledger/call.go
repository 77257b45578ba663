package ledger

import (
	"context"

	"github.com/louisbranch/taxledger/internal/platform/requestctx"
	grpcmeta "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
)

// callFromContext builds the engine call from request context. Mutations and
// window queries need a height; the caller is checked by the engine.
func callFromContext(ctx context.Context) (engine.Call, error) {
	height, ok := requestctx.HeightFromContext(ctx)
	if !ok {
		return engine.Call{}, errHeightRequired
	}
	return engine.Call{
		Caller:    requestctx.CallerFromContext(ctx),
		Height:    height,
		RequestID: grpcmeta.RequestIDFromContext(ctx),
	}, nil
}
