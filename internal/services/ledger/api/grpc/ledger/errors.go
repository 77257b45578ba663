package ledger

import (
	"context"
	"errors"
	"log"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
	errori18n "github.com/louisbranch/taxledger/internal/platform/errors/i18n"
	i18ncatalog "github.com/louisbranch/taxledger/internal/platform/i18n/catalog"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AcceptLanguageHeader selects the locale of user-facing error messages.
const AcceptLanguageHeader = "accept-language"

var (
	errHeightRequired = apperrors.New(apperrors.CodeLedgerInvalidArgument, "block height is required")
)

// handleDomainError converts err into a gRPC status. Ledger errors carry
// ErrorInfo plus a message localized from the caller's accept-language;
// anything else is logged and reported as Internal.
func handleDomainError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, storage.ErrInvalidFilter) {
		err = apperrors.Wrap(apperrors.CodeLedgerInvalidArgument, err.Error(), err)
	}
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Printf("ledger: internal error: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
	locale, message := errori18n.Localize(localeFromContext(ctx), appErr)
	return appErr.ToGRPCStatus(locale, message)
}

func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return i18ncatalog.BaseLocale
	}
	values := md.Get(AcceptLanguageHeader)
	if len(values) == 0 {
		return i18ncatalog.BaseLocale
	}
	return i18ncatalog.Default().Match(values[0])
}
