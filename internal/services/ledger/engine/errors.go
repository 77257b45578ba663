package engine

import (
	"errors"
	"strconv"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
)

var (
	// ErrJournalRequired indicates a missing event journal.
	ErrJournalRequired = errors.New("event journal is required")
	// ErrOwnerRequired indicates a missing registry owner.
	ErrOwnerRequired = errors.New("registry owner is required")

	// ErrCallerRequired rejects mutations without an authenticated caller.
	ErrCallerRequired = apperrors.New(apperrors.CodeLedgerCallerRequired, "caller is required")
	// ErrHeightRegressed rejects commands evaluated below an accepted height.
	ErrHeightRegressed = apperrors.New(apperrors.CodeLedgerHeightRegressed, "block height regressed")
	// ErrHeightOutOfRange rejects heights the journal cannot store.
	ErrHeightOutOfRange = apperrors.New(apperrors.CodeLedgerInvalidArgument, "block height is out of range")
	// ErrSeasonWindowClosed rejects submissions outside an open season when
	// season enforcement is on.
	ErrSeasonWindowClosed = apperrors.New(apperrors.CodeFilingSeasonWindowClosed, "filing season is not open")
)

func heightMeta(height, current uint64) map[string]string {
	return map[string]string{
		"Height":  strconv.FormatUint(height, 10),
		"Current": strconv.FormatUint(current, 10),
	}
}
