package season

import (
	"strconv"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
)

var (
	ErrYearExists   = apperrors.New(apperrors.CodeSeasonYearExists, "season already defined for year")
	ErrYearNotFound = apperrors.New(apperrors.CodeSeasonYearNotFound, "season not found for year")
	ErrInvalidDates = apperrors.New(apperrors.CodeSeasonInvalidDates, "season window is invalid")
	// ErrSeasonNotOpen is returned when opening a season that is already open.
	ErrSeasonNotOpen = apperrors.New(apperrors.CodeSeasonNotOpen, "season is already open")
	// ErrSeasonClosed is returned when closing a season that is already closed.
	ErrSeasonClosed = apperrors.New(apperrors.CodeSeasonClosed, "season is already closed")
)

func yearMeta(year uint32) map[string]string {
	return map[string]string{"Year": strconv.FormatUint(uint64(year), 10)}
}

// ErrUnknownCommand is returned for commands the decider does not handle.
var ErrUnknownCommand = apperrors.New(apperrors.CodeLedgerInvalidArgument, "unknown season command")
