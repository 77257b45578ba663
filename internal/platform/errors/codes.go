// Package errors provides structured ledger errors with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Access control errors
	CodeNotAuthorized  Code = "NOT_AUTHORIZED"
	CodeContractPaused Code = "CONTRACT_PAUSED"

	// Season errors
	CodeSeasonYearExists   Code = "SEASON_YEAR_EXISTS"
	CodeSeasonYearNotFound Code = "SEASON_YEAR_NOT_FOUND"
	CodeSeasonInvalidDates Code = "SEASON_INVALID_DATES"
	CodeSeasonNotOpen      Code = "SEASON_NOT_OPEN"
	CodeSeasonClosed       Code = "SEASON_CLOSED"

	// Filing errors
	CodeFilingAlreadyInitialized   Code = "FILING_ALREADY_INITIALIZED"
	CodeFilingNotInitialized       Code = "FILING_NOT_INITIALIZED"
	CodeFilingInvalidTaxYear       Code = "FILING_INVALID_TAX_YEAR"
	CodeFilingInvalidContentHash   Code = "FILING_INVALID_CONTENT_HASH"
	CodeFilingTooManyDeductions    Code = "FILING_TOO_MANY_DEDUCTIONS"
	CodeFilingExists               Code = "FILING_EXISTS"
	CodeFilingNotFound             Code = "FILING_NOT_FOUND"
	CodeFilingTaxpayerYearNotFound Code = "FILING_TAXPAYER_YEAR_NOT_FOUND"
	CodeFilingInvalidTransition    Code = "FILING_INVALID_TRANSITION"
	CodeFilingSeasonWindowClosed   Code = "FILING_SEASON_WINDOW_CLOSED"

	// Ledger errors
	CodeLedgerHeightRegressed Code = "LEDGER_HEIGHT_REGRESSED"
	CodeLedgerCallerRequired  Code = "LEDGER_CALLER_REQUIRED"
	CodeLedgerInvalidArgument Code = "LEDGER_INVALID_ARGUMENT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// PermissionDenied - caller lacks the required role
	case CodeNotAuthorized:
		return codes.PermissionDenied

	// Unauthenticated - no principal on the request
	case CodeLedgerCallerRequired:
		return codes.Unauthenticated

	// InvalidArgument - validation failures, bad input
	case CodeSeasonInvalidDates,
		CodeFilingInvalidTaxYear,
		CodeFilingInvalidContentHash,
		CodeFilingTooManyDeductions,
		CodeLedgerInvalidArgument:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeContractPaused,
		CodeSeasonNotOpen,
		CodeSeasonClosed,
		CodeFilingAlreadyInitialized,
		CodeFilingNotInitialized,
		CodeFilingInvalidTransition,
		CodeFilingSeasonWindowClosed,
		CodeLedgerHeightRegressed:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeSeasonYearNotFound,
		CodeFilingNotFound,
		CodeFilingTaxpayerYearNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeSeasonYearExists,
		CodeFilingExists:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}
