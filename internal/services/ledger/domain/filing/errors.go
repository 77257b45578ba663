package filing

import (
	"strconv"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
)

var (
	ErrAlreadyInitialized = apperrors.New(apperrors.CodeFilingAlreadyInitialized, "filing authorities already initialized")
	ErrNotInitialized     = apperrors.New(apperrors.CodeFilingNotInitialized, "filing authorities not initialized")
	ErrInvalidTaxYear     = apperrors.New(apperrors.CodeFilingInvalidTaxYear, "tax year is not accepted")
	ErrInvalidContentHash = apperrors.New(apperrors.CodeFilingInvalidContentHash, "content hash is malformed")
	ErrTooManyDeductions  = apperrors.New(apperrors.CodeFilingTooManyDeductions, "too many deductions")
	ErrFilingExists       = apperrors.New(apperrors.CodeFilingExists, "filing already exists for taxpayer and year")
	ErrFilingNotFound     = apperrors.New(apperrors.CodeFilingNotFound, "filing not found")
	// ErrTaxpayerYearNotFound reports no filing for a taxpayer and tax year.
	ErrTaxpayerYearNotFound = apperrors.New(apperrors.CodeFilingTaxpayerYearNotFound, "no filing for taxpayer and tax year")
	ErrInvalidTransition    = apperrors.New(apperrors.CodeFilingInvalidTransition, "filing status transition is not allowed")
	ErrUnknownCommand       = apperrors.New(apperrors.CodeLedgerInvalidArgument, "unknown filing command")
	// ErrAuthoritiesRequired rejects Initialize with a blank principal.
	ErrAuthoritiesRequired = apperrors.New(apperrors.CodeLedgerInvalidArgument, "deadline and audit authorities are required")
)

func yearMeta(year uint32) map[string]string {
	return map[string]string{"TaxYear": strconv.FormatUint(uint64(year), 10)}
}

func idMeta(id uint64) map[string]string {
	return map[string]string{"FilingID": strconv.FormatUint(id, 10)}
}

func transitionMeta(id uint64, from, to Status) map[string]string {
	meta := idMeta(id)
	meta["From"] = string(from)
	meta["To"] = string(to)
	return meta
}
