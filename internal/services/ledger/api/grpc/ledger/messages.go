package ledger

import (
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/season"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit"
)

// DefineSeasonRequest creates a season window.
type DefineSeasonRequest struct {
	Year       uint32 `json:"year"`
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
}

// UpdateSeasonDatesRequest replaces a season window.
type UpdateSeasonDatesRequest struct {
	Year       uint32 `json:"year"`
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
}

// SeasonYearRequest addresses one season.
type SeasonYearRequest struct {
	Year uint32 `json:"year"`
}

// SeasonResponse returns one season.
type SeasonResponse struct {
	Season season.Season `json:"season"`
}

// ListSeasonsRequest lists every season.
type ListSeasonsRequest struct{}

// ListSeasonsResponse returns seasons ordered by year.
type ListSeasonsResponse struct {
	Seasons []season.Season `json:"seasons"`
}

// IsSeasonOpenResponse reports window membership at the call height.
type IsSeasonOpenResponse struct {
	Year   uint32 `json:"year"`
	Height uint64 `json:"height"`
	Open   bool   `json:"open"`
}

// StatusRequest asks a registry for its status or toggles its pause flag.
type StatusRequest struct{}

// SeasonStatusResponse returns the season registry status.
type SeasonStatusResponse struct {
	Status access.Status `json:"status"`
}

// InitializeRequest sets the filing role principals.
type InitializeRequest struct {
	DeadlineAuthority string `json:"deadline_authority"`
	AuditAuthority    string `json:"audit_authority"`
}

// SubmitFilingRequest submits the caller's filing.
type SubmitFilingRequest struct {
	TaxYear      uint32   `json:"tax_year"`
	ContentHash  string   `json:"content_hash"`
	DeductionIDs []uint64 `json:"deduction_ids,omitempty"`
}

// FilingIDRequest addresses one filing.
type FilingIDRequest struct {
	FilingID uint64 `json:"filing_id"`
}

// TaxpayerYearRequest addresses a filing by taxpayer and year.
type TaxpayerYearRequest struct {
	Taxpayer string `json:"taxpayer"`
	TaxYear  uint32 `json:"tax_year"`
}

// FilingResponse returns one filing.
type FilingResponse struct {
	Filing filing.Filing `json:"filing"`
}

// FilingHistoryResponse returns a filing's status history.
type FilingHistoryResponse struct {
	FilingID uint64                `json:"filing_id"`
	Entries  []filing.HistoryEntry `json:"entries"`
	Final    bool                  `json:"final"`
}

// FilingStatusResponse returns the filing registry status.
type FilingStatusResponse struct {
	Status filing.RegistryStatus `json:"status"`
}

// ListEventsRequest pages through the journal.
type ListEventsRequest struct {
	AfterSeq uint64 `json:"after_seq,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Filter   string `json:"filter,omitempty"`
}

// ListEventsResponse is one journal page.
type ListEventsResponse struct {
	Events       []event.Event `json:"events"`
	NextAfterSeq uint64        `json:"next_after_seq,omitempty"`
}

// ListAuditEventsRequest reads the newest audit events.
type ListAuditEventsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListAuditEventsResponse holds audit events newest first.
type ListAuditEventsResponse struct {
	Events []audit.Record `json:"events"`
}
