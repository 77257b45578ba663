// Package filing implements the filing registry: taxpayer submissions and
// their role-gated audit, approval and dispute lifecycle.
package filing

import (
	"strings"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
)

const (
	// MinExclusiveTaxYear is the last year filings are not accepted for.
	MinExclusiveTaxYear = 2020
	// ContentHashLength is the exact length of an accepted content hash.
	ContentHashLength = 46
	// ContentHashPrefix is the required content hash prefix.
	ContentHashPrefix = "Qm"
	// MaxDeductions bounds the deduction ids attached to a filing.
	MaxDeductions = 20
)

// Filing is one taxpayer's submission for a tax year.
type Filing struct {
	ID           uint64   `json:"id"`
	Taxpayer     string   `json:"taxpayer"`
	TaxYear      uint32   `json:"tax_year"`
	ContentHash  string   `json:"content_hash"`
	Status       Status   `json:"status"`
	SubmittedAt  uint64   `json:"submitted_at"`
	DeductionIDs []uint64 `json:"deduction_ids"`
	AuditFlags   uint32   `json:"audit_flags"`
}

func (f Filing) clone() Filing {
	f.DeductionIDs = append([]uint64{}, f.DeductionIDs...)
	return f
}

// HistoryEntry records one accepted status transition.
type HistoryEntry struct {
	Status  Status `json:"status"`
	Block   uint64 `json:"block"`
	Updater string `json:"updater"`
}

// TaxpayerYear is the uniqueness key for filings.
type TaxpayerYear struct {
	Taxpayer string
	TaxYear  uint32
}

// Authorities are the role principals set once by Initialize.
type Authorities struct {
	Deadline string `json:"deadline_authority"`
	Audit    string `json:"audit_authority"`
}

// Initialized reports whether both principals are set.
func (a Authorities) Initialized() bool {
	return a.Deadline != "" && a.Audit != ""
}

// RegistryStatus is the public status of the filing registry.
type RegistryStatus struct {
	access.Status
	NextID            uint64 `json:"next_id"`
	DeadlineAuthority string `json:"deadline_authority,omitempty"`
	AuditAuthority    string `json:"audit_authority,omitempty"`
}

// State is the registry's full state.
type State struct {
	access.Guard
	Authorities    Authorities
	NextID         uint64
	Filings        map[uint64]Filing
	ByTaxpayerYear map[TaxpayerYear]uint64
	History        map[uint64][]HistoryEntry
}

// NewState returns an empty registry owned by owner.
func NewState(owner string) *State {
	return &State{
		Guard:          access.Guard{Owner: owner},
		Filings:        map[uint64]Filing{},
		ByTaxpayerYear: map[TaxpayerYear]uint64{},
		History:        map[uint64][]HistoryEntry{},
	}
}

// Get returns a copy of the filing with id.
func (s *State) Get(id uint64) (Filing, bool) {
	f, ok := s.Filings[id]
	if !ok {
		return Filing{}, false
	}
	return f.clone(), true
}

// GetByTaxpayerYear returns the filing id for the taxpayer and year.
func (s *State) GetByTaxpayerYear(taxpayer string, year uint32) (uint64, bool) {
	id, ok := s.ByTaxpayerYear[TaxpayerYear{Taxpayer: taxpayer, TaxYear: year}]
	return id, ok
}

// HistoryOf returns a copy of the filing's status history.
func (s *State) HistoryOf(id uint64) ([]HistoryEntry, bool) {
	history, ok := s.History[id]
	if !ok {
		return nil, false
	}
	return append([]HistoryEntry{}, history...), true
}

// RegistryStatus returns owner, pause flag, next id and both authorities.
func (s *State) RegistryStatus() RegistryStatus {
	return RegistryStatus{
		Status:            s.Guard.Status(),
		NextID:            s.NextID,
		DeadlineAuthority: s.Authorities.Deadline,
		AuditAuthority:    s.Authorities.Audit,
	}
}

// ValidContentHash reports whether hash has the accepted length and prefix.
// The hash is never resolved.
func ValidContentHash(hash string) bool {
	return len(hash) == ContentHashLength && strings.HasPrefix(hash, ContentHashPrefix)
}
