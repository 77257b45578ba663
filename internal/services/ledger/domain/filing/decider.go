package filing

import (
	"strconv"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/command"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

const (
	EventTypeInitialized event.Type = "filing.initialized"
	EventTypeSubmitted   event.Type = "filing.submitted"
	EventTypeFlagged     event.Type = "filing.flagged"
	EventTypeApproved    event.Type = "filing.approved"
	EventTypeDisputed    event.Type = "filing.disputed"
	EventTypePaused      event.Type = "filing.paused"
	EventTypeUnpaused    event.Type = "filing.unpaused"
)

// Command is a filing registry mutation.
type Command interface {
	isFilingCommand()
}

// Initialize sets the deadline and audit authorities once.
type Initialize struct {
	DeadlineAuthority string
	AuditAuthority    string
}

// Submit files a return for the caller.
type Submit struct {
	TaxYear      uint32
	ContentHash  string
	DeductionIDs []uint64
}

// FlagForAudit moves a submitted filing under audit.
type FlagForAudit struct{ FilingID uint64 }

// Approve approves a filing under audit.
type Approve struct{ FilingID uint64 }

// Dispute lets the taxpayer dispute an audited or rejected filing.
type Dispute struct{ FilingID uint64 }

// Pause sets the registry pause flag.
type Pause struct{}

// Unpause clears the registry pause flag.
type Unpause struct{}

func (Initialize) isFilingCommand()   {}
func (Submit) isFilingCommand()       {}
func (FlagForAudit) isFilingCommand() {}
func (Approve) isFilingCommand()      {}
func (Dispute) isFilingCommand()      {}
func (Pause) isFilingCommand()        {}
func (Unpause) isFilingCommand()      {}

// InitializedPayload is the payload of initialized events.
type InitializedPayload struct {
	DeadlineAuthority string `json:"deadline_authority"`
	AuditAuthority    string `json:"audit_authority"`
}

// SubmittedPayload is the payload of submitted events. FilingID is decided
// up front so replay reproduces the same ids.
type SubmittedPayload struct {
	FilingID     uint64   `json:"filing_id"`
	Taxpayer     string   `json:"taxpayer"`
	TaxYear      uint32   `json:"tax_year"`
	ContentHash  string   `json:"content_hash"`
	DeductionIDs []uint64 `json:"deduction_ids"`
}

// TransitionPayload is the payload of flagged, approved and disputed events.
type TransitionPayload struct {
	FilingID uint64 `json:"filing_id"`
	From     Status `json:"from"`
	To       Status `json:"to"`
}

// PausePayload is the payload of paused and unpaused events.
type PausePayload struct {
	Paused bool `json:"paused"`
}

// Decide evaluates cmd against state without mutating it.
func Decide(state *State, meta command.Meta, cmd Command) command.Decision {
	switch c := cmd.(type) {
	case Initialize:
		return decideInitialize(state, meta, c)
	case Submit:
		return decideSubmit(state, meta, c)
	case FlagForAudit:
		return decideTransition(state, meta, c.FilingID, StatusUnderAudit, EventTypeFlagged,
			access.OneOf(meta.Caller, state.Authorities.Audit), requireFiling(state, c.FilingID))
	case Approve:
		return decideTransition(state, meta, c.FilingID, StatusApproved, EventTypeApproved,
			access.OneOf(meta.Caller, state.Authorities.Audit, state.Authorities.Deadline), requireFiling(state, c.FilingID))
	case Dispute:
		// Ownership is a property of the filing, so existence is checked first.
		return decideTransition(state, meta, c.FilingID, StatusDisputed, EventTypeDisputed,
			requireFiling(state, c.FilingID), taxpayerOf(state, meta.Caller, c.FilingID))
	case Pause:
		return decideToggle(state, meta, true)
	case Unpause:
		return decideToggle(state, meta, false)
	default:
		return command.Reject(ErrUnknownCommand)
	}
}

func decideInitialize(state *State, meta command.Meta, c Initialize) command.Decision {
	err := state.OwnerMutation(meta.Caller, func() error {
		if state.Authorities.Deadline != "" {
			return ErrAlreadyInitialized
		}
		if c.DeadlineAuthority == "" || c.AuditAuthority == "" {
			return ErrAuthoritiesRequired
		}
		return nil
	})
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, EventTypeInitialized, event.EntityRegistry, event.EntityFiling, InitializedPayload{
		DeadlineAuthority: c.DeadlineAuthority,
		AuditAuthority:    c.AuditAuthority,
	})
}

func decideSubmit(state *State, meta command.Meta, c Submit) command.Decision {
	key := TaxpayerYear{Taxpayer: meta.Caller, TaxYear: c.TaxYear}
	err := access.Check(
		access.NotPaused(state.Paused),
		func() error {
			if !state.Authorities.Initialized() {
				return ErrNotInitialized
			}
			return nil
		},
		func() error {
			if c.TaxYear <= MinExclusiveTaxYear {
				return ErrInvalidTaxYear.With(yearMeta(c.TaxYear))
			}
			return nil
		},
		func() error {
			if !ValidContentHash(c.ContentHash) {
				return ErrInvalidContentHash
			}
			return nil
		},
		func() error {
			if len(c.DeductionIDs) > MaxDeductions {
				return ErrTooManyDeductions
			}
			return nil
		},
		func() error {
			if _, taken := state.ByTaxpayerYear[key]; taken {
				return ErrFilingExists.With(yearMeta(c.TaxYear))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}

	id := state.NextID
	return command.Emit(meta, EventTypeSubmitted, event.EntityFiling, filingID(id), SubmittedPayload{
		FilingID:     id,
		Taxpayer:     meta.Caller,
		TaxYear:      c.TaxYear,
		ContentHash:  c.ContentHash,
		DeductionIDs: append([]uint64{}, c.DeductionIDs...),
	})
}

// decideTransition checks pause, then the two operation-specific steps in
// order, then the status machine, and emits a transition event.
func decideTransition(state *State, meta command.Meta, id uint64, to Status, typ event.Type, first, second access.Step) command.Decision {
	err := access.Check(
		access.NotPaused(state.Paused),
		first,
		second,
		func() error {
			from := state.Filings[id].Status
			if !CanTransition(from, to) {
				return ErrInvalidTransition.With(transitionMeta(id, from, to))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, typ, event.EntityFiling, filingID(id), TransitionPayload{
		FilingID: id,
		From:     state.Filings[id].Status,
		To:       to,
	})
}

func decideToggle(state *State, meta command.Meta, paused bool) command.Decision {
	if err := state.Toggle(meta.Caller); err != nil {
		return command.Reject(err)
	}
	typ := EventTypeUnpaused
	if paused {
		typ = EventTypePaused
	}
	return command.Emit(meta, typ, event.EntityRegistry, event.EntityFiling, PausePayload{Paused: paused})
}

func requireFiling(state *State, id uint64) access.Step {
	return func() error {
		if _, ok := state.Filings[id]; !ok {
			return ErrFilingNotFound.With(idMeta(id))
		}
		return nil
	}
}

func taxpayerOf(state *State, caller string, id uint64) access.Step {
	return func() error {
		return access.OneOf(caller, state.Filings[id].Taxpayer)()
	}
}

func filingID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
