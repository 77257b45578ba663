package engine

import (
	"context"
	"strconv"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
)

// InitializeFilings sets the deadline and audit authorities once.
func (e *Engine) InitializeFilings(ctx context.Context, call Call, deadline, audit string) (filing.RegistryStatus, error) {
	cmd := filing.Initialize{DeadlineAuthority: deadline, AuditAuthority: audit}
	return e.filingStatusMutation(ctx, "filing.initialize", call, cmd)
}

// SubmitFiling records the caller's filing for taxYear. With season
// enforcement on, the tax year's season must be open at the call height.
func (e *Engine) SubmitFiling(ctx context.Context, call Call, taxYear uint32, contentHash string, deductionIDs []uint64) (filing.Filing, error) {
	var cmd filing.Command = filing.Submit{TaxYear: taxYear, ContentHash: contentHash, DeductionIDs: deductionIDs}
	var check func() error
	if e.cfg.EnforceSeasonWindow {
		check = func() error {
			if e.IsSeasonOpen(taxYear, call.Height) {
				return nil
			}
			return ErrSeasonWindowClosed.With(map[string]string{
				"TaxYear": strconv.FormatUint(uint64(taxYear), 10),
			})
		}
	}
	var out filing.Filing
	err := execute(ctx, e, e.filings, "filing.submit", call, cmd, check, func(state *filing.State) {
		id, _ := state.GetByTaxpayerYear(call.Caller, taxYear)
		out, _ = state.Get(id)
	})
	if err != nil {
		return filing.Filing{}, err
	}
	return out, nil
}

// FlagForAudit moves a submitted filing under audit.
func (e *Engine) FlagForAudit(ctx context.Context, call Call, id uint64) (filing.Filing, error) {
	return e.filingTransition(ctx, "filing.flag_for_audit", call, filing.FlagForAudit{FilingID: id}, id)
}

// ApproveFiling approves a filing under audit.
func (e *Engine) ApproveFiling(ctx context.Context, call Call, id uint64) (filing.Filing, error) {
	return e.filingTransition(ctx, "filing.approve", call, filing.Approve{FilingID: id}, id)
}

// DisputeFiling lets the filing's taxpayer dispute an audit outcome.
func (e *Engine) DisputeFiling(ctx context.Context, call Call, id uint64) (filing.Filing, error) {
	return e.filingTransition(ctx, "filing.dispute", call, filing.Dispute{FilingID: id}, id)
}

func (e *Engine) filingTransition(ctx context.Context, name string, call Call, cmd filing.Command, id uint64) (filing.Filing, error) {
	var out filing.Filing
	err := execute(ctx, e, e.filings, name, call, cmd, nil, func(state *filing.State) {
		out, _ = state.Get(id)
	})
	if err != nil {
		return filing.Filing{}, err
	}
	return out, nil
}

// PauseFilings blocks filing mutations until unpaused.
func (e *Engine) PauseFilings(ctx context.Context, call Call) (filing.RegistryStatus, error) {
	return e.filingStatusMutation(ctx, "filing.pause", call, filing.Pause{})
}

// UnpauseFilings lifts the filing pause.
func (e *Engine) UnpauseFilings(ctx context.Context, call Call) (filing.RegistryStatus, error) {
	return e.filingStatusMutation(ctx, "filing.unpause", call, filing.Unpause{})
}

func (e *Engine) filingStatusMutation(ctx context.Context, name string, call Call, cmd filing.Command) (filing.RegistryStatus, error) {
	var out filing.RegistryStatus
	err := execute(ctx, e, e.filings, name, call, cmd, nil, func(state *filing.State) {
		out = state.RegistryStatus()
	})
	if err != nil {
		return filing.RegistryStatus{}, err
	}
	return out, nil
}

// GetFiling returns the filing with id.
func (e *Engine) GetFiling(id uint64) (filing.Filing, error) {
	e.filings.mu.RLock()
	defer e.filings.mu.RUnlock()

	f, ok := e.filings.state.Get(id)
	if !ok {
		return filing.Filing{}, filingNotFound(id)
	}
	return f, nil
}

// GetFilingByTaxpayerYear returns the taxpayer's filing for taxYear.
func (e *Engine) GetFilingByTaxpayerYear(taxpayer string, taxYear uint32) (filing.Filing, error) {
	e.filings.mu.RLock()
	defer e.filings.mu.RUnlock()

	id, ok := e.filings.state.GetByTaxpayerYear(taxpayer, taxYear)
	if !ok {
		return filing.Filing{}, filing.ErrTaxpayerYearNotFound.With(map[string]string{
			"Taxpayer": taxpayer,
			"TaxYear":  strconv.FormatUint(uint64(taxYear), 10),
		})
	}
	f, _ := e.filings.state.Get(id)
	return f, nil
}

// FilingHistory returns the filing's status history, oldest first.
func (e *Engine) FilingHistory(id uint64) ([]filing.HistoryEntry, error) {
	e.filings.mu.RLock()
	defer e.filings.mu.RUnlock()

	history, ok := e.filings.state.HistoryOf(id)
	if !ok {
		return nil, filingNotFound(id)
	}
	return history, nil
}

// FilingStatus returns owner, pause flag, next id and both authorities.
func (e *Engine) FilingStatus() filing.RegistryStatus {
	e.filings.mu.RLock()
	defer e.filings.mu.RUnlock()
	return e.filings.state.RegistryStatus()
}

func filingNotFound(id uint64) error {
	return filing.ErrFilingNotFound.With(map[string]string{
		"FilingID": strconv.FormatUint(id, 10),
	})
}
