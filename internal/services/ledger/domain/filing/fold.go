package filing

import (
	"fmt"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

// Fold applies an accepted event to state.
func Fold(state *State, evt event.Event) error {
	switch evt.Type {
	case EventTypeInitialized:
		var p InitializedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		state.Authorities = Authorities{Deadline: p.DeadlineAuthority, Audit: p.AuditAuthority}
	case EventTypeSubmitted:
		var p SubmittedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		state.Filings[p.FilingID] = Filing{
			ID:           p.FilingID,
			Taxpayer:     p.Taxpayer,
			TaxYear:      p.TaxYear,
			ContentHash:  p.ContentHash,
			Status:       StatusSubmitted,
			SubmittedAt:  evt.Height,
			DeductionIDs: append([]uint64{}, p.DeductionIDs...),
		}
		state.ByTaxpayerYear[TaxpayerYear{Taxpayer: p.Taxpayer, TaxYear: p.TaxYear}] = p.FilingID
		state.History[p.FilingID] = []HistoryEntry{{Status: StatusSubmitted, Block: evt.Height, Updater: evt.Actor}}
		if p.FilingID >= state.NextID {
			state.NextID = p.FilingID + 1
		}
	case EventTypeFlagged, EventTypeApproved, EventTypeDisputed:
		var p TransitionPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		f, ok := state.Filings[p.FilingID]
		if !ok {
			return fmt.Errorf("fold %s: filing %d missing", evt.Type, p.FilingID)
		}
		f.Status = p.To
		if evt.Type == EventTypeFlagged {
			f.AuditFlags++
		}
		state.Filings[p.FilingID] = f
		state.History[p.FilingID] = append(state.History[p.FilingID], HistoryEntry{
			Status:  p.To,
			Block:   evt.Height,
			Updater: evt.Actor,
		})
	case EventTypePaused, EventTypeUnpaused:
		state.Paused = evt.Type == EventTypePaused
	default:
		return fmt.Errorf("fold: unknown filing event %s", evt.Type)
	}
	return nil
}
