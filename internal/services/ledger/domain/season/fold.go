package season

import (
	"fmt"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

// Fold applies an accepted event to state.
func Fold(state *State, evt event.Event) error {
	switch evt.Type {
	case EventTypeDefined:
		var p WindowPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		state.Seasons[p.Year] = Season{
			Year:       p.Year,
			StartBlock: p.StartBlock,
			EndBlock:   p.EndBlock,
			Status:     StatusOpen,
			CreatedAt:  evt.Height,
			UpdatedAt:  evt.Height,
		}
	case EventTypeOpened, EventTypeClosed:
		var p YearPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		season, ok := state.Seasons[p.Year]
		if !ok {
			return fmt.Errorf("fold %s: season %d missing", evt.Type, p.Year)
		}
		season.Status = StatusClosed
		if evt.Type == EventTypeOpened {
			season.Status = StatusOpen
		}
		season.UpdatedAt = evt.Height
		state.Seasons[p.Year] = season
	case EventTypeDatesUpdated:
		var p WindowPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		season, ok := state.Seasons[p.Year]
		if !ok {
			return fmt.Errorf("fold %s: season %d missing", evt.Type, p.Year)
		}
		season.StartBlock = p.StartBlock
		season.EndBlock = p.EndBlock
		season.UpdatedAt = evt.Height
		state.Seasons[p.Year] = season
	case EventTypePaused, EventTypeUnpaused:
		state.Paused = evt.Type == EventTypePaused
	default:
		return fmt.Errorf("fold: unknown season event %s", evt.Type)
	}
	return nil
}
