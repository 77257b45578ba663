package season

import (
	"strconv"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/command"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

const (
	EventTypeDefined      event.Type = "season.defined"
	EventTypeOpened       event.Type = "season.opened"
	EventTypeClosed       event.Type = "season.closed"
	EventTypeDatesUpdated event.Type = "season.dates_updated"
	EventTypePaused       event.Type = "season.paused"
	EventTypeUnpaused     event.Type = "season.unpaused"
)

// Command is a season registry mutation.
type Command interface {
	isSeasonCommand()
}

// Define creates a season for Year.
type Define struct {
	Year       uint32
	StartBlock uint64
	EndBlock   uint64
}

// Open reopens a closed season.
type Open struct{ Year uint32 }

// Close closes an open season.
type Close struct{ Year uint32 }

// UpdateDates replaces a season's window.
type UpdateDates struct {
	Year       uint32
	StartBlock uint64
	EndBlock   uint64
}

// Pause sets the registry pause flag.
type Pause struct{}

// Unpause clears the registry pause flag.
type Unpause struct{}

func (Define) isSeasonCommand()      {}
func (Open) isSeasonCommand()        {}
func (Close) isSeasonCommand()       {}
func (UpdateDates) isSeasonCommand() {}
func (Pause) isSeasonCommand()       {}
func (Unpause) isSeasonCommand()     {}

// WindowPayload is the payload of defined and dates_updated events.
type WindowPayload struct {
	Year       uint32 `json:"year"`
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
}

// YearPayload is the payload of opened and closed events.
type YearPayload struct {
	Year uint32 `json:"year"`
}

// PausePayload is the payload of paused and unpaused events.
type PausePayload struct {
	Paused bool `json:"paused"`
}

// Decide evaluates cmd against state without mutating it.
func Decide(state *State, meta command.Meta, cmd Command) command.Decision {
	switch c := cmd.(type) {
	case Define:
		return decideDefine(state, meta, c)
	case Open:
		return decideOpen(state, meta, c)
	case Close:
		return decideClose(state, meta, c)
	case UpdateDates:
		return decideUpdateDates(state, meta, c)
	case Pause:
		return decideToggle(state, meta, true)
	case Unpause:
		return decideToggle(state, meta, false)
	default:
		return command.Reject(ErrUnknownCommand)
	}
}

func decideDefine(state *State, meta command.Meta, c Define) command.Decision {
	err := state.OwnerMutation(meta.Caller,
		func() error {
			if _, ok := state.Get(c.Year); ok {
				return ErrYearExists.With(yearMeta(c.Year))
			}
			return nil
		},
		func() error {
			if c.Year <= MinExclusiveYear || !validWindow(c.StartBlock, c.EndBlock, meta.Height) {
				return ErrInvalidDates.With(yearMeta(c.Year))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, EventTypeDefined, event.EntitySeason, yearID(c.Year), WindowPayload{
		Year:       c.Year,
		StartBlock: c.StartBlock,
		EndBlock:   c.EndBlock,
	})
}

func decideOpen(state *State, meta command.Meta, c Open) command.Decision {
	err := state.OwnerMutation(meta.Caller,
		requireYear(state, c.Year),
		func() error {
			if state.Seasons[c.Year].Status == StatusOpen {
				return ErrSeasonNotOpen.With(yearMeta(c.Year))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, EventTypeOpened, event.EntitySeason, yearID(c.Year), YearPayload{Year: c.Year})
}

func decideClose(state *State, meta command.Meta, c Close) command.Decision {
	err := state.OwnerMutation(meta.Caller,
		requireYear(state, c.Year),
		func() error {
			if state.Seasons[c.Year].Status != StatusOpen {
				return ErrSeasonClosed.With(yearMeta(c.Year))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, EventTypeClosed, event.EntitySeason, yearID(c.Year), YearPayload{Year: c.Year})
}

func decideUpdateDates(state *State, meta command.Meta, c UpdateDates) command.Decision {
	err := state.OwnerMutation(meta.Caller,
		requireYear(state, c.Year),
		func() error {
			// The year was validated when the season was defined.
			if !validWindow(c.StartBlock, c.EndBlock, meta.Height) {
				return ErrInvalidDates.With(yearMeta(c.Year))
			}
			return nil
		},
	)
	if err != nil {
		return command.Reject(err)
	}
	return command.Emit(meta, EventTypeDatesUpdated, event.EntitySeason, yearID(c.Year), WindowPayload{
		Year:       c.Year,
		StartBlock: c.StartBlock,
		EndBlock:   c.EndBlock,
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
	return command.Emit(meta, typ, event.EntityRegistry, event.EntitySeason, PausePayload{Paused: paused})
}

func requireYear(state *State, year uint32) func() error {
	return func() error {
		if _, ok := state.Get(year); !ok {
			return ErrYearNotFound.With(yearMeta(year))
		}
		return nil
	}
}

func yearID(year uint32) string {
	return strconv.FormatUint(uint64(year), 10)
}
