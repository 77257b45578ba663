package engine

import (
	"context"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/season"
)

// DefineSeason creates the season for year with the given window.
func (e *Engine) DefineSeason(ctx context.Context, call Call, year uint32, start, end uint64) (season.Season, error) {
	cmd := season.Define{Year: year, StartBlock: start, EndBlock: end}
	return e.seasonMutation(ctx, "season.define", call, cmd, year)
}

// OpenSeason reopens a closed season.
func (e *Engine) OpenSeason(ctx context.Context, call Call, year uint32) (season.Season, error) {
	return e.seasonMutation(ctx, "season.open", call, season.Open{Year: year}, year)
}

// CloseSeason closes an open season.
func (e *Engine) CloseSeason(ctx context.Context, call Call, year uint32) (season.Season, error) {
	return e.seasonMutation(ctx, "season.close", call, season.Close{Year: year}, year)
}

// UpdateSeasonDates replaces a season's window.
func (e *Engine) UpdateSeasonDates(ctx context.Context, call Call, year uint32, start, end uint64) (season.Season, error) {
	cmd := season.UpdateDates{Year: year, StartBlock: start, EndBlock: end}
	return e.seasonMutation(ctx, "season.update_dates", call, cmd, year)
}

func (e *Engine) seasonMutation(ctx context.Context, name string, call Call, cmd season.Command, year uint32) (season.Season, error) {
	var out season.Season
	err := execute(ctx, e, e.seasons, name, call, cmd, nil, func(state *season.State) {
		out, _ = state.Get(year)
	})
	if err != nil {
		return season.Season{}, err
	}
	return out, nil
}

// PauseSeasons blocks season mutations until unpaused.
func (e *Engine) PauseSeasons(ctx context.Context, call Call) (access.Status, error) {
	return e.seasonToggle(ctx, "season.pause", call, season.Pause{})
}

// UnpauseSeasons lifts the season pause.
func (e *Engine) UnpauseSeasons(ctx context.Context, call Call) (access.Status, error) {
	return e.seasonToggle(ctx, "season.unpause", call, season.Unpause{})
}

func (e *Engine) seasonToggle(ctx context.Context, name string, call Call, cmd season.Command) (access.Status, error) {
	var out access.Status
	err := execute(ctx, e, e.seasons, name, call, cmd, nil, func(state *season.State) {
		out = state.Status()
	})
	if err != nil {
		return access.Status{}, err
	}
	return out, nil
}

// GetSeason returns the season for year.
func (e *Engine) GetSeason(year uint32) (season.Season, error) {
	e.seasons.mu.RLock()
	defer e.seasons.mu.RUnlock()

	s, ok := e.seasons.state.Get(year)
	if !ok {
		return season.Season{}, season.ErrYearNotFound.With(yearMeta(year))
	}
	return s, nil
}

// ListSeasons returns every season ordered by year.
func (e *Engine) ListSeasons() []season.Season {
	e.seasons.mu.RLock()
	defer e.seasons.mu.RUnlock()
	return e.seasons.state.List()
}

// IsSeasonOpen reports whether filing is permitted for year at height.
func (e *Engine) IsSeasonOpen(year uint32, height uint64) bool {
	e.seasons.mu.RLock()
	defer e.seasons.mu.RUnlock()
	return e.seasons.state.IsOpen(year, height)
}

// SeasonStatus returns the season registry owner and pause flag.
func (e *Engine) SeasonStatus() access.Status {
	e.seasons.mu.RLock()
	defer e.seasons.mu.RUnlock()
	return e.seasons.state.Status()
}
