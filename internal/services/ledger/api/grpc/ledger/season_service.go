package ledger

import (
	"context"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/season"
	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
)

// SeasonService implements SeasonServiceServer on the ledger engine.
type SeasonService struct {
	engine *engine.Engine
}

// NewSeasonService creates a season service backed by eng.
func NewSeasonService(eng *engine.Engine) *SeasonService {
	return &SeasonService{engine: eng}
}

func (s *SeasonService) DefineSeason(ctx context.Context, in *DefineSeasonRequest) (*SeasonResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (season.Season, error) {
		return s.engine.DefineSeason(ctx, call, in.Year, in.StartBlock, in.EndBlock)
	})
}

func (s *SeasonService) OpenSeason(ctx context.Context, in *SeasonYearRequest) (*SeasonResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (season.Season, error) {
		return s.engine.OpenSeason(ctx, call, in.Year)
	})
}

func (s *SeasonService) CloseSeason(ctx context.Context, in *SeasonYearRequest) (*SeasonResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (season.Season, error) {
		return s.engine.CloseSeason(ctx, call, in.Year)
	})
}

func (s *SeasonService) UpdateSeasonDates(ctx context.Context, in *UpdateSeasonDatesRequest) (*SeasonResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (season.Season, error) {
		return s.engine.UpdateSeasonDates(ctx, call, in.Year, in.StartBlock, in.EndBlock)
	})
}

func (s *SeasonService) mutate(ctx context.Context, fn func(engine.Call) (season.Season, error)) (*SeasonResponse, error) {
	call, err := callFromContext(ctx)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	out, err := fn(call)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &SeasonResponse{Season: out}, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, in *SeasonYearRequest) (*SeasonResponse, error) {
	out, err := s.engine.GetSeason(in.Year)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &SeasonResponse{Season: out}, nil
}

func (s *SeasonService) ListSeasons(ctx context.Context, _ *ListSeasonsRequest) (*ListSeasonsResponse, error) {
	return &ListSeasonsResponse{Seasons: s.engine.ListSeasons()}, nil
}

func (s *SeasonService) IsSeasonOpen(ctx context.Context, in *SeasonYearRequest) (*IsSeasonOpenResponse, error) {
	call, err := callFromContext(ctx)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &IsSeasonOpenResponse{
		Year:   in.Year,
		Height: call.Height,
		Open:   s.engine.IsSeasonOpen(in.Year, call.Height),
	}, nil
}

func (s *SeasonService) Pause(ctx context.Context, _ *StatusRequest) (*SeasonStatusResponse, error) {
	return s.toggle(ctx, s.engine.PauseSeasons)
}

func (s *SeasonService) Unpause(ctx context.Context, _ *StatusRequest) (*SeasonStatusResponse, error) {
	return s.toggle(ctx, s.engine.UnpauseSeasons)
}

func (s *SeasonService) toggle(ctx context.Context, fn func(context.Context, engine.Call) (access.Status, error)) (*SeasonStatusResponse, error) {
	call, err := callFromContext(ctx)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	status, err := fn(ctx, call)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &SeasonStatusResponse{Status: status}, nil
}

func (s *SeasonService) GetStatus(ctx context.Context, _ *StatusRequest) (*SeasonStatusResponse, error) {
	return &SeasonStatusResponse{Status: s.engine.SeasonStatus()}, nil
}

var _ SeasonServiceServer = (*SeasonService)(nil)
