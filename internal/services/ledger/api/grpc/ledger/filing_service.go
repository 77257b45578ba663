package ledger

import (
	"context"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
)

// FilingService implements FilingServiceServer on the ledger engine.
type FilingService struct {
	engine *engine.Engine
}

// NewFilingService creates a filing service backed by eng.
func NewFilingService(eng *engine.Engine) *FilingService {
	return &FilingService{engine: eng}
}

func (s *FilingService) Initialize(ctx context.Context, in *InitializeRequest) (*FilingStatusResponse, error) {
	return s.statusMutation(ctx, func(call engine.Call) (filing.RegistryStatus, error) {
		return s.engine.InitializeFilings(ctx, call, in.DeadlineAuthority, in.AuditAuthority)
	})
}

func (s *FilingService) SubmitFiling(ctx context.Context, in *SubmitFilingRequest) (*FilingResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (filing.Filing, error) {
		return s.engine.SubmitFiling(ctx, call, in.TaxYear, in.ContentHash, in.DeductionIDs)
	})
}

func (s *FilingService) FlagForAudit(ctx context.Context, in *FilingIDRequest) (*FilingResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (filing.Filing, error) {
		return s.engine.FlagForAudit(ctx, call, in.FilingID)
	})
}

func (s *FilingService) ApproveFiling(ctx context.Context, in *FilingIDRequest) (*FilingResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (filing.Filing, error) {
		return s.engine.ApproveFiling(ctx, call, in.FilingID)
	})
}

func (s *FilingService) DisputeFiling(ctx context.Context, in *FilingIDRequest) (*FilingResponse, error) {
	return s.mutate(ctx, func(call engine.Call) (filing.Filing, error) {
		return s.engine.DisputeFiling(ctx, call, in.FilingID)
	})
}

func (s *FilingService) mutate(ctx context.Context, fn func(engine.Call) (filing.Filing, error)) (*FilingResponse, error) {
	call, err := callFromContext(ctx)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	out, err := fn(call)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &FilingResponse{Filing: out}, nil
}

func (s *FilingService) GetFiling(ctx context.Context, in *FilingIDRequest) (*FilingResponse, error) {
	out, err := s.engine.GetFiling(in.FilingID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &FilingResponse{Filing: out}, nil
}

func (s *FilingService) GetFilingByTaxpayerYear(ctx context.Context, in *TaxpayerYearRequest) (*FilingResponse, error) {
	out, err := s.engine.GetFilingByTaxpayerYear(in.Taxpayer, in.TaxYear)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &FilingResponse{Filing: out}, nil
}

func (s *FilingService) GetFilingHistory(ctx context.Context, in *FilingIDRequest) (*FilingHistoryResponse, error) {
	entries, err := s.engine.FilingHistory(in.FilingID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &FilingHistoryResponse{FilingID: in.FilingID, Entries: entries, Final: filing.Final(entries)}, nil
}

func (s *FilingService) Pause(ctx context.Context, _ *StatusRequest) (*FilingStatusResponse, error) {
	return s.statusMutation(ctx, func(call engine.Call) (filing.RegistryStatus, error) {
		return s.engine.PauseFilings(ctx, call)
	})
}

func (s *FilingService) Unpause(ctx context.Context, _ *StatusRequest) (*FilingStatusResponse, error) {
	return s.statusMutation(ctx, func(call engine.Call) (filing.RegistryStatus, error) {
		return s.engine.UnpauseFilings(ctx, call)
	})
}

func (s *FilingService) statusMutation(ctx context.Context, fn func(engine.Call) (filing.RegistryStatus, error)) (*FilingStatusResponse, error) {
	call, err := callFromContext(ctx)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	out, err := fn(call)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &FilingStatusResponse{Status: out}, nil
}

func (s *FilingService) GetStatus(ctx context.Context, _ *StatusRequest) (*FilingStatusResponse, error) {
	return &FilingStatusResponse{Status: s.engine.FilingStatus()}, nil
}

var _ FilingServiceServer = (*FilingService)(nil)
