package ledger

import (
	"context"

	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// JournalService implements JournalServiceServer on the ledger engine.
type JournalService struct {
	engine *engine.Engine
	audits storage.AuditEventReader
}

// NewJournalService creates a journal service backed by eng. audits may be
// nil, in which case ListAuditEvents reports Unavailable.
func NewJournalService(eng *engine.Engine, audits storage.AuditEventReader) *JournalService {
	return &JournalService{engine: eng, audits: audits}
}

func (s *JournalService) ListEvents(ctx context.Context, in *ListEventsRequest) (*ListEventsResponse, error) {
	page, err := s.engine.ListEvents(ctx, storage.EventQuery{
		AfterSeq: in.AfterSeq,
		PageSize: in.PageSize,
		Filter:   in.Filter,
	})
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &ListEventsResponse{Events: page.Events, NextAfterSeq: page.NextAfterSeq}, nil
}

func (s *JournalService) ListAuditEvents(ctx context.Context, in *ListAuditEventsRequest) (*ListAuditEventsResponse, error) {
	if s.audits == nil {
		return nil, status.Error(codes.Unavailable, "audit log is not configured")
	}
	if in.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	events, err := s.audits.ListAuditEvents(ctx, in.Limit)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &ListAuditEventsResponse{Events: audit.Records(events)}, nil
}

var _ JournalServiceServer = (*JournalService)(nil)
