// Package storage defines persistence contracts for the ledger journal and
// its operational audit trail.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

var (
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidFilter indicates a journal filter that does not parse.
	ErrInvalidFilter = errors.New("invalid event filter")
)

const (
	// DefaultPageSize is used when a query leaves PageSize unset.
	DefaultPageSize = 50
	// MaxPageSize caps journal pages.
	MaxPageSize = 500
)

// EventQuery selects a page of journal events after AfterSeq.
type EventQuery struct {
	AfterSeq uint64
	PageSize int
	// Filter is an AIP-160 expression over type, entity_type, entity_id,
	// actor, request_id, height and recorded_at.
	Filter string
}

// EventPage is one page of journal events in seq order.
type EventPage struct {
	Events []event.Event
	// NextAfterSeq resumes the listing; zero when the page is the last one.
	NextAfterSeq uint64
}

// EventJournal persists accepted ledger mutations in order.
type EventJournal interface {
	// AppendEvent stores evt and returns it with Seq assigned.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	ListEvents(ctx context.Context, query EventQuery) (EventPage, error)
	// AllEvents returns the full journal in seq order for replay.
	AllEvents(ctx context.Context) ([]event.Event, error)
}

// AuditEvent is one operational record of a transport call.
type AuditEvent struct {
	ID             string
	Timestamp      time.Time
	EventName      string
	Severity       string
	Method         string
	Caller         string
	RequestID      string
	StatusCode     string
	TraceID        string
	SpanID         string
	Attributes     map[string]any
	AttributesJSON []byte
}

// AuditEventStore persists audit records.
type AuditEventStore interface {
	AppendAuditEvent(ctx context.Context, evt AuditEvent) error
}

// AuditEventReader lists recent audit records.
type AuditEventReader interface {
	// ListAuditEvents returns up to limit records, newest first.
	ListAuditEvents(ctx context.Context, limit int) ([]AuditEvent, error)
}

// AuditLog both records and lists audit events.
type AuditLog interface {
	AuditEventStore
	AuditEventReader
}

// ClampPageSize applies the default and maximum page sizes.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
