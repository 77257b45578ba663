// Package sqlite provides the SQLite-backed ledger journal and audit store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/taxledger/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage/filter"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists ledger state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite ledger store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvent inserts evt and returns it with its assigned sequence.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if err := evt.Validate(); err != nil {
		return event.Event{}, err
	}
	if evt.Height > math.MaxInt64 {
		return event.Event{}, fmt.Errorf("height %d exceeds storable range", evt.Height)
	}
	if evt.RecordedAt.IsZero() {
		evt.RecordedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO ledger_events (
		   event_type,
		   entity_type,
		   entity_id,
		   height,
		   actor,
		   request_id,
		   payload_json,
		   recorded_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(evt.Type),
		evt.EntityType,
		evt.EntityID,
		int64(evt.Height),
		evt.Actor,
		evt.RequestID,
		[]byte(evt.PayloadJSON),
		toMillis(evt.RecordedAt),
	)
	if err != nil {
		return event.Event{}, fmt.Errorf("append ledger event: %w", err)
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return event.Event{}, fmt.Errorf("append ledger event: read seq: %w", err)
	}
	evt.Seq = uint64(seq)
	evt.RecordedAt = fromMillis(toMillis(evt.RecordedAt))
	return evt, nil
}

const selectEvents = `SELECT seq, event_type, entity_type, entity_id, height, actor,
        request_id, payload_json, recorded_at
   FROM ledger_events`

// ListEvents returns one page of events after query.AfterSeq that match
// query.Filter.
func (s *Store) ListEvents(ctx context.Context, query storage.EventQuery) (storage.EventPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.EventPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EventPage{}, fmt.Errorf("storage is not configured")
	}
	if query.AfterSeq > math.MaxInt64 {
		return storage.EventPage{}, fmt.Errorf("after seq %d exceeds storable range", query.AfterSeq)
	}
	cond, err := filter.ParseEventFilter(query.Filter)
	if err != nil {
		return storage.EventPage{}, fmt.Errorf("%w: %v", storage.ErrInvalidFilter, err)
	}
	pageSize := storage.ClampPageSize(query.PageSize)

	where := "seq > ?"
	params := []any{int64(query.AfterSeq)}
	if cond.Clause != "" {
		where += " AND " + cond.Clause
		params = append(params, cond.Params...)
	}
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, selectEvents+" WHERE "+where+" ORDER BY seq ASC LIMIT ?", params...)
	if err != nil {
		return storage.EventPage{}, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows, pageSize+1)
	if err != nil {
		return storage.EventPage{}, fmt.Errorf("list ledger events: %w", err)
	}
	page := storage.EventPage{Events: events}
	if len(events) > pageSize {
		page.Events = events[:pageSize]
		page.NextAfterSeq = page.Events[pageSize-1].Seq
	}
	return page, nil
}

// AllEvents returns the whole journal in seq order.
func (s *Store) AllEvents(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectEvents+" ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("load ledger events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows, 0)
	if err != nil {
		return nil, fmt.Errorf("load ledger events: %w", err)
	}
	return events, nil
}

func scanEvents(rows *sql.Rows, capacity int) ([]event.Event, error) {
	events := make([]event.Event, 0, capacity)
	for rows.Next() {
		var (
			evt        event.Event
			eventType  string
			seq        int64
			height     int64
			payload    []byte
			recordedAt int64
		)
		if err := rows.Scan(
			&seq,
			&eventType,
			&evt.EntityType,
			&evt.EntityID,
			&height,
			&evt.Actor,
			&evt.RequestID,
			&payload,
			&recordedAt,
		); err != nil {
			return nil, err
		}
		evt.Seq = uint64(seq)
		evt.Type = event.Type(eventType)
		evt.Height = uint64(height)
		evt.PayloadJSON = json.RawMessage(payload)
		evt.RecordedAt = fromMillis(recordedAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// AppendAuditEvent inserts one audit record. Duplicate ids report
// storage.ErrAlreadyExists.
func (s *Store) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.ID) == "" {
		return fmt.Errorf("audit event id is required")
	}
	if strings.TrimSpace(evt.EventName) == "" {
		return fmt.Errorf("audit event name is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	attributes := evt.AttributesJSON
	if attributes == nil && len(evt.Attributes) > 0 {
		encoded, err := json.Marshal(evt.Attributes)
		if err != nil {
			return fmt.Errorf("encode audit attributes: %w", err)
		}
		attributes = encoded
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO audit_events (
		   id, timestamp, event_name, severity, method, caller,
		   request_id, status_code, trace_id, span_id, attributes_json
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.ID,
		toMillis(evt.Timestamp),
		evt.EventName,
		evt.Severity,
		evt.Method,
		evt.Caller,
		evt.RequestID,
		evt.StatusCode,
		evt.TraceID,
		evt.SpanID,
		attributes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns up to limit audit records, newest first.
func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	limit = storage.ClampPageSize(limit)
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, timestamp, event_name, severity, method, caller,
		        request_id, status_code, trace_id, span_id, attributes_json
		   FROM audit_events
		  ORDER BY timestamp DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []storage.AuditEvent
	for rows.Next() {
		var evt storage.AuditEvent
		var ts int64
		if err := rows.Scan(
			&evt.ID,
			&ts,
			&evt.EventName,
			&evt.Severity,
			&evt.Method,
			&evt.Caller,
			&evt.RequestID,
			&evt.StatusCode,
			&evt.TraceID,
			&evt.SpanID,
			&evt.AttributesJSON,
		); err != nil {
			return nil, fmt.Errorf("list audit events: %w", err)
		}
		evt.Timestamp = fromMillis(ts)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var (
	_ storage.EventJournal = (*Store)(nil)
	_ storage.AuditLog     = (*Store)(nil)
)
