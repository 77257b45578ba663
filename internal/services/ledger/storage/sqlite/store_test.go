package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestAppendEventAssignsSequence(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	first, err := store.AppendEvent(ctx, testEvent("season.defined", event.EntitySeason, "2024", 100))
	if err != nil {
		t.Fatalf("append first: %v", err)
	}
	second, err := store.AppendEvent(ctx, testEvent("season.opened", event.EntitySeason, "2024", 101))
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if first.Seq == 0 || second.Seq <= first.Seq {
		t.Fatalf("seqs = %d, %d, want increasing non-zero", first.Seq, second.Seq)
	}

	all, err := store.AllEvents(ctx)
	if err != nil {
		t.Fatalf("all events: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	got := all[0]
	if got.Type != "season.defined" || got.EntityID != "2024" || got.Height != 100 || got.Actor != "ST1OWNER" {
		t.Fatalf("first event = %+v", got)
	}
	if got.RequestID != "req-1" {
		t.Fatalf("request id = %q, want req-1", got.RequestID)
	}
	var payload map[string]int
	if err := json.Unmarshal(got.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["year"] != 2024 {
		t.Fatalf("payload = %v", payload)
	}
	if !got.RecordedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("recorded at = %v", got.RecordedAt)
	}
}

func TestAppendEventRejectsInvalidEvent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.AppendEvent(context.Background(), event.Event{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAppendEventCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.AppendEvent(ctx, testEvent("season.defined", event.EntitySeason, "2024", 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestListEventsPaginates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.AppendEvent(ctx, testEvent("season.defined", event.EntitySeason, "2024", uint64(i+1))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	page, err := store.ListEvents(ctx, storage.EventQuery{PageSize: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page.Events) != 2 || page.NextAfterSeq != page.Events[1].Seq {
		t.Fatalf("page 1 = %+v", page)
	}

	var seen int
	query := storage.EventQuery{PageSize: 2}
	for {
		page, err := store.ListEvents(ctx, query)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		seen += len(page.Events)
		if page.NextAfterSeq == 0 {
			break
		}
		query.AfterSeq = page.NextAfterSeq
	}
	if seen != 5 {
		t.Fatalf("seen = %d, want 5", seen)
	}
}

func TestListEventsFilters(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	appendAll(t, store,
		testEvent("season.defined", event.EntitySeason, "2024", 10),
		testEvent("filing.submitted", event.EntityFiling, "0", 20),
		testEvent("filing.flagged", event.EntityFiling, "0", 30),
		testEvent("filing.submitted", event.EntityFiling, "1", 40),
	)

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{name: "by type", filter: `type = "filing.submitted"`, want: 2},
		{name: "by entity", filter: `entity_type = "filing" AND entity_id = "0"`, want: 2},
		{name: "by height", filter: `height >= 20 AND height < 40`, want: 2},
		{name: "negated", filter: `NOT entity_type = "filing"`, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.ListEvents(ctx, storage.EventQuery{Filter: tc.filter})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(page.Events) != tc.want {
				t.Fatalf("len = %d, want %d", len(page.Events), tc.want)
			}
		})
	}
}

func TestListEventsInvalidFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.ListEvents(context.Background(), storage.EventQuery{Filter: `unknown_field = "x"`})
	if !errors.Is(err, storage.ErrInvalidFilter) {
		t.Fatalf("err = %v, want ErrInvalidFilter", err)
	}
}

func TestReopenKeepsJournal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	appendAll(t, store, testEvent("season.defined", event.EntitySeason, "2024", 1))
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	all, err := reopened.AllEvents(context.Background())
	if err != nil {
		t.Fatalf("all events: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(all) = %d, want 1", len(all))
	}
}

func TestAppendAuditEvent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	evt := storage.AuditEvent{
		ID:         "audit-1",
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventName:  "telemetry.grpc.write",
		Severity:   "INFO",
		Method:     "/taxledger.ledger.v1.FilingService/Submit",
		Caller:     "ST1TAXPAYER",
		StatusCode: "OK",
		Attributes: map[string]any{"height": 10},
	}
	if err := store.AppendAuditEvent(ctx, evt); err != nil {
		t.Fatalf("append audit: %v", err)
	}
	if err := store.AppendAuditEvent(ctx, evt); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrAlreadyExists", err)
	}

	got, err := store.ListAuditEvents(ctx, 10)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Method != evt.Method || got[0].Caller != evt.Caller {
		t.Fatalf("audit = %+v", got[0])
	}
	if string(got[0].AttributesJSON) != `{"height":10}` {
		t.Fatalf("attributes = %s", got[0].AttributesJSON)
	}
}

func TestAppendAuditEventRequiresID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.AppendAuditEvent(context.Background(), storage.AuditEvent{EventName: "x"}); err == nil {
		t.Fatal("expected id error")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil: %v", err)
	}
	if _, err := store.AllEvents(context.Background()); err == nil {
		t.Fatal("expected not configured error")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func appendAll(t *testing.T, store *Store, events ...event.Event) {
	t.Helper()
	for _, evt := range events {
		if _, err := store.AppendEvent(context.Background(), evt); err != nil {
			t.Fatalf("append %s: %v", evt.Type, err)
		}
	}
}

func testEvent(typ event.Type, entityType, entityID string, height uint64) event.Event {
	return event.Event{
		Type:        typ,
		EntityType:  entityType,
		EntityID:    entityID,
		Height:      height,
		Actor:       "ST1OWNER",
		RequestID:   "req-1",
		PayloadJSON: json.RawMessage(`{"year":2024}`),
		RecordedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
