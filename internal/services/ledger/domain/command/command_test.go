package command

import (
	"errors"
	"testing"
	"time"
)

func TestEmitStampsMeta(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	meta := Meta{Caller: "OWNER", Height: 1000, RequestID: "req-1", Now: func() time.Time { return fixed }}

	decision := Emit(meta, "season.opened", "season", "2025", map[string]int{"year": 2025})
	if decision.Err != nil {
		t.Fatalf("emit: %v", decision.Err)
	}
	if len(decision.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(decision.Events))
	}
	evt := decision.Events[0]
	if evt.Actor != "OWNER" || evt.Height != 1000 || evt.RequestID != "req-1" {
		t.Fatalf("event meta = %+v", evt)
	}
	if !evt.RecordedAt.Equal(fixed) || evt.RecordedAt.Location() != time.UTC {
		t.Fatalf("recorded at = %v, want UTC %v", evt.RecordedAt, fixed)
	}
	if string(evt.PayloadJSON) != `{"year":2025}` {
		t.Fatalf("payload = %s", evt.PayloadJSON)
	}
}

func TestEmitRejectsUnencodablePayload(t *testing.T) {
	decision := Emit(Meta{Caller: "X"}, "season.opened", "season", "1", make(chan int))
	if decision.Err == nil {
		t.Fatal("expected encode error")
	}
}

func TestReject(t *testing.T) {
	errBoom := errors.New("boom")
	decision := Reject(errBoom)
	if !errors.Is(decision.Err, errBoom) || len(decision.Events) != 0 {
		t.Fatalf("decision = %+v", decision)
	}
}
