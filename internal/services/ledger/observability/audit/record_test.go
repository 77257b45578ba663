package audit

import (
	"testing"
	"time"

	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
)

func TestRecordOfPrefersStoredAttributes(t *testing.T) {
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	rec := RecordOf(storage.AuditEvent{
		ID:             "a1",
		Timestamp:      ts,
		EventName:      "telemetry.grpc.write",
		Severity:       string(SeverityWarn),
		Method:         "/taxledger.ledger.v1.FilingService/SubmitFiling",
		StatusCode:     "FailedPrecondition",
		Attributes:     map[string]any{"height": 9},
		AttributesJSON: []byte(`{"height":12}`),
	})
	if rec.ID != "a1" || !rec.Timestamp.Equal(ts) || rec.Severity != "WARN" {
		t.Fatalf("record = %+v", rec)
	}
	if string(rec.Attributes) != `{"height":12}` {
		t.Fatalf("attributes = %s, want stored JSON", rec.Attributes)
	}
}

func TestRecordOfMarshalsAttributeMap(t *testing.T) {
	rec := RecordOf(storage.AuditEvent{Attributes: map[string]any{"reason": "FILING_EXISTS"}})
	if string(rec.Attributes) != `{"reason":"FILING_EXISTS"}` {
		t.Fatalf("attributes = %s", rec.Attributes)
	}
	if empty := RecordOf(storage.AuditEvent{AttributesJSON: []byte("{broken")}); empty.Attributes != nil {
		t.Fatalf("attributes = %s, want dropped", empty.Attributes)
	}
}

func TestRecordsNeverNil(t *testing.T) {
	if got := Records(nil); got == nil || len(got) != 0 {
		t.Fatalf("records = %#v, want empty slice", got)
	}
}
