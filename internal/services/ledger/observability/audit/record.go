package audit

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
)

// Record is the transport view of a stored audit event.
type Record struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	EventName  string          `json:"event_name"`
	Severity   string          `json:"severity"`
	Method     string          `json:"method"`
	Caller     string          `json:"caller,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	StatusCode string          `json:"status_code"`
	TraceID    string          `json:"trace_id,omitempty"`
	SpanID     string          `json:"span_id,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// RecordOf converts evt for transport. Stored attribute JSON wins over the
// in-memory map; invalid JSON is dropped.
func RecordOf(evt storage.AuditEvent) Record {
	rec := Record{
		ID:         evt.ID,
		Timestamp:  evt.Timestamp,
		EventName:  evt.EventName,
		Severity:   evt.Severity,
		Method:     evt.Method,
		Caller:     evt.Caller,
		RequestID:  evt.RequestID,
		StatusCode: evt.StatusCode,
		TraceID:    evt.TraceID,
		SpanID:     evt.SpanID,
	}
	switch {
	case len(evt.AttributesJSON) > 0 && json.Valid(evt.AttributesJSON):
		rec.Attributes = append(json.RawMessage(nil), evt.AttributesJSON...)
	case len(evt.Attributes) > 0:
		if raw, err := json.Marshal(evt.Attributes); err == nil {
			rec.Attributes = raw
		}
	}
	return rec
}

// Records converts a slice of stored audit events, never returning nil.
func Records(evts []storage.AuditEvent) []Record {
	out := make([]Record, 0, len(evts))
	for _, evt := range evts {
		out = append(out, RecordOf(evt))
	}
	return out
}
