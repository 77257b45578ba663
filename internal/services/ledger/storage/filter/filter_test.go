package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestParseEventFilterEmpty(t *testing.T) {
	cond, err := ParseEventFilter("   ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cond.Clause != "" || len(cond.Params) != 0 {
		t.Fatalf("cond = %+v, want empty", cond)
	}
}

func TestParseEventFilter(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name   string
		filter string
		clause string
		params []any
	}{
		{
			name:   "equals",
			filter: `type = "filing.submitted"`,
			clause: "event_type = ?",
			params: []any{"filing.submitted"},
		},
		{
			name:   "and",
			filter: `entity_type = "filing" AND actor = "ST1AUDIT"`,
			clause: "(entity_type = ? AND actor = ?)",
			params: []any{"filing", "ST1AUDIT"},
		},
		{
			name:   "or",
			filter: `entity_id = "0" OR entity_id = "1"`,
			clause: "(entity_id = ? OR entity_id = ?)",
			params: []any{"0", "1"},
		},
		{
			name:   "height range",
			filter: `height >= 1000 AND height < 2000`,
			clause: "(height >= ? AND height < ?)",
			params: []any{int64(1000), int64(2000)},
		},
		{
			name:   "not equals",
			filter: `request_id != "req-1"`,
			clause: "request_id != ?",
			params: []any{"req-1"},
		},
		{
			name:   "timestamp",
			filter: `recorded_at > timestamp("2026-01-02T03:04:05Z")`,
			clause: "recorded_at > ?",
			params: []any{ts.UnixMilli()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := ParseEventFilter(tt.filter)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.filter, err)
			}
			if cond.Clause != tt.clause {
				t.Fatalf("clause = %q, want %q", cond.Clause, tt.clause)
			}
			if !reflect.DeepEqual(cond.Params, tt.params) {
				t.Fatalf("params = %#v, want %#v", cond.Params, tt.params)
			}
		})
	}
}

func TestParseEventFilterErrors(t *testing.T) {
	for _, filter := range []string{
		`unknown_field = "x"`,
		`type = `,
		`height = "not a number"`,
	} {
		if _, err := ParseEventFilter(filter); err == nil {
			t.Fatalf("ParseEventFilter(%q) expected error", filter)
		}
	}
}
