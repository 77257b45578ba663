// Package command carries the per-call metadata and the pure decision every
// registry decider returns.
package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
)

// Meta is the caller context an operation is evaluated against.
type Meta struct {
	Caller    string
	Height    uint64
	RequestID string
	// Now stamps RecordedAt on emitted events; nil means time.Now.
	Now func() time.Time
}

// NewEvent builds an event stamped with m.
func (m Meta) NewEvent(typ event.Type, entityType, entityID string, payload any) (event.Event, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	now := m.Now
	if now == nil {
		now = time.Now
	}
	return event.Event{
		Type:        typ,
		EntityType:  entityType,
		EntityID:    entityID,
		Height:      m.Height,
		Actor:       m.Caller,
		RequestID:   m.RequestID,
		PayloadJSON: payloadJSON,
		RecordedAt:  now().UTC(),
	}, nil
}

// Decision is the pure outcome of handling a command: events to append, or
// the error that rejected it.
type Decision struct {
	Events []event.Event
	Err    error
}

// Accept returns a decision that emits events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries err.
func Reject(err error) Decision {
	return Decision{Err: err}
}

// Emit builds a single event from m and accepts it.
func Emit(m Meta, typ event.Type, entityType, entityID string, payload any) Decision {
	evt, err := m.NewEvent(typ, entityType, entityID, payload)
	if err != nil {
		return Reject(err)
	}
	return Accept(evt)
}
