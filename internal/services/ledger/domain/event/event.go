// Package event defines the journal record every accepted ledger mutation
// produces.
package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Type identifies the kind of event, prefixed by its registry
// ("season.defined", "filing.submitted").
type Type string

// Registry returns the prefix before the first dot.
func (t Type) Registry() string {
	prefix, _, ok := strings.Cut(string(t), ".")
	if !ok {
		return ""
	}
	return prefix
}

// Entity types recorded on events.
const (
	EntitySeason   = "season"
	EntityFiling   = "filing"
	EntityRegistry = "registry"
)

// Event is one accepted mutation.
type Event struct {
	// Seq is the journal position, assigned by storage on append (starts at 1).
	Seq uint64 `json:"seq"`
	// Type identifies the mutation.
	Type Type `json:"type"`
	// EntityType and EntityID name the record the mutation touched.
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	// Height is the block height the mutation was evaluated at.
	Height uint64 `json:"height"`
	// Actor is the authenticated caller.
	Actor string `json:"actor"`
	// RequestID correlates the event with the transport request.
	RequestID string `json:"request_id,omitempty"`
	// PayloadJSON carries the type-specific fields.
	PayloadJSON json.RawMessage `json:"payload"`
	// RecordedAt is the wall-clock time the event was decided.
	RecordedAt time.Time `json:"recorded_at"`
}

// Decode unmarshals the payload into target.
func (e Event) Decode(target any) error {
	if len(e.PayloadJSON) == 0 {
		return fmt.Errorf("event %s has no payload", e.Type)
	}
	if err := json.Unmarshal(e.PayloadJSON, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Validate checks the fields storage relies on.
func (e Event) Validate() error {
	if e.Type.Registry() == "" {
		return fmt.Errorf("event type %q has no registry prefix", e.Type)
	}
	if strings.TrimSpace(e.EntityType) == "" {
		return fmt.Errorf("event %s: entity type is required", e.Type)
	}
	if strings.TrimSpace(e.Actor) == "" {
		return fmt.Errorf("event %s: actor is required", e.Type)
	}
	if len(e.PayloadJSON) == 0 {
		return fmt.Errorf("event %s: payload is required", e.Type)
	}
	return nil
}
