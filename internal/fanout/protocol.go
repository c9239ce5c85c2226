package fanout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charleschow/soccer-props/internal/events"
)

// Envelope is the wire format for events sent over the fanout WebSocket.
type Envelope struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	EventID   string          `json:"event_id,omitempty"`
	Timestamp time.Time       `json:"ts"`
	Payload   json.RawMessage `json:"payload"`
}

// MarshalEvent serializes an Event into a JSON-encoded Envelope.
func MarshalEvent(evt events.Event) ([]byte, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	env := Envelope{
		Type:      string(evt.Type),
		ID:        evt.ID,
		EventID:   evt.EventID,
		Timestamp: evt.Timestamp,
		Payload:   payload,
	}
	return json.Marshal(env)
}

// UnmarshalEvent deserializes a JSON Envelope back into a typed Event.
func UnmarshalEvent(data []byte) (events.Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return events.Event{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	evt := events.Event{
		ID:        env.ID,
		Type:      events.EventType(env.Type),
		EventID:   env.EventID,
		Timestamp: env.Timestamp,
	}

	switch evt.Type {
	case events.EventSheetPriced:
		var sp events.SheetPriced
		if err := json.Unmarshal(env.Payload, &sp); err != nil {
			return evt, fmt.Errorf("unmarshal sheet_priced: %w", err)
		}
		evt.Payload = sp
	case events.EventCatalogRefreshed:
		var cr events.CatalogRefreshed
		if err := json.Unmarshal(env.Payload, &cr); err != nil {
			return evt, fmt.Errorf("unmarshal catalog_refreshed: %w", err)
		}
		evt.Payload = cr
	default:
		return evt, fmt.Errorf("unknown event type: %s", env.Type)
	}

	return evt, nil
}
