package events

import "time"

// Event is the envelope that flows through the event bus.
type Event struct {
	ID        string
	Type      EventType
	EventID   string // fixture id, empty for catalog-wide events
	Timestamp time.Time
	Payload   any
}

type EventType string

const (
	EventCatalogRefreshed EventType = "catalog_refreshed"
	EventSheetPriced      EventType = "sheet_priced"
)
