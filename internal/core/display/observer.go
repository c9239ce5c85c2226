package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charleschow/soccer-props/internal/events"
)

// Observer prints every priced sheet published on the bus once. Sheets
// replayed after a fanout reconnect are skipped by id.
type Observer struct {
	w    io.Writer
	mu   sync.Mutex
	seen map[string]bool
}

func NewObserver(w io.Writer) *Observer {
	return &Observer{w: w, seen: make(map[string]bool)}
}

// Subscribe registers the observer on the bus.
func (o *Observer) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventSheetPriced, o.onSheet)
}

func (o *Observer) onSheet(e events.Event) error {
	sp, ok := e.Payload.(events.SheetPriced)
	if !ok {
		return fmt.Errorf("display: unexpected payload %T", e.Payload)
	}

	o.mu.Lock()
	if o.seen[sp.Sheet.ID] {
		o.mu.Unlock()
		return nil
	}
	o.seen[sp.Sheet.ID] = true
	o.mu.Unlock()

	PrintSheet(o.w, sp.Sheet)
	return nil
}
