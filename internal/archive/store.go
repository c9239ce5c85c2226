// Package archive persists priced sheets so they can be inspected after the
// process exits.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

var ErrSheetNotFound = errors.New("sheet not found")

const saveTimeout = 5 * time.Second

// Summary is one archived sheet without its bets.
type Summary struct {
	ID          string
	EventID     string
	EventName   string
	Competition string
	MarginPct   float64
	PricedAt    time.Time
	Bets        int
}

// Store is a sheet archive. Satisfied by *SQLiteStore and *PostgresStore.
type Store interface {
	Save(ctx context.Context, s pricing.Sheet) error
	Recent(ctx context.Context, n int) ([]Summary, error)
	Sheet(ctx context.Context, id string) (pricing.Sheet, error)
	Close() error
}

// Open returns the postgres archive when a DSN is configured, otherwise the
// sqlite file archive.
func Open(cfg *config.Config) (Store, error) {
	if cfg.ArchiveDSN != "" {
		return OpenPostgres(cfg.ArchiveDSN)
	}
	return OpenSQLite(cfg.ArchiveDBPath, cfg.ArchiveMaxSheets)
}

// Subscribe archives every priced sheet published on the bus.
func Subscribe(bus *events.Bus, st Store) {
	bus.Subscribe(events.EventSheetPriced, func(e events.Event) error {
		sp, ok := e.Payload.(events.SheetPriced)
		if !ok {
			return fmt.Errorf("archive: unexpected payload %T", e.Payload)
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := st.Save(ctx, sp.Sheet); err != nil {
			telemetry.Metrics.ArchiveErrors.Inc()
			return err
		}
		telemetry.Metrics.ArchiveWrites.Inc()
		return nil
	})
}
