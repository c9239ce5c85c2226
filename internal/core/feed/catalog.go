package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/teams"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

var ErrEventNotFound = errors.New("event not found")

// EventLoader produces a merged event set. Satisfied by *Loader.
type EventLoader interface {
	Load(ctx context.Context) (*Result, error)
}

// Catalog caches the merged event set for a TTL. Concurrent refreshes
// collapse into one load.
type Catalog struct {
	loader EventLoader
	ttl    time.Duration
	bus    *events.Bus
	now    func() time.Time

	mu       sync.RWMutex
	events   []*market.Event
	byID     map[string]*market.Event
	loadedAt time.Time

	sf singleflight.Group
}

// NewCatalog builds a catalog. bus may be nil.
func NewCatalog(loader EventLoader, ttl time.Duration, bus *events.Bus) *Catalog {
	return &Catalog{
		loader: loader,
		ttl:    ttl,
		bus:    bus,
		now:    time.Now,
		byID:   make(map[string]*market.Event),
	}
}

// Refresh reloads both feeds regardless of the TTL.
func (c *Catalog) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		return nil, c.reload(ctx)
	})
	return err
}

func (c *Catalog) reload(ctx context.Context) error {
	res, err := c.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	byID := make(map[string]*market.Event, len(res.Events))
	for _, ev := range res.Events {
		if _, dup := byID[ev.ID]; !dup {
			byID[ev.ID] = ev
		}
	}
	now := c.now()

	c.mu.Lock()
	c.events = res.Events
	c.byID = byID
	c.loadedAt = now
	c.mu.Unlock()

	comps := len(market.Competitions(res.Events))
	telemetry.Infof("catalog: %d events in %d competitions", len(res.Events), comps)
	if c.bus != nil {
		c.bus.Publish(events.Event{
			Type:      events.EventCatalogRefreshed,
			Timestamp: now,
			Payload: events.CatalogRefreshed{
				Events:       len(res.Events),
				Competitions: comps,
				BySource:     res.BySource,
			},
		})
	}
	return nil
}

func (c *Catalog) ensureFresh(ctx context.Context) error {
	c.mu.RLock()
	last := c.loadedAt
	c.mu.RUnlock()

	if last.IsZero() || c.now().Sub(last) > c.ttl {
		return c.Refresh(ctx)
	}
	return nil
}

// Events returns every merged event, primary feed first.
func (c *Catalog) Events(ctx context.Context) ([]*market.Event, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*market.Event(nil), c.events...), nil
}

// Competitions lists the distinct competitions, sorted by name.
func (c *Catalog) Competitions(ctx context.Context) ([]market.Competition, error) {
	evs, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}
	return market.Competitions(evs), nil
}

// EventsIn returns the events of one competition that have both team names,
// by kickoff.
func (c *Catalog) EventsIn(ctx context.Context, competitionKey string) ([]*market.Event, error) {
	return c.filter(ctx, func(ev *market.Event) bool {
		return ev.CompetitionKey == competitionKey
	})
}

// EventsForTeam returns the events in which either side matches the query.
func (c *Catalog) EventsForTeam(ctx context.Context, query string) ([]*market.Event, error) {
	return c.filter(ctx, func(ev *market.Event) bool {
		return teams.Matches(ev.Home, query) || teams.Matches(ev.Away, query)
	})
}

func (c *Catalog) filter(ctx context.Context, keep func(*market.Event) bool) ([]*market.Event, error) {
	evs, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}
	var out []*market.Event
	for _, ev := range evs {
		if ev.HasTeams() && keep(ev) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kickoff.Before(out[j].Kickoff) })
	return out, nil
}

// Find looks an event up by id.
func (c *Catalog) Find(ctx context.Context, id string) (*market.Event, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	ev, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return ev, nil
}
