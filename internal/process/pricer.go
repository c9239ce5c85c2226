package process

import (
	"context"
	"errors"
	"os"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/lambda"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/match"
	"github.com/charleschow/soccer-props/internal/core/odds"
	"github.com/charleschow/soccer-props/internal/core/players"
	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// Request describes one pricing run for a fixture.
type Request struct {
	Subjects   []pricing.PlayerSubject // from a subjects file, may be empty
	FromMarket bool                    // add every quoted anytime goalscorer
	Side       market.Side             // restricts market players; SideUnknown keeps all
	Estimate   bool                    // fill missing base prices from stats
	Specials   bool
	SpecialsIn pricing.SpecialsInput
}

// Pricer turns a fixture and a request into a published sheet.
type Pricer struct {
	solver *lambda.Solver
	gen    *pricing.Generator
	cfg    config.Pricing
	stats  *players.DB
	bus    *events.Bus
}

// NewPricer builds a pricer. stats and bus may be nil.
func NewPricer(cfg config.Pricing, marginPct float64, stats *players.DB, bus *events.Bus) *Pricer {
	k := odds.NewKernel()
	return &Pricer{
		solver: lambda.New(k),
		gen:    pricing.NewGenerator(k, cfg, marginPct),
		cfg:    cfg,
		stats:  stats,
		bus:    bus,
	}
}

// Context fits the fixture's rates.
func (p *Pricer) Context(ev *market.Event) *match.Context {
	return match.Build(ev, p.solver, p.cfg)
}

// Subjects merges file subjects with market players and fills stats and
// estimated base prices as requested. File subjects win on name clashes.
func (p *Pricer) Subjects(ev *market.Event, req Request) []pricing.PlayerSubject {
	subjects := append([]pricing.PlayerSubject(nil), req.Subjects...)
	if req.FromMarket {
		have := make(map[string]bool, len(subjects))
		for _, s := range subjects {
			have[players.Normalize(s.Name)] = true
		}
		for _, mp := range match.AvailablePlayers(ev, req.Side) {
			if have[players.Normalize(mp.Name)] {
				continue
			}
			subjects = append(subjects, pricing.SubjectFromMarket(mp))
		}
	}

	if p.stats != nil {
		if n := players.FillStats(p.stats, subjects); n > 0 {
			telemetry.Debugf("pricer: filled stats for %d/%d subjects", n, len(subjects))
		}
	}
	if req.Estimate {
		for i := range subjects {
			p.gen.EstimateBase(&subjects[i])
		}
	}
	return subjects
}

// Price generates the sheet for ev and publishes it on the bus.
func (p *Pricer) Price(ev *market.Event, mc *match.Context, req Request) pricing.Sheet {
	var bets []pricing.BetRecord
	for _, s := range p.Subjects(ev, req) {
		bets = append(bets, p.gen.Player(s, mc)...)
	}
	if req.Specials {
		bets = append(bets, p.gen.Specials(mc, req.SpecialsIn)...)
	}

	sheet := pricing.NewSheet(ev, p.gen.MarginPct(), bets)
	telemetry.Metrics.SheetsPriced.Inc()
	telemetry.Infof("pricer: %s priced  bets=%d  sheet=%s", ev.Name, len(bets), sheet.ID)

	if p.bus != nil {
		p.bus.Publish(events.Event{
			ID:        sheet.ID,
			Type:      events.EventSheetPriced,
			EventID:   ev.ID,
			Timestamp: sheet.PricedAt,
			Payload:   events.SheetPriced{Sheet: sheet},
		})
	}
	return sheet
}

// loadStats opens the player stats file. A missing file is not an error.
func loadStats(path string) (*players.DB, error) {
	if path == "" {
		return nil, nil
	}
	db, err := players.LoadDB(path)
	if errors.Is(err, os.ErrNotExist) {
		telemetry.Warnf("pricer: no player stats at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	telemetry.Infof("pricer: loaded %d player stat records", db.Len())
	return db, nil
}

var errNoEvent = errors.New("no event selected (use -list to browse)")

func findEvent(ctx context.Context, cat eventFinder, id string) (*market.Event, error) {
	if id == "" {
		return nil, errNoEvent
	}
	return cat.Find(ctx, id)
}

type eventFinder interface {
	Find(ctx context.Context, id string) (*market.Event, error)
}
