package process

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charleschow/soccer-props/internal/adapters/outbound/cloudbet_http"
	"github.com/charleschow/soccer-props/internal/adapters/outbound/discord"
	"github.com/charleschow/soccer-props/internal/adapters/outbound/oddsapi_http"
	"github.com/charleschow/soccer-props/internal/archive"
	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/display"
	"github.com/charleschow/soccer-props/internal/core/feed"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/merge"
	"github.com/charleschow/soccer-props/internal/core/players"
	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/fanout"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// Options are the command-line choices of one pricer run.
type Options struct {
	EventID     string
	List        bool
	Competition string
	Team        string

	PlayersPath string
	FromMarket  bool
	Side        string
	Estimate    bool
	MarginPct   float64 // negative means the configured margin

	Specials      bool
	ShotsOnTarget float64
	PenaltyOdd    float64
	RedCardOdd    float64

	Serve bool
}

// Run loads both feeds, prices the selected fixture and publishes the sheet
// to the display, the archive and (with Serve) fanout clients.
func Run(opts Options) error {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	pc, err := config.LoadPricing(cfg.PricingConfigPath)
	if err != nil {
		return err
	}
	margin := cfg.MarginPct
	if opts.MarginPct >= 0 {
		margin = opts.MarginPct
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := events.NewBus()

	// ── Feeds ──────────────────────────────────────────────────
	catalog := feed.NewCatalog(newLoader(cfg), cfg.CatalogTTL, bus)

	if opts.List {
		return list(ctx, catalog, opts)
	}

	ev, err := findEvent(ctx, catalog, opts.EventID)
	if err != nil {
		return err
	}

	// ── Consumers ──────────────────────────────────────────────
	display.NewObserver(os.Stderr).Subscribe(bus)

	store, err := archive.Open(cfg)
	if err != nil {
		telemetry.Warnf("Sheet archive disabled: %v", err)
	} else {
		defer store.Close()
		archive.Subscribe(bus, store)
	}
	discord.NewNotifier(cfg.DiscordWebhookURL).Subscribe(bus)

	var fanoutServer *fanout.Server
	if opts.Serve {
		fanoutServer = fanout.NewServer(bus)
	}

	// ── Subjects ───────────────────────────────────────────────
	req := Request{
		FromMarket: opts.FromMarket,
		Side:       sideFilter(opts.Side),
		Estimate:   opts.Estimate,
		Specials:   opts.Specials,
		SpecialsIn: pricing.SpecialsInput{
			ShotsOnTarget: opts.ShotsOnTarget,
			PenaltyOdd:    opts.PenaltyOdd,
			RedCardOdd:    opts.RedCardOdd,
		},
	}
	if opts.PlayersPath != "" {
		req.Subjects, err = players.LoadSubjects(opts.PlayersPath)
		if err != nil {
			return err
		}
	}
	stats, err := loadStats(cfg.PlayerStatsPath)
	if err != nil {
		telemetry.Warnf("Player stats disabled: %v", err)
	}

	// ── Price ──────────────────────────────────────────────────
	pricer := NewPricer(pc, margin, stats, bus)
	mc := pricer.Context(ev)
	display.PrintMatch(os.Stderr, mc)
	sheet := pricer.Price(ev, mc, req)

	if fanoutServer != nil {
		telemetry.Infof("Serving sheet %s on :%d until interrupted", sheet.ID, cfg.FanoutPort)
		if err := fanoutServer.ListenAndServe(ctx, cfg.FanoutPort); err != nil {
			return err
		}
	}

	telemetry.Infof("Pricer done  %s", telemetry.Summary())
	return nil
}

func newLoader(cfg *config.Config) *feed.Loader {
	var cb feed.CloudbetSource
	if cfg.CloudbetAPIKey != "" {
		lookahead := time.Duration(cfg.LookaheadHours) * time.Hour
		cb = cloudbet_http.NewClient(cfg.CloudbetBaseURL, cfg.CloudbetAPIKey, lookahead)
	} else {
		telemetry.Warnf("CLOUDBET_API_KEY not set, hierarchical feed disabled")
	}

	var oa feed.OddsAPISource
	if len(cfg.OddsAPIKeys) > 0 {
		oa = oddsapi_http.NewClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKeys)
	} else {
		telemetry.Warnf("THE_ODDS_API_KEYS not set, flat feed disabled")
	}

	policy := merge.Policy{Mode: merge.ModeFallback}
	if cfg.MergeStrict {
		policy.Mode = merge.ModeStrict
	}
	return feed.NewLoader(cb, oa, feed.LoaderOptions{
		Timeout: cfg.FetchTimeout,
		Primary: market.Source(cfg.MergePrimary),
		Policy:  policy,
	})
}

func list(ctx context.Context, cat *feed.Catalog, opts Options) error {
	switch {
	case opts.Competition != "":
		evs, err := cat.EventsIn(ctx, opts.Competition)
		if err != nil {
			return err
		}
		display.PrintEvents(os.Stdout, evs)
	case opts.Team != "":
		evs, err := cat.EventsForTeam(ctx, opts.Team)
		if err != nil {
			return err
		}
		display.PrintEvents(os.Stdout, evs)
	default:
		comps, err := cat.Competitions(ctx)
		if err != nil {
			return err
		}
		display.PrintCompetitions(os.Stdout, comps)
	}
	return nil
}

func sideFilter(s string) market.Side {
	if s == "" {
		return ""
	}
	side := market.ParseSide(s)
	if side == market.SideUnknown {
		telemetry.Warnf("unknown side %q, keeping all players", s)
	}
	return side
}
