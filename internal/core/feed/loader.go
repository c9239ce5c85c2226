package feed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/charleschow/soccer-props/internal/adapters/inbound/cloudbet"
	"github.com/charleschow/soccer-props/internal/adapters/inbound/oddsapi"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/merge"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// CloudbetSource fetches the hierarchical feed.
// Satisfied by *cloudbet_http.Client.
type CloudbetSource interface {
	Name() string
	Fetch(ctx context.Context) (*cloudbet.Payload, error)
}

// OddsAPISource fetches the flat feed.
// Satisfied by *oddsapi_http.Client.
type OddsAPISource interface {
	Name() string
	Fetch(ctx context.Context) (oddsapi.Payload, error)
}

type LoaderOptions struct {
	Timeout time.Duration // per source, 0 means no extra deadline
	Primary market.Source
	Policy  merge.Policy
}

// Loader fetches both feeds concurrently, normalizes them and merges the
// result. Either source may be nil.
type Loader struct {
	cloudbet CloudbetSource
	oddsapi  OddsAPISource
	opts     LoaderOptions
}

func NewLoader(cb CloudbetSource, oa OddsAPISource, opts LoaderOptions) *Loader {
	if !opts.Primary.Valid() {
		opts.Primary = market.SourceCloudbet
	}
	return &Loader{cloudbet: cb, oddsapi: oa, opts: opts}
}

// Result is one merged load.
type Result struct {
	Events   []*market.Event
	BySource map[string]int
	Failed   []string
}

// Load never fails because of a feed: a source that errors or times out
// contributes no events. Only a canceled ctx is returned as an error.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	var cbEvents, oaEvents []*market.Event
	var cbErr, oaErr error

	var g errgroup.Group
	if l.cloudbet != nil {
		g.Go(func() error {
			sctx, cancel := l.sourceContext(ctx)
			defer cancel()
			p, err := l.cloudbet.Fetch(sctx)
			if err != nil {
				cbErr = err
				return nil
			}
			cbEvents = cloudbet.Normalize(p)
			return nil
		})
	}
	if l.oddsapi != nil {
		g.Go(func() error {
			sctx, cancel := l.sourceContext(ctx)
			defer cancel()
			p, err := l.oddsapi.Fetch(sctx)
			if err != nil {
				oaErr = err
				return nil
			}
			oaEvents = oddsapi.Normalize(p)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}

	res := &Result{BySource: map[string]int{
		string(market.SourceCloudbet): len(cbEvents),
		string(market.SourceOddsAPI):  len(oaEvents),
	}}
	if cbErr != nil {
		telemetry.Warnf("feed: %s unavailable: %v", l.cloudbet.Name(), cbErr)
		res.Failed = append(res.Failed, string(market.SourceCloudbet))
	}
	if oaErr != nil {
		telemetry.Warnf("feed: %s unavailable: %v", l.oddsapi.Name(), oaErr)
		res.Failed = append(res.Failed, string(market.SourceOddsAPI))
	}

	primary, fallback := cbEvents, oaEvents
	if l.opts.Primary == market.SourceOddsAPI {
		primary, fallback = oaEvents, cbEvents
	}
	res.Events = merge.Merge(primary, fallback, l.opts.Policy)

	telemetry.Infof("feed: loaded %d events (cloudbet=%d theoddsapi=%d primary=%s mode=%s)",
		len(res.Events), len(cbEvents), len(oaEvents), l.opts.Primary, l.opts.Policy.Mode)
	return res, nil
}

func (l *Loader) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.opts.Timeout)
}
