package cloudbet_http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/charleschow/soccer-props/internal/adapters/inbound/cloudbet"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

const (
	DefaultBaseURL  = "https://sports-api.cloudbet.com/pub/v2/odds"
	requestTimeout  = 30 * time.Second
	eventsPerLeague = 100
	maxConcurrent   = 4
)

var ErrNoAPIKey = errors.New("cloudbet api key not configured")

// Leagues are the competitions fetched on every load.
var Leagues = []string{
	"soccer-england-premier-league",
	"soccer-france-ligue-1",
	"soccer-germany-bundesliga",
	"soccer-italy-serie-a",
	"soccer-spain-laliga",
	"soccer-international-clubs-uefa-champions-league",
	"soccer-international-clubs-uefa-europa-league",
	"soccer-international-clubs-t6eeb-uefa-europa-conference-league",
	"soccer-serbia-superliga",
	"soccer-international-wc-qualification-uefa",
	"soccer-international-wc-qualifying-conmebol",
}

type Client struct {
	baseURL    string
	apiKey     string
	lookahead  time.Duration
	leagues    []string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

func NewClient(baseURL, apiKey string, lookahead time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		lookahead:  lookahead,
		leagues:    Leagues,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		now:        time.Now,
	}
}

// WithLeagues overrides the league list.
func (c *Client) WithLeagues(keys ...string) *Client {
	c.leagues = keys
	return c
}

func (c *Client) Name() string { return "cloudbet" }

// Fetch pulls every league concurrently within the lookahead window. A
// failing league is logged and skipped; Fetch itself only fails when no
// API key is configured or ctx ends.
func (c *Client) Fetch(ctx context.Context) (*cloudbet.Payload, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	from := c.now()
	to := from.Add(c.lookahead)

	results := make([]*cloudbet.Competition, len(c.leagues))
	var g errgroup.Group
	g.SetLimit(maxConcurrent)
	for i, key := range c.leagues {
		g.Go(func() error {
			comp, err := c.FetchCompetition(ctx, key, from, to)
			if err != nil {
				telemetry.Warnf("cloudbet: league %s skipped: %v", key, err)
				return nil
			}
			results[i] = comp
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cloudbet fetch: %w", err)
	}

	p := &cloudbet.Payload{}
	for _, comp := range results {
		if comp != nil {
			p.Competitions = append(p.Competitions, *comp)
		}
	}
	p.Competitions = cloudbet.FilterOutrights(p.Competitions)
	telemetry.Infof("cloudbet: fetched %d competitions", len(p.Competitions))
	return p, nil
}

// FetchCompetition pulls one league's events with player data.
func (c *Client) FetchCompetition(ctx context.Context, key string, from, to time.Time) (*cloudbet.Competition, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	q.Set("players", "true")
	q.Set("limit", strconv.Itoa(eventsPerLeague))
	u := fmt.Sprintf("%s/competitions/%s?%s", c.baseURL, url.PathEscape(key), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	telemetry.Metrics.FeedFetches.Inc()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.FeedErrors.Inc()
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	telemetry.Metrics.FeedLatency.Since(start)

	if resp.StatusCode != http.StatusOK {
		telemetry.Metrics.FeedErrors.Inc()
		return nil, fmt.Errorf("cloudbet %s: status %d", key, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.Metrics.FeedErrors.Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	var comp cloudbet.Competition
	if err := json.Unmarshal(body, &comp); err != nil {
		telemetry.Metrics.FeedErrors.Inc()
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if comp.Key == "" {
		comp.Key = key
	}
	telemetry.Debugf("cloudbet: %s -> %d events (%s)", key, len(comp.Events), time.Since(start))
	return &comp, nil
}
