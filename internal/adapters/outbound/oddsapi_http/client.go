package oddsapi_http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/charleschow/soccer-props/internal/adapters/inbound/oddsapi"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4/sports"
	requestTimeout = 30 * time.Second
	markets        = oddsapi.MarketH2H + "," + oddsapi.MarketAnytimeScorer
)

var (
	ErrNoAPIKey      = errors.New("the odds api keys not configured")
	ErrKeysExhausted = errors.New("all odds api keys failed or were rate-limited")
)

// Client fetches the flat feed, rotating through API keys when one is
// rejected or rate-limited.
type Client struct {
	baseURL    string
	sports     []string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu     sync.Mutex
	keys   []string
	cursor int
}

func NewClient(baseURL string, keys []string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		sports:     oddsapi.Sports,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 5),
		keys:       keys,
	}
}

// WithSports overrides the sport list.
func (c *Client) WithSports(keys ...string) *Client {
	c.sports = keys
	return c
}

func (c *Client) Name() string { return "theoddsapi" }

// Fetch pulls every sport concurrently. A sport that fails is logged and
// left empty.
func (c *Client) Fetch(ctx context.Context) (oddsapi.Payload, error) {
	if len(c.keys) == 0 {
		return nil, ErrNoAPIKey
	}

	results := make([][]oddsapi.Event, len(c.sports))
	var g errgroup.Group
	for i, sport := range c.sports {
		g.Go(func() error {
			events, err := c.FetchSport(ctx, sport)
			if err != nil {
				telemetry.Warnf("theoddsapi: sport %s skipped: %v", sport, err)
				return nil
			}
			results[i] = events
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("theoddsapi fetch: %w", err)
	}

	p := make(oddsapi.Payload, len(c.sports))
	total := 0
	for i, sport := range c.sports {
		p[sport] = results[i]
		total += len(results[i])
	}
	telemetry.Infof("theoddsapi: fetched %d events across %d sports", total, len(c.sports))
	return p, nil
}

// FetchSport pulls one sport's odds, trying each key at most once.
func (c *Client) FetchSport(ctx context.Context, sport string) ([]oddsapi.Event, error) {
	q := url.Values{}
	q.Set("regions", "us")
	q.Set("markets", markets)
	q.Set("oddsFormat", "decimal")
	q.Set("dateFormat", "iso")
	base := fmt.Sprintf("%s/%s/odds", c.baseURL, url.PathEscape(sport))

	start := c.nextStart()
	for i := range c.keys {
		idx := (start + i) % len(c.keys)
		q.Set("apiKey", c.keys[idx])

		body, status, err := c.get(ctx, base+"?"+q.Encode())
		if err != nil {
			return nil, err
		}
		switch {
		case status == http.StatusOK:
			events, err := oddsapi.ParseSport(body)
			if err != nil {
				telemetry.Metrics.FeedErrors.Inc()
				return nil, fmt.Errorf("decode %s: %w", sport, err)
			}
			return events, nil
		case status == http.StatusUnauthorized || status == http.StatusTooManyRequests:
			telemetry.Warnf("theoddsapi: key #%d rejected with %d, rotating", idx, status)
			continue
		default:
			telemetry.Metrics.FeedErrors.Inc()
			return nil, fmt.Errorf("theoddsapi %s: status %d", sport, status)
		}
	}
	telemetry.Metrics.FeedErrors.Inc()
	return nil, ErrKeysExhausted
}

// nextStart returns the key index this request starts from and advances the
// shared cursor, so concurrent sports start on different keys while each
// still walks every key once.
func (c *Client) nextStart() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.cursor
	c.cursor = (c.cursor + 1) % len(c.keys)
	return idx
}

func (c *Client) get(ctx context.Context, u string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	telemetry.Metrics.FeedFetches.Inc()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.FeedErrors.Inc()
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redactKey(ue.URL)
		}
		return nil, 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	telemetry.Metrics.FeedLatency.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// redactKey hides the apiKey query parameter in logged URLs.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
