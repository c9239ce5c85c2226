package oddsapi_http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const oneEvent = `[{"id": "abc", "home_team": "Arsenal", "away_team": "Chelsea", "commence_time": "2026-10-20T19:00:00Z", "bookmakers": []}]`

func keyServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if q.Get("markets") != "h2h,player_goal_scorer_anytime" || q.Get("oddsFormat") != "decimal" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if !strings.HasSuffix(r.URL.Path, "/odds") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch q.Get("apiKey") {
		case "bad":
			w.WriteHeader(http.StatusUnauthorized)
		case "limited":
			w.WriteHeader(http.StatusTooManyRequests)
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "good":
			w.Write([]byte(oneEvent))
		}
	}))
}

func TestFetchSportRotatesKeys(t *testing.T) {
	var hits atomic.Int32
	srv := keyServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, []string{"bad", "limited", "good"})
	events, err := c.FetchSport(context.Background(), "soccer_epl")
	if err != nil {
		t.Fatalf("FetchSport: %v", err)
	}
	if len(events) != 1 || hits.Load() != 3 {
		t.Errorf("events=%d hits=%d", len(events), hits.Load())
	}

	// starts from "limited" and still reaches "good"
	if _, err := c.FetchSport(context.Background(), "soccer_epl"); err != nil {
		t.Fatalf("second FetchSport: %v", err)
	}
}

func TestFetchSportKeysExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := keyServer(t, &hits)
	defer srv.Close()

	_, err := NewClient(srv.URL, []string{"bad", "limited"}).FetchSport(context.Background(), "soccer_epl")
	if !errors.Is(err, ErrKeysExhausted) {
		t.Errorf("err = %v, want ErrKeysExhausted", err)
	}
	if hits.Load() != 2 {
		t.Errorf("each key should be tried once, got %d requests", hits.Load())
	}
}

func TestFetchSportOtherStatusStops(t *testing.T) {
	var hits atomic.Int32
	srv := keyServer(t, &hits)
	defer srv.Close()

	_, err := NewClient(srv.URL, []string{"broken", "good"}).FetchSport(context.Background(), "soccer_epl")
	if err == nil || errors.Is(err, ErrKeysExhausted) {
		t.Errorf("err = %v, want a status error", err)
	}
	if hits.Load() != 1 {
		t.Errorf("non-key errors must not rotate, got %d requests", hits.Load())
	}
}

func TestFetchDegradesPerSport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "soccer_epl") {
			w.Write([]byte(oneEvent))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, []string{"good"}).WithSports("soccer_epl", "soccer_italy_serie_a").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(p["soccer_epl"]) != 1 {
		t.Errorf("epl events = %d", len(p["soccer_epl"]))
	}
	if evs, ok := p["soccer_italy_serie_a"]; !ok || len(evs) != 0 {
		t.Errorf("failed sport should be present and empty, got %v", evs)
	}
}

func TestFetchWithoutKeys(t *testing.T) {
	if _, err := NewClient("", nil).Fetch(context.Background()); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestRedactKey(t *testing.T) {
	got := redactKey("https://api.example.com/v4/sports/soccer_epl/odds?apiKey=secret&regions=us")
	if strings.Contains(got, "secret") {
		t.Errorf("key leaked: %s", got)
	}
}

func TestFetchConcurrentSportsReachWorkingKey(t *testing.T) {
	var mu sync.Mutex
	perSport := map[string]map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("apiKey")
		sport := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/odds")
		mu.Lock()
		if perSport[sport] == nil {
			perSport[sport] = map[string]int{}
		}
		perSport[sport][key]++
		mu.Unlock()

		if key == "limited" {
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(oneEvent))
	}))
	defer srv.Close()

	sports := []string{"soccer_epl", "soccer_spain_la_liga", "soccer_germany_bundesliga", "soccer_italy_serie_a", "soccer_france_ligue_one"}
	p, err := NewClient(srv.URL, []string{"limited", "good"}).WithSports(sports...).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for _, sport := range sports {
		if len(p[sport]) != 1 {
			t.Errorf("%s: got %d events, want 1", sport, len(p[sport]))
		}
		for key, n := range perSport[sport] {
			if n > 1 {
				t.Errorf("%s: key %s tried %d times", sport, key, n)
			}
		}
	}
}
