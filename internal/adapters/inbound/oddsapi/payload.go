package oddsapi

import (
	"encoding/json"
	"strings"

	"github.com/charleschow/soccer-props/internal/core/market"
)

// Payload is the per-sport odds responses keyed by sport key.
type Payload map[string][]Event

type Event struct {
	ID           json.RawMessage `json:"id"`
	SportKey     string          `json:"sport_key"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime string          `json:"commence_time"`
	Bookmakers   []Bookmaker     `json:"bookmakers"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

const (
	MarketH2H           = "h2h"
	MarketAnytimeScorer = "player_goal_scorer_anytime"
)

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// UnmarshalJSON decodes outcomes one at a time and drops the ones that do
// not decode, so one malformed outcome never rejects its sport.
func (m *Market) UnmarshalJSON(b []byte) error {
	var raw struct {
		Key      string            `json:"key"`
		Outcomes []json.RawMessage `json:"outcomes"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		*m = Market{}
		return nil
	}
	m.Key = raw.Key
	m.Outcomes = make([]Outcome, 0, len(raw.Outcomes))
	for _, r := range raw.Outcomes {
		var o Outcome
		if err := json.Unmarshal(r, &o); err != nil {
			continue
		}
		m.Outcomes = append(m.Outcomes, o)
	}
	return nil
}

type Outcome struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       market.Decimal `json:"price"`
	Point       *float64       `json:"point,omitempty"`
}

func (e Event) market(key string) *Market {
	if len(e.Bookmakers) == 0 {
		return nil
	}
	for i := range e.Bookmakers[0].Markets {
		if e.Bookmakers[0].Markets[i].Key == key {
			return &e.Bookmakers[0].Markets[i]
		}
	}
	return nil
}

func eventID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// ParseSport decodes one sport's odds response.
func ParseSport(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}
