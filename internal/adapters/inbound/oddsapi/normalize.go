package oddsapi

import (
	"sort"
	"strings"
	"time"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/teams"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// Sports is the set of sport keys fetched from the flat feed.
var Sports = []string{
	"soccer_epl",
	"soccer_france_ligue_one",
	"soccer_germany_bundesliga",
	"soccer_italy_serie_a",
	"soccer_spain_la_liga",
}

var sportNames = map[string]string{
	"soccer_epl":                "England - Premier League",
	"soccer_france_ligue_one":   "France - Ligue 1",
	"soccer_germany_bundesliga": "Germany - Bundesliga",
	"soccer_italy_serie_a":      "Italy - Serie A",
	"soccer_spain_la_liga":      "Spain - LaLiga",
}

// SportName returns the display name for a sport key, or the key itself.
func SportName(key string) string {
	if n, ok := sportNames[key]; ok {
		return n
	}
	return key
}

// Normalize maps the flat feed into canonical events. Only the first
// bookmaker is read. Sport keys are visited in sorted order.
func Normalize(p Payload) []*market.Event {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []*market.Event
	for _, sport := range keys {
		for _, raw := range p[sport] {
			if ev := normalizeEvent(sport, raw); ev != nil {
				out = append(out, ev)
			}
		}
	}
	telemetry.Metrics.EventsNormalized.Add(int64(len(out)))
	return out
}

func normalizeEvent(sport string, raw Event) *market.Event {
	id := eventID(raw.ID)
	if id == "" {
		return nil
	}
	ev := market.NewEvent(id, market.SourceOddsAPI)
	ev.Home = strings.TrimSpace(raw.HomeTeam)
	ev.Away = strings.TrimSpace(raw.AwayTeam)
	ev.Name = ev.Home + " vs " + ev.Away
	ev.CompetitionKey = sport
	ev.CompetitionName = SportName(sport)
	if t, err := time.Parse(time.RFC3339, raw.CommenceTime); err == nil {
		ev.Kickoff = t
	}

	if m := raw.market(MarketH2H); m != nil {
		for _, o := range m.Outcomes {
			if !o.Price.Usable() {
				continue
			}
			ev.Add(market.MatchResult, market.PeriodFullTime, market.Selection{
				Outcome: matchOutcome(o.Name, ev.Home, ev.Away),
				Price:   float64(o.Price),
				Enabled: true,
			})
		}
	}
	if m := raw.market(MarketAnytimeScorer); m != nil {
		for _, o := range m.Outcomes {
			name := strings.TrimSpace(o.Description)
			if name == "" || !o.Price.Usable() {
				continue
			}
			ev.Add(market.AnytimeGoalscorer, market.PeriodFullTime, market.Selection{
				Outcome: market.OutcomePlayer,
				Price:   float64(o.Price),
				Enabled: true,
				Player:  &market.PlayerRef{Name: name, Side: market.SideUnknown},
			})
		}
	}
	return ev
}

// matchOutcome tags an h2h outcome by team name; anything else is the draw.
func matchOutcome(name, home, away string) market.Outcome {
	switch {
	case teams.Same(name, home):
		return market.OutcomeHome
	case teams.Same(name, away):
		return market.OutcomeAway
	}
	return market.OutcomeDraw
}
