package cloudbet

import (
	"testing"
	"time"

	"github.com/charleschow/soccer-props/internal/core/market"
)

const samplePayload = `{
  "competitions": [
    {
      "name": "England - Premier League",
      "key": "soccer-england-premier-league",
      "events": [
        {
          "id": 24179,
          "name": "Arsenal vs Chelsea",
          "type": "EVENT_TYPE_EVENT",
          "cutoffTime": "2026-10-20T19:00:00Z",
          "home": {"name": "Arsenal", "key": "arsenal"},
          "away": {"name": "Chelsea", "key": "chelsea"},
          "players": {
            "p1": {"name": "Bukayo Saka", "team": "HOME"},
            "p2": {"name": "Cole Palmer", "team": "AWAY"}
          },
          "markets": {
            "soccer.match_odds": {"submarkets": {"period=ft": {"selections": [
              {"outcome": "home", "params": "", "price": 1.8, "status": "SELECTION_ENABLED"},
              {"outcome": "draw", "params": "", "price": 3.6, "status": "SELECTION_ENABLED"},
              {"outcome": "away", "params": "", "price": 4.5, "status": "SELECTION_ENABLED"}
            ]}}},
            "soccer.total_goals": {"submarkets": {"period=ft": {"selections": [
              {"outcome": "over", "params": "total=2.5", "price": 1.85, "probability": 0.52, "status": "SELECTION_ENABLED"},
              {"outcome": "under", "params": "total=2.5", "price": 1.95, "probability": 0.48, "status": "SELECTION_ENABLED"},
              {"outcome": "over", "params": "total=abc", "price": 3.1, "status": "SELECTION_ENABLED"}
            ]}}},
            "soccer.anytime_goalscorer": {"submarkets": {"period=ft": {"selections": [
              {"outcome": "player=101-bukayo-saka", "price": 2.9, "status": "SELECTION_ENABLED"},
              {"outcome": "player=102-cole-palmer", "price": 3.2, "status": "SELECTION_SUSPENDED"},
              {"outcome": "player=103-mystery", "price": 8.0, "status": "SELECTION_ENABLED"}
            ]}}},
            "soccer.exotic_market": {"submarkets": {"period=ft": {"selections": [
              {"outcome": "yes", "price": 2.0}
            ]}}}
          }
        },
        {
          "id": "outright-1",
          "name": "Premier League Winner",
          "type": "EVENT_TYPE_OUTRIGHT"
        },
        {
          "name": "no id"
        }
      ]
    },
    {
      "name": "Futures",
      "key": "soccer-futures",
      "events": [{"id": "o2", "type": "EVENT_TYPE_OUTRIGHT"}]
    }
  ]
}`

func TestParseFiltersOutrights(t *testing.T) {
	p, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Competitions) != 1 {
		t.Fatalf("got %d competitions, want 1", len(p.Competitions))
	}
	if n := len(p.Competitions[0].Events); n != 2 {
		t.Fatalf("got %d events, want 2", n)
	}
}

func TestNormalize(t *testing.T) {
	p, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	events := Normalize(p)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]

	if ev.ID != "24179" || ev.Source != market.SourceCloudbet {
		t.Errorf("id/source = %q/%q", ev.ID, ev.Source)
	}
	if ev.Home != "Arsenal" || ev.Away != "Chelsea" || ev.CompetitionKey != "soccer-england-premier-league" {
		t.Errorf("unexpected header %+v", ev)
	}
	if want := time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC); !ev.Kickoff.Equal(want) {
		t.Errorf("kickoff = %v", ev.Kickoff)
	}

	if got := ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeDraw); got != 3.6 {
		t.Errorf("draw price = %v", got)
	}
	if got := ev.LinePrice(market.TotalGoals, market.PeriodFullTime, market.OutcomeOver, 2.5); got != 1.85 {
		t.Errorf("over 2.5 = %v", got)
	}

	goals := ev.Selections(market.TotalGoals, market.PeriodFullTime)
	if goals[2].HasParam {
		t.Error("unparsable params should leave HasParam false")
	}
	if goals[0].Probability != 0.52 {
		t.Errorf("probability = %v", goals[0].Probability)
	}

	if ev.Selections(market.Type("soccer.exotic_market"), market.PeriodFullTime) == nil {
		t.Error("unknown market keys should be kept verbatim")
	}

	scorers := ev.Selections(market.AnytimeGoalscorer, market.PeriodFullTime)
	if len(scorers) != 3 {
		t.Fatalf("got %d scorer selections", len(scorers))
	}
	wantPlayers := []struct {
		name    string
		side    market.Side
		enabled bool
	}{
		{"Bukayo Saka", market.SideHome, true},
		{"Cole Palmer", market.SideAway, false},
		{"Mystery", market.SideUnknown, true},
	}
	for i, w := range wantPlayers {
		s := scorers[i]
		if s.Outcome != market.OutcomePlayer || s.Player == nil {
			t.Fatalf("selection %d is not a player outcome", i)
		}
		if s.Player.Name != w.name || s.Player.Side != w.side || s.Enabled != w.enabled {
			t.Errorf("selection %d = %+v (enabled %v), want %+v", i, *s.Player, s.Enabled, w)
		}
	}
}

func TestNormalizeNil(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("got %v", got)
	}
}

func TestPlayerNameFromOutcome(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"player=123-bukayo-saka", "Bukayo Saka"},
		{"player=9-kylian-mbappé-lottin", "Kylian Mbappé Lottin"},
		{"player=123", "Unknown Player"},
		{"home", "Unknown Player"},
		{"", "Unknown Player"},
	}
	for _, tt := range tests {
		if got := PlayerNameFromOutcome(tt.in); got != tt.want {
			t.Errorf("PlayerNameFromOutcome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const badSelectionPayload = `{"competitions": [{"name": "Premier League", "key": "soccer-england-premier-league", "events": [
  {"id": 501, "type": "EVENT_TYPE_EVENT", "home": {"name": "Arsenal"}, "away": {"name": "Chelsea"},
   "markets": {
     "soccer.match_odds": {"submarkets": {"period=ft": {"selections": [
       {"outcome": "home", "price": 1.8},
       {"outcome": "draw", "price": "3.6"},
       {"outcome": "away", "price": 4.5}
     ]}}},
     "soccer.total_corners": {"submarkets": {"period=ft_corners": {"selections": [
       {"outcome": "over", "params": "total=9.5", "price": "n/a"},
       {"outcome": "under", "params": "total=9.5", "price": 1.9, "probability": {"bad": true}},
       {"outcome": 7, "price": 2.0}
     ]}}},
     "soccer.total_goals": {"submarkets": {"period=ft": {"selections": "oops"}}}
   }}
]}]}`

func TestParseToleratesMalformedSelections(t *testing.T) {
	p, err := Parse([]byte(badSelectionPayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	events := Normalize(p)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]

	if got := ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeDraw); got != 3.6 {
		t.Errorf("string-encoded draw price = %v, want 3.6", got)
	}
	corners := ev.Selections(market.TotalCorners, market.PeriodCorners)
	if len(corners) != 1 || corners[0].Outcome != market.OutcomeUnder || corners[0].Probability != 0 {
		t.Errorf("corners = %+v, want only the under selection", corners)
	}
	if got := ev.Selections(market.TotalGoals, market.PeriodFullTime); len(got) != 0 {
		t.Errorf("goals selections = %+v, want none", got)
	}
}
