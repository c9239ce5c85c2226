package match

import (
	"math"
	"testing"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/lambda"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

func solver() *lambda.Solver { return lambda.New(odds.NewKernel()) }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func fullEvent() *market.Event {
	ev := market.NewEvent("24179", market.SourceCloudbet)
	ev.Home, ev.Away = "Arsenal", "Chelsea"
	line := func(t market.Type, p market.Period, o market.Outcome, param, price float64) {
		ev.Add(t, p, market.Selection{Outcome: o, Param: param, HasParam: true, Price: price, Enabled: true})
	}
	line(market.TotalGoals, market.PeriodFullTime, market.OutcomeOver, 2.5, 1.85)
	line(market.TotalGoals, market.PeriodFullTime, market.OutcomeUnder, 2.5, 1.95)
	line(market.TotalCorners, market.PeriodCorners, market.OutcomeOver, 9.5, 1.90)
	line(market.TotalCards, market.PeriodFullTime, market.OutcomeOver, 4.5, 2.00)
	line(market.CornerHandicap, market.PeriodCorners, market.OutcomeHome, -1.5, 1.90)
	line(market.CornerHandicap, market.PeriodCorners, market.OutcomeAway, -1.5, 1.90)
	for o, p := range map[market.Outcome]float64{market.OutcomeHome: 1.80, market.OutcomeDraw: 3.60, market.OutcomeAway: 4.50} {
		ev.Add(market.MatchResult, market.PeriodFullTime, market.Selection{Outcome: o, Price: p, Enabled: true})
	}
	ev.Add(market.BothTeamsToScore, market.PeriodFullTime, market.Selection{Outcome: market.OutcomeYes, Price: 1.70, Enabled: true})
	return ev
}

func TestBuildFromMarkets(t *testing.T) {
	c := Build(fullEvent(), solver(), config.DefaultPricing())

	for _, qty := range []string{QtyGoals, QtyCorners, QtyCards, QtyTeamGoals, QtyTeamCorners, QtyGG, QtyThreePlusGoals, QtyTenPlusCorners} {
		if !c.Fitted(qty) {
			t.Errorf("%s should be fitted, source %q", qty, c.Sources[qty])
		}
	}
	if !near(c.ThreePlusGoals, 1/1.85) || !near(c.TenPlusCorners, 1/1.90) || !near(c.GG, 1/1.70) {
		t.Errorf("line probabilities: 3+=%v 10+=%v gg=%v", c.ThreePlusGoals, c.TenPlusCorners, c.GG)
	}
	if math.Abs(c.HomeGoals+c.AwayGoals-c.Goals) > 1e-12 || c.HomeGoals <= c.AwayGoals {
		t.Errorf("team goals %v/%v of %v", c.HomeGoals, c.AwayGoals, c.Goals)
	}
	if !near(c.HomeCorners-c.AwayCorners, 1.5) {
		t.Errorf("corner split %v/%v should differ by the handicap", c.HomeCorners, c.AwayCorners)
	}
	if c.HomeWinOdd != 1.80 || c.AwayWinOdd != 4.50 {
		t.Errorf("win odds %v/%v", c.HomeWinOdd, c.AwayWinOdd)
	}
	if c.Event.LambdaHome == nil {
		t.Error("team rates should be cached on the event")
	}

	team, opp, ok := c.TeamGoals(market.SideAway)
	if !ok || team != c.AwayGoals || opp != c.HomeGoals {
		t.Errorf("TeamGoals(away) = %v, %v, %v", team, opp, ok)
	}
	if _, _, ok := c.TeamGoals(market.SideUnknown); ok {
		t.Error("unknown side has no team rate")
	}
}

func TestBuildDefaults(t *testing.T) {
	p := config.DefaultPricing()
	k := odds.NewKernel()
	c := Build(market.NewEvent("1", market.SourceOddsAPI), solver(), p)

	if c.Goals != 2.5 || c.Corners != 10.5 || c.Cards != 4.5 {
		t.Errorf("defaults goals=%v corners=%v cards=%v", c.Goals, c.Corners, c.Cards)
	}
	if c.HomeGoals != 1.25 || c.AwayGoals != 1.25 || c.Sources[QtyTeamGoals] != SourceEvenSplit {
		t.Errorf("team goals %v/%v via %q", c.HomeGoals, c.AwayGoals, c.Sources[QtyTeamGoals])
	}
	if !near(c.HomeCorners, 10.5*0.55) || !near(c.AwayCorners, 10.5*0.45) {
		t.Errorf("corner share %v/%v", c.HomeCorners, c.AwayCorners)
	}
	if c.GG != 0.55 || c.Sources[QtyGG] != SourceConfigured {
		t.Errorf("gg %v via %q", c.GG, c.Sources[QtyGG])
	}
	if !near(c.ThreePlusGoals, k.ProbOver(2.5, 2)) || !near(c.TenPlusCorners, k.ProbOver(10.5, 9)) {
		t.Errorf("poisson tails 3+=%v 10+=%v", c.ThreePlusGoals, c.TenPlusCorners)
	}
	if _, _, ok := c.TeamGoals(market.SideHome); ok {
		t.Error("even split must not count as decomposed rates")
	}
	if c.Fitted(QtyGoals) {
		t.Error("default goals reported as fitted")
	}
}

func TestBuildGGFromGoalRate(t *testing.T) {
	p := config.DefaultPricing()
	p.Defaults.GG = 0
	c := Build(market.NewEvent("1", market.SourceOddsAPI), solver(), p)
	if want := 1 - math.Exp(-2.5*0.35); !near(c.GG, want) || c.Sources[QtyGG] != SourceGoalRate {
		t.Errorf("gg %v via %q, want %v", c.GG, c.Sources[QtyGG], want)
	}
}

func TestEvaluateOrder(t *testing.T) {
	calls := 0
	v, name := evaluate([]rule{
		{"first", func() bool { calls++; return false }, func() float64 { return 1 }},
		{"second", func() bool { calls++; return true }, func() float64 { return 2 }},
		{"third", func() bool { calls++; return true }, func() float64 { return 3 }},
	})
	if v != 2 || name != "second" || calls != 2 {
		t.Errorf("got %v/%q after %d predicates", v, name, calls)
	}
}

func TestAvailablePlayers(t *testing.T) {
	ev := market.NewEvent("1", market.SourceCloudbet)
	add := func(name string, side market.Side, price float64, enabled bool) {
		ev.Add(market.AnytimeGoalscorer, market.PeriodFullTime, market.Selection{
			Outcome: market.OutcomePlayer, Price: price, Enabled: enabled,
			Player: &market.PlayerRef{Name: name, Side: side},
		})
	}
	add("Saka", market.SideHome, 2.9, true)
	add("Palmer", market.SideAway, 3.2, true)
	add("Havertz", market.SideUnknown, 3.5, true)
	add("Odegaard", market.SideHome, 4.0, false)
	add("Saka", market.SideHome, 3.1, true)

	tests := []struct {
		filter market.Side
		want   []string
	}{
		{"", []string{"Havertz", "Palmer", "Saka"}},
		{market.SideHome, []string{"Havertz", "Saka"}},
		{market.SideAway, []string{"Havertz", "Palmer"}},
	}
	for _, tt := range tests {
		got := AvailablePlayers(ev, tt.filter)
		if len(got) != len(tt.want) {
			t.Errorf("filter %q: got %+v", tt.filter, got)
			continue
		}
		for i, name := range tt.want {
			if got[i].Name != name {
				t.Errorf("filter %q: position %d = %s, want %s", tt.filter, i, got[i].Name, name)
			}
		}
	}
	if got := AvailablePlayers(ev, "")[2]; got.GoalOdd != 2.9 {
		t.Errorf("first quote should win, got %v", got.GoalOdd)
	}
}
