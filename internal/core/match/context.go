package match

import (
	"math"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/lambda"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

// Rule names recorded in Context.Sources.
const (
	SourceMarket     = "market"
	SourceDefault    = "default"
	SourceDecomposed = "1x2"
	SourceEvenSplit  = "even split"
	SourceHandicap   = "handicap"
	SourceShare      = "fixed share"
	SourceBTTS       = "btts"
	SourceConfigured = "configured"
	SourceGoalRate   = "goal rate"
	SourceLine       = "quoted line"
	SourcePoisson    = "poisson"
)

// Quantities tracked in Context.Sources.
const (
	QtyGoals          = "goals"
	QtyCorners        = "corners"
	QtyCards          = "cards"
	QtyTeamGoals      = "team goals"
	QtyTeamCorners    = "team corners"
	QtyGG             = "gg"
	QtyThreePlusGoals = "3+ goals"
	QtyTenPlusCorners = "10+ corners"
)

// Context is everything pricing needs to know about one fixture.
type Context struct {
	Event *market.Event

	Goals   float64
	Corners float64
	Cards   float64

	HomeGoals, AwayGoals     float64
	HomeCorners, AwayCorners float64

	GG             float64
	ThreePlusGoals float64
	TenPlusCorners float64

	HomeWinOdd float64
	AwayWinOdd float64

	// Sources maps each quantity to the rule that produced it.
	Sources map[string]string
}

// Fitted reports whether a quantity came from a quoted market rather than
// a configured default.
func (c *Context) Fitted(qty string) bool {
	switch c.Sources[qty] {
	case "", SourceDefault, SourceEvenSplit, SourceShare, SourceConfigured, SourceGoalRate, SourcePoisson:
		return false
	}
	return true
}

// TeamGoals returns the side's goal rate and its opponent's. ok is false
// when the rates were not decomposed from the 1X2 market.
func (c *Context) TeamGoals(side market.Side) (team, opp float64, ok bool) {
	if !c.Fitted(QtyTeamGoals) {
		return 0, 0, false
	}
	switch side {
	case market.SideHome:
		return c.HomeGoals, c.AwayGoals, true
	case market.SideAway:
		return c.AwayGoals, c.HomeGoals, true
	}
	return 0, 0, false
}

// WinOdd returns the side's 1X2 win price, 0 when unknown.
func (c *Context) WinOdd(side market.Side) float64 {
	switch side {
	case market.SideHome:
		return c.HomeWinOdd
	case market.SideAway:
		return c.AwayWinOdd
	}
	return 0
}

// Build fits the match rates of ev. Absent markets fall back through the
// rule chains to the configured defaults. It caches the decomposed team
// goal rates on ev.
func Build(ev *market.Event, s *lambda.Solver, p config.Pricing) *Context {
	c := &Context{Event: ev, Sources: make(map[string]string)}
	k := s.Kernel()
	d := p.Defaults

	c.Goals = c.eval(QtyGoals, rateRules(s, ev, market.TotalGoals, market.PeriodFullTime, d.Goals))
	c.Corners = c.eval(QtyCorners, rateRules(s, ev, market.TotalCorners, market.PeriodCorners, d.Corners))
	c.Cards = c.eval(QtyCards, rateRules(s, ev, market.TotalCards, market.PeriodFullTime, d.Cards))

	c.HomeGoals = c.eval(QtyTeamGoals, []rule{
		{SourceDecomposed, func() bool { return s.Enrich(ev) }, func() float64 { return *ev.LambdaHome }},
		{SourceEvenSplit, always, func() float64 { return c.Goals / 2 }},
	})
	c.AwayGoals = c.Goals - c.HomeGoals
	if c.Sources[QtyTeamGoals] == SourceDecomposed {
		c.AwayGoals = *ev.LambdaAway
	}

	home, away, fromHandicap := lambda.SplitCorners(c.Corners, lambda.HandicapsFor(ev), d.CornerHomeShare)
	c.HomeCorners, c.AwayCorners = home, away
	c.Sources[QtyTeamCorners] = SourceShare
	if fromHandicap {
		c.Sources[QtyTeamCorners] = SourceHandicap
	}

	c.GG = c.eval(QtyGG, []rule{
		{SourceBTTS,
			func() bool { return ev.Price(market.BothTeamsToScore, market.PeriodFullTime, market.OutcomeYes) > 1 },
			func() float64 {
				return odds.OddToProb(ev.Price(market.BothTeamsToScore, market.PeriodFullTime, market.OutcomeYes))
			}},
		{SourceConfigured, func() bool { return d.GG > 0 && d.GG < 1 }, func() float64 { return d.GG }},
		{SourceGoalRate, always, func() float64 { return 1 - math.Exp(-c.Goals*d.GGGoalFactor) }},
	})

	c.ThreePlusGoals = c.eval(QtyThreePlusGoals,
		lineRules(ev, market.TotalGoals, market.PeriodFullTime, 2.5, func() float64 { return k.ProbOver(c.Goals, 2) }))
	c.TenPlusCorners = c.eval(QtyTenPlusCorners,
		lineRules(ev, market.TotalCorners, market.PeriodCorners, 9.5, func() float64 { return k.ProbOver(c.Corners, 9) }))

	c.HomeWinOdd = ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeHome)
	c.AwayWinOdd = ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeAway)
	return c
}

func (c *Context) eval(qty string, rules []rule) float64 {
	v, name := evaluate(rules)
	c.Sources[qty] = name
	return v
}

func rateRules(s *lambda.Solver, ev *market.Event, t market.Type, p market.Period, def float64) []rule {
	var fitted float64
	return []rule{
		{SourceMarket,
			func() bool {
				var ok bool
				fitted, ok = s.MarketRate(ev, t, p)
				return ok
			},
			func() float64 { return fitted }},
		{SourceDefault, always, func() float64 { return def }},
	}
}

// lineRules prefers the implied probability of the quoted over line and
// falls back to the Poisson tail of the fitted rate.
func lineRules(ev *market.Event, t market.Type, p market.Period, line float64, poisson func() float64) []rule {
	return []rule{
		{SourceLine,
			func() bool { return ev.LinePrice(t, p, market.OutcomeOver, line) > 1 },
			func() float64 { return odds.OddToProb(ev.LinePrice(t, p, market.OutcomeOver, line)) }},
		{SourcePoisson, always, poisson},
	}
}
