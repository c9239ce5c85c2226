package lambda

import (
	"math"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

const (
	bisectEps      = 1e-6
	maxBisectSteps = 200
)

// HomeWinProb returns P(home goals > away goals) for independent Poisson
// scores, truncated at ceil(h+a+10) goals.
func (s *Solver) HomeWinProb(h, a float64) float64 {
	maxGoals := int(math.Ceil(h + a + 10))
	var p float64
	for i := 1; i <= maxGoals; i++ {
		p += s.k.PMF(h, i) * s.k.CDF(a, i-1)
	}
	return p
}

// SplitGoals divides total between the teams so that the Poisson home-win
// probability matches the de-margined 1X2 home probability. The two rates
// always sum to total.
func (s *Solver) SplitGoals(total, homeOdd, drawOdd, awayOdd float64) (home, away float64) {
	pHome, _, _ := odds.RemoveVig3(homeOdd, drawOdd, awayOdd)

	lo, hi := bisectEps, total-bisectEps
	if lo >= hi {
		return total / 2, total / 2
	}
	for step := 0; hi-lo > bisectEps && step < maxBisectSteps; step++ {
		mid := (lo + hi) / 2
		if s.HomeWinProb(mid, total-mid) > pHome {
			hi = mid
		} else {
			lo = mid
		}
	}
	home = (lo + hi) / 2
	return home, total - home
}

// Enrich computes the event's team goal rates from its total-goals and
// match-result markets. Rates already present are kept. It reports whether
// the event carries rates afterwards.
func (s *Solver) Enrich(ev *market.Event) bool {
	if ev.LambdaHome != nil && ev.LambdaAway != nil {
		return true
	}
	total, ok := s.MarketRate(ev, market.TotalGoals, market.PeriodFullTime)
	if !ok {
		return false
	}
	h := ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeHome)
	d := ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeDraw)
	a := ev.Price(market.MatchResult, market.PeriodFullTime, market.OutcomeAway)
	if h <= 0 || d <= 0 || a <= 0 {
		return false
	}
	home, away := s.SplitGoals(total, h, d, a)
	ev.LambdaHome, ev.LambdaAway = &home, &away
	return true
}
