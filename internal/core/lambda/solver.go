package lambda

import (
	"math"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

// Grid for ImpliedRate: lambda = gridStart + gridStep*i, i in [0, gridSteps).
// Covers [0.1, 20).
const (
	gridStart = 0.1
	gridStep  = 0.05
	gridSteps = 398
)

// LinePrice is one over/under line with its over price (0 when not quoted).
type LinePrice struct {
	Line float64
	Over float64
}

// Solver fits Poisson rates to quoted markets.
type Solver struct {
	k *odds.Kernel
}

func New(k *odds.Kernel) *Solver {
	return &Solver{k: k}
}

func (s *Solver) Kernel() *odds.Kernel { return s.k }

// LinesFor collects the distinct lines of a totals market in the order they
// first appear, each paired with its over price.
func LinesFor(ev *market.Event, t market.Type, p market.Period) []LinePrice {
	var out []LinePrice
	idx := make(map[float64]int)
	for _, sel := range ev.Selections(t, p) {
		if !sel.HasParam {
			continue
		}
		i, seen := idx[sel.Param]
		if !seen {
			i = len(out)
			idx[sel.Param] = i
			out = append(out, LinePrice{Line: sel.Param})
		}
		if sel.Outcome == market.OutcomeOver && out[i].Over == 0 && sel.Price > 0 {
			out[i].Over = sel.Price
		}
	}
	return out
}

// ImpliedRate returns the lambda whose P(X > line) best matches the over
// price of the reference line: the line whose implied over probability is
// closest to 0.5, ties to input order. It reports false when no line has
// a valid over price (> 1).
func (s *Solver) ImpliedRate(lines []LinePrice) (float64, bool) {
	ref := -1
	bestDiff := math.Inf(1)
	for i, lp := range lines {
		if lp.Over <= 1 {
			continue
		}
		if d := math.Abs(odds.OddToProb(lp.Over) - 0.5); d < bestDiff {
			bestDiff = d
			ref = i
		}
	}
	if ref < 0 {
		return 0, false
	}

	target := odds.OddToProb(lines[ref].Over)
	threshold := int(math.Floor(lines[ref].Line))

	best := gridStart
	minErr := math.Inf(1)
	for i := 0; i < gridSteps; i++ {
		l := gridStart + gridStep*float64(i)
		if err := math.Abs(s.k.ProbOver(l, threshold) - target); err < minErr {
			minErr = err
			best = l
		}
	}
	return best, true
}

// MarketRate fits the rate of a totals market on an event.
func (s *Solver) MarketRate(ev *market.Event, t market.Type, p market.Period) (float64, bool) {
	return s.ImpliedRate(LinesFor(ev, t, p))
}
