package lambda

import (
	"math"

	"github.com/charleschow/soccer-props/internal/core/market"
)

// HandicapPrice is one handicap value quoted on both sides.
type HandicapPrice struct {
	Handicap float64
	Home     float64
	Away     float64
}

// HandicapsFor pairs the home and away prices of each corner handicap, in
// order of first appearance. Handicaps missing a side are skipped.
func HandicapsFor(ev *market.Event) []HandicapPrice {
	var order []float64
	pairs := make(map[float64]*HandicapPrice)
	for _, sel := range ev.Selections(market.CornerHandicap, market.PeriodCorners) {
		if !sel.HasParam || sel.Price <= 0 {
			continue
		}
		hp, ok := pairs[sel.Param]
		if !ok {
			hp = &HandicapPrice{Handicap: sel.Param}
			pairs[sel.Param] = hp
			order = append(order, sel.Param)
		}
		switch sel.Outcome {
		case market.OutcomeHome:
			if hp.Home == 0 {
				hp.Home = sel.Price
			}
		case market.OutcomeAway:
			if hp.Away == 0 {
				hp.Away = sel.Price
			}
		}
	}

	var out []HandicapPrice
	for _, h := range order {
		if hp := pairs[h]; hp.Home > 0 && hp.Away > 0 {
			out = append(out, *hp)
		}
	}
	return out
}

// SplitCorners divides the total corner rate using the most balanced
// handicap as the expected corner differential. Without one it falls back
// to homeShare. The last result reports whether a handicap was used.
func SplitCorners(total float64, handicaps []HandicapPrice, homeShare float64) (home, away float64, fromHandicap bool) {
	if total <= 0 || len(handicaps) == 0 {
		return total * homeShare, total * (1 - homeShare), false
	}

	best := handicaps[0]
	minDiff := math.Inf(1)
	for _, hp := range handicaps {
		if d := math.Abs(hp.Home - hp.Away); d < minDiff {
			minDiff = d
			best = hp
		}
	}

	home = (total - best.Handicap) / 2
	return home, total - home, true
}
