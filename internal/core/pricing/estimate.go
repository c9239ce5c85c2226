package pricing

import (
	"math"

	"github.com/charleschow/soccer-props/internal/core/odds"
)

// EstimateBase fills the subject's missing base prices from its per-90
// stats, pricing each as P(X >= 1) with the generator's margin and
// rounding it to a publishable price. It returns the number of prices
// filled.
func (g *Generator) EstimateBase(p *PlayerSubject) int {
	filled := 0
	fill := func(dst *float64, price float64) {
		if *dst > 0 || !odds.IsPrice(price) {
			return
		}
		*dst = odds.ParseOdd(odds.FormatOdd(price))
		filled++
	}
	onePlus := func(rate float64) float64 {
		if rate <= 0 {
			return odds.NoPrice
		}
		return odds.FairOdd(1 - g.k.PMF(rate, 0))
	}
	margined := func(rate float64) float64 { return odds.ApplyMargin(onePlus(rate), g.margin) }

	st := p.Stats
	fill(&p.Base.Goal, margined(st.Goals))
	fill(&p.Base.Assist, margined(st.Assists))
	fill(&p.Base.ShotsOnTarget, margined(st.ShotsOnTarget))
	fill(&p.Base.Fouls, margined(st.Fouls))
	fill(&p.Base.FoulsDrawn, margined(st.FoulsDrawn))
	fill(&p.Base.Card, odds.ApplyMargin(onePlus(st.Fouls)*g.cfg.Cards.FoulsMultiplier, g.margin))

	if p.Base.PassesLambda <= 0 && st.Passes > 0 {
		p.Base.PassesLambda = math.Round(st.Passes*100) / 100
		filled++
	}
	return filled
}
