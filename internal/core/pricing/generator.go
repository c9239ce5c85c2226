package pricing

import (
	"fmt"
	"math"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/match"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

// Generator derives player props and match specials from base prices and
// fitted match rates. It is not safe for concurrent use because the
// kernel's factorial table grows lazily.
type Generator struct {
	k      *odds.Kernel
	cfg    config.Pricing
	margin float64
}

func NewGenerator(k *odds.Kernel, cfg config.Pricing, marginPct float64) *Generator {
	return &Generator{k: k, cfg: cfg, margin: marginPct}
}

func (g *Generator) MarginPct() float64 { return g.margin }

func (g *Generator) newSheet(subject string) *sheet {
	return &sheet{subject: subject, limits: g.cfg.Gate}
}

// Player prices every family the subject has a base price or stat for.
// mc may be nil, in which case team-dependent markets are skipped.
func (g *Generator) Player(p PlayerSubject, mc *match.Context) []BetRecord {
	s := g.newSheet(p.Name)
	if p.Base.Goal > 0 {
		g.goalFamily(s, p, mc)
	}
	if p.Base.ShotsOnTarget > 0 {
		g.shotsOnTarget(s, p.Base.ShotsOnTarget)
	}
	if p.Base.Fouls > 0 {
		g.foulFamily(s, "Fouls committed", p.Base.Fouls)
	}
	if p.Base.Card > 0 {
		s.emit(famGeneral, "To be booked", "card", p.Base.Card, rawPrice)
	}
	if p.Base.FoulsDrawn > 0 {
		g.foulFamily(s, "Fouls drawn", p.Base.FoulsDrawn)
	}
	if lam := p.Base.PassesLambda; lam > 0 {
		line := int(math.Ceil(lam))
		s.emit(famGeneral, "Passes", fmt.Sprintf("%d+", line), odds.FairOdd(g.k.AtLeast(lam, line)), g.margin)
	}
	if p.Base.Assist > 0 {
		s.emit(famGeneral, "Assist", "1+", p.Base.Assist, rawPrice)
		if p.Base.Goal > 0 {
			pg, pa := odds.OddToProb(p.Base.Goal), odds.OddToProb(p.Base.Assist)
			s.emit(famGeneral, "Goal or assist", "", odds.FairOdd(pg+pa-pg*pa), g.margin)
		}
	}
	g.shotLines(s, p)
	return s.out
}

func (g *Generator) goalFamily(s *sheet, p PlayerSubject, mc *match.Context) {
	gc := g.cfg.Goals
	base := p.Base.Goal
	lam := odds.ImpliedLambda(odds.OddToProb(base))

	s.emit(famGeneral, "To score", "anytime", base, rawPrice)

	early := 1 - g.k.PMF(lam*gc.EarlyMinutes/90, 0)
	s.emit(famGeneral, "Goal", fmt.Sprintf("before minute %g", gc.EarlyMinutes), odds.FairOdd(early), g.margin)

	twoPlus := s.emit(famGeneral, "To score", "2+ goals", odds.FairOdd(g.k.AtLeast(lam, 2)), gc.TwoPlusMargin)
	if twoPlus < g.cfg.Gate.Ceiling {
		s.emit(famGeneral, "To score", "3+ goals", odds.FairOdd(g.k.AtLeast(lam, 3)), gc.ThreePlusMargin)
	}

	first := odds.FairOdd(1 - g.k.PMF(lam*gc.FirstHalfShare, 0))
	second := odds.FairOdd(1 - g.k.PMF(lam*gc.SecondHalfShare, 0))
	s.emit(famGeneral, "Goal", "in 1st half", first, g.margin)
	s.emit(famGeneral, "Goal", "in 2nd half", second, g.margin)
	s.emit(famGeneral, "Goal", "in both halves", first*second, g.margin)

	s.emit(famGeneral, "To score", "first goal", base*gc.FirstLastMultiplier, g.margin)
	s.emit(famGeneral, "To score", "last goal", base*gc.FirstLastMultiplier, g.margin)

	if mc == nil {
		return
	}
	team, opp, ok := mc.TeamGoals(p.Side)
	if !ok || team <= 0 || mc.WinOdd(p.Side) <= 1 {
		return
	}
	pWin := g.scoreAndWin(team, opp, odds.OddToProb(base), gc.ScoreAndWinMaxGoals)
	s.emit(famGeneral, "Goal and", mc.Event.TeamName(p.Side)+" win", odds.FairOdd(pWin), g.margin)
}

// scoreAndWin approximates P(player scores and the team wins). The player
// scores d goals, teammates o more, and the team wins if the opponent
// scores fewer than d+o. Goal order is not modelled, so a late equaliser
// after the player's goal still counts as a win when the tally is ahead.
func (g *Generator) scoreAndWin(teamLam, oppLam, pScore float64, maxGoals int) float64 {
	lp := odds.ImpliedLambda(pScore)
	if lp == 0 {
		return 0
	}
	lo := teamLam - lp
	if lo < 0 {
		return 0
	}
	var p float64
	for d := 1; d <= maxGoals; d++ {
		pd := g.k.PMF(lp, d)
		for o := 0; o <= maxGoals; o++ {
			p += pd * g.k.PMF(lo, o) * g.k.CDF(oppLam, d+o-1)
		}
	}
	return p
}

// foulFamily publishes a foul count from its base "1+" price. Very short
// bases skip 1+ and publish 2+ and 3+, the latter with the tail margin.
func (g *Generator) foulFamily(s *sheet, label string, base float64) {
	ch := g.cfg.Counts
	at := g.countLadder(base)

	if base < ch.ShortPrice {
		s.emit(famGeneral, label, "2+", at(2), g.margin)
		s.emit(famGeneral, label, "3+", at(3), ch.TailMargin)
		return
	}
	s.emit(famGeneral, label, "1+", base, rawPrice)
	s.emit(famGeneral, label, "2+", at(2), g.margin)
}

// shotsOnTarget always publishes 1+ at the base price, 2+ and 3+ with margin.
func (g *Generator) shotsOnTarget(s *sheet, base float64) {
	at := g.countLadder(base)
	s.emit(famShots, "Shots on target", "1+", base, rawPrice)
	s.emit(famShots, "Shots on target", "2+", at(2), g.margin)
	s.emit(famShots, "Shots on target", "3+", at(3), g.margin)
}

// countLadder returns fair "n+" prices for the rate implied by a "1+" price.
func (g *Generator) countLadder(base float64) func(n int) float64 {
	lam := odds.ImpliedLambda(odds.OddToProb(base))
	return func(n int) float64 { return odds.FairOdd(g.k.AtLeast(lam, n)) }
}

// shotLines publishes the standard shot thresholds from the shots rate, or
// the subject's custom lines when given.
func (g *Generator) shotLines(s *sheet, p PlayerSubject) {
	lam := p.Stats.Shots
	computed := func(n int) float64 {
		if lam <= 0 {
			return odds.NoPrice
		}
		return odds.FairOdd(g.k.AtLeast(lam, n))
	}

	if len(p.ShotLines) == 0 {
		if lam <= 0 {
			return
		}
		for n := 1; n <= g.cfg.Shots.StandardLines; n++ {
			s.emit(famShots, "Shots", fmt.Sprintf("%d+", n), computed(n), g.margin)
		}
		return
	}
	for _, l := range p.ShotLines {
		if l.Threshold < 1 {
			continue
		}
		detail := fmt.Sprintf("%d+", l.Threshold)
		if l.Price > 0 {
			s.emit(famShots, "Shots", detail, l.Price, rawPrice)
			continue
		}
		s.emit(famShots, "Shots", detail, computed(l.Threshold), g.margin)
	}
}

// SubjectFromMarket seeds a subject from a quoted goalscorer.
func SubjectFromMarket(p match.Player) PlayerSubject {
	return PlayerSubject{
		Name: p.Name,
		Side: p.Side,
		Base: BasePrices{Goal: p.GoalOdd},
	}
}
