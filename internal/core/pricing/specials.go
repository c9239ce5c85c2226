package pricing

import (
	"math"

	"github.com/charleschow/soccer-props/internal/core/match"
	"github.com/charleschow/soccer-props/internal/core/odds"
)

// SpecialsSubject is the subject name of match specials.
const SpecialsSubject = "Special"

// Specials prices the curated compound markets of a match. Products assume
// independence; pairs expected to move together use CorrelatedProbability.
// It returns nil unless the goal, corner and card rates are positive.
func (g *Generator) Specials(mc *match.Context, in SpecialsInput) []BetRecord {
	if mc == nil || mc.Goals <= 0 || mc.Corners <= 0 || mc.Cards <= 0 {
		return nil
	}
	sc := g.cfg.Specials
	k := g.k
	goals, corners, cards, sot := mc.Goals, mc.Corners, mc.Cards, in.ShotsOnTarget

	gg := mc.GG
	threePlusGoals := mc.ThreePlusGoals
	underFourGoals := k.ProbUnder(goals, 4)
	threePlusCards := k.ProbOver(cards, 2)
	fourPlusCards := k.ProbOver(cards, 3)
	teamCards := cards / 2
	twoPlusCardsTeam := k.ProbOver(teamCards, 1)
	onePlusCardTeam := k.ProbOver(teamCards, 0)
	corners8 := k.ProbOver(corners, 7)
	corners9 := k.ProbOver(corners, 8)
	corners10 := mc.TenPlusCorners
	corners12 := k.ProbOver(corners, 11)
	corners15 := k.ProbOver(corners, 14)
	firstHalfCorners := corners * sc.CornersFirstHalfShare
	threeCornersEachHalf := k.ProbOver(firstHalfCorners, 2) * k.ProbOver(corners-firstHalfCorners, 2)
	bothTeamsCorners := func(n int) float64 {
		return k.ProbOver(mc.HomeCorners, n-1) * k.ProbOver(mc.AwayCorners, n-1)
	}
	goalFactor := func(f float64) float64 { return 1 - math.Exp(-goals*f) }
	perMinute := goals / 90

	var entries []special
	add := func(mkt, detail string, p float64) {
		entries = append(entries, special{mkt, detail, p})
	}

	add("Both teams 2+ cards", "", twoPlusCardsTeam*twoPlusCardsTeam)
	add("Under 4 goals", "and 3+ cards", underFourGoals*threePlusCards)
	add("11+ shots on target", "and both teams score", odds.CorrelatedProbability(k.ProbOver(sot, 10), gg, sc.SotGGBoost))
	add("9+ shots on target", "and both teams score", odds.CorrelatedProbability(k.ProbOver(sot, 8), gg, sc.SotGGBoost))
	add("Both teams 1+ card", "and both teams score", onePlusCardTeam*onePlusCardTeam*gg)
	add("10+ shots on target", "and 3+ goals", odds.CorrelatedProbability(k.ProbOver(sot, 9), threePlusGoals, sc.SotGoalsBoost))
	add("3+ goals", "and 10+ corners", threePlusGoals*corners10)
	add("3+ goals", "and 4+ cards", threePlusGoals*fourPlusCards)
	add(mc.Event.Home+" win", "after penalties", sc.WinAfterPenalties)
	add(mc.Event.Away+" win", "after penalties", sc.WinAfterPenalties)
	add("10+ corners", "and both teams score", corners10*gg)
	add("15+ corners", "and both teams score", corners15*gg)
	add("15+ corners", "and 3+ goals", corners15*threePlusGoals)
	add("3+ corners", "in each half", threeCornersEachHalf)
	add("Referee checks VAR", "", sc.VARReview)
	add("Woodwork hit", "in the match", sc.Woodwork)
	add("Goal in stoppage time", "2nd half", 1-math.Exp(-perMinute*sc.StoppageSecondHalfMin))
	add("Goal in stoppage time", "1st half", 1-math.Exp(-perMinute*sc.StoppageFirstHalfMin))
	add("Substitute scores", "", goalFactor(sc.SubGoalFactor))
	add("Goal from a free kick", "", goalFactor(sc.FreeKickFactor))
	add("Goal from outside the box", "", goalFactor(sc.OutsideBoxFactor))
	add("Headed goal", "in the match", goalFactor(sc.HeaderGoalFactor))
	add("Both teams score", "and 8+ corners", gg*corners8)
	add("3+ goals", "and 8+ corners", threePlusGoals*corners8)
	add("Both teams score", "and 3+ cards and 9+ corners", gg*threePlusCards*corners9)
	add("3+ goals", "and 3+ cards and 9+ corners", threePlusGoals*threePlusCards*corners9)
	add("Both teams score", "and both teams 4+ corners", gg*bothTeamsCorners(4))
	add("Both teams score", "and both teams 3+ corners", gg*bothTeamsCorners(3))
	add("Both teams score", "and 4+ cards and 9+ corners", gg*fourPlusCards*corners9)
	add("Both teams score", "and 12+ corners", gg*corners12)

	if odds.IsPrice(in.PenaltyOdd) {
		pen := odds.OddToProb(in.PenaltyOdd)
		if odds.IsPrice(in.RedCardOdd) {
			red := odds.OddToProb(in.RedCardOdd)
			add("Penalty and red card", "", odds.CorrelatedProbability(pen, red, sc.PenaltyRedBoost))
			add("Penalty or red card", "", pen+red-pen*red)
		}
		add("Penalty awarded", "to both teams", (pen/2)*(pen/2))
	}

	s := g.newSheet(SpecialsSubject)
	for _, e := range entries {
		s.emit(famGeneral, e.market, e.detail, odds.FairOdd(e.prob), g.margin)
	}
	return s.out
}

type special struct {
	market string
	detail string
	prob   float64
}
