package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/match"
)

// PrintMatch writes the fitted rates for one fixture and where each came from.
func PrintMatch(w io.Writer, mc *match.Context) {
	if mc == nil || mc.Event == nil {
		return
	}
	ev := mc.Event
	homeShort, awayShort := shortName(ev.Home), shortName(ev.Away)

	var b strings.Builder
	fmt.Fprintf(&b, "\n[MATCH %s]  %s\n", ev.ID, ev.CompetitionName)
	fmt.Fprintf(&b, "%s\n", dividerHeavy)
	fmt.Fprintf(&b, "  %s\n", ev.Name)
	if !ev.Kickoff.IsZero() {
		fmt.Fprintf(&b, "    %-38s%s\n", "Kickoff:", ev.Kickoff.Local().Format("Mon 2 Jan 15:04 MST"))
	}
	fmt.Fprintf(&b, "    %-38s%s\n", "Source:", ev.Source)

	fmt.Fprintf(&b, "    %-38s%.2f  (%s)\n", "Goals λ:", mc.Goals, mc.Sources[match.QtyGoals])
	fmt.Fprintf(&b, "    %-38s%s %.2f  |  %s %.2f  (%s)\n", "Team goals λ:",
		homeShort, mc.HomeGoals, awayShort, mc.AwayGoals, mc.Sources[match.QtyTeamGoals])
	fmt.Fprintf(&b, "    %-38s%.2f  (%s)\n", "Corners λ:", mc.Corners, mc.Sources[match.QtyCorners])
	fmt.Fprintf(&b, "    %-38s%s %.2f  |  %s %.2f  (%s)\n", "Team corners λ:",
		homeShort, mc.HomeCorners, awayShort, mc.AwayCorners, mc.Sources[match.QtyTeamCorners])
	fmt.Fprintf(&b, "    %-38s%.2f  (%s)\n", "Cards λ:", mc.Cards, mc.Sources[match.QtyCards])

	fmt.Fprintf(&b, "    %-38s%.1f%%  (%s)\n", "Both teams to score:", mc.GG*100, mc.Sources[match.QtyGG])
	fmt.Fprintf(&b, "    %-38s%.1f%%  (%s)\n", "3+ goals:", mc.ThreePlusGoals*100, mc.Sources[match.QtyThreePlusGoals])
	fmt.Fprintf(&b, "    %-38s%.1f%%  (%s)\n", "10+ corners:", mc.TenPlusCorners*100, mc.Sources[match.QtyTenPlusCorners])
	if mc.HomeWinOdd > 1 && mc.AwayWinOdd > 1 {
		fmt.Fprintf(&b, "    %-38s%s %.2f  |  %s %.2f\n", "Win odds:", homeShort, mc.HomeWinOdd, awayShort, mc.AwayWinOdd)
	} else {
		fmt.Fprintf(&b, "    %-38s%s\n", "Win odds:", "(not quoted)")
	}
	fmt.Fprintf(&b, "%s\n", dividerHeavy)

	fmt.Fprint(w, b.String())
}

// PrintEvents lists fixtures one per line for event selection.
func PrintEvents(w io.Writer, evs []*market.Event) {
	if len(evs) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}
	for _, ev := range evs {
		kick := "-"
		if !ev.Kickoff.IsZero() {
			kick = ev.Kickoff.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "  %-12s %-19s %-44s %s\n", ev.ID, kick, ev.Name, ev.Source)
	}
}

// PrintCompetitions lists competition keys and names.
func PrintCompetitions(w io.Writer, comps []market.Competition) {
	for _, c := range comps {
		fmt.Fprintf(w, "  %-64s %s\n", c.Key, c.Name)
	}
}
