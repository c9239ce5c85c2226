package match

import (
	"sort"

	"github.com/charleschow/soccer-props/internal/core/market"
)

// Player is a goalscorer quoted on the event.
type Player struct {
	Name    string
	Side    market.Side
	GoalOdd float64
}

// AvailablePlayers lists the enabled anytime-goalscorer selections of ev,
// sorted by name. A side filter keeps that side plus players whose side is
// unknown; an empty filter keeps everyone.
func AvailablePlayers(ev *market.Event, filter market.Side) []Player {
	seen := make(map[string]bool)
	var out []Player
	for _, sel := range ev.Selections(market.AnytimeGoalscorer, market.PeriodFullTime) {
		if !sel.Enabled || sel.Player == nil || sel.Price <= 1 {
			continue
		}
		side := sel.Player.Side
		if filter != "" && filter != market.SideUnknown && side != filter && side != market.SideUnknown {
			continue
		}
		if seen[sel.Player.Name] {
			continue
		}
		seen[sel.Player.Name] = true
		out = append(out, Player{Name: sel.Player.Name, Side: side, GoalOdd: sel.Price})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
