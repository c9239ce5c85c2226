package cloudbet

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/players"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

const unknownPlayer = "Unknown Player"

// Normalize maps the hierarchical feed into canonical events. Events
// without an id are skipped; every other malformed field only makes the
// affected market absent.
func Normalize(p *Payload) []*market.Event {
	if p == nil {
		return nil
	}
	var out []*market.Event
	for _, comp := range p.Competitions {
		for _, raw := range comp.Events {
			if raw.IsOutright() {
				continue
			}
			ev := normalizeEvent(comp, raw)
			if ev == nil {
				continue
			}
			out = append(out, ev)
		}
	}
	telemetry.Metrics.EventsNormalized.Add(int64(len(out)))
	return out
}

func normalizeEvent(comp Competition, raw Event) *market.Event {
	id := eventID(raw.ID)
	if id == "" {
		return nil
	}

	ev := market.NewEvent(id, market.SourceCloudbet)
	ev.Name = raw.Name
	ev.CompetitionKey = comp.Key
	ev.CompetitionName = comp.Name
	if raw.Home != nil {
		ev.Home = strings.TrimSpace(raw.Home.Name)
	}
	if raw.Away != nil {
		ev.Away = strings.TrimSpace(raw.Away.Name)
	}
	if ev.Name == "" && ev.HasTeams() {
		ev.Name = ev.Home + " vs " + ev.Away
	}
	if t, err := time.Parse(time.RFC3339, raw.CutoffTime); err == nil {
		ev.Kickoff = t
	}

	sides := playerSides(raw.Players)
	for key, m := range raw.Markets {
		mt := market.Type(key)
		for period, sm := range m.Submarkets {
			for _, s := range sm.Selections {
				if !s.Price.Usable() {
					continue
				}
				ev.Add(mt, market.Period(period), normalizeSelection(s, sides))
			}
		}
	}
	return ev
}

func normalizeSelection(s Selection, sides map[string]market.Side) market.Selection {
	sel := market.Selection{
		Outcome:     market.ParseOutcome(s.Outcome),
		Price:       float64(s.Price),
		Probability: float64(s.Probability),
		Enabled:     s.Status == "" || s.Status == SelectionEnabled,
	}
	sel.Param, sel.HasParam = market.ParseParam(s.Params)

	if sel.Outcome == market.OutcomePlayer {
		name := PlayerNameFromOutcome(s.Outcome)
		side, ok := sides[players.Normalize(name)]
		if !ok {
			side = market.SideUnknown
		}
		sel.Player = &market.PlayerRef{Name: name, Side: side}
	}
	return sel
}

// playerSides indexes the event's player map by normalized name.
func playerSides(ps map[string]PlayerInfo) map[string]market.Side {
	out := make(map[string]market.Side, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			continue
		}
		out[players.Normalize(p.Name)] = market.ParseSide(p.Team)
	}
	return out
}

// PlayerNameFromOutcome turns "player=123-bukayo-saka" into "Bukayo Saka".
func PlayerNameFromOutcome(outcome string) string {
	rest, ok := strings.CutPrefix(outcome, "player=")
	if !ok {
		return unknownPlayer
	}
	_, slug, ok := strings.Cut(rest, "-")
	if !ok || slug == "" {
		return unknownPlayer
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
