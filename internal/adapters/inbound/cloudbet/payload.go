package cloudbet

import (
	"encoding/json"
	"strings"

	"github.com/charleschow/soccer-props/internal/core/market"
)

// Payload is the combined response of the per-competition odds endpoint.
type Payload struct {
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Name   string  `json:"name"`
	Key    string  `json:"key"`
	Events []Event `json:"events"`
}

const EventTypeOutright = "EVENT_TYPE_OUTRIGHT"

type Event struct {
	ID         json.RawMessage       `json:"id"`
	Name       string                `json:"name"`
	Type       string                `json:"type"`
	Status     string                `json:"status"`
	CutoffTime string                `json:"cutoffTime"`
	Home       *Team                 `json:"home"`
	Away       *Team                 `json:"away"`
	Markets    map[string]Market     `json:"markets"`
	Players    map[string]PlayerInfo `json:"players"`
}

type Team struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type Market struct {
	Submarkets map[string]Submarket `json:"submarkets"`
}

type Submarket struct {
	Selections []Selection `json:"selections"`
}

// UnmarshalJSON decodes selections one at a time and drops the ones that do
// not decode, so one malformed selection never rejects its competition.
func (s *Submarket) UnmarshalJSON(b []byte) error {
	var raw struct {
		Selections []json.RawMessage `json:"selections"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		s.Selections = nil
		return nil
	}
	s.Selections = make([]Selection, 0, len(raw.Selections))
	for _, r := range raw.Selections {
		var sel Selection
		if err := json.Unmarshal(r, &sel); err != nil {
			continue
		}
		s.Selections = append(s.Selections, sel)
	}
	return nil
}

const SelectionEnabled = "SELECTION_ENABLED"

type Selection struct {
	Outcome     string         `json:"outcome"`
	Params      string         `json:"params"`
	Price       market.Decimal `json:"price"`
	Probability market.Decimal `json:"probability"`
	Status      string         `json:"status"`
}

type PlayerInfo struct {
	Name string `json:"name"`
	Team string `json:"team"` // "HOME" / "AWAY"
}

// IsOutright reports whether the event is a futures market rather than a fixture.
func (e Event) IsOutright() bool { return e.Type == EventTypeOutright }

// eventID renders an id that may arrive as a JSON number or string.
func eventID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Parse decodes a payload and drops outright events and emptied competitions.
func Parse(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.Competitions = FilterOutrights(p.Competitions)
	return &p, nil
}

// FilterOutrights removes outright events, then competitions left empty.
func FilterOutrights(comps []Competition) []Competition {
	out := comps[:0]
	for _, c := range comps {
		events := c.Events[:0]
		for _, e := range c.Events {
			if !e.IsOutright() {
				events = append(events, e)
			}
		}
		c.Events = events
		if len(c.Events) > 0 {
			out = append(out, c)
		}
	}
	return out
}
