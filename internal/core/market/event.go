package market

import (
	"sort"
	"time"
)

// Source tags the upstream feed an event was normalized from.
type Source string

const (
	SourceCloudbet Source = "cloudbet"   // hierarchical feed
	SourceOddsAPI  Source = "theoddsapi" // flat feed
)

func (s Source) Valid() bool { return s == SourceCloudbet || s == SourceOddsAPI }

// Event is one fixture in canonical form. Adapters create it; lambda.Solver
// fills LambdaHome/LambdaAway once; pricing only reads it.
type Event struct {
	ID              string
	Name            string
	Home            string
	Away            string
	Kickoff         time.Time
	CompetitionKey  string
	CompetitionName string
	Source          Source
	Markets         map[Type]*Market

	LambdaHome *float64
	LambdaAway *float64
}

type Market struct {
	Type       Type
	Submarkets map[Period]*Submarket
}

type Submarket struct {
	Period     Period
	Selections []Selection
}

// PlayerRef identifies the player behind a player outcome.
type PlayerRef struct {
	Name string
	Side Side
}

type Selection struct {
	Outcome     Outcome
	Param       float64
	HasParam    bool
	Price       float64
	Probability float64 // upstream-computed, 0 when absent
	Enabled     bool
	Player      *PlayerRef
}

func NewEvent(id string, src Source) *Event {
	return &Event{ID: id, Source: src, Markets: make(map[Type]*Market)}
}

// HasTeams reports whether both team names are known.
func (e *Event) HasTeams() bool { return e.Home != "" && e.Away != "" }

// Add appends a selection under (type, period), creating containers on demand.
func (e *Event) Add(t Type, p Period, sel Selection) {
	m, ok := e.Markets[t]
	if !ok {
		m = &Market{Type: t, Submarkets: make(map[Period]*Submarket)}
		e.Markets[t] = m
	}
	sm, ok := m.Submarkets[p]
	if !ok {
		sm = &Submarket{Period: p}
		m.Submarkets[p] = sm
	}
	sm.Selections = append(sm.Selections, sel)
}

// Selections returns the selections of (type, period) or nil when absent.
func (e *Event) Selections(t Type, p Period) []Selection {
	if e == nil {
		return nil
	}
	m, ok := e.Markets[t]
	if !ok {
		return nil
	}
	sm, ok := m.Submarkets[p]
	if !ok {
		return nil
	}
	return sm.Selections
}

// Price returns the price of the first selection matching outcome, or 0.
func (e *Event) Price(t Type, p Period, o Outcome) float64 {
	for _, s := range e.Selections(t, p) {
		if s.Outcome == o && s.Price > 0 {
			return s.Price
		}
	}
	return 0
}

// LinePrice returns the price of outcome at an exact line, or 0.
func (e *Event) LinePrice(t Type, p Period, o Outcome, line float64) float64 {
	for _, s := range e.Selections(t, p) {
		if s.Outcome == o && s.HasParam && s.Param == line && s.Price > 0 {
			return s.Price
		}
	}
	return 0
}

// TeamLambdas returns the decomposed goal rates if they have been computed.
func (e *Event) TeamLambdas() (home, away float64, ok bool) {
	if e.LambdaHome == nil || e.LambdaAway == nil {
		return 0, 0, false
	}
	return *e.LambdaHome, *e.LambdaAway, true
}

// TeamName maps a side to the event's team name.
func (e *Event) TeamName(s Side) string {
	switch s {
	case SideHome:
		return e.Home
	case SideAway:
		return e.Away
	}
	return ""
}

// Competition is one entry of the competition picker.
type Competition struct {
	Key  string
	Name string
}

// Competitions returns the distinct competitions across events, by name.
func Competitions(events []*Event) []Competition {
	seen := make(map[string]bool)
	var out []Competition
	for _, ev := range events {
		if seen[ev.CompetitionKey] {
			continue
		}
		seen[ev.CompetitionKey] = true
		out = append(out, Competition{Key: ev.CompetitionKey, Name: ev.CompetitionName})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
