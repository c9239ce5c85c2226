package process

import (
	"context"
	"errors"
	"testing"

	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/players"
	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/events"
)

func testEvent() *market.Event {
	ev := market.NewEvent("24179", market.SourceCloudbet)
	ev.Name, ev.Home, ev.Away = "Arsenal vs Chelsea", "Arsenal", "Chelsea"
	ev.Add(market.TotalGoals, market.PeriodFullTime, market.Selection{Outcome: market.OutcomeOver, Param: 2.5, HasParam: true, Price: 1.85, Enabled: true})
	ev.Add(market.TotalGoals, market.PeriodFullTime, market.Selection{Outcome: market.OutcomeUnder, Param: 2.5, HasParam: true, Price: 1.95, Enabled: true})
	for o, p := range map[market.Outcome]float64{market.OutcomeHome: 1.80, market.OutcomeDraw: 3.60, market.OutcomeAway: 4.50} {
		ev.Add(market.MatchResult, market.PeriodFullTime, market.Selection{Outcome: o, Price: p, Enabled: true})
	}
	scorer := func(name string, side market.Side, price float64, enabled bool) {
		ev.Add(market.AnytimeGoalscorer, market.PeriodFullTime, market.Selection{
			Outcome: market.OutcomePlayer,
			Price:   price,
			Enabled: enabled,
			Player:  &market.PlayerRef{Name: name, Side: side},
		})
	}
	scorer("Bukayo Saka", market.SideHome, 2.60, true)
	scorer("Cole Palmer", market.SideAway, 3.00, true)
	scorer("Kai Havertz", market.SideUnknown, 2.40, true)
	scorer("Gabriel Jesus", market.SideHome, 2.80, false)
	return ev
}

func names(subjects []pricing.PlayerSubject) map[string]pricing.PlayerSubject {
	out := make(map[string]pricing.PlayerSubject, len(subjects))
	for _, s := range subjects {
		out[s.Name] = s
	}
	return out
}

func TestSubjectsMergeFileAndMarket(t *testing.T) {
	p := NewPricer(config.DefaultPricing(), 5, nil, nil)
	req := Request{
		Subjects:   []pricing.PlayerSubject{{Name: "Bukayo  Saka", Side: market.SideHome, Base: pricing.BasePrices{Goal: 2.9}}},
		FromMarket: true,
		Side:       market.SideHome,
	}
	got := names(p.Subjects(testEvent(), req))

	if len(got) != 2 {
		t.Fatalf("subjects = %v", got)
	}
	if s, ok := got["Bukayo  Saka"]; !ok || s.Base.Goal != 2.9 {
		t.Errorf("file subject should win over the market quote: %+v", s)
	}
	if _, ok := got["Kai Havertz"]; !ok {
		t.Error("unknown-side market player should be kept under a side filter")
	}
	if _, ok := got["Cole Palmer"]; ok {
		t.Error("away player should be filtered out")
	}
}

const statsJSON = `[
	{"Player": "Kai Havertz", "Squad": "Arsenal", "Gls_90": 0.5, "Ast_90": 0.2, "SoT_90": 1.2, "Sh_90": 2.6, "Pass_Att_90": 30, "Fls_90": 1.4, "Fld_90": 1.1}
]`

func TestSubjectsFillAndEstimate(t *testing.T) {
	db, err := players.ParseDB([]byte(statsJSON))
	if err != nil {
		t.Fatalf("ParseDB: %v", err)
	}
	p := NewPricer(config.DefaultPricing(), 5, db, nil)
	got := names(p.Subjects(testEvent(), Request{FromMarket: true, Estimate: true}))

	kai := got["Kai Havertz"]
	if kai.Stats.ShotsOnTarget != 1.2 {
		t.Errorf("stats not filled: %+v", kai.Stats)
	}
	if kai.Base.Goal != 2.40 {
		t.Errorf("quoted goal price must not be replaced by an estimate, got %v", kai.Base.Goal)
	}
	if kai.Base.ShotsOnTarget <= 1 || kai.Base.PassesLambda != 30 {
		t.Errorf("estimates missing: %+v", kai.Base)
	}
	if saka := got["Bukayo Saka"]; saka.Base.ShotsOnTarget != 0 {
		t.Errorf("no stats for saka, nothing to estimate: %+v", saka.Base)
	}
}

func TestPricePublishesSheet(t *testing.T) {
	bus := events.NewBus()
	var published []events.Event
	bus.Subscribe(events.EventSheetPriced, func(e events.Event) error {
		published = append(published, e)
		return nil
	})

	p := NewPricer(config.DefaultPricing(), 5, nil, bus)
	ev := testEvent()
	sheet := p.Price(ev, p.Context(ev), Request{FromMarket: true, Specials: true})

	if len(published) != 1 {
		t.Fatalf("published %d events", len(published))
	}
	e := published[0]
	if e.ID != sheet.ID || e.EventID != "24179" {
		t.Errorf("envelope %+v", e)
	}
	if sp := e.Payload.(events.SheetPriced); sp.Sheet.ID != sheet.ID {
		t.Error("payload sheet differs from returned sheet")
	}

	subjects := map[string]int{}
	for _, b := range sheet.Bets {
		subjects[b.Subject]++
	}
	for _, want := range []string{"Bukayo Saka", "Cole Palmer", "Kai Havertz", pricing.SpecialsSubject} {
		if subjects[want] == 0 {
			t.Errorf("no bets for %s", want)
		}
	}
	if subjects["Gabriel Jesus"] != 0 {
		t.Error("disabled selection priced")
	}
}

type mapFinder map[string]*market.Event

func (m mapFinder) Find(_ context.Context, id string) (*market.Event, error) {
	if ev, ok := m[id]; ok {
		return ev, nil
	}
	return nil, errors.New("not found")
}

func TestFindEvent(t *testing.T) {
	f := mapFinder{"1": testEvent()}
	if _, err := findEvent(context.Background(), f, ""); !errors.Is(err, errNoEvent) {
		t.Errorf("empty id err = %v", err)
	}
	if ev, err := findEvent(context.Background(), f, "1"); err != nil || ev == nil {
		t.Errorf("Find(1) = %v, %v", ev, err)
	}
}

func TestSideFilter(t *testing.T) {
	tests := []struct {
		in   string
		want market.Side
	}{
		{"", ""},
		{"home", market.SideHome},
		{"AWAY", market.SideAway},
		{"middle", market.SideUnknown},
	}
	for _, tt := range tests {
		if got := sideFilter(tt.in); got != tt.want {
			t.Errorf("sideFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
