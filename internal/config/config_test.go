package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultPricingMatchesHeuristics(t *testing.T) {
	p := DefaultPricing()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"ceiling", p.Gate.Ceiling, 60},
		{"shots cap", p.Gate.ShotsCap, 7},
		{"2+ margin", p.Goals.TwoPlusMargin, 20},
		{"3+ margin", p.Goals.ThreePlusMargin, 30},
		{"first half", p.Goals.FirstHalfShare, 0.44},
		{"second half", p.Goals.SecondHalfShare, 0.56},
		{"first/last", p.Goals.FirstLastMultiplier, 2.6},
		{"short price", p.Counts.ShortPrice, 1.30},
		{"card multiplier", p.Cards.FoulsMultiplier, 3.2},
		{"default goals", p.Defaults.Goals, 2.5},
		{"default corners", p.Defaults.Corners, 10.5},
		{"default cards", p.Defaults.Cards, 4.5},
		{"corner share", p.Defaults.CornerHomeShare, 0.55},
		{"after penalties", p.Specials.WinAfterPenalties, 0.10},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if p.Goals.ScoreAndWinMaxGoals != 15 {
		t.Errorf("score-and-win max goals = %d, want 15", p.Goals.ScoreAndWinMaxGoals)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
}

func TestLoadPricingOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	data := []byte("goals:\n  first_last_multiplier: 3.0\ngate:\n  ceiling: 100\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPricing(path)
	if err != nil {
		t.Fatalf("LoadPricing: %v", err)
	}
	if p.Goals.FirstLastMultiplier != 3.0 {
		t.Errorf("multiplier = %v, want 3.0", p.Goals.FirstLastMultiplier)
	}
	if p.Gate.Ceiling != 100 {
		t.Errorf("ceiling = %v, want 100", p.Gate.Ceiling)
	}
	// untouched keys keep their defaults
	if p.Goals.FirstHalfShare != 0.44 || p.Gate.ShotsCap != 7 {
		t.Errorf("defaults lost: half=%v cap=%v", p.Goals.FirstHalfShare, p.Gate.ShotsCap)
	}
}

func TestLoadPricingErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPricing(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("gate:\n  ceiling: 1\n"), 0o644)
	if _, err := LoadPricing(bad); err == nil {
		t.Error("expected validation error for ceiling <= 1")
	}

	p, err := LoadPricing("")
	if err != nil || p.Gate.Ceiling != 60 {
		t.Errorf("empty path should return defaults, got %v, %v", p.Gate.Ceiling, err)
	}
}

func TestValidateRejectsNonsenseOverlays(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Pricing)
	}{
		{"short price at evens", func(p *Pricing) { p.Counts.ShortPrice = 1 }},
		{"negative tail margin", func(p *Pricing) { p.Counts.TailMargin = -5 }},
		{"two-plus margin of 100", func(p *Pricing) { p.Goals.TwoPlusMargin = 100 }},
		{"negative three-plus margin", func(p *Pricing) { p.Goals.ThreePlusMargin = -1 }},
		{"half share above one", func(p *Pricing) { p.Goals.FirstHalfShare = 1.2 }},
		{"half shares not summing to one", func(p *Pricing) { p.Goals.FirstHalfShare, p.Goals.SecondHalfShare = 0.5, 0.6 }},
		{"zero standard lines", func(p *Pricing) { p.Shots.StandardLines = 0 }},
		{"too many standard lines", func(p *Pricing) { p.Shots.StandardLines = 500 }},
		{"zero first/last multiplier", func(p *Pricing) { p.Goals.FirstLastMultiplier = 0 }},
		{"negative fouls multiplier", func(p *Pricing) { p.Cards.FoulsMultiplier = -3.2 }},
		{"zero default goals", func(p *Pricing) { p.Defaults.Goals = 0 }},
		{"gg of one", func(p *Pricing) { p.Defaults.GG = 1 }},
		{"woodwork probability above one", func(p *Pricing) { p.Specials.Woodwork = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPricing()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	path := filepath.Join(t.TempDir(), "pricing.yaml")
	os.WriteFile(path, []byte("counts:\n  short_price: 0.5\n"), 0o644)
	if _, err := LoadPricing(path); err == nil {
		t.Error("LoadPricing should reject short_price <= 1")
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("THE_ODDS_API_KEYS", "k1, ,k2")
	t.Setenv("MARGIN_PCT", "7.5")
	t.Setenv("MERGE_STRICT", "true")
	t.Setenv("FETCH_TIMEOUT_SEC", "3")
	t.Setenv("FANOUT_PORT", "not-a-number")

	cfg := Load()
	if len(cfg.OddsAPIKeys) != 2 || cfg.OddsAPIKeys[0] != "k1" || cfg.OddsAPIKeys[1] != "k2" {
		t.Errorf("keys = %v", cfg.OddsAPIKeys)
	}
	if cfg.MarginPct != 7.5 {
		t.Errorf("margin = %v", cfg.MarginPct)
	}
	if !cfg.MergeStrict {
		t.Error("strict merge not read")
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("timeout = %s", cfg.FetchTimeout)
	}
	if cfg.FanoutPort != 8790 {
		t.Errorf("bad int should fall back, got %d", cfg.FanoutPort)
	}
}
