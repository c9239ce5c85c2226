package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed pricing.yaml
var defaultPricingData []byte

type GateLimits struct {
	Ceiling  float64 `yaml:"ceiling"`
	ShotsCap float64 `yaml:"shots_cap"`
}

type GoalHeuristics struct {
	TwoPlusMargin       float64 `yaml:"two_plus_margin"`
	ThreePlusMargin     float64 `yaml:"three_plus_margin"`
	EarlyMinutes        float64 `yaml:"early_minutes"`
	FirstHalfShare      float64 `yaml:"first_half_share"`
	SecondHalfShare     float64 `yaml:"second_half_share"`
	FirstLastMultiplier float64 `yaml:"first_last_multiplier"`
	ScoreAndWinMaxGoals int     `yaml:"score_and_win_max_goals"`
}

type CountHeuristics struct {
	ShortPrice float64 `yaml:"short_price"`
	TailMargin float64 `yaml:"tail_margin"`
}

type CardHeuristics struct {
	FoulsMultiplier float64 `yaml:"fouls_multiplier"`
}

type ShotHeuristics struct {
	StandardLines int `yaml:"standard_lines"`
}

// MatchDefaults are the terminal values used when a market is absent.
type MatchDefaults struct {
	Goals           float64 `yaml:"goals"`
	Corners         float64 `yaml:"corners"`
	Cards           float64 `yaml:"cards"`
	CornerHomeShare float64 `yaml:"corner_home_share"`
	GG              float64 `yaml:"gg"`
	GGGoalFactor    float64 `yaml:"gg_goal_factor"`
}

type SpecialHeuristics struct {
	WinAfterPenalties     float64 `yaml:"win_after_penalties"`
	VARReview             float64 `yaml:"var_review"`
	Woodwork              float64 `yaml:"woodwork"`
	PenaltyRedBoost       float64 `yaml:"penalty_red_boost"`
	SotGGBoost            float64 `yaml:"sot_gg_boost"`
	SotGoalsBoost         float64 `yaml:"sot_goals_boost"`
	CornersFirstHalfShare float64 `yaml:"corners_first_half_share"`
	SubGoalFactor         float64 `yaml:"sub_goal_factor"`
	HeaderGoalFactor      float64 `yaml:"header_goal_factor"`
	OutsideBoxFactor      float64 `yaml:"outside_box_factor"`
	FreeKickFactor        float64 `yaml:"free_kick_factor"`
	StoppageFirstHalfMin  float64 `yaml:"stoppage_first_half_min"`
	StoppageSecondHalfMin float64 `yaml:"stoppage_second_half_min"`
}

type Pricing struct {
	Gate     GateLimits        `yaml:"gate"`
	Goals    GoalHeuristics    `yaml:"goals"`
	Counts   CountHeuristics   `yaml:"counts"`
	Cards    CardHeuristics    `yaml:"cards"`
	Shots    ShotHeuristics    `yaml:"shots"`
	Defaults MatchDefaults     `yaml:"defaults"`
	Specials SpecialHeuristics `yaml:"specials"`
}

// DefaultPricing returns the embedded constants. It panics only if the
// embedded file is malformed, which is a build defect.
func DefaultPricing() Pricing {
	var p Pricing
	if err := yaml.Unmarshal(defaultPricingData, &p); err != nil {
		panic(fmt.Sprintf("parse embedded pricing: %v", err))
	}
	return p
}

// LoadPricing overlays the YAML file at path onto the embedded defaults.
// An empty path returns the defaults unchanged.
func LoadPricing(path string) (Pricing, error) {
	p := DefaultPricing()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Pricing{}, fmt.Errorf("read pricing config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pricing{}, fmt.Errorf("parse pricing config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Pricing{}, fmt.Errorf("validate pricing config: %w", err)
	}
	return p, nil
}

func (p Pricing) Validate() error {
	g, c, d, sp := p.Goals, p.Counts, p.Defaults, p.Specials
	switch {
	case p.Gate.Ceiling <= 1:
		return fmt.Errorf("gate.ceiling must be > 1, got %v", p.Gate.Ceiling)
	case p.Gate.ShotsCap <= 1:
		return fmt.Errorf("gate.shots_cap must be > 1, got %v", p.Gate.ShotsCap)
	case !validMargin(g.TwoPlusMargin):
		return fmt.Errorf("goals.two_plus_margin must be in [0,100), got %v", g.TwoPlusMargin)
	case !validMargin(g.ThreePlusMargin):
		return fmt.Errorf("goals.three_plus_margin must be in [0,100), got %v", g.ThreePlusMargin)
	case g.EarlyMinutes <= 0 || g.EarlyMinutes > 90:
		return fmt.Errorf("goals.early_minutes must be in (0,90], got %v", g.EarlyMinutes)
	case !unitOpen(g.FirstHalfShare) || !unitOpen(g.SecondHalfShare):
		return fmt.Errorf("goals half shares must be in (0,1), got %v/%v", g.FirstHalfShare, g.SecondHalfShare)
	case math.Abs(g.FirstHalfShare+g.SecondHalfShare-1) > 1e-6:
		return fmt.Errorf("goals half shares must sum to 1, got %v", g.FirstHalfShare+g.SecondHalfShare)
	case g.FirstLastMultiplier <= 0:
		return fmt.Errorf("goals.first_last_multiplier must be > 0, got %v", g.FirstLastMultiplier)
	case g.ScoreAndWinMaxGoals < 1:
		return fmt.Errorf("goals.score_and_win_max_goals must be >= 1, got %d", g.ScoreAndWinMaxGoals)
	case c.ShortPrice <= 1:
		return fmt.Errorf("counts.short_price must be > 1, got %v", c.ShortPrice)
	case !validMargin(c.TailMargin):
		return fmt.Errorf("counts.tail_margin must be in [0,100), got %v", c.TailMargin)
	case p.Cards.FoulsMultiplier <= 0:
		return fmt.Errorf("cards.fouls_multiplier must be > 0, got %v", p.Cards.FoulsMultiplier)
	case p.Shots.StandardLines < 1 || p.Shots.StandardLines > maxStandardLines:
		return fmt.Errorf("shots.standard_lines must be in [1,%d], got %d", maxStandardLines, p.Shots.StandardLines)
	case d.Goals <= 0 || d.Corners <= 0 || d.Cards <= 0:
		return fmt.Errorf("defaults goals/corners/cards must be > 0, got %v/%v/%v", d.Goals, d.Corners, d.Cards)
	case !unitOpen(d.CornerHomeShare):
		return fmt.Errorf("defaults.corner_home_share must be in (0,1), got %v", d.CornerHomeShare)
	case !unitOpen(d.GG):
		return fmt.Errorf("defaults.gg must be in (0,1), got %v", d.GG)
	case d.GGGoalFactor <= 0:
		return fmt.Errorf("defaults.gg_goal_factor must be > 0, got %v", d.GGGoalFactor)
	case !unitOpen(sp.WinAfterPenalties) || !unitOpen(sp.VARReview) || !unitOpen(sp.Woodwork):
		return fmt.Errorf("specials fixed probabilities must be in (0,1), got %v/%v/%v", sp.WinAfterPenalties, sp.VARReview, sp.Woodwork)
	}
	return nil
}

const maxStandardLines = 20

func validMargin(m float64) bool { return m >= 0 && m < 100 }

func unitOpen(v float64) bool { return v > 0 && v < 1 }
