package pricing

import "github.com/charleschow/soccer-props/internal/core/market"

// BetRecord is one published derived market.
type BetRecord struct {
	Subject string `json:"subject"`
	Market  string `json:"market"`
	Detail  string `json:"detail"`
	Price   string `json:"price"`
}

// Stats are per-90 averages.
type Stats struct {
	Goals         float64 `yaml:"goals" json:"goals"`
	Assists       float64 `yaml:"assists" json:"assists"`
	Shots         float64 `yaml:"shots" json:"shots"`
	ShotsOnTarget float64 `yaml:"shots_on_target" json:"shots_on_target"`
	Fouls         float64 `yaml:"fouls" json:"fouls"`
	FoulsDrawn    float64 `yaml:"fouls_drawn" json:"fouls_drawn"`
	Passes        float64 `yaml:"passes" json:"passes"`
}

// BasePrices are observed or estimated "1+" prices. Zero means absent.
// PassesLambda is a rate, not a price.
type BasePrices struct {
	Goal          float64 `yaml:"goal" json:"goal"`
	Assist        float64 `yaml:"assist" json:"assist"`
	ShotsOnTarget float64 `yaml:"shots_on_target" json:"shots_on_target"`
	Fouls         float64 `yaml:"fouls" json:"fouls"`
	FoulsDrawn    float64 `yaml:"fouls_drawn" json:"fouls_drawn"`
	Card          float64 `yaml:"card" json:"card"`
	PassesLambda  float64 `yaml:"passes_lambda" json:"passes_lambda"`
}

// ShotLine is a custom shot-count line. A zero Price is computed from the
// shots-per-90 rate.
type ShotLine struct {
	Threshold int     `yaml:"threshold" json:"threshold"`
	Price     float64 `yaml:"price" json:"price"`
}

type PlayerSubject struct {
	Name      string      `yaml:"name" json:"name"`
	Side      market.Side `yaml:"side" json:"side"`
	Stats     Stats       `yaml:"stats" json:"stats"`
	Base      BasePrices  `yaml:"base" json:"base"`
	ShotLines []ShotLine  `yaml:"shot_lines" json:"shot_lines"`
}

// SpecialsInput carries the flat prices the specials need besides the
// match rates.
type SpecialsInput struct {
	ShotsOnTarget float64 // match shots-on-target rate
	PenaltyOdd    float64
	RedCardOdd    float64
}
