package main

import (
	"flag"
	"os"

	"github.com/charleschow/soccer-props/internal/process"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

func main() {
	var opts process.Options
	flag.StringVar(&opts.EventID, "event", "", "fixture id to price")
	flag.BoolVar(&opts.List, "list", false, "list competitions, or events with -competition / -team")
	flag.StringVar(&opts.Competition, "competition", "", "competition key for -list")
	flag.StringVar(&opts.Team, "team", "", "team name for -list")
	flag.StringVar(&opts.PlayersPath, "players", "", "YAML file of player subjects")
	flag.BoolVar(&opts.FromMarket, "from-market", false, "add every quoted anytime goalscorer")
	flag.StringVar(&opts.Side, "side", "", "restrict market players to home or away")
	flag.BoolVar(&opts.Estimate, "estimate", false, "estimate missing base prices from per-90 stats")
	flag.Float64Var(&opts.MarginPct, "margin", -1, "margin percent (default MARGIN_PCT)")
	flag.BoolVar(&opts.Specials, "specials", false, "price match specials")
	flag.Float64Var(&opts.ShotsOnTarget, "sot", 0, "match shots-on-target rate for specials")
	flag.Float64Var(&opts.PenaltyOdd, "penalty", 0, "penalty awarded price for specials")
	flag.Float64Var(&opts.RedCardOdd, "red", 0, "red card price for specials")
	flag.BoolVar(&opts.Serve, "serve", false, "keep serving the sheet to fanout clients until interrupted")
	flag.Parse()

	if err := process.Run(opts); err != nil {
		telemetry.Errorf("pricer: %v", err)
		os.Exit(1)
	}
}
