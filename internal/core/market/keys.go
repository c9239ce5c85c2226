package market

import (
	"strconv"
	"strings"
)

// Type is a canonical market key. Cloudbet keys are used verbatim; the flat
// feed's keys are mapped onto them by its adapter.
type Type string

const (
	MatchResult       Type = "soccer.match_odds"
	TotalGoals        Type = "soccer.total_goals"
	TotalCorners      Type = "soccer.total_corners"
	CornerHandicap    Type = "soccer.corner_handicap"
	TotalCards        Type = "soccer.totals.cards"
	BothTeamsToScore  Type = "soccer.both_teams_to_score"
	AnytimeGoalscorer Type = "soccer.anytime_goalscorer"
)

// Period qualifies a submarket.
type Period string

const (
	PeriodFullTime Period = "period=ft"
	PeriodCorners  Period = "period=ft_corners"
)

type Outcome string

const (
	OutcomeHome    Outcome = "home"
	OutcomeAway    Outcome = "away"
	OutcomeDraw    Outcome = "draw"
	OutcomeOver    Outcome = "over"
	OutcomeUnder   Outcome = "under"
	OutcomeYes     Outcome = "yes"
	OutcomeNo      Outcome = "no"
	OutcomePlayer  Outcome = "player"
	OutcomeUnknown Outcome = ""
)

// ParseOutcome maps an upstream outcome tag. Player outcomes arrive as
// "player=<id>-<slug>".
func ParseOutcome(s string) Outcome {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Outcome(s) {
	case OutcomeHome, OutcomeAway, OutcomeDraw, OutcomeOver, OutcomeUnder, OutcomeYes, OutcomeNo:
		return Outcome(s)
	}
	if strings.HasPrefix(s, "player=") {
		return OutcomePlayer
	}
	return OutcomeUnknown
}

// Side is a team side tag for players and subjects.
type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = "unknown"
)

func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return SideHome
	case "away":
		return SideAway
	}
	return SideUnknown
}

// Opponent returns the other side; unknown stays unknown.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return SideUnknown
}

// ParseParam reads the numeric value of an upstream "name=value" parameter
// such as "total=2.5" or "handicap=-1.5". Multi-part params joined with '&'
// are searched for the first numeric value.
func ParseParam(params string) (float64, bool) {
	for _, part := range strings.Split(params, "&") {
		_, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
