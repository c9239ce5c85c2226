package merge

import (
	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// Mode selects how priority-league events from the fallback feed are
// admitted.
type Mode int

const (
	// ModeFallback admits a fallback event unless the primary feed carries
	// an event with the same id.
	ModeFallback Mode = iota
	// ModeStrict drops every priority-league fallback event as soon as the
	// primary feed returned anything.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "fallback"
}

type Policy struct {
	Mode Mode
}

// Merge joins the primary and fallback feeds. Primary events are always
// kept; fallback events outside the priority leagues are always kept.
// Events are matched by exact id only, so the same fixture listed under
// different ids by the two feeds appears twice.
func Merge(primary, fallback []*market.Event, policy Policy) []*market.Event {
	out := make([]*market.Event, 0, len(primary)+len(fallback))
	ids := make(map[string]struct{}, len(primary))
	for _, ev := range primary {
		ids[ev.ID] = struct{}{}
		out = append(out, ev)
	}

	suppressed := 0
	for _, ev := range fallback {
		if !IsPriority(ev.CompetitionKey) {
			out = append(out, ev)
			continue
		}
		if admit(ev, ids, len(primary), policy.Mode) {
			ids[ev.ID] = struct{}{}
			out = append(out, ev)
			continue
		}
		suppressed++
	}

	if suppressed > 0 {
		telemetry.Metrics.EventsSuppressed.Add(int64(suppressed))
		telemetry.Debugf("merge: suppressed %d priority-league fallback events (mode=%s)", suppressed, policy.Mode)
	}
	return out
}

func admit(ev *market.Event, ids map[string]struct{}, primaryCount int, mode Mode) bool {
	if mode == ModeStrict {
		return primaryCount == 0
	}
	_, dup := ids[ev.ID]
	return !dup
}
