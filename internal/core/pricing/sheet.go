package pricing

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/charleschow/soccer-props/internal/core/market"
)

// Sheet is the priced output for one event.
type Sheet struct {
	ID          string      `json:"id"`
	EventID     string      `json:"event_id"`
	EventName   string      `json:"event_name"`
	Competition string      `json:"competition"`
	Kickoff     time.Time   `json:"kickoff"`
	MarginPct   float64     `json:"margin_pct"`
	PricedAt    time.Time   `json:"priced_at"`
	Bets        []BetRecord `json:"bets"`
}

func NewSheet(ev *market.Event, marginPct float64, bets []BetRecord) Sheet {
	return Sheet{
		ID:          uuid.NewString(),
		EventID:     ev.ID,
		EventName:   ev.Name,
		Competition: ev.CompetitionName,
		Kickoff:     ev.Kickoff,
		MarginPct:   marginPct,
		PricedAt:    time.Now().UTC(),
		Bets:        bets,
	}
}

// SortForPreview orders records by subject, then market and detail. The
// sort is stable so equal keys keep generation order.
func SortForPreview(bets []BetRecord) {
	sort.SliceStable(bets, func(i, j int) bool {
		if bets[i].Subject != bets[j].Subject {
			return bets[i].Subject < bets[j].Subject
		}
		return bets[i].Market+" "+bets[i].Detail < bets[j].Market+" "+bets[j].Detail
	})
}
