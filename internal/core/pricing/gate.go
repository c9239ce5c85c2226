package pricing

import (
	"github.com/charleschow/soccer-props/internal/config"
	"github.com/charleschow/soccer-props/internal/core/odds"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

// family groups markets that share gate rules.
type family int

const (
	famGeneral family = iota
	famShots          // shot counts and shots on target
)

// rawPrice publishes a price without any margin.
const rawPrice = 0

// sheet collects the records of one subject through the gate.
type sheet struct {
	subject string
	limits  config.GateLimits
	out     []BetRecord
}

// emit applies marginPct, drops unpublishable prices, caps shot markets,
// clamps to the ceiling and formats. It returns the published price as
// formatted, or NoPrice when dropped.
func (s *sheet) emit(fam family, mkt, detail string, odd, marginPct float64) float64 {
	price := odds.ApplyMargin(odd, marginPct)
	if !odds.IsPrice(price) {
		telemetry.Metrics.BetsDropped.Inc()
		return odds.NoPrice
	}
	if fam == famShots && price > s.limits.ShotsCap {
		telemetry.Metrics.BetsDropped.Inc()
		return odds.NoPrice
	}
	if price > s.limits.Ceiling {
		price = s.limits.Ceiling
	}
	rec := BetRecord{
		Subject: s.subject,
		Market:  mkt,
		Detail:  detail,
		Price:   odds.FormatOdd(price),
	}
	s.out = append(s.out, rec)
	telemetry.Metrics.BetsEmitted.Inc()
	return odds.ParseOdd(rec.Price)
}
