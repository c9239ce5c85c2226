package market

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Decimal is an upstream price or probability. It accepts JSON numbers and
// numeric strings; anything else decodes to 0 so a single malformed value
// leaves only its own selection without a price.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	*d = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*d = Decimal(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*d = Decimal(v)
	}
	return nil
}

// Usable reports whether d is a valid decimal price.
func (d Decimal) Usable() bool { return d > 1 }
