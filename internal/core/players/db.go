package players

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charleschow/soccer-props/internal/core/pricing"
)

// Record is one player row of the FBref per-90 export.
type Record struct {
	Player string
	Squad  string
	Stats  pricing.Stats
}

// DB is an in-memory per-90 stats table keyed by normalized player name.
type DB struct {
	records []Record
	byName  map[string]int
}

// fbrefRow mirrors merged_player_stats.json. Numeric columns arrive as
// numbers, numeric strings, empty strings or null depending on the scrape.
type fbrefRow struct {
	Player    string     `json:"Player"`
	Squad     string     `json:"Squad"`
	Gls90     flexNumber `json:"Gls_90"`
	Ast90     flexNumber `json:"Ast_90"`
	SoT90     flexNumber `json:"SoT_90"`
	Sh90      flexNumber `json:"Sh_90"`
	PassAtt90 flexNumber `json:"Pass_Att_90"`
	Fls90     flexNumber `json:"Fls_90"`
	Fld90     flexNumber `json:"Fld_90"`
}

type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}

func LoadDB(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read player stats: %w", err)
	}
	db, err := ParseDB(data)
	if err != nil {
		return nil, fmt.Errorf("parse player stats %s: %w", path, err)
	}
	return db, nil
}

func ParseDB(data []byte) (*DB, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var rows []fbrefRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	db := &DB{byName: make(map[string]int, len(rows))}
	for _, r := range rows {
		name := strings.TrimSpace(r.Player)
		if name == "" {
			continue
		}
		key := Normalize(name)
		if _, dup := db.byName[key]; dup {
			continue
		}
		db.byName[key] = len(db.records)
		db.records = append(db.records, Record{
			Player: name,
			Squad:  strings.TrimSpace(r.Squad),
			Stats: pricing.Stats{
				Goals:         float64(r.Gls90),
				Assists:       float64(r.Ast90),
				Shots:         float64(r.Sh90),
				ShotsOnTarget: float64(r.SoT90),
				Fouls:         float64(r.Fls90),
				FoulsDrawn:    float64(r.Fld90),
				Passes:        float64(r.PassAtt90),
			},
		})
	}
	return db, nil
}

func (d *DB) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Lookup finds a player by name, ignoring case, accents and spacing.
func (d *DB) Lookup(name string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	i, ok := d.byName[Normalize(name)]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Squads returns the distinct squad names, sorted.
func (d *DB) Squads() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.records {
		if r.Squad == "" || seen[r.Squad] {
			continue
		}
		seen[r.Squad] = true
		out = append(out, r.Squad)
	}
	sort.Strings(out)
	return out
}

// Search returns up to limit players whose name contains query, optionally
// restricted to one squad. Matching ignores case and accents.
func (d *DB) Search(query, squad string, limit int) []Record {
	if d == nil {
		return nil
	}
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var out []Record
	for _, r := range d.records {
		if squad != "" && r.Squad != squad {
			continue
		}
		if !strings.Contains(Normalize(r.Player), q) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
