package players

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/pricing"
)

type subjectsFile struct {
	Players []pricing.PlayerSubject `yaml:"players"`
}

// LoadSubjects reads a YAML list of player subjects:
//
//	players:
//	  - name: Bukayo Saka
//	    side: home
//	    base: {goal: 2.9, shots_on_target: 1.45}
//	    shot_lines: [{threshold: 2}, {threshold: 4, price: 3.1}]
func LoadSubjects(path string) ([]pricing.PlayerSubject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subjects: %w", err)
	}
	return ParseSubjects(data)
}

func ParseSubjects(data []byte) ([]pricing.PlayerSubject, error) {
	var f subjectsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse subjects: %w", err)
	}
	out := f.Players[:0]
	for _, s := range f.Players {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		s.Side = market.ParseSide(string(s.Side))
		out = append(out, s)
	}
	return out, nil
}

// FillStats copies per-90 stats from the DB into subjects whose stats are
// all zero. It returns the number of subjects filled.
func FillStats(db *DB, subjects []pricing.PlayerSubject) int {
	n := 0
	for i := range subjects {
		if subjects[i].Stats != (pricing.Stats{}) {
			continue
		}
		rec, ok := db.Lookup(subjects[i].Name)
		if !ok {
			continue
		}
		subjects[i].Stats = rec.Stats
		n++
	}
	return n
}
