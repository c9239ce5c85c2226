// Package teams resolves the different spellings feeds use for the same club.
package teams

import (
	"strings"

	"github.com/charleschow/soccer-props/internal/core/players"
)

var canonical = func() map[string]string {
	m := make(map[string]string)
	for name, alts := range aliases {
		for _, a := range alts {
			m[a] = name
		}
	}
	return m
}()

// Canonical normalizes a team name and resolves it through the alias table.
func Canonical(name string) string {
	n := players.Normalize(name)
	if c, ok := canonical[n]; ok {
		return c
	}
	return n
}

// Same reports whether two team names refer to the same club.
func Same(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	return ca != "" && ca == cb
}

// Matches reports whether a free-text query picks out the team: an exact
// canonical match, or one name containing the other.
func Matches(team, query string) bool {
	t, q := Canonical(team), Canonical(query)
	if t == "" || q == "" {
		return false
	}
	return t == q || strings.Contains(t, q) || strings.Contains(q, t)
}
