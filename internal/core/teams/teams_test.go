package teams

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Man Utd", "manchester united"},
		{"  Bayern   Munich ", "bayern munchen"},
		{"FC Bayern München", "bayern munchen"},
		{"Atlético Madrid", "atletico de madrid"},
		{"Arsenal", "arsenal"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Canonical(tt.in); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSame(t *testing.T) {
	if !Same("PSG", "Paris Saint-Germain") {
		t.Error("PSG should match Paris Saint-Germain")
	}
	if Same("Manchester United", "Manchester City") {
		t.Error("different clubs matched")
	}
	if Same("", "") {
		t.Error("empty names should never match")
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		team, query string
		want        bool
	}{
		{"Tottenham Hotspur", "spurs", true},
		{"Borussia Dortmund", "dortmund", true},
		{"Real Madrid", "madrid", true},
		{"Chelsea", "arsenal", false},
		{"Chelsea", "", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.team, tt.query); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.team, tt.query, got, tt.want)
		}
	}
}
