package players

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charleschow/soccer-props/internal/core/market"
	"github.com/charleschow/soccer-props/internal/core/pricing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Martin Ødegaard", "martin odegaard"},
		{"  Kylian   Mbappé ", "kylian mbappe"},
		{"Robert Lewandowski", "robert lewandowski"},
		{"Łukasz Fabiański", "lukasz fabianski"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const fbrefSample = `[
  {"Player": "Bukayo Saka", "Squad": "Arsenal", "Gls_90": 0.45, "Ast_90": "0.38", "SoT_90": 1.2, "Sh_90": 3.1, "Pass_Att_90": 38.5, "Fls_90": 0.9, "Fld_90": "2,1"},
  {"Player": "Martin Ødegaard", "Squad": "Arsenal", "Gls_90": 0.25, "Ast_90": null, "SoT_90": "", "Sh_90": 2.2, "Pass_Att_90": 61, "Fls_90": 1.1, "Fld_90": 1.4},
  {"Player": "Mohamed Salah", "Squad": "Liverpool", "Gls_90": 0.7},
  {"Player": "Bukayo Saka", "Squad": "Duplicate FC", "Gls_90": 9},
  {"Player": "", "Squad": "Nobody"}
]`

func TestParseDB(t *testing.T) {
	db, err := ParseDB([]byte("\xef\xbb\xbf" + fbrefSample))
	if err != nil {
		t.Fatalf("ParseDB: %v", err)
	}
	if db.Len() != 3 {
		t.Fatalf("Len = %d, want 3", db.Len())
	}

	saka, ok := db.Lookup("bukayo  saka")
	if !ok {
		t.Fatal("saka not found")
	}
	if saka.Squad != "Arsenal" || saka.Stats.Goals != 0.45 || saka.Stats.Assists != 0.38 || saka.Stats.FoulsDrawn != 2.1 {
		t.Errorf("unexpected record %+v", saka)
	}

	ode, ok := db.Lookup("Martin Odegaard")
	if !ok {
		t.Fatal("accent-insensitive lookup failed")
	}
	if ode.Stats.Assists != 0 || ode.Stats.ShotsOnTarget != 0 || ode.Stats.Passes != 61 {
		t.Errorf("lenient columns: %+v", ode.Stats)
	}

	if got := db.Squads(); len(got) != 2 || got[0] != "Arsenal" || got[1] != "Liverpool" {
		t.Errorf("Squads = %v", got)
	}
	if got := db.Search("SA", "", 0); len(got) != 2 {
		t.Errorf("Search(sa) = %d results, want 2", len(got))
	}
	if got := db.Search("sa", "Liverpool", 0); len(got) != 1 || got[0].Player != "Mohamed Salah" {
		t.Errorf("Search(sa, Liverpool) = %+v", got)
	}
}

func TestParseDBMalformed(t *testing.T) {
	if _, err := ParseDB([]byte(`{"Player": "x"}`)); err == nil {
		t.Error("expected error for non-array payload")
	}
	var db *DB
	if _, ok := db.Lookup("anyone"); ok {
		t.Error("nil DB should find nothing")
	}
}

func TestLoadSubjectsAndFill(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subjects.yaml")
	body := `players:
  - name: Bukayo Saka
    side: HOME
    base: {goal: 2.9}
    shot_lines: [{threshold: 2}, {threshold: 4, price: 3.1}]
  - name: Martin Odegaard
    side: away
    stats: {goals: 0.3}
  - name: "  "
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	subjects, err := LoadSubjects(path)
	if err != nil {
		t.Fatalf("LoadSubjects: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("got %d subjects", len(subjects))
	}
	if subjects[0].Side != market.SideHome || subjects[0].Base.Goal != 2.9 || len(subjects[0].ShotLines) != 2 {
		t.Errorf("first subject %+v", subjects[0])
	}

	db, _ := ParseDB([]byte(fbrefSample))
	if n := FillStats(db, subjects); n != 1 {
		t.Errorf("FillStats filled %d, want 1", n)
	}
	if subjects[0].Stats.Shots != 3.1 {
		t.Errorf("stats not filled: %+v", subjects[0].Stats)
	}
	if subjects[1].Stats != (pricing.Stats{Goals: 0.3}) {
		t.Errorf("existing stats overwritten: %+v", subjects[1].Stats)
	}
}

func TestLoadSubjectsMissingFile(t *testing.T) {
	if _, err := LoadSubjects(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}
