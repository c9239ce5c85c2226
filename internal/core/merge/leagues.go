package merge

// League is one priority league under both feeds' naming schemes.
type League struct {
	Name        string
	CloudbetKey string
	OddsAPIKey  string
}

// PriorityLeagues are the leagues both feeds cover.
var PriorityLeagues = []League{
	{"England - Premier League", "soccer-england-premier-league", "soccer_epl"},
	{"France - Ligue 1", "soccer-france-ligue-1", "soccer_france_ligue_one"},
	{"Germany - Bundesliga", "soccer-germany-bundesliga", "soccer_germany_bundesliga"},
	{"Italy - Serie A", "soccer-italy-serie-a", "soccer_italy_serie_a"},
	{"Spain - LaLiga", "soccer-spain-laliga", "soccer_spain_la_liga"},
}

var priorityKeys = func() map[string]League {
	m := make(map[string]League, 2*len(PriorityLeagues))
	for _, l := range PriorityLeagues {
		m[l.CloudbetKey] = l
		m[l.OddsAPIKey] = l
	}
	return m
}()

// IsPriority reports whether a competition key, under either naming
// scheme, belongs to a priority league.
func IsPriority(competitionKey string) bool {
	_, ok := priorityKeys[competitionKey]
	return ok
}

// LeagueFor returns the priority league for a competition key.
func LeagueFor(competitionKey string) (League, bool) {
	l, ok := priorityKeys[competitionKey]
	return l, ok
}
