package teams

// aliases lists alternate spellings per canonical club name for the leagues
// the hierarchical feed covers. Keys and values are already normalized.
var aliases = map[string][]string{
	// England
	"manchester united":       {"man united", "man utd", "manchester utd"},
	"manchester city":         {"man city", "manchester c"},
	"wolverhampton wanderers": {"wolves", "wolverhampton"},
	"brighton & hove albion":  {"brighton", "brighton hove albion", "brighton and hove albion"},
	"nottingham forest":       {"nottm forest", "nott'm forest", "nottingham"},
	"tottenham hotspur":       {"spurs", "tottenham"},
	"west ham united":         {"west ham"},
	"newcastle united":        {"newcastle", "newcastle utd"},
	"leeds united":            {"leeds"},
	"bournemouth":             {"afc bournemouth"},

	// Spain
	"atletico de madrid": {"atletico madrid", "atletico", "atl. madrid", "atl madrid"},
	"real sociedad":      {"r. sociedad"},
	"athletic club":      {"athletic bilbao", "athletic", "ath bilbao", "bilbao"},
	"celta de vigo":      {"celta vigo", "celta"},
	"rayo vallecano":     {"rayo", "vallecano"},
	"real betis":         {"betis"},
	"deportivo alaves":   {"alaves"},

	// Germany
	"bayern munchen":           {"bayern munich", "bayern", "fc bayern", "fc bayern munchen", "fc bayern munich"},
	"borussia dortmund":        {"dortmund", "bvb"},
	"borussia monchengladbach": {"borussia m'gladbach", "b. monchengladbach", "gladbach", "monchengladbach"},
	"bayer leverkusen":         {"leverkusen", "bayer 04", "bayer 04 leverkusen"},
	"rasenballsport leipzig":   {"rb leipzig", "leipzig"},
	"vfl wolfsburg":            {"wolfsburg"},
	"tsg hoffenheim":           {"hoffenheim", "tsg 1899 hoffenheim"},
	"mainz 05":                 {"mainz", "1. fsv mainz 05"},
	"sc freiburg":              {"freiburg"},
	"fc koln":                  {"koln", "cologne", "fc cologne", "1. fc koln"},
	"eintracht frankfurt":      {"frankfurt"},
	"1. fc union berlin":       {"union berlin"},
	"hamburger sv":             {"hamburg", "hsv"},
	"werder bremen":            {"bremen", "sv werder bremen"},
	"fc st. pauli":             {"st. pauli", "st pauli"},

	// Italy
	"inter milan": {"inter", "internazionale", "inter milano"},
	"milan":       {"ac milan", "a.c. milan"},
	"juventus":    {"juve"},
	"ssc napoli":  {"napoli"},
	"as roma":     {"roma"},
	"ss lazio":    {"lazio"},
	"atalanta bc": {"atalanta"},
	"verona":      {"hellas verona"},

	// France
	"paris saint-germain": {"psg", "paris saint germain", "paris sg", "paris"},
	"olympique marseille": {"marseille", "om", "olympique de marseille"},
	"olympique lyonnais":  {"lyon", "ol"},
	"as monaco":           {"monaco"},
	"lille osc":           {"lille"},
	"rc lens":             {"lens"},
	"ogc nice":            {"nice"},
	"stade rennais":       {"rennes"},
	"rc strasbourg":       {"strasbourg", "strasbourg alsace"},
	"stade brest":         {"brest", "stade brestois"},

	// European competitions
	"sl benfica":         {"benfica"},
	"fc porto":           {"porto"},
	"sporting cp":        {"sporting", "sporting lisbon"},
	"afc ajax":           {"ajax", "ajax amsterdam"},
	"psv eindhoven":      {"psv", "eindhoven"},
	"galatasaray sk":     {"galatasaray"},
	"fenerbahce sk":      {"fenerbahce"},
	"club brugge kv":     {"club brugge", "club bruges"},
	"olympiacos piraeus": {"olympiacos", "olympiakos"},
	"bodo/glimt":         {"bodoe/glimt", "fk bodo/glimt"},
	"dinamo zagreb":      {"din. zagreb", "gnk dinamo zagreb"},

	// Serbia
	"crvena zvezda": {"red star belgrade", "fk crvena zvezda", "red star"},
	"partizan":      {"fk partizan", "partizan belgrade"},
}
