package display

import "strings"

const (
	dividerHeavy = "========================================================================"
	dividerLight = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"
)

var teamSuffixes = map[string]bool{
	"FC": true, "SC": true, "CF": true, "AFC": true, "FK": true,
	"BK": true, "IF": true, "SK": true, "CD": true, "AD": true,
	"UD": true, "SV": true, "CA": true, "RC": true,
}

// shortName keeps a team's distinctive word: "Arsenal FC" -> "Arsenal",
// "Manchester City" -> "City".
func shortName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	last := parts[len(parts)-1]
	if len(parts) > 1 && teamSuffixes[strings.ToUpper(last)] {
		return parts[len(parts)-2]
	}
	return last
}
