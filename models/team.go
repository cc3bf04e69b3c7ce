package models

import (
	"strings"
)

// CanonicalTeamNames lists the full "City Mascot" names used as the equality
// key for every team comparison in the survivor pool.
var CanonicalTeamNames = []string{
	// AFC East
	"Buffalo Bills", "Miami Dolphins", "New England Patriots", "New York Jets",
	// AFC North
	"Baltimore Ravens", "Cincinnati Bengals", "Cleveland Browns", "Pittsburgh Steelers",
	// AFC South
	"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars", "Tennessee Titans",
	// AFC West
	"Denver Broncos", "Kansas City Chiefs", "Las Vegas Raiders", "Los Angeles Chargers",
	// NFC East
	"Dallas Cowboys", "New York Giants", "Philadelphia Eagles", "Washington Commanders",
	// NFC North
	"Chicago Bears", "Detroit Lions", "Green Bay Packers", "Minnesota Vikings",
	// NFC South
	"Atlanta Falcons", "Carolina Panthers", "New Orleans Saints", "Tampa Bay Buccaneers",
	// NFC West
	"Arizona Cardinals", "Los Angeles Rams", "San Francisco 49ers", "Seattle Seahawks",
}

// teamAliases maps lowercased alternate spellings to canonical names.
// Covers the abbreviated city forms and shortened franchise names that show
// up in imported pick data.
var teamAliases = map[string]string{
	// City-abbreviation forms
	"buf bills":      "Buffalo Bills",
	"mia dolphins":   "Miami Dolphins",
	"ne patriots":    "New England Patriots",
	"nyj jets":       "New York Jets",
	"ny jets":        "New York Jets",
	"bal ravens":     "Baltimore Ravens",
	"cin bengals":    "Cincinnati Bengals",
	"cle browns":     "Cleveland Browns",
	"pit steelers":   "Pittsburgh Steelers",
	"hou texans":     "Houston Texans",
	"ind colts":      "Indianapolis Colts",
	"jax jaguars":    "Jacksonville Jaguars",
	"ten titans":     "Tennessee Titans",
	"den broncos":    "Denver Broncos",
	"kc chiefs":      "Kansas City Chiefs",
	"lv raiders":     "Las Vegas Raiders",
	"la chargers":    "Los Angeles Chargers",
	"lac chargers":   "Los Angeles Chargers",
	"dal cowboys":    "Dallas Cowboys",
	"nyg giants":     "New York Giants",
	"ny giants":      "New York Giants",
	"phi eagles":     "Philadelphia Eagles",
	"was commanders": "Washington Commanders",
	"wsh commanders": "Washington Commanders",
	"chi bears":      "Chicago Bears",
	"det lions":      "Detroit Lions",
	"gb packers":     "Green Bay Packers",
	"min vikings":    "Minnesota Vikings",
	"atl falcons":    "Atlanta Falcons",
	"car panthers":   "Carolina Panthers",
	"no saints":      "New Orleans Saints",
	"tb buccaneers":  "Tampa Bay Buccaneers",
	"ari cardinals":  "Arizona Cardinals",
	"la rams":        "Los Angeles Rams",
	"lar rams":       "Los Angeles Rams",
	"sf 49ers":       "San Francisco 49ers",
	"sea seahawks":   "Seattle Seahawks",

	// Shortened franchise names
	"bills":         "Buffalo Bills",
	"dolphins":      "Miami Dolphins",
	"patriots":      "New England Patriots",
	"jets":          "New York Jets",
	"ravens":        "Baltimore Ravens",
	"bengals":       "Cincinnati Bengals",
	"browns":        "Cleveland Browns",
	"steelers":      "Pittsburgh Steelers",
	"texans":        "Houston Texans",
	"colts":         "Indianapolis Colts",
	"jaguars":       "Jacksonville Jaguars",
	"titans":        "Tennessee Titans",
	"broncos":       "Denver Broncos",
	"chiefs":        "Kansas City Chiefs",
	"raiders":       "Las Vegas Raiders",
	"chargers":      "Los Angeles Chargers",
	"cowboys":       "Dallas Cowboys",
	"giants":        "New York Giants",
	"eagles":        "Philadelphia Eagles",
	"commanders":    "Washington Commanders",
	"washington":    "Washington Commanders",
	"bears":         "Chicago Bears",
	"lions":         "Detroit Lions",
	"packers":       "Green Bay Packers",
	"vikings":       "Minnesota Vikings",
	"falcons":       "Atlanta Falcons",
	"panthers":      "Carolina Panthers",
	"saints":        "New Orleans Saints",
	"buccaneers":    "Tampa Bay Buccaneers",
	"bucs":          "Tampa Bay Buccaneers",
	"cardinals":     "Arizona Cardinals",
	"rams":          "Los Angeles Rams",
	"49ers":         "San Francisco 49ers",
	"niners":        "San Francisco 49ers",
	"seahawks":      "Seattle Seahawks",
	"football team": "Washington Commanders",
}

// canonicalSet is built once for O(1) canonical-name checks.
var canonicalSet = func() map[string]string {
	set := make(map[string]string, len(CanonicalTeamNames))
	for _, name := range CanonicalTeamNames {
		set[strings.ToLower(name)] = name
	}
	return set
}()

// NormalizeTeamName maps a raw team name to its canonical full name.
// Pure and total: an input with no known mapping is returned unchanged
// (whitespace collapsed), since an unmapped name may already be the correct
// canonical form. Idempotent by construction: canonical names map to
// themselves.
func NormalizeTeamName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return name
	}

	lower := strings.ToLower(name)
	if canonical, ok := canonicalSet[lower]; ok {
		return canonical
	}
	if canonical, ok := teamAliases[lower]; ok {
		return canonical
	}
	return name
}

// IsCanonicalTeam reports whether name is one of the 32 canonical NFL team
// names. A false result means the name failed to normalize to a real team,
// which downstream treats as an undetermined outcome.
func IsCanonicalTeam(name string) bool {
	_, ok := canonicalSet[strings.ToLower(name)]
	return ok
}
