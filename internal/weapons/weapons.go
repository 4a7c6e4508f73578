// Package weapons normalizes weapon identifiers and classifies them into
// categories.
package weapons

import "strings"

// Prefix is the entity-class token stripped from weapon names.
const Prefix = "weapon_"

// Category names.
const (
	Rifles   = "rifles"
	SMGs     = "smgs"
	Pistols  = "pistols"
	Snipers  = "snipers"
	Shotguns = "shotguns"
	Heavy    = "heavy"
	Grenades = "grenades"
	Other    = "other"
)

var categories = map[string][]string{
	Rifles:   {"ak47", "m4a1", "m4a1_silencer", "sg556", "aug", "galilar", "famas"},
	SMGs:     {"mp9", "mac10", "mp7", "ump45", "p90", "mp5sd", "bizon"},
	Pistols:  {"glock", "usp_silencer", "hkp2000", "p250", "fiveseven", "tec9", "deagle", "elite", "cz75a", "revolver"},
	Snipers:  {"awp", "ssg08", "scar20", "g3sg1"},
	Shotguns: {"nova", "xm1014", "mag7", "sawedoff"},
	Heavy:    {"m249", "negev"},
	Grenades: {"hegrenade", "flashbang", "smokegrenade", "molotov", "incgrenade", "decoy"},
}

// byName is the inverse of categories.
var byName = func() map[string]string {
	m := make(map[string]string)
	for cat, names := range categories {
		for _, n := range names {
			m[n] = cat
		}
	}
	return m
}()

// Normalize lowercases name, strips the weapon_ prefix, and trims whitespace.
// It repeats until the name stops changing, so Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	for {
		next := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), Prefix, ""))
		if next == name {
			return next
		}
		name = next
	}
}

// CategoryOf returns the category of a weapon name, or Other.
func CategoryOf(name string) string {
	if cat, ok := byName[Normalize(name)]; ok {
		return cat
	}
	return Other
}

// Names returns the weapon names belonging to a category.
func Names(category string) []string {
	return append([]string(nil), categories[category]...)
}
