package continent

import "github.com/hexcrawl/worldgen/services/rng"

// Continent name fragments. Entries may be appended but never reordered: the
// name roll draws indexes from the seed-derived stream, so reordering would
// silently rename every continent generated so far.
var continentPrefixes = []string{
	"Aeska", "Bryn", "Cael", "Drav", "Eldra", "Ghar", "Ilyn", "Korva",
	"Mara", "Noth", "Oska", "Thal", "Umber", "Vael", "Wren", "Ysra",
}

var continentSuffixes = []string{
	"dor", "fall", "gard", "heim", "land", "mark",
	"mere", "reach", "rest", "shore", "vale", "wilds",
}

func continentName(stream rng.StreamInterface) string {
	prefix := continentPrefixes[stream.Intn(len(continentPrefixes))]
	suffix := continentSuffixes[stream.Intn(len(continentSuffixes))]
	return prefix + suffix
}
