package settlement

import (
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Word tables for procedural naming. Entries may be appended but never
// reordered: placement draws indexes from the region stream, so reordering
// would silently rename every world generated so far.
var namePrefixes = []string{
	"Ash", "Briar", "Cinder", "Dun", "Elder", "Fern", "Gold", "Haven",
	"Iron", "Marsh", "Oak", "Raven", "Salt", "Stone", "Thorn", "Wolf",
}

var settlementSuffixes = []string{
	"burg", "crossing", "ford", "gate", "hollow", "mark",
	"moor", "reach", "stead", "vale", "watch", "wick",
}

var socialSites = []string{
	"Bazaar", "Hostel", "Sanctuary", "Shrine", "Tavern", "Trading Post",
}

var explorationSites = []string{
	"Cairn", "Monolith", "Overlook", "Ruins", "Spire", "Standing Stones",
}

var dungeonSites = []string{
	"Barrow", "Catacombs", "Delve", "Lair", "Pit", "Warrens",
}

func settlementName(stream rng.StreamInterface) string {
	prefix := namePrefixes[stream.Intn(len(namePrefixes))]
	suffix := settlementSuffixes[stream.Intn(len(settlementSuffixes))]
	return prefix + suffix
}

func poiName(t world.POIType, stream rng.StreamInterface) string {
	prefix := namePrefixes[stream.Intn(len(namePrefixes))]
	var sites []string
	switch t {
	case world.POISocial:
		sites = socialSites
	case world.POIDungeon:
		sites = dungeonSites
	default:
		sites = explorationSites
	}
	return prefix + " " + sites[stream.Intn(len(sites))]
}

// poiTypeForDanger rolls the POI sub-type weighted by local danger: safe
// tiles skew social, dangerous tiles skew dungeon, exploration sites appear
// everywhere. At danger 0 dungeons cannot roll; at danger 10 social sites
// cannot.
func poiTypeForDanger(danger int, stream rng.StreamInterface) world.POIType {
	social := 8 - danger
	if social < 0 {
		social = 0
	}
	dungeon := danger - 2
	if dungeon < 0 {
		dungeon = 0
	}
	exploration := 4

	roll := stream.Intn(social + exploration + dungeon)
	switch {
	case roll < social:
		return world.POISocial
	case roll < social+exploration:
		return world.POIExploration
	default:
		return world.POIDungeon
	}
}
