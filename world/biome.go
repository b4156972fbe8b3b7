package world

// Biome labels the dominant terrain of a tile. Values are stable wire
// strings; new biomes may be appended but existing values never change.
type Biome string

const (
	BiomeOcean     Biome = "ocean"
	BiomeRiver     Biome = "river"
	BiomeBeach     Biome = "beach"
	BiomePlains    Biome = "plains"
	BiomeForest    Biome = "forest"
	BiomeJungle    Biome = "jungle"
	BiomeDesert    Biome = "desert"
	BiomeSavanna   Biome = "savanna"
	BiomeSwamp     Biome = "swamp"
	BiomeTundra    Biome = "tundra"
	BiomeTaiga     Biome = "taiga"
	BiomeHills     Biome = "hills"
	BiomeHighlands Biome = "highlands"
	BiomeMountains Biome = "mountains"
	BiomeAlpine    Biome = "alpine"
)

// AllBiomes lists every biome in declaration order.
var AllBiomes = []Biome{
	BiomeOcean, BiomeRiver, BiomeBeach, BiomePlains, BiomeForest,
	BiomeJungle, BiomeDesert, BiomeSavanna, BiomeSwamp, BiomeTundra,
	BiomeTaiga, BiomeHills, BiomeHighlands, BiomeMountains, BiomeAlpine,
}

// IsWater reports whether the biome is a water surface.
func (b Biome) IsWater() bool {
	return b == BiomeOcean || b == BiomeRiver
}

// IsHighland reports whether the biome belongs to the raised terrain band
// that river sources spawn from.
func (b Biome) IsHighland() bool {
	switch b {
	case BiomeHills, BiomeHighlands, BiomeMountains, BiomeAlpine:
		return true
	}
	return false
}

// IsValid reports whether b is one of the declared biomes.
func (b Biome) IsValid() bool {
	for _, known := range AllBiomes {
		if b == known {
			return true
		}
	}
	return false
}

// baseDanger is the danger contribution of the biome itself before elevation
// and local variation are applied.
var baseDanger = map[Biome]int{
	BiomeOcean:     3,
	BiomeRiver:     2,
	BiomeBeach:     1,
	BiomePlains:    1,
	BiomeForest:    2,
	BiomeJungle:    5,
	BiomeDesert:    4,
	BiomeSavanna:   3,
	BiomeSwamp:     6,
	BiomeTundra:    4,
	BiomeTaiga:     3,
	BiomeHills:     3,
	BiomeHighlands: 4,
	BiomeMountains: 6,
	BiomeAlpine:    7,
}

// BaseDanger returns the biome's intrinsic danger on the 0-10 scale.
// Unknown biomes default to a middling 5.
func (b Biome) BaseDanger() int {
	if d, ok := baseDanger[b]; ok {
		return d
	}
	return 5
}

// Season shifts the temperature field. Winter runs coldest, summer warmest,
// spring and fall sit between.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// AllSeasons lists every season in calendar order.
var AllSeasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// IsValid reports whether s is one of the declared seasons.
func (s Season) IsValid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall:
		return true
	}
	return false
}
