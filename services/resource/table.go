// Package resource rolls deposits onto generated tiles from per-biome spawn
// tables and stamps named resource clusters over matching terrain.
package resource

import (
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/world"
)

// TableEntry is one rollable deposit kind for a biome.
type TableEntry struct {
	Type world.ResourceType `json:"type"`
	// Names are the display names a successful roll draws from.
	Names       []string `json:"names"`
	SpawnChance float64  `json:"spawn_chance"`
	MinRarity   int      `json:"min_rarity"`
	MaxRarity   int      `json:"max_rarity"`
	MinQuantity int      `json:"min_quantity"`
	MaxQuantity int      `json:"max_quantity"`
}

// Table maps each biome to its spawn entries. Entries are rolled in slice
// order, so table order is part of the deterministic output.
type Table map[world.Biome][]TableEntry

// DefaultTable returns the compiled-in spawn tables.
func DefaultTable() Table {
	return Table{
		// Water biomes
		world.BiomeOcean: {
			{Type: world.ResourceFish, Names: []string{"Fishing Spot", "Herring Shoal", "Tuna Run"}, SpawnChance: 0.30, MinRarity: 1, MaxRarity: 4, MinQuantity: 3, MaxQuantity: 8},
			{Type: world.ResourceMagical, Names: []string{"Pearl Formation"}, SpawnChance: 0.03, MinRarity: 7, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 2},
		},
		world.BiomeRiver: {
			{Type: world.ResourceFish, Names: []string{"Trout Run", "Salmon Spawning Ground"}, SpawnChance: 0.30, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceWater, Names: []string{"Clearwater Draw", "Reed Shallows"}, SpawnChance: 0.20, MinRarity: 1, MaxRarity: 3, MinQuantity: 4, MaxQuantity: 9},
		},
		world.BiomeBeach: {
			{Type: world.ResourceFish, Names: []string{"Crab Beds", "Clam Flats"}, SpawnChance: 0.18, MinRarity: 1, MaxRarity: 3, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceStone, Names: []string{"Clay Deposit"}, SpawnChance: 0.10, MinRarity: 1, MaxRarity: 3, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourceGem, Names: []string{"Tide-polished Agate"}, SpawnChance: 0.04, MinRarity: 5, MaxRarity: 8, MinQuantity: 1, MaxQuantity: 2},
		},

		// Temperate lowlands
		world.BiomePlains: {
			{Type: world.ResourceCrop, Names: []string{"Wild Wheat", "Barley Run"}, SpawnChance: 0.30, MinRarity: 1, MaxRarity: 3, MinQuantity: 4, MaxQuantity: 9},
			{Type: world.ResourceAnimal, Names: []string{"Grazing Herd", "Hare Warren"}, SpawnChance: 0.22, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceHerb, Names: []string{"Herb Patch"}, SpawnChance: 0.12, MinRarity: 2, MaxRarity: 5, MinQuantity: 1, MaxQuantity: 4},
		},
		world.BiomeForest: {
			{Type: world.ResourceHerb, Names: []string{"Herb Patch", "Mushroom Circle"}, SpawnChance: 0.28, MinRarity: 2, MaxRarity: 5, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceAnimal, Names: []string{"Deer Run", "Wild Honey Hive"}, SpawnChance: 0.24, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceCrop, Names: []string{"Berry Bush"}, SpawnChance: 0.14, MinRarity: 1, MaxRarity: 3, MinQuantity: 3, MaxQuantity: 6},
		},
		world.BiomeJungle: {
			{Type: world.ResourceHerb, Names: []string{"Feverleaf Stand", "Liana Tangle"}, SpawnChance: 0.30, MinRarity: 3, MaxRarity: 6, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceAnimal, Names: []string{"Parrot Roost", "Boar Trail"}, SpawnChance: 0.18, MinRarity: 2, MaxRarity: 5, MinQuantity: 1, MaxQuantity: 4},
			{Type: world.ResourceMagical, Names: []string{"Glowmoss Hollow"}, SpawnChance: 0.06, MinRarity: 7, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 2},
		},
		world.BiomeSwamp: {
			{Type: world.ResourceHerb, Names: []string{"Bogroot Bed", "Witchreed Stand"}, SpawnChance: 0.26, MinRarity: 3, MaxRarity: 6, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceWater, Names: []string{"Peat Pool"}, SpawnChance: 0.14, MinRarity: 1, MaxRarity: 3, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourceMagical, Names: []string{"Witchlight Mire"}, SpawnChance: 0.08, MinRarity: 7, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 2},
		},

		// Arid belt
		world.BiomeDesert: {
			{Type: world.ResourceStone, Names: []string{"Sandstone Shelf", "Clay Deposit"}, SpawnChance: 0.16, MinRarity: 1, MaxRarity: 3, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourceGem, Names: []string{"Crystal Formation"}, SpawnChance: 0.08, MinRarity: 5, MaxRarity: 9, MinQuantity: 1, MaxQuantity: 3},
			{Type: world.ResourceWater, Names: []string{"Hidden Oasis"}, SpawnChance: 0.04, MinRarity: 4, MaxRarity: 7, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceHerb, Names: []string{"Desert Plant"}, SpawnChance: 0.08, MinRarity: 3, MaxRarity: 6, MinQuantity: 1, MaxQuantity: 3},
		},
		world.BiomeSavanna: {
			{Type: world.ResourceAnimal, Names: []string{"Antelope Herd", "Lion Range"}, SpawnChance: 0.26, MinRarity: 1, MaxRarity: 5, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceCrop, Names: []string{"Sorghum Stand"}, SpawnChance: 0.14, MinRarity: 1, MaxRarity: 3, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourceStone, Names: []string{"Granite Kopje"}, SpawnChance: 0.10, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 6},
		},

		// Cold belt
		world.BiomeTundra: {
			{Type: world.ResourceAnimal, Names: []string{"Caribou Crossing", "Seal Haulout"}, SpawnChance: 0.20, MinRarity: 2, MaxRarity: 5, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceStone, Names: []string{"Frost-split Scree"}, SpawnChance: 0.14, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceOre, Names: []string{"Bog Iron"}, SpawnChance: 0.08, MinRarity: 3, MaxRarity: 6, MinQuantity: 2, MaxQuantity: 4},
		},
		world.BiomeTaiga: {
			{Type: world.ResourceAnimal, Names: []string{"Elk Run", "Fur Trapline"}, SpawnChance: 0.22, MinRarity: 2, MaxRarity: 5, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceHerb, Names: []string{"Pine Resin Stand"}, SpawnChance: 0.14, MinRarity: 2, MaxRarity: 5, MinQuantity: 2, MaxQuantity: 4},
			{Type: world.ResourceStone, Names: []string{"Glacial Erratic"}, SpawnChance: 0.08, MinRarity: 1, MaxRarity: 4, MinQuantity: 2, MaxQuantity: 5},
		},

		// Raised terrain
		world.BiomeHills: {
			{Type: world.ResourceStone, Names: []string{"Stone Vein", "Quarry Face"}, SpawnChance: 0.26, MinRarity: 1, MaxRarity: 4, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourceOre, Names: []string{"Metal Ore", "Copper Seam"}, SpawnChance: 0.20, MinRarity: 3, MaxRarity: 6, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceGem, Names: []string{"Gem Deposit"}, SpawnChance: 0.06, MinRarity: 5, MaxRarity: 8, MinQuantity: 1, MaxQuantity: 3},
		},
		world.BiomeHighlands: {
			{Type: world.ResourceOre, Names: []string{"Metal Ore", "Iron Bloom"}, SpawnChance: 0.26, MinRarity: 3, MaxRarity: 7, MinQuantity: 2, MaxQuantity: 5},
			{Type: world.ResourceStone, Names: []string{"Stone Vein"}, SpawnChance: 0.22, MinRarity: 1, MaxRarity: 4, MinQuantity: 3, MaxQuantity: 7},
			{Type: world.ResourcePreciousMetal, Names: []string{"Placer Gold"}, SpawnChance: 0.06, MinRarity: 6, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 2},
		},
		world.BiomeMountains: {
			{Type: world.ResourceOre, Names: []string{"Metal Ore", "Deep Iron Seam"}, SpawnChance: 0.30, MinRarity: 3, MaxRarity: 7, MinQuantity: 2, MaxQuantity: 6},
			{Type: world.ResourceStone, Names: []string{"Stone Vein", "Marble Face"}, SpawnChance: 0.26, MinRarity: 1, MaxRarity: 5, MinQuantity: 3, MaxQuantity: 8},
			{Type: world.ResourceGem, Names: []string{"Gem Deposit"}, SpawnChance: 0.10, MinRarity: 5, MaxRarity: 9, MinQuantity: 1, MaxQuantity: 3},
			{Type: world.ResourcePreciousMetal, Names: []string{"Silver Lode"}, SpawnChance: 0.08, MinRarity: 6, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 3},
		},
		world.BiomeAlpine: {
			{Type: world.ResourceGem, Names: []string{"Crystal Formation", "Sky Opal Pocket"}, SpawnChance: 0.12, MinRarity: 6, MaxRarity: 9, MinQuantity: 1, MaxQuantity: 3},
			{Type: world.ResourceOre, Names: []string{"Frost Iron Seam"}, SpawnChance: 0.16, MinRarity: 4, MaxRarity: 7, MinQuantity: 2, MaxQuantity: 4},
			{Type: world.ResourcePreciousMetal, Names: []string{"Platinum Streak"}, SpawnChance: 0.10, MinRarity: 7, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 2},
			{Type: world.ResourceMagical, Names: []string{"Ley Crystal Spire"}, SpawnChance: 0.06, MinRarity: 8, MaxRarity: 10, MinQuantity: 1, MaxQuantity: 1},
		},
	}
}

// tableFile is the on-disk shape accepted by LoadTable.
type tableFile struct {
	Tables map[string][]TableEntry `json:"tables"`
}

// LoadTable reads spawn tables from a JSON file. Any failure to read, parse,
// or validate a usable table falls back to the compiled-in defaults with a
// warning; bad individual entries are skipped the same way.
func LoadTable(path string) Table {
	logger := logging.WithFields("component", "resource-table")

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Falling back to default spawn tables", "path", path, "error", err)
		return DefaultTable()
	}

	var file tableFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("Falling back to default spawn tables: bad JSON", "path", path, "error", err)
		return DefaultTable()
	}

	table := make(Table, len(file.Tables))
	for key, entries := range file.Tables {
		biome := world.Biome(key)
		if !biome.IsValid() {
			logger.Warn("Skipping spawn table for unknown biome", "biome", key)
			continue
		}
		kept := sanitizeEntries(biome, entries, logger)
		if len(kept) > 0 {
			table[biome] = kept
		}
	}

	if len(table) == 0 {
		logger.Warn("Falling back to default spawn tables: no usable entries", "path", path)
		return DefaultTable()
	}
	return table
}

func sanitizeEntries(biome world.Biome, entries []TableEntry, logger *log.Logger) []TableEntry {
	kept := make([]TableEntry, 0, len(entries))
	for _, e := range entries {
		if !validResourceType(e.Type) {
			logger.Warn("Skipping spawn entry with unknown resource type", "biome", biome, "type", e.Type)
			continue
		}
		if len(e.Names) == 0 {
			logger.Warn("Skipping spawn entry without names", "biome", biome, "type", e.Type)
			continue
		}
		if e.SpawnChance < 0 || e.SpawnChance > 1 {
			logger.Warn("Clamping spawn chance", "biome", biome, "type", e.Type, "requested", e.SpawnChance)
			e.SpawnChance = clampFloat(e.SpawnChance, 0, 1)
		}
		e.MinRarity, e.MaxRarity = clampScale(e.MinRarity), clampScale(e.MaxRarity)
		if e.MinRarity > e.MaxRarity {
			e.MinRarity, e.MaxRarity = e.MaxRarity, e.MinRarity
		}
		e.MinQuantity, e.MaxQuantity = clampScale(e.MinQuantity), clampScale(e.MaxQuantity)
		if e.MinQuantity > e.MaxQuantity {
			e.MinQuantity, e.MaxQuantity = e.MaxQuantity, e.MinQuantity
		}
		kept = append(kept, e)
	}
	return kept
}

func validResourceType(t world.ResourceType) bool {
	switch t {
	case world.ResourceStone, world.ResourceOre, world.ResourceGem,
		world.ResourcePreciousMetal, world.ResourceHerb, world.ResourceCrop,
		world.ResourceAnimal, world.ResourceFish, world.ResourceWater,
		world.ResourceMagical:
		return true
	}
	return false
}

// clampScale pins a value to the 1-10 rarity/quantity scale.
func clampScale(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
