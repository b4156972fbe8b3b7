package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcrawl/worldgen/internal/testutil"
	"github.com/hexcrawl/worldgen/world"
)

func TestDefaultTableCoversEveryBiome(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	table := DefaultTable()
	for _, biome := range world.AllBiomes {
		entries := table[biome]
		require.NotEmptyf(t, entries, "biome %s has no spawn entries", biome)
		for _, e := range entries {
			assert.Truef(t, validResourceType(e.Type), "biome %s entry has unknown type %q", biome, e.Type)
			assert.NotEmptyf(t, e.Names, "biome %s %s entry has no names", biome, e.Type)
			assert.GreaterOrEqual(t, e.SpawnChance, 0.0)
			assert.LessOrEqual(t, e.SpawnChance, 1.0)
			assert.LessOrEqual(t, 1, e.MinRarity)
			assert.LessOrEqual(t, e.MinRarity, e.MaxRarity)
			assert.LessOrEqual(t, e.MaxRarity, 10)
			assert.LessOrEqual(t, 1, e.MinQuantity)
			assert.LessOrEqual(t, e.MinQuantity, e.MaxQuantity)
			assert.LessOrEqual(t, e.MaxQuantity, 10)
		}
	}
}

func writeTableFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTableCustomFile(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	path := writeTableFile(t, `{
		"tables": {
			"plains": [
				{"type": "crop", "names": ["Test Wheat"], "spawn_chance": 0.5,
				 "min_rarity": 2, "max_rarity": 4, "min_quantity": 3, "max_quantity": 5}
			]
		}
	}`)

	table := LoadTable(path)
	require.Len(t, table, 1)
	entries := table[world.BiomePlains]
	require.Len(t, entries, 1)
	assert.Equal(t, world.ResourceCrop, entries[0].Type)
	assert.Equal(t, []string{"Test Wheat"}, entries[0].Names)
	assert.Equal(t, 0.5, entries[0].SpawnChance)
}

func TestLoadTableFallsBackToDefaults(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.json")
			},
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string {
				return writeTableFile(t, `{"tables": [`)
			},
		},
		{
			name: "empty tables",
			path: func(t *testing.T) string {
				return writeTableFile(t, `{"tables": {}}`)
			},
		},
		{
			name: "only unusable entries",
			path: func(t *testing.T) string {
				return writeTableFile(t, `{
					"tables": {
						"plains": [{"type": "unobtainium", "names": ["X"], "spawn_chance": 0.5}],
						"not-a-biome": [{"type": "crop", "names": ["Y"], "spawn_chance": 0.5}]
					}
				}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := LoadTable(tt.path(t))
			assert.Equal(t, DefaultTable(), table)
		})
	}
}

func TestLoadTableSanitizesEntries(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	path := writeTableFile(t, `{
		"tables": {
			"hills": [
				{"type": "ore", "names": ["Wild Seam"], "spawn_chance": 1.5,
				 "min_rarity": 15, "max_rarity": 0, "min_quantity": -2, "max_quantity": 30},
				{"type": "ore", "names": [], "spawn_chance": 0.5},
				{"type": "stone", "names": ["Kept Vein"], "spawn_chance": 0.2,
				 "min_rarity": 1, "max_rarity": 3, "min_quantity": 2, "max_quantity": 4}
			]
		}
	}`)

	table := LoadTable(path)
	entries := table[world.BiomeHills]
	require.Len(t, entries, 2, "the nameless entry should be skipped")

	wild := entries[0]
	assert.Equal(t, 1.0, wild.SpawnChance)
	assert.Equal(t, 1, wild.MinRarity)
	assert.Equal(t, 10, wild.MaxRarity)
	assert.Equal(t, 1, wild.MinQuantity)
	assert.Equal(t, 10, wild.MaxQuantity)

	assert.Equal(t, "Kept Vein", entries[1].Names[0])
}
