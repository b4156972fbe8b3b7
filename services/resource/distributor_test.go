package resource

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcrawl/worldgen/internal/testutil"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

func uniformTiles(width, height int, biome world.Biome) []*world.Tile {
	tiles := make([]*world.Tile, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles = append(tiles, &world.Tile{
				Coordinate:  world.Coordinate{X: x, Y: y},
				Biome:       biome,
				Elevation:   0.5,
				Humidity:    0.5,
				Temperature: 0.5,
			})
		}
	}
	return tiles
}

func mixedTiles(width, height int) []*world.Tile {
	biomes := []world.Biome{
		world.BiomePlains, world.BiomeForest, world.BiomeHills,
		world.BiomeOcean, world.BiomeMountains,
	}
	tiles := make([]*world.Tile, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles = append(tiles, &world.Tile{
				Coordinate:  world.Coordinate{X: x, Y: y},
				Biome:       biomes[(x+y*width)%len(biomes)],
				Elevation:   float64((x*7+y*13)%100) / 100,
				Humidity:    float64((x*11+y*5)%100) / 100,
				Temperature: 0.5,
			})
		}
	}
	return tiles
}

func TestDistributeDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	d := NewDistributor(nil, DefaultParams())

	tilesA := mixedTiles(world.RegionSize, world.RegionSize)
	placedA, err := d.Distribute(tilesA, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)

	tilesB := mixedTiles(world.RegionSize, world.RegionSize)
	placedB, err := d.Distribute(tilesB, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)

	assert.Equal(t, placedA, placedB)
	assert.Equal(t, tilesA, tilesB, "deposit rolls must replay identically")
}

func TestDistributeRollsMatchTables(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	table := DefaultTable()
	d := NewDistributor(table, DefaultParams())

	tiles := mixedTiles(world.RegionSize, world.RegionSize)
	placed, err := d.Distribute(tiles, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)
	require.Positive(t, placed, "a full region should roll at least one deposit")

	total := 0
	for _, tile := range tiles {
		for _, r := range tile.Resources {
			total++
			entries := table[tile.Biome]
			found := false
			for _, e := range entries {
				if e.Type == r.Type && slices.Contains(e.Names, r.Name) {
					found = true
					break
				}
			}
			assert.Truef(t, found, "tile %s rolled %q (%s) absent from the %s table",
				tile.Coordinate, r.Name, r.Type, tile.Biome)
			assert.GreaterOrEqual(t, r.Rarity, 1)
			assert.LessOrEqual(t, r.Rarity, 10)
			assert.GreaterOrEqual(t, r.Quantity, 1)
			assert.LessOrEqual(t, r.Quantity, 10)
			assert.GreaterOrEqual(t, r.Value, 1)
			assert.LessOrEqual(t, r.Value, 10)
			assert.Empty(t, r.ClusterID, "plain rolls carry no cluster ID")
		}
	}
	assert.Equal(t, placed, total)
}

func TestDistributeGuaranteedChance(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	table := Table{
		world.BiomePlains: {
			{Type: world.ResourceCrop, Names: []string{"Sure Thing"}, SpawnChance: 1.0,
				MinRarity: 1, MaxRarity: 3, MinQuantity: 2, MaxQuantity: 4},
		},
	}
	d := NewDistributor(table, DefaultParams())

	tiles := uniformTiles(6, 6, world.BiomePlains)
	placed, err := d.Distribute(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)

	assert.Equal(t, len(tiles), placed)
	for _, tile := range tiles {
		require.Len(t, tile.Resources, 1)
		assert.Equal(t, "Sure Thing", tile.Resources[0].Name)
	}
}

func TestDistributeZeroChance(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	table := Table{
		world.BiomePlains: {
			{Type: world.ResourceCrop, Names: []string{"Never"}, SpawnChance: 0,
				MinRarity: 1, MaxRarity: 3, MinQuantity: 2, MaxQuantity: 4},
		},
	}
	d := NewDistributor(table, DefaultParams())

	tiles := uniformTiles(6, 6, world.BiomePlains)
	placed, err := d.Distribute(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)

	assert.Zero(t, placed)
	for _, tile := range tiles {
		assert.Empty(t, tile.Resources)
	}
}

func TestAdjustedChance(t *testing.T) {
	tests := []struct {
		name      string
		entryType world.ResourceType
		chance    float64
		elevation float64
		humidity  float64
		want      float64
	}{
		{"ore boosted on high ground", world.ResourceOre, 0.3, 0.8, 0.5, 0.45},
		{"ore flat on low ground", world.ResourceOre, 0.3, 0.5, 0.5, 0.3},
		{"fish boosted in lowlands", world.ResourceFish, 0.2, 0.2, 0.5, 0.3},
		{"fish flat at mid elevation", world.ResourceFish, 0.2, 0.5, 0.5, 0.2},
		{"herb boosted when humid", world.ResourceHerb, 0.2, 0.5, 0.7, 0.26},
		{"crop halved when arid", world.ResourceCrop, 0.2, 0.5, 0.1, 0.1},
		{"crop flat at neutral humidity", world.ResourceCrop, 0.2, 0.5, 0.5, 0.2},
		{"animal never adjusted", world.ResourceAnimal, 0.25, 0.9, 0.9, 0.25},
		{"boost capped at one", world.ResourceStone, 0.9, 0.9, 0.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := TableEntry{Type: tt.entryType, SpawnChance: tt.chance}
			tile := &world.Tile{Elevation: tt.elevation, Humidity: tt.humidity}
			assert.InDelta(t, tt.want, adjustedChance(entry, tile), 1e-9)
		})
	}
}

func TestResourceValue(t *testing.T) {
	tests := []struct {
		name     string
		rarity   int
		quantity int
		factor   float64
		want     int
	}{
		{"even average at par", 5, 5, 1.0, 5},
		{"clamped to ten", 10, 10, 1.2, 10},
		{"floor of one", 1, 1, 0.8, 1},
		{"half rounds away from zero", 4, 5, 1.0, 5},
		{"high half rounds up", 6, 7, 1.0, 7},
		{"factor swings down", 6, 7, 0.8, 5},
		{"factor swings up", 2, 3, 1.2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resourceValue(tt.rarity, tt.quantity, tt.factor))
		})
	}
}

func TestStampClustersSharedIdentity(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.ClusterCount = 1
	params.ClusterMinRadius = 2
	params.ClusterMaxRadius = 2
	d := NewDistributor(nil, params)

	tiles := uniformTiles(11, 11, world.BiomeHills)
	clusters, err := d.StampClusters(tiles, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)
	require.Len(t, clusters, 1)

	cluster := clusters[0]
	assert.NotEmpty(t, cluster.ID)
	assert.NotEmpty(t, cluster.Name)
	assert.Equal(t, 2, cluster.Radius)
	assert.Contains(t, []world.ResourceType{
		world.ResourceStone, world.ResourceOre, world.ResourceGem,
	}, cluster.Type, "hills clusters draw from the hills table")

	quality, _, found := strings.Cut(cluster.Name, " ")
	require.True(t, found, "cluster names lead with a quality word")
	assert.Contains(t, clusterQualities, quality)

	stamped := 0
	for _, tile := range tiles {
		inRange := cluster.Center.EuclideanDistance(tile.Coordinate) <= float64(cluster.Radius)
		if inRange {
			require.Len(t, tile.Resources, 1)
			r := tile.Resources[0]
			assert.Equal(t, cluster.ID, r.ClusterID)
			assert.Equal(t, cluster.Name, r.Name)
			assert.Equal(t, cluster.Type, r.Type)
			stamped++
		} else {
			assert.Empty(t, tile.Resources)
		}
	}
	assert.Equal(t, stamped, cluster.Tiles)
}

func TestStampClustersDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	d := NewDistributor(nil, DefaultParams())

	tilesA := uniformTiles(world.RegionSize, world.RegionSize, world.BiomeMountains)
	clustersA, err := d.StampClusters(tilesA, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)

	tilesB := uniformTiles(world.RegionSize, world.RegionSize, world.BiomeMountains)
	clustersB, err := d.StampClusters(tilesB, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)

	assert.Equal(t, clustersA, clustersB)
	assert.Equal(t, tilesA, tilesB, "cluster stamps must replay identically")
}

func TestStampClustersKeepSpacing(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.ClusterCount = 3
	params.ClusterMinRadius = 1
	params.ClusterMaxRadius = 1
	params.MinClusterSpacing = 5
	d := NewDistributor(nil, params)

	tiles := uniformTiles(13, 13, world.BiomeHills)
	clusters, err := d.StampClusters(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)
	require.NotEmpty(t, clusters, "the first placement can never fail")

	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			dist := clusters[i].Center.EuclideanDistance(clusters[j].Center)
			assert.GreaterOrEqualf(t, dist, 5.0,
				"clusters %d and %d landed %0.2f apart", i, j, dist)
		}
	}
}

func TestStampClustersZeroCount(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.ClusterCount = 0
	d := NewDistributor(nil, params)

	tiles := uniformTiles(5, 5, world.BiomeHills)
	clusters, err := d.StampClusters(tiles, rng.NewStream(1))
	require.NoError(t, err)
	assert.Nil(t, clusters)
}

func TestResourceBadInput(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	d := NewDistributor(nil, DefaultParams())

	tests := []struct {
		name  string
		tiles []*world.Tile
	}{
		{"no tiles", nil},
		{"empty slice", []*world.Tile{}},
		{"nil tile", []*world.Tile{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Distribute(tt.tiles, rng.NewStream(1))
			assert.ErrorIs(t, err, world.ErrBadInput)

			_, err = d.StampClusters(tt.tiles, rng.NewStream(1))
			assert.ErrorIs(t, err, world.ErrBadInput)
		})
	}
}

func TestResourceSanitizeParams(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name   string
		params Params
		check  func(t *testing.T, p Params)
	}{
		{
			name:   "negative cluster count floors at zero",
			params: Params{ClusterCount: -3, ClusterMaxRadius: 2, PlacementAttempts: 3},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 0, p.ClusterCount)
			},
		},
		{
			name:   "inverted radii swap",
			params: Params{ClusterCount: 1, ClusterMinRadius: 4, ClusterMaxRadius: 1, PlacementAttempts: 3},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 1, p.ClusterMinRadius)
				assert.Equal(t, 4, p.ClusterMaxRadius)
			},
		},
		{
			name:   "zero attempts reset to default",
			params: Params{ClusterCount: 1, ClusterMaxRadius: 2},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, DefaultParams().PlacementAttempts, p.PlacementAttempts)
			},
		},
		{
			name:   "negative spacing floors at zero",
			params: Params{ClusterCount: 1, ClusterMaxRadius: 2, MinClusterSpacing: -2, PlacementAttempts: 3},
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 0, p.MinClusterSpacing)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDistributor(nil, tt.params)
			tt.check(t, d.params)
		})
	}
}

func TestNewDistributorNilTable(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	d := NewDistributor(nil, DefaultParams())
	assert.Equal(t, DefaultTable(), d.table)
}

func BenchmarkDistribute(b *testing.B) {
	d := NewDistributor(nil, DefaultParams())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tiles := mixedTiles(world.RegionSize, world.RegionSize)
		if _, err := d.Distribute(tiles, rng.NewStream(int64(i))); err != nil {
			b.Fatalf("distribute failed: %v", err)
		}
	}
}
