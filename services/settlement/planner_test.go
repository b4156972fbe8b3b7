package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcrawl/worldgen/internal/testutil"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

func flatTiles(width, height int, biome world.Biome, danger int) []*world.Tile {
	tiles := make([]*world.Tile, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles = append(tiles, &world.Tile{
				Coordinate:  world.Coordinate{X: x, Y: y},
				Biome:       biome,
				Elevation:   0.5,
				Humidity:    0.5,
				Temperature: 0.5,
				DangerLevel: danger,
			})
		}
	}
	return tiles
}

func settlementsOf(plan *Plan) []world.POI {
	var out []world.POI
	for _, poi := range plan.POIs {
		if poi.Type == world.POISettlement {
			out = append(out, poi)
		}
	}
	return out
}

func minorsOf(plan *Plan) []world.POI {
	var out []world.POI
	for _, poi := range plan.POIs {
		if poi.Type != world.POISettlement {
			out = append(out, poi)
		}
	}
	return out
}

func TestPlanDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := NewPlanner(DefaultParams())

	tilesA := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	planA, err := p.Plan(tilesA, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)

	tilesB := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	planB, err := p.Plan(tilesB, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)

	assert.Equal(t, planA.POIs, planB.POIs)
	assert.Equal(t, planA.TotalPopulation, planB.TotalPopulation)
	assert.Equal(t, planA.MetropolisType, planB.MetropolisType)
	assert.Equal(t, planA.Events, planB.Events)
	assert.Equal(t, tilesA, tilesB, "tile mutations must replay identically")
}

func TestPlanRespectsSpacing(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	p := NewPlanner(params)

	tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)

	settlements := settlementsOf(plan)
	require.NotEmpty(t, settlements)
	for i := 0; i < len(settlements); i++ {
		for j := i + 1; j < len(settlements); j++ {
			dist := settlements[i].Coordinate.ManhattanDistance(settlements[j].Coordinate)
			assert.GreaterOrEqual(t, dist, params.MinSettlementSpacing,
				"%s and %s too close", settlements[i].Name, settlements[j].Name)
		}
	}

	// Minor POIs keep their own spacing from every other POI.
	for _, minor := range minorsOf(plan) {
		for _, other := range plan.POIs {
			if other.ID == minor.ID {
				continue
			}
			dist := minor.Coordinate.ManhattanDistance(other.Coordinate)
			assert.GreaterOrEqual(t, dist, params.MinPOISpacing,
				"%s and %s too close", minor.Name, other.Name)
		}
	}
}

func TestPlanAvoidsForbiddenBiomes(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tiles := make([]*world.Tile, 0, 100)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			biome := world.BiomePlains
			switch {
			case y < 4:
				biome = world.BiomeOcean
			case y < 6:
				biome = world.BiomeMountains
			}
			tiles = append(tiles, &world.Tile{
				Coordinate:  world.Coordinate{X: x, Y: y},
				Biome:       biome,
				DangerLevel: 3,
			})
		}
	}

	p := NewPlanner(DefaultParams())
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)

	for _, s := range settlementsOf(plan) {
		assert.GreaterOrEqual(t, s.Coordinate.Y, 6, "settlement %s placed on forbidden terrain", s.Name)
	}
	for _, poi := range plan.POIs {
		assert.GreaterOrEqual(t, poi.Coordinate.Y, 4, "POI %s placed on water", poi.Name)
	}
}

func TestPlanHonorsPopulationBudget(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	p := NewPlanner(params)

	tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err)

	total := 0
	for _, s := range settlementsOf(plan) {
		assert.GreaterOrEqual(t, s.Population, params.MinSettlementPop)
		assert.LessOrEqual(t, s.Population, params.MaxSettlementPop)
		total += s.Population
	}
	assert.LessOrEqual(t, total, params.PopulationBudget)
	assert.Equal(t, total, plan.TotalPopulation)
}

func TestMetropolisDesignation(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := NewPlanner(DefaultParams())
	tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)

	settlements := settlementsOf(plan)
	require.NotEmpty(t, settlements)

	var metros []world.POI
	maxPop := 0
	for _, s := range settlements {
		if s.Population > maxPop {
			maxPop = s.Population
		}
		if s.Metropolis {
			metros = append(metros, s)
		}
	}
	require.Len(t, metros, 1, "exactly one settlement becomes the metropolis")
	assert.Equal(t, maxPop, metros[0].Population, "metropolis must be the most populous settlement")

	require.NotNil(t, plan.MetropolisType)
	assert.Contains(t, []world.MetropolisType{
		world.MetropolisTradeHub, world.MetropolisFortress, world.MetropolisPort,
		world.MetropolisTempleCity, world.MetropolisArcaneNexus,
	}, *plan.MetropolisType)

	claimed := 0
	for _, tile := range tiles {
		if tile.ClaimedBy == "" {
			continue
		}
		claimed++
		assert.Equal(t, metros[0].ID, tile.ClaimedBy, "claims must reference the metropolis")
		assert.False(t, tile.Biome.IsWater(), "claimed tile must be land")
		assert.Equal(t, 1, tile.Coordinate.ManhattanDistance(metros[0].Coordinate), "claims must be adjacent")
	}
	assert.GreaterOrEqual(t, claimed, 1)
	assert.LessOrEqual(t, claimed, 2)

	metroTile := tiles[metros[0].Coordinate.Y*world.RegionSize+metros[0].Coordinate.X]
	require.NotNil(t, metroTile.POI)
	assert.True(t, metroTile.POI.Metropolis)
}

func TestPlanAbsorbsExhaustion(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.MaxSettlements = 10
	params.MinSettlementSpacing = 10
	params.POICount = 20
	p := NewPlanner(params)

	tiles := flatTiles(3, 3, world.BiomePlains, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Alpha))
	require.NoError(t, err, "running out of room is not an error")

	settlements := settlementsOf(plan)
	assert.NotEmpty(t, settlements)
	assert.Less(t, len(settlements), 10, "a 3x3 grid cannot hold ten spaced settlements")
}

func TestPlanOnAllWater(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := NewPlanner(DefaultParams())
	tiles := flatTiles(8, 8, world.BiomeOcean, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Beta))
	require.NoError(t, err)

	assert.Empty(t, plan.POIs)
	assert.Nil(t, plan.MetropolisType)
	assert.Zero(t, plan.TotalPopulation)
}

func TestUnlikelyBiomesRespectChance(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.UnlikelyChance = 0
	p := NewPlanner(params)

	tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomeDesert, 4)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)
	assert.Empty(t, settlementsOf(plan), "zero chance must keep settlements off unlikely biomes")
}

func TestPOITypesFollowDanger(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := DefaultParams()
	params.MaxSettlements = 0
	params.POICount = 12
	params.MinPOISpacing = 1
	p := NewPlanner(params)

	t.Run("safe regions roll no dungeons", func(t *testing.T) {
		tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 0)
		plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Alpha))
		require.NoError(t, err)
		require.NotEmpty(t, plan.POIs)
		for _, poi := range plan.POIs {
			assert.NotEqual(t, world.POIDungeon, poi.Type, "%s rolled as dungeon at danger 0", poi.Name)
		}
	})

	t.Run("deadly regions roll no social sites", func(t *testing.T) {
		tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 10)
		plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Alpha))
		require.NoError(t, err)
		require.NotEmpty(t, plan.POIs)
		for _, poi := range plan.POIs {
			assert.NotEqual(t, world.POISocial, poi.Type, "%s rolled as social site at danger 10", poi.Name)
		}
	})
}

func TestPlanBadInput(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := NewPlanner(DefaultParams())
	stream := rng.NewStream(testutil.SeedTestData.Alpha)

	tests := []struct {
		name  string
		tiles []*world.Tile
	}{
		{
			name:  "empty tiles",
			tiles: nil,
		},
		{
			name: "nil tile",
			tiles: []*world.Tile{
				{Coordinate: world.Coordinate{X: 0, Y: 0}, Biome: world.BiomePlains},
				nil,
			},
		},
		{
			name: "duplicate coordinate",
			tiles: []*world.Tile{
				{Coordinate: world.Coordinate{X: 1, Y: 1}, Biome: world.BiomePlains},
				{Coordinate: world.Coordinate{X: 1, Y: 1}, Biome: world.BiomeForest},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Plan(tt.tiles, stream)
			require.Error(t, err)
			assert.ErrorIs(t, err, world.ErrBadInput)
		})
	}
}

func TestPlanWritesBackToTiles(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := NewPlanner(DefaultParams())
	tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
	plan, err := p.Plan(tiles, rng.NewStream(testutil.SeedTestData.Gamma))
	require.NoError(t, err)
	require.NotEmpty(t, plan.POIs)

	index := make(map[world.Coordinate]*world.Tile, len(tiles))
	for _, tile := range tiles {
		index[tile.Coordinate] = tile
	}

	seenIDs := make(map[string]bool)
	for _, poi := range plan.POIs {
		assert.NotEmpty(t, poi.ID)
		assert.NotEmpty(t, poi.Name)
		assert.False(t, seenIDs[poi.ID], "duplicate POI id %s", poi.ID)
		seenIDs[poi.ID] = true

		tile := index[poi.Coordinate]
		require.NotNil(t, tile.POI, "tile %s missing its POI back-reference", poi.Coordinate)
		assert.Equal(t, poi.ID, tile.POI.ID)
	}

	founded := 0
	charted := 0
	designated := 0
	for _, event := range plan.Events {
		switch event.Kind {
		case "settlement_founded":
			founded++
		case "poi_charted":
			charted++
		case "metropolis_designated":
			designated++
		}
	}
	assert.Equal(t, len(settlementsOf(plan)), founded)
	assert.Equal(t, len(minorsOf(plan)), charted)
	assert.Equal(t, 1, designated)
}

func TestSettlementSanitizeParams(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name   string
		params Params
		check  func(t *testing.T, p Params)
	}{
		{
			name: "negative budget clamps to zero",
			params: func() Params {
				p := DefaultParams()
				p.PopulationBudget = -100
				return p
			}(),
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 0, p.PopulationBudget)
			},
		},
		{
			name: "max population raised to min",
			params: func() Params {
				p := DefaultParams()
				p.MinSettlementPop = 500
				p.MaxSettlementPop = 100
				return p
			}(),
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 500, p.MaxSettlementPop)
			},
		},
		{
			name: "zero attempts raised",
			params: func() Params {
				p := DefaultParams()
				p.PlacementAttempts = 0
				return p
			}(),
			check: func(t *testing.T, p Params) {
				assert.Equal(t, 1, p.PlacementAttempts)
			},
		},
		{
			name: "nil forbidden list falls back to defaults",
			params: func() Params {
				p := DefaultParams()
				p.ForbiddenBiomes = nil
				return p
			}(),
			check: func(t *testing.T, p Params) {
				assert.Equal(t, DefaultParams().ForbiddenBiomes, p.ForbiddenBiomes)
			},
		},
		{
			name: "empty forbidden list disables exclusion",
			params: func() Params {
				p := DefaultParams()
				p.ForbiddenBiomes = []world.Biome{}
				return p
			}(),
			check: func(t *testing.T, p Params) {
				assert.Empty(t, p.ForbiddenBiomes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := NewPlanner(tt.params)
			tt.check(t, planner.params)
		})
	}
}

func BenchmarkPlan(b *testing.B) {
	p := NewPlanner(DefaultParams())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tiles := flatTiles(world.RegionSize, world.RegionSize, world.BiomePlains, 3)
		_, err := p.Plan(tiles, rng.NewStream(int64(i)))
		if err != nil {
			b.Fatalf("plan failed: %v", err)
		}
	}
}
