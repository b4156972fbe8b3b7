package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcrawl/worldgen/config"
	"github.com/hexcrawl/worldgen/internal/testutil"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/services/region"
	"github.com/hexcrawl/worldgen/world"
)

// buildWorld runs the full pipeline from a config, the way cmd/worldgen does.
func buildWorld(t *testing.T, cfg *config.Config) *world.World {
	t.Helper()
	regionGen := region.NewGenerator(cfg.RegionOptions())
	continentGen := continent.NewGenerator(cfg.Continent, regionGen)
	w, err := continentGen.Generate(context.Background(), cfg.CanonicalSeed())
	require.NoError(t, err)
	return w
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestWorldByteDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := config.Default()
	cfg.Seed = "abc"
	cfg.Continent.TargetRegions = 8

	first := buildWorld(t, cfg)
	second := buildWorld(t, cfg)

	assert.Equal(t, marshal(t, first), marshal(t, second),
		"two runs from the same seed must serialize to identical bytes")
}

func TestWorldParallelMatchesSequential(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	sequential := config.Default()
	sequential.Seed = "abc"
	sequential.Continent.TargetRegions = 8
	sequential.Continent.Workers = 1

	parallel := config.Default()
	parallel.Seed = "abc"
	parallel.Continent.TargetRegions = 8
	parallel.Continent.Workers = 8

	assert.Equal(t, marshal(t, buildWorld(t, sequential)), marshal(t, buildWorld(t, parallel)),
		"worker count must not leak into the generated world")
}

func TestSeedCanonicalizationEndToEnd(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	text := config.Default()
	text.Seed = "abc"
	text.Continent.TargetRegions = 4

	numeric := config.Default()
	numeric.Seed = "294"
	numeric.Continent.TargetRegions = 4

	textWorld := buildWorld(t, text)
	numericWorld := buildWorld(t, numeric)

	assert.Equal(t, world.Seed(294), textWorld.Continent.Seed)
	assert.Equal(t, marshal(t, textWorld), marshal(t, numericWorld),
		"\"abc\" and \"294\" share a canonical seed and must share a world")
}

func TestSingleRegionMatchesWorldRegion(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := config.Default()
	cfg.Seed = "abc"
	cfg.Continent.TargetRegions = 6

	w := buildWorld(t, cfg)
	require.GreaterOrEqual(t, w.Continent.RegionCount(), 2)

	regionGen := region.NewGenerator(cfg.RegionOptions())
	continentGen := continent.NewGenerator(cfg.Continent, regionGen)

	coord := w.Continent.RegionCoordinates[1]
	solo, err := continentGen.GenerateRegion(context.Background(), cfg.CanonicalSeed(), coord)
	require.NoError(t, err)

	assert.Equal(t, marshal(t, w.Regions[1]), marshal(t, solo),
		"a region generated on its own must match the same region inside a full run")
}

func TestConfigFileDrivesGeneration(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: abc
season: winter
continent:
  target_regions: 5
  workers: 2
`), 0o644))

	first := buildWorld(t, config.Load(path))
	second := buildWorld(t, config.Load(path))

	assert.Equal(t, 5, first.Continent.RegionCount())
	assert.Equal(t, marshal(t, first), marshal(t, second))
}

func TestSixtyRegionWalkFromTextSeed(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	if testing.Short() {
		t.Skip("skipping 60-region generation in short mode")
	}

	cfg := config.Default()
	cfg.Seed = "abc"
	cfg.Continent.TargetRegions = 60

	w := buildWorld(t, cfg)
	require.Equal(t, 60, w.Continent.RegionCount())
	require.Len(t, w.Regions, 60)

	seen := make(map[world.Coordinate]bool, 60)
	for _, c := range w.Continent.RegionCoordinates {
		assert.False(t, seen[c], "coordinate %s placed twice", c)
		seen[c] = true
	}
	assert.True(t, seen[world.Origin], "the walk always includes the origin")

	rerun := buildWorld(t, cfg)
	assert.Equal(t, w.Continent.RegionCoordinates, rerun.Continent.RegionCoordinates)
}
