// Package region runs the full per-region pipeline: elevation, climate,
// biome classification, hydrology, danger rating, settlements, and resources,
// assembled into a world.Region.
package region

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/internal/uuid"
	"github.com/hexcrawl/worldgen/services/biome"
	"github.com/hexcrawl/worldgen/services/climate"
	"github.com/hexcrawl/worldgen/services/elevation"
	"github.com/hexcrawl/worldgen/services/hydrology"
	"github.com/hexcrawl/worldgen/services/noise"
	"github.com/hexcrawl/worldgen/services/resource"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/services/settlement"
	"github.com/hexcrawl/worldgen/world"
)

// Options bundles every stage's tuning plus the data tables the pipeline
// reads. Zero values fall back to stage defaults inside each constructor.
type Options struct {
	Elevation  elevation.Params
	Climate    climate.Params
	Thresholds biome.Thresholds
	Rules      *biome.RuleSet
	Hydrology  hydrology.Params
	Settlement settlement.Params
	Resource   resource.Params
	Table      resource.Table
	Season     world.Season
	// DangerJitter is the half-width of the uniform per-tile danger
	// variation applied on top of biome and elevation danger.
	DangerJitter int
}

// DefaultOptions returns the standard pipeline tuning.
func DefaultOptions() Options {
	return Options{
		Elevation:    elevation.DefaultParams(),
		Climate:      climate.DefaultParams(),
		Thresholds:   biome.DefaultThresholds(),
		Rules:        biome.DefaultRuleSet(),
		Hydrology:    hydrology.DefaultParams(),
		Settlement:   settlement.DefaultParams(),
		Resource:     resource.DefaultParams(),
		Table:        resource.DefaultTable(),
		Season:       world.SeasonSummer,
		DangerJitter: 1,
	}
}

// Generator produces regions. The stages that bind noise to a seed are
// constructed per region; everything else is built once here and reused.
type Generator struct {
	opts       Options
	classifier *biome.Classifier
	rules      *biome.RuleSet
	engine     *hydrology.Engine
	planner    *settlement.Planner
	resources  *resource.Distributor
	logger     *log.Logger
}

// NewGenerator wires the pipeline stages from the given options.
func NewGenerator(opts Options) *Generator {
	logger := logging.WithFields("component", "region-generator")
	if opts.Rules == nil {
		opts.Rules = biome.DefaultRuleSet()
	}
	if opts.Table == nil {
		opts.Table = resource.DefaultTable()
	}
	if !opts.Season.IsValid() {
		logger.Warn("Unknown season, using summer", "requested", opts.Season)
		opts.Season = world.SeasonSummer
	}
	if opts.DangerJitter < 0 {
		logger.Warn("Clamping danger jitter", "requested", opts.DangerJitter, "using", 0)
		opts.DangerJitter = 0
	}
	return &Generator{
		opts:       opts,
		classifier: biome.NewClassifier(opts.Thresholds),
		rules:      opts.Rules,
		engine:     hydrology.NewEngine(opts.Hydrology),
		planner:    settlement.NewPlanner(opts.Settlement),
		resources:  resource.NewDistributor(opts.Table, opts.Resource),
		logger:     logger,
	}
}

// Generate runs the pipeline for the region at the given continent
// coordinate. The same seed and coordinate always produce the same region,
// so regions can generate in any order or in parallel.
func (g *Generator) Generate(seed world.Seed, coord world.Coordinate) (*world.Region, error) {
	width, height := world.RegionSize, world.RegionSize

	elevSynth := elevation.NewSynthesizer(
		noise.NewGenerator(world.DeriveSeed(seed, coord, "elevation-noise")),
		g.opts.Elevation)
	elev, err := elevSynth.Generate(width, height, rng.ForUnit(seed, coord, "elevation"))
	if err != nil {
		return nil, fmt.Errorf("region %s: elevation: %w", coord, err)
	}

	climSynth := climate.NewSynthesizer(
		noise.NewGenerator(world.DeriveSeed(seed, coord, "humidity-noise")),
		noise.NewGenerator(world.DeriveSeed(seed, coord, "temperature-noise")),
		g.opts.Climate)
	humid, err := climSynth.Humidity(elev)
	if err != nil {
		return nil, fmt.Errorf("region %s: humidity: %w", coord, err)
	}
	temp, err := climSynth.Temperature(elev, g.opts.Season)
	if err != nil {
		return nil, fmt.Errorf("region %s: temperature: %w", coord, err)
	}

	biomes, err := g.classifier.ClassifyGrid(elev, temp, humid)
	if err != nil {
		return nil, fmt.Errorf("region %s: classify: %w", coord, err)
	}
	passes, err := g.rules.Resolve(biomes)
	if err != nil {
		return nil, fmt.Errorf("region %s: adjacency: %w", coord, err)
	}

	hydro, err := g.engine.Apply(biomes, elev, rng.ForUnit(seed, coord, "hydrology"))
	if err != nil {
		return nil, fmt.Errorf("region %s: hydrology: %w", coord, err)
	}

	tiles := g.assembleTiles(hydro, elev, humid, temp, rng.ForUnit(seed, coord, "danger"))

	plan, err := g.planner.Plan(tiles, rng.ForUnit(seed, coord, "settlement"))
	if err != nil {
		return nil, fmt.Errorf("region %s: settlements: %w", coord, err)
	}

	placed, err := g.resources.Distribute(tiles, rng.ForUnit(seed, coord, "resource"))
	if err != nil {
		return nil, fmt.Errorf("region %s: resources: %w", coord, err)
	}
	clusters, err := g.resources.StampClusters(tiles, rng.ForUnit(seed, coord, "resource-clusters"))
	if err != nil {
		return nil, fmt.Errorf("region %s: clusters: %w", coord, err)
	}

	region := &world.Region{
		ID:              regionID(seed, coord),
		Coordinate:      coord,
		Seed:            world.DeriveSeed(seed, coord, "region"),
		Tiles:           tiles,
		POIs:            plan.POIs,
		TotalPopulation: plan.TotalPopulation,
		MetropolisType:  plan.MetropolisType,
		Memory:          buildMemory(hydro.Rivers, plan.Events, clusters),
		TensionLevel:    tensionLevel(tiles, plan.POIs),
	}

	g.logger.Debug("Generated region",
		"region", coord, "adjacency_passes", passes, "rivers", len(hydro.Rivers),
		"pois", len(plan.POIs), "resources", placed, "clusters", len(clusters))
	return region, nil
}

// assembleTiles flattens the stage grids into row-major tiles and rates each
// tile's danger.
func (g *Generator) assembleTiles(hydro *hydrology.Result, elev, humid, temp [][]float64, danger rng.StreamInterface) []*world.Tile {
	riverAt := make(map[world.Coordinate]*world.RiverInfo)
	for _, river := range hydro.Rivers {
		for i, c := range river.Path {
			riverAt[c] = &world.RiverInfo{Type: river.TypeAt(i), Width: river.Widths[i]}
		}
	}

	tiles := make([]*world.Tile, 0, world.RegionTileCount)
	for y := 0; y < len(hydro.Biomes); y++ {
		for x := 0; x < len(hydro.Biomes[y]); x++ {
			c := world.Coordinate{X: x, Y: y}
			tile := &world.Tile{
				Coordinate:  c,
				Biome:       hydro.Biomes[y][x],
				Elevation:   elev[y][x],
				Humidity:    humid[y][x],
				Temperature: temp[y][x],
				Coastal:     hydro.Coastal[y][x],
				River:       riverAt[c],
			}
			tile.DangerLevel = g.dangerLevel(tile.Biome, tile.Elevation, danger)
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// dangerLevel combines the biome's base danger with elevation extremity and
// per-tile jitter. Extremity measures distance from mid elevation, so deep
// basins and high peaks both read as more dangerous than rolling midlands.
func (g *Generator) dangerLevel(b world.Biome, elev float64, stream rng.StreamInterface) int {
	danger := b.BaseDanger()
	extremity := math.Abs(elev-0.5) * 2
	switch {
	case extremity > 0.6:
		danger += 2
	case extremity > 0.3:
		danger++
	}
	if j := g.opts.DangerJitter; j > 0 {
		danger += stream.Range(-j, j)
	}
	return clampInt(danger, 0, 10)
}

// tensionLevel summarizes regional unrest: mean tile danger anchors it and
// every charted dungeon raises it by one.
func tensionLevel(tiles []*world.Tile, pois []world.POI) int {
	if len(tiles) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tiles {
		sum += t.DangerLevel
	}
	mean := float64(sum) / float64(len(tiles))

	dungeons := 0
	for _, p := range pois {
		if p.Type == world.POIDungeon {
			dungeons++
		}
	}
	return clampInt(int(math.Round(mean))+dungeons, 0, 10)
}

// buildMemory assembles the region's founding events in pipeline order:
// rivers first, then settlement history, then resource discoveries.
func buildMemory(rivers []hydrology.River, planEvents []world.Event, clusters []resource.Cluster) []world.Event {
	events := make([]world.Event, 0, len(rivers)+len(planEvents)+len(clusters))
	for _, river := range rivers {
		events = append(events, world.Event{
			Kind: "river_carved",
			Detail: fmt.Sprintf("A river carved %d tiles from %s to %s",
				len(river.Path), river.Path[0], river.Path[len(river.Path)-1]),
		})
	}
	events = append(events, planEvents...)
	for _, cluster := range clusters {
		events = append(events, world.Event{
			Kind:   "cluster_formed",
			Detail: fmt.Sprintf("%s discovered near %s", cluster.Name, cluster.Center),
		})
	}
	if len(events) == 0 {
		return nil
	}
	return events
}

// regionID derives the stable region identifier from the world seed and the
// region's continent coordinate.
func regionID(seed world.Seed, coord world.Coordinate) string {
	return uuid.DeriveFromString(fmt.Sprintf("region:%d:%s", seed, coord))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
