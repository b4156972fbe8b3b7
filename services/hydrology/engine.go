// Package hydrology reshapes the water features of a classified biome grid:
// coastline smoothing, beach strips, and downhill river growth.
package hydrology

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes the hydrology pass. Out-of-range values are clamped at
// construction with a warning.
type Params struct {
	// SmoothingIterations majority-vote passes run over the coastline.
	SmoothingIterations int `yaml:"smoothing_iterations"`
	// FlipChance is the probability an outvoted coastline cell flips.
	FlipChance float64 `yaml:"flip_chance"`
	// BeachWidth is how many rings of beach grow inland from the ocean.
	BeachWidth int `yaml:"beach_width"`
	// SourceMinElevation is the lowest elevation a river can spring from.
	SourceMinElevation float64 `yaml:"source_min_elevation"`
	// MaxRivers caps how many sources are attempted per region.
	MaxRivers int `yaml:"max_rivers"`
	// MinRiverLength discards shorter traces, range >= 2.
	MinRiverLength int `yaml:"min_river_length"`
	// MaxRiverLength stops runaway walks.
	MaxRiverLength int `yaml:"max_river_length"`
	// MeanderChance is the probability a step ignores steepest descent.
	MeanderChance float64 `yaml:"meander_chance"`
	// MeanderSlack is the elevation gain a meander step may climb.
	MeanderSlack float64 `yaml:"meander_slack"`
	// WidthGrowthInterval is how many steps pass between channel width
	// increases; MaxWidth caps the growth.
	WidthGrowthInterval int `yaml:"width_growth_interval"`
	MaxWidth            int `yaml:"max_width"`
}

// DefaultParams returns the tuning used when the caller supplies nothing.
func DefaultParams() Params {
	return Params{
		SmoothingIterations: 1,
		FlipChance:          0.5,
		BeachWidth:          1,
		SourceMinElevation:  0.65,
		MaxRivers:           4,
		MinRiverLength:      3,
		MaxRiverLength:      50,
		MeanderChance:       0.2,
		MeanderSlack:        0.02,
		WidthGrowthInterval: 4,
		MaxWidth:            3,
	}
}

// Engine runs the hydrology pass over biome and elevation grids.
type Engine struct {
	params Params
	logger *log.Logger
}

// NewEngine creates a hydrology engine with the given tuning.
func NewEngine(params Params) *Engine {
	logger := logging.WithFields("component", "hydrology-engine")
	return &Engine{
		params: sanitizeParams(params, logger),
		logger: logger,
	}
}

func sanitizeParams(p Params, logger *log.Logger) Params {
	d := DefaultParams()
	if p.SmoothingIterations < 0 || p.SmoothingIterations > 10 {
		logger.Warn("Clamping smoothing iterations", "requested", p.SmoothingIterations, "range", "0-10")
		p.SmoothingIterations = clampInt(p.SmoothingIterations, 0, 10)
	}
	if p.FlipChance < 0 || p.FlipChance > 1 {
		logger.Warn("Clamping flip chance", "requested", p.FlipChance, "range", "[0,1]")
		p.FlipChance = clampFloat(p.FlipChance, 0, 1)
	}
	if p.BeachWidth < 0 || p.BeachWidth > 3 {
		logger.Warn("Clamping beach width", "requested", p.BeachWidth, "range", "0-3")
		p.BeachWidth = clampInt(p.BeachWidth, 0, 3)
	}
	if p.SourceMinElevation < 0 || p.SourceMinElevation > 1 {
		logger.Warn("Clamping source elevation", "requested", p.SourceMinElevation, "range", "[0,1]")
		p.SourceMinElevation = clampFloat(p.SourceMinElevation, 0, 1)
	}
	if p.MaxRivers < 0 {
		p.MaxRivers = 0
	}
	if p.MinRiverLength < 2 {
		logger.Warn("Raising minimum river length", "requested", p.MinRiverLength, "minimum", 2)
		p.MinRiverLength = 2
	}
	if p.MaxRiverLength < p.MinRiverLength {
		p.MaxRiverLength = d.MaxRiverLength
	}
	if p.MeanderChance < 0 || p.MeanderChance > 1 {
		p.MeanderChance = clampFloat(p.MeanderChance, 0, 1)
	}
	if p.MeanderSlack < 0 || p.MeanderSlack > 0.2 {
		logger.Warn("Clamping meander slack", "requested", p.MeanderSlack, "range", "[0,0.2]")
		p.MeanderSlack = clampFloat(p.MeanderSlack, 0, 0.2)
	}
	if p.WidthGrowthInterval < 1 {
		p.WidthGrowthInterval = d.WidthGrowthInterval
	}
	if p.MaxWidth < 1 {
		p.MaxWidth = d.MaxWidth
	}
	return p
}

// Result is everything the hydrology pass produced. Biomes is the same grid
// the caller passed in, mutated in place.
type Result struct {
	Biomes  [][]world.Biome
	Coastal [][]bool
	Rivers  []River
	// FlippedCells and BeachCells count what smoothing and beach
	// placement rewrote.
	FlippedCells int
	BeachCells   int
}

// Apply runs the full hydrology pass: coastline smoothing, then beach
// strips, then rivers, then the final coastal marking. The biome grid is
// mutated in place.
func (e *Engine) Apply(biomes [][]world.Biome, elev [][]float64, stream rng.StreamInterface) (*Result, error) {
	if err := validateGrids(biomes, elev); err != nil {
		return nil, err
	}

	flipped, err := e.SmoothCoastline(biomes, stream)
	if err != nil {
		return nil, err
	}

	beaches, err := e.PlaceBeaches(biomes)
	if err != nil {
		return nil, err
	}

	rivers, err := e.GenerateRivers(biomes, elev, stream)
	if err != nil {
		return nil, err
	}

	coastal, err := e.IdentifyCoastlines(biomes)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Hydrology pass complete",
		"flipped_cells", flipped,
		"beach_cells", beaches,
		"rivers", len(rivers))

	return &Result{
		Biomes:       biomes,
		Coastal:      coastal,
		Rivers:       rivers,
		FlippedCells: flipped,
		BeachCells:   beaches,
	}, nil
}

// IdentifyCoastlines marks every land cell with at least one cardinal water
// neighbor.
func (e *Engine) IdentifyCoastlines(biomes [][]world.Biome) ([][]bool, error) {
	if err := validateBiomes(biomes); err != nil {
		return nil, err
	}

	height := len(biomes)
	width := len(biomes[0])
	coastal := make([][]bool, height)
	count := 0

	for y := 0; y < height; y++ {
		coastal[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if biomes[y][x].IsWater() {
				continue
			}
			if countWaterNeighbors(biomes, x, y) > 0 {
				coastal[y][x] = true
				count++
			}
		}
	}

	e.logger.Debug("Identified coastline", "coastal_cells", count)
	return coastal, nil
}

// SmoothCoastline flips cells outvoted by their cardinal neighbors: land
// surrounded mostly by water sinks, water surrounded mostly by land silts
// up into the commonest neighboring land biome. Each iteration reads a
// snapshot and writes the next state, so flips within one pass never feed
// each other. Returns the number of flipped cells.
func (e *Engine) SmoothCoastline(biomes [][]world.Biome, stream rng.StreamInterface) (int, error) {
	if err := validateBiomes(biomes); err != nil {
		return 0, err
	}

	height := len(biomes)
	width := len(biomes[0])
	totalFlipped := 0

	for iter := 0; iter < e.params.SmoothingIterations; iter++ {
		snapshot := make([][]world.Biome, height)
		for y := range biomes {
			snapshot[y] = append([]world.Biome(nil), biomes[y]...)
		}

		flipped := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				waterVotes := 0
				landVotes := 0
				for _, n := range (world.Coordinate{X: x, Y: y}).Neighbors4() {
					if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
						continue
					}
					if snapshot[n.Y][n.X].IsWater() {
						waterVotes++
					} else {
						landVotes++
					}
				}

				cell := snapshot[y][x]
				if !cell.IsWater() && waterVotes > landVotes {
					if stream.Chance(e.params.FlipChance) {
						biomes[y][x] = world.BiomeOcean
						flipped++
					}
				} else if cell == world.BiomeOcean && landVotes > waterVotes {
					if stream.Chance(e.params.FlipChance) {
						biomes[y][x] = majorityLandNeighbor(snapshot, x, y)
						flipped++
					}
				}
			}
		}
		totalFlipped += flipped
		e.logger.Debug("Coastline smoothing iteration", "iteration", iter+1, "flipped", flipped)
		if flipped == 0 {
			break
		}
	}
	return totalFlipped, nil
}

// PlaceBeaches converts land cells bordering the ocean into beach, growing
// inland ring by ring up to BeachWidth. Highland cells stay rocky shore.
// Returns the number of cells converted.
func (e *Engine) PlaceBeaches(biomes [][]world.Biome) (int, error) {
	if err := validateBiomes(biomes); err != nil {
		return 0, err
	}

	height := len(biomes)
	width := len(biomes[0])
	total := 0

	for ring := 0; ring < e.params.BeachWidth; ring++ {
		// First ring grows from ocean, later rings from existing beach.
		var candidates []world.Coordinate
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				cell := biomes[y][x]
				if cell.IsWater() || cell == world.BiomeBeach || cell.IsHighland() {
					continue
				}
				for _, n := range (world.Coordinate{X: x, Y: y}).Neighbors4() {
					if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
						continue
					}
					neighbor := biomes[n.Y][n.X]
					if (ring == 0 && neighbor == world.BiomeOcean) ||
						(ring > 0 && neighbor == world.BiomeBeach) {
						candidates = append(candidates, world.Coordinate{X: x, Y: y})
						break
					}
				}
			}
		}
		for _, c := range candidates {
			biomes[c.Y][c.X] = world.BiomeBeach
		}
		total += len(candidates)
		if len(candidates) == 0 {
			break
		}
	}
	return total, nil
}

func countWaterNeighbors(biomes [][]world.Biome, x, y int) int {
	height := len(biomes)
	width := len(biomes[0])
	count := 0
	for _, n := range (world.Coordinate{X: x, Y: y}).Neighbors4() {
		if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
			continue
		}
		if biomes[n.Y][n.X].IsWater() {
			count++
		}
	}
	return count
}

// majorityLandNeighbor picks the commonest land biome among the cardinal
// neighbors, breaking ties by fixed neighbor order.
func majorityLandNeighbor(biomes [][]world.Biome, x, y int) world.Biome {
	height := len(biomes)
	width := len(biomes[0])
	counts := map[world.Biome]int{}
	best := world.BiomePlains
	bestCount := 0
	for _, n := range (world.Coordinate{X: x, Y: y}).Neighbors4() {
		if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
			continue
		}
		b := biomes[n.Y][n.X]
		if b.IsWater() {
			continue
		}
		counts[b]++
		if counts[b] > bestCount {
			best = b
			bestCount = counts[b]
		}
	}
	return best
}

func validateGrids(biomes [][]world.Biome, elev [][]float64) error {
	if err := validateBiomes(biomes); err != nil {
		return err
	}
	if len(elev) != len(biomes) {
		return fmt.Errorf("elevation height %d does not match biome height %d: %w",
			len(elev), len(biomes), world.ErrBadInput)
	}
	for y := range elev {
		if len(elev[y]) != len(biomes[y]) {
			return fmt.Errorf("elevation width differs from biome width at row %d: %w", y, world.ErrBadInput)
		}
		for x, v := range elev[y] {
			if v < 0 || v > 1 {
				return fmt.Errorf("elevation %f at (%d,%d) outside [0,1]: %w", v, x, y, world.ErrBadInput)
			}
		}
	}
	return nil
}

func validateBiomes(biomes [][]world.Biome) error {
	if len(biomes) == 0 || len(biomes[0]) == 0 {
		return fmt.Errorf("empty biome grid: %w", world.ErrBadInput)
	}
	width := len(biomes[0])
	for y := range biomes {
		if len(biomes[y]) != width {
			return fmt.Errorf("ragged biome grid at row %d: %w", y, world.ErrBadInput)
		}
	}
	return nil
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

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
