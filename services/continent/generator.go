package continent

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/internal/uuid"
	"github.com/hexcrawl/worldgen/services/region"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes continent growth and region generation.
type Params struct {
	TargetRegions int `yaml:"target_regions"`
	MinRegions    int `yaml:"min_regions"`
	MaxRegions    int `yaml:"max_regions"`
	// Workers bounds how many regions generate concurrently. One worker
	// runs the whole continent sequentially.
	Workers int `yaml:"workers"`
	// Name overrides the rolled continent name when non-empty.
	Name string `yaml:"name"`
}

// DefaultParams returns the tuning used when the caller supplies nothing.
func DefaultParams() Params {
	return Params{
		TargetRegions: 12,
		MinRegions:    1,
		MaxRegions:    500,
		Workers:       4,
	}
}

// Generator grows continents and generates their regions.
type Generator struct {
	params  Params
	regions *region.Generator
	logger  *log.Logger
}

// NewGenerator creates a continent generator over the given region pipeline.
func NewGenerator(params Params, regions *region.Generator) *Generator {
	logger := logging.WithFields("component", "continent-generator")
	return &Generator{
		params:  sanitizeParams(params, logger),
		regions: regions,
		logger:  logger,
	}
}

func sanitizeParams(p Params, logger *log.Logger) Params {
	if p.MinRegions < 1 {
		logger.Warn("Raising minimum regions", "requested", p.MinRegions, "using", 1)
		p.MinRegions = 1
	}
	if p.MaxRegions < p.MinRegions {
		logger.Warn("Region bounds inverted", "min", p.MinRegions, "max", p.MaxRegions, "using_max", p.MinRegions)
		p.MaxRegions = p.MinRegions
	}
	if p.Workers < 1 {
		logger.Warn("Clamping workers", "requested", p.Workers, "using", 1)
		p.Workers = 1
	}
	return p
}

// Generate grows the continent footprint and generates every region on it.
// The context is honored between regions only; a region that has started
// always finishes.
func (g *Generator) Generate(ctx context.Context, seed world.Seed) (*world.World, error) {
	start := time.Now()

	coords := GenerateCoordinates(
		g.params.TargetRegions, g.params.MinRegions, g.params.MaxRegions,
		rng.ForUnit(seed, world.Origin, "continent"))

	regions, err := g.generateRegions(ctx, seed, coords)
	if err != nil {
		return nil, err
	}

	cont := g.assembleContinent(seed, coords, regions)
	g.logger.Info("Generated continent",
		"name", cont.Name, "seed", seed, "regions", len(regions),
		"duration", time.Since(start))
	return &world.World{Continent: cont, Regions: regions}, nil
}

// GenerateRegion generates the single region at the given coordinate without
// growing a continent around it.
func (g *Generator) GenerateRegion(ctx context.Context, seed world.Seed, coord world.Coordinate) (*world.Region, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return g.regions.Generate(seed, coord)
}

func (g *Generator) assembleContinent(seed world.Seed, coords []world.Coordinate, regions []*world.Region) *world.Continent {
	name := g.params.Name
	if name == "" {
		name = continentName(rng.ForUnit(seed, world.Origin, "continent-name"))
	}

	ids := make([]string, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}

	return &world.Continent{
		ID:                uuid.DeriveFromString(fmt.Sprintf("continent:%d", seed)),
		Name:              name,
		Seed:              seed,
		RegionCoordinates: coords,
		RegionIDs:         ids,
		Origin:            world.Origin,
		Boundary:          world.BoundsOf(coords),
		Metadata: map[string]string{
			"seed":    strconv.FormatInt(seed, 10),
			"regions": strconv.Itoa(len(regions)),
		},
		GeneratedAt: time.Now(),
	}
}

type regionResult struct {
	region *world.Region
	coord  world.Coordinate
}

// generateRegions produces one region per coordinate. Region generation is
// independent per unit, so the work fans out over a bounded worker pool and
// the results are reassembled into placement order afterwards.
func (g *Generator) generateRegions(ctx context.Context, seed world.Seed, coords []world.Coordinate) ([]*world.Region, error) {
	if len(coords) == 0 {
		return []*world.Region{}, nil
	}

	workerCount := g.params.Workers
	if len(coords) < workerCount {
		workerCount = len(coords)
	}
	if workerCount <= 1 {
		return g.generateSequential(ctx, seed, coords)
	}

	coordChan := make(chan world.Coordinate, len(coords))
	resultChan := make(chan regionResult, len(coords))
	errChan := make(chan error, workerCount)
	doneChan := make(chan struct{})

	for i := 0; i < workerCount; i++ {
		go g.regionWorker(ctx, seed, coordChan, resultChan, errChan, doneChan)
	}

	go func() {
		defer close(coordChan)
		for _, coord := range coords {
			coordChan <- coord
		}
	}()

	byCoord := make(map[world.Coordinate]*world.Region, len(coords))
	for {
		select {
		case result := <-resultChan:
			byCoord[result.coord] = result.region
			if len(byCoord) == len(coords) {
				close(doneChan)
				return orderRegions(coords, byCoord), nil
			}
		case err := <-errChan:
			close(doneChan)
			return nil, err
		case <-ctx.Done():
			close(doneChan)
			return nil, ctx.Err()
		}
	}
}

func (g *Generator) generateSequential(ctx context.Context, seed world.Seed, coords []world.Coordinate) ([]*world.Region, error) {
	regions := make([]*world.Region, 0, len(coords))
	for _, coord := range coords {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		r, err := g.regions.Generate(seed, coord)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", coord, err)
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// regionWorker pulls coordinates until the channel drains or the run is
// stopped.
func (g *Generator) regionWorker(ctx context.Context, seed world.Seed, coordChan <-chan world.Coordinate, resultChan chan<- regionResult, errChan chan<- error, doneChan <-chan struct{}) {
	for {
		select {
		case coord, ok := <-coordChan:
			if !ok {
				return
			}
			r, err := g.regions.Generate(seed, coord)
			if err != nil {
				errChan <- fmt.Errorf("region %s: %w", coord, err)
				return
			}
			resultChan <- regionResult{region: r, coord: coord}
		case <-doneChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// orderRegions reassembles parallel results into placement order so output
// never depends on worker completion order.
func orderRegions(coords []world.Coordinate, byCoord map[world.Coordinate]*world.Region) []*world.Region {
	out := make([]*world.Region, 0, len(coords))
	for _, c := range coords {
		out = append(out, byCoord[c])
	}
	return out
}
