package hydrology

import (
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// River is one committed river trace. Path runs source to mouth and Widths
// is parallel to it.
type River struct {
	Path   []world.Coordinate `json:"path"`
	Widths []int              `json:"widths"`
	// ReachedWater is true when the trace ended against ocean or an
	// earlier river instead of drying up mid-slope.
	ReachedWater bool `json:"reached_water"`
}

// TypeAt reports the channel role of the i-th cell of the path.
func (r River) TypeAt(i int) world.RiverType {
	switch {
	case i == 0:
		return world.RiverSource
	case i == len(r.Path)-1 && r.ReachedWater:
		return world.RiverMouth
	default:
		return world.RiverChannel
	}
}

// GenerateRivers grows rivers from highland sources downhill until they
// meet water, leave the grid, or run out of descent. Each step follows the
// steepest downhill neighbor; with MeanderChance the walk instead wanders
// to any neighbor no more than MeanderSlack uphill. Traces shorter than
// MinRiverLength are discarded. Committed paths are relabeled to the river
// biome in place, so later rivers treat earlier ones as water and merge
// into them. Returns committed rivers in placement order.
func (e *Engine) GenerateRivers(biomes [][]world.Biome, elev [][]float64, stream rng.StreamInterface) ([]River, error) {
	if err := validateGrids(biomes, elev); err != nil {
		return nil, err
	}
	if e.params.MaxRivers == 0 {
		return nil, nil
	}

	height := len(biomes)
	width := len(biomes[0])

	var sources []world.Coordinate
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if biomes[y][x].IsHighland() && elev[y][x] >= e.params.SourceMinElevation {
				sources = append(sources, world.Coordinate{X: x, Y: y})
			}
		}
	}
	if len(sources) == 0 {
		e.logger.Debug("No river sources above threshold", "min_elevation", e.params.SourceMinElevation)
		return nil, nil
	}

	stream.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > e.params.MaxRivers {
		sources = sources[:e.params.MaxRivers]
	}

	var rivers []River
	for _, source := range sources {
		if biomes[source.Y][source.X] == world.BiomeRiver {
			// An earlier river already flowed through this source.
			continue
		}
		river, ok := e.traceRiver(biomes, elev, source, stream)
		if !ok {
			continue
		}
		for _, c := range river.Path {
			biomes[c.Y][c.X] = world.BiomeRiver
		}
		rivers = append(rivers, river)
	}

	e.logger.Debug("Generated rivers", "attempted", len(sources), "committed", len(rivers))
	return rivers, nil
}

// traceRiver walks one river from source downhill. The trace is not
// committed to the biome grid here; the caller relabels on success.
func (e *Engine) traceRiver(biomes [][]world.Biome, elev [][]float64, source world.Coordinate, stream rng.StreamInterface) (River, bool) {
	height := len(biomes)
	width := len(biomes[0])

	visited := map[world.Coordinate]bool{source: true}
	path := []world.Coordinate{source}
	current := source
	reachedWater := false

	for step := 0; step < e.params.MaxRiverLength; step++ {
		var candidates []world.Coordinate
		metWater := false
		for _, n := range current.Neighbors4() {
			if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
				// Flowing off the grid counts as reaching water:
				// the channel continues in the neighboring region.
				metWater = true
				continue
			}
			if biomes[n.Y][n.X].IsWater() {
				metWater = true
				continue
			}
			if visited[n] {
				continue
			}
			candidates = append(candidates, n)
		}

		if metWater {
			reachedWater = true
			break
		}
		if len(candidates) == 0 {
			break
		}

		next, ok := e.pickStep(candidates, elev, elev[current.Y][current.X], stream)
		if !ok {
			break
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}

	if len(path) < e.params.MinRiverLength {
		e.logger.Debug("Discarding short river trace",
			"source", source.String(), "length", len(path), "minimum", e.params.MinRiverLength)
		return River{}, false
	}

	widths := make([]int, len(path))
	for i := range path {
		w := 1 + i/e.params.WidthGrowthInterval
		if w > e.params.MaxWidth {
			w = e.params.MaxWidth
		}
		widths[i] = w
	}

	return River{Path: path, Widths: widths, ReachedWater: reachedWater}, true
}

// pickStep chooses the next river cell. Default is steepest descent; a
// meander roll instead picks uniformly among neighbors within MeanderSlack
// of the current elevation.
func (e *Engine) pickStep(candidates []world.Coordinate, elev [][]float64, currentElev float64, stream rng.StreamInterface) (world.Coordinate, bool) {
	lowest := candidates[0]
	lowestElev := elev[lowest.Y][lowest.X]
	for _, c := range candidates[1:] {
		if elev[c.Y][c.X] < lowestElev {
			lowest = c
			lowestElev = elev[c.Y][c.X]
		}
	}

	if stream.Chance(e.params.MeanderChance) {
		var loose []world.Coordinate
		for _, c := range candidates {
			if elev[c.Y][c.X] <= currentElev+e.params.MeanderSlack {
				loose = append(loose, c)
			}
		}
		if len(loose) > 0 {
			return loose[stream.Intn(len(loose))], true
		}
	}

	if lowestElev <= currentElev {
		return lowest, true
	}
	// Everything is uphill beyond the slack. The river dries up.
	return world.Coordinate{}, false
}
