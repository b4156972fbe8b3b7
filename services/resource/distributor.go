package resource

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes ordinary deposit rolls and cluster stamping.
type Params struct {
	ClusterCount      int `yaml:"cluster_count"`
	ClusterMinRadius  int `yaml:"cluster_min_radius"`
	ClusterMaxRadius  int `yaml:"cluster_max_radius"`
	MinClusterSpacing int `yaml:"min_cluster_spacing"`
	// PlacementAttempts bounds cluster placement retries per requested
	// cluster before the shortfall is absorbed.
	PlacementAttempts int `yaml:"placement_attempts"`
}

// DefaultParams returns the tuning used by the standard pipeline.
func DefaultParams() Params {
	return Params{
		ClusterCount:      2,
		ClusterMinRadius:  1,
		ClusterMaxRadius:  3,
		MinClusterSpacing: 4,
		PlacementAttempts: 3,
	}
}

// Distributor rolls deposits from spawn tables onto tiles.
type Distributor struct {
	table  Table
	params Params
	logger *log.Logger
}

// NewDistributor creates a distributor over the given spawn tables. A nil
// table falls back to the compiled-in defaults with a warning.
func NewDistributor(table Table, params Params) *Distributor {
	logger := logging.WithFields("component", "resource-distributor")
	if table == nil {
		logger.Warn("No spawn tables supplied, using defaults")
		table = DefaultTable()
	}
	return &Distributor{
		table:  table,
		params: sanitizeParams(params, logger),
		logger: logger,
	}
}

func sanitizeParams(p Params, logger *log.Logger) Params {
	def := DefaultParams()
	if p.ClusterCount < 0 {
		logger.Warn("Clamping cluster count", "requested", p.ClusterCount, "using", 0)
		p.ClusterCount = 0
	}
	if p.ClusterMinRadius < 0 {
		logger.Warn("Clamping cluster min radius", "requested", p.ClusterMinRadius, "using", 0)
		p.ClusterMinRadius = 0
	}
	if p.ClusterMaxRadius < p.ClusterMinRadius {
		logger.Warn("Cluster radius bounds inverted, swapping",
			"min", p.ClusterMinRadius, "max", p.ClusterMaxRadius)
		p.ClusterMinRadius, p.ClusterMaxRadius = p.ClusterMaxRadius, p.ClusterMinRadius
	}
	if p.MinClusterSpacing < 0 {
		logger.Warn("Clamping cluster spacing", "requested", p.MinClusterSpacing, "using", 0)
		p.MinClusterSpacing = 0
	}
	if p.PlacementAttempts < 1 {
		logger.Warn("Clamping placement attempts", "requested", p.PlacementAttempts, "using", def.PlacementAttempts)
		p.PlacementAttempts = def.PlacementAttempts
	}
	return p
}

// Distribute rolls ordinary deposits for every tile and reports how many were
// placed. Tiles are visited in row-major order so the stream consumption, and
// with it the output, does not depend on the caller's slice order.
func (d *Distributor) Distribute(tiles []*world.Tile, stream rng.StreamInterface) (int, error) {
	if err := validateTiles(tiles); err != nil {
		return 0, err
	}

	placed := 0
	for _, tile := range sortTiles(tiles) {
		for _, entry := range d.table[tile.Biome] {
			if !stream.Chance(adjustedChance(entry, tile)) {
				continue
			}
			tile.Resources = append(tile.Resources, rollResource(entry, stream))
			placed++
		}
	}

	d.logger.Debug("Distributed resources", "tiles", len(tiles), "placed", placed)
	return placed, nil
}

// adjustedChance shifts an entry's spawn chance by tile conditions: minerals
// favor high ground, water-bound types favor low ground, and flora tracks
// humidity. The result is capped at 1 so it stays a probability.
func adjustedChance(entry TableEntry, tile *world.Tile) float64 {
	chance := entry.SpawnChance
	switch entry.Type {
	case world.ResourceStone, world.ResourceOre, world.ResourceGem, world.ResourcePreciousMetal:
		if tile.Elevation > 0.7 {
			chance *= 1.5
		}
	case world.ResourceFish, world.ResourceWater:
		if tile.Elevation < 0.3 {
			chance *= 1.5
		}
	case world.ResourceHerb, world.ResourceCrop:
		if tile.Humidity > 0.6 {
			chance *= 1.3
		} else if tile.Humidity < 0.25 {
			chance *= 0.5
		}
	}
	if chance > 1 {
		chance = 1
	}
	return chance
}

// rollResource draws one deposit from the entry's ranges. The draw order
// (rarity, quantity, factor, name) is fixed; changing it would reshuffle
// every generated world.
func rollResource(entry TableEntry, stream rng.StreamInterface) world.Resource {
	rarity := stream.Range(entry.MinRarity, entry.MaxRarity)
	quantity := stream.Range(entry.MinQuantity, entry.MaxQuantity)
	factor := 0.8 + 0.4*stream.Float64()
	return world.Resource{
		Name:     entry.Names[stream.Intn(len(entry.Names))],
		Type:     entry.Type,
		Rarity:   rarity,
		Quantity: quantity,
		Value:    resourceValue(rarity, quantity, factor),
	}
}

// resourceValue averages rarity and quantity, swings the result by the
// market factor, and pins it to the 1-10 scale.
func resourceValue(rarity, quantity int, factor float64) int {
	v := int(math.Round(float64(rarity+quantity) / 2 * factor))
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func validateTiles(tiles []*world.Tile) error {
	if len(tiles) == 0 {
		return fmt.Errorf("resource: no tiles to distribute over: %w", world.ErrBadInput)
	}
	for i, tile := range tiles {
		if tile == nil {
			return fmt.Errorf("resource: nil tile at index %d: %w", i, world.ErrBadInput)
		}
	}
	return nil
}

// sortTiles returns a row-major ordered copy so callers can pass tiles in
// any order.
func sortTiles(tiles []*world.Tile) []*world.Tile {
	sorted := make([]*world.Tile, len(tiles))
	copy(sorted, tiles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Coordinate.Less(sorted[j].Coordinate)
	})
	return sorted
}
