// Package settlement places settlements, the regional metropolis, and minor
// points of interest onto generated tiles under population and spacing
// constraints.
package settlement

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/internal/uuid"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes settlement planning. Out-of-range values are clamped at
// construction with a warning.
type Params struct {
	// PopulationBudget is the total population shared by all settlements
	// of one region.
	PopulationBudget int `yaml:"population_budget"`
	MinSettlementPop int `yaml:"min_settlement_pop"`
	MaxSettlementPop int `yaml:"max_settlement_pop"`
	MaxSettlements   int `yaml:"max_settlements"`
	// MinSettlementSpacing is the Manhattan distance kept between any two
	// settlements; MinPOISpacing does the same for every point of interest.
	MinSettlementSpacing int `yaml:"min_settlement_spacing"`
	POICount             int `yaml:"poi_count"`
	MinPOISpacing        int `yaml:"min_poi_spacing"`
	// PlacementAttempts multiplies the placement target into the attempt
	// budget before the planner gives up on a site.
	PlacementAttempts int `yaml:"placement_attempts"`
	// ForbiddenBiomes never host settlements. UnlikelyBiomes host them
	// with UnlikelyChance. Nil lists fall back to the defaults; an
	// explicitly empty list disables the exclusion.
	ForbiddenBiomes []world.Biome `yaml:"forbidden_biomes"`
	UnlikelyBiomes  []world.Biome `yaml:"unlikely_biomes"`
	UnlikelyChance  float64       `yaml:"unlikely_chance"`
}

// DefaultParams returns the tuning used when the caller supplies nothing.
func DefaultParams() Params {
	return Params{
		PopulationBudget:     2400,
		MinSettlementPop:     60,
		MaxSettlementPop:     800,
		MaxSettlements:       5,
		MinSettlementSpacing: 4,
		POICount:             6,
		MinPOISpacing:        2,
		PlacementAttempts:    3,
		ForbiddenBiomes: []world.Biome{
			world.BiomeOcean, world.BiomeRiver, world.BiomeMountains, world.BiomeAlpine,
		},
		UnlikelyBiomes: []world.Biome{
			world.BiomeDesert, world.BiomeSwamp, world.BiomeTundra, world.BiomeJungle,
		},
		UnlikelyChance: 0.25,
	}
}

// Plan is everything one planning pass produced. POIs lists settlements
// first, in placement order, then minor points of interest.
type Plan struct {
	POIs            []world.POI
	TotalPopulation int
	MetropolisType  *world.MetropolisType
	Events          []world.Event
}

// Planner places settlements and POIs. Construct with NewPlanner.
type Planner struct {
	params    Params
	forbidden map[world.Biome]bool
	unlikely  map[world.Biome]bool
	logger    *log.Logger
}

// NewPlanner creates a planner with the given tuning.
func NewPlanner(params Params) *Planner {
	logger := logging.WithFields("component", "settlement-planner")
	params = sanitizeParams(params, logger)
	return &Planner{
		params:    params,
		forbidden: biomeSet(params.ForbiddenBiomes, logger),
		unlikely:  biomeSet(params.UnlikelyBiomes, logger),
		logger:    logger,
	}
}

func sanitizeParams(p Params, logger *log.Logger) Params {
	if p.PopulationBudget < 0 {
		logger.Warn("Clamping negative population budget to zero", "requested", p.PopulationBudget)
		p.PopulationBudget = 0
	}
	if p.MinSettlementPop < 1 {
		logger.Warn("Raising minimum settlement population", "requested", p.MinSettlementPop, "minimum", 1)
		p.MinSettlementPop = 1
	}
	if p.MaxSettlementPop < p.MinSettlementPop {
		logger.Warn("Raising maximum settlement population to the minimum",
			"requested", p.MaxSettlementPop, "minimum", p.MinSettlementPop)
		p.MaxSettlementPop = p.MinSettlementPop
	}
	if p.MaxSettlements < 0 {
		p.MaxSettlements = 0
	}
	if p.POICount < 0 {
		p.POICount = 0
	}
	if p.MinSettlementSpacing < 0 {
		p.MinSettlementSpacing = 0
	}
	if p.MinPOISpacing < 0 {
		p.MinPOISpacing = 0
	}
	if p.PlacementAttempts < 1 {
		logger.Warn("Raising placement attempts", "requested", p.PlacementAttempts, "minimum", 1)
		p.PlacementAttempts = 1
	}
	if p.UnlikelyChance < 0 || p.UnlikelyChance > 1 {
		logger.Warn("Clamping unlikely-biome chance", "requested", p.UnlikelyChance, "range", "[0,1]")
		if p.UnlikelyChance < 0 {
			p.UnlikelyChance = 0
		} else {
			p.UnlikelyChance = 1
		}
	}
	d := DefaultParams()
	if p.ForbiddenBiomes == nil {
		p.ForbiddenBiomes = d.ForbiddenBiomes
	}
	if p.UnlikelyBiomes == nil {
		p.UnlikelyBiomes = d.UnlikelyBiomes
	}
	return p
}

func biomeSet(biomes []world.Biome, logger *log.Logger) map[world.Biome]bool {
	set := make(map[world.Biome]bool, len(biomes))
	for _, b := range biomes {
		if !b.IsValid() {
			logger.Warn("Skipping unknown biome in exclusion list", "biome", b)
			continue
		}
		set[b] = true
	}
	return set
}

// Plan distributes the population budget over settlements, designates the
// metropolis, and charts minor POIs. Tiles are mutated in place: placed POIs
// and metropolis claims are written back onto them. Placement exhaustion is
// absorbed; only malformed tile input fails.
func (p *Planner) Plan(tiles []*world.Tile, stream rng.StreamInterface) (*Plan, error) {
	index, err := indexTiles(tiles)
	if err != nil {
		return nil, err
	}

	ordered := make([]*world.Tile, len(tiles))
	copy(ordered, tiles)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Coordinate.Less(ordered[j].Coordinate)
	})

	plan := &Plan{}

	settlements := p.placeSettlements(ordered, stream, plan)
	p.designateMetropolis(settlements, index, stream, plan)
	pois := p.placePOIs(ordered, settlements, stream, plan)

	plan.POIs = append(settlements, pois...)
	for _, s := range settlements {
		plan.TotalPopulation += s.Population
	}

	p.logger.Debug("Plan complete",
		"settlements", len(settlements),
		"pois", len(pois),
		"total_population", plan.TotalPopulation)
	return plan, nil
}

func indexTiles(tiles []*world.Tile) (map[world.Coordinate]*world.Tile, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("no tiles to plan over: %w", world.ErrBadInput)
	}
	index := make(map[world.Coordinate]*world.Tile, len(tiles))
	for i, t := range tiles {
		if t == nil {
			return nil, fmt.Errorf("nil tile at index %d: %w", i, world.ErrBadInput)
		}
		if _, dup := index[t.Coordinate]; dup {
			return nil, fmt.Errorf("duplicate tile coordinate %s: %w", t.Coordinate, world.ErrBadInput)
		}
		index[t.Coordinate] = t
	}
	return index, nil
}

func (p *Planner) placeSettlements(ordered []*world.Tile, stream rng.StreamInterface, plan *Plan) []world.POI {
	budget := p.params.PopulationBudget
	maxAttempts := p.params.MaxSettlements * p.params.PlacementAttempts

	var placed []world.POI
	attempts := 0
	for len(placed) < p.params.MaxSettlements && budget >= p.params.MinSettlementPop && attempts < maxAttempts {
		attempts++
		tile := ordered[stream.Intn(len(ordered))]
		if p.forbidden[tile.Biome] || tile.POI != nil || tile.ClaimedBy != "" {
			continue
		}
		if p.unlikely[tile.Biome] && !stream.Chance(p.params.UnlikelyChance) {
			continue
		}
		if tooClose(tile.Coordinate, placed, p.params.MinSettlementSpacing) {
			continue
		}

		maxPop := p.params.MaxSettlementPop
		if budget < maxPop {
			maxPop = budget
		}
		pop := stream.Range(p.params.MinSettlementPop, maxPop)
		budget -= pop

		name := settlementName(stream)
		poi := world.POI{
			ID:         poiID(stream.Seed(), tile.Coordinate, name),
			Coordinate: tile.Coordinate,
			Type:       world.POISettlement,
			Name:       name,
			Population: pop,
		}
		attach := poi
		tile.POI = &attach
		placed = append(placed, poi)
		plan.Events = append(plan.Events, world.Event{
			Kind:   "settlement_founded",
			Detail: fmt.Sprintf("%s founded at %s with %d settlers", name, tile.Coordinate, pop),
		})
	}

	if len(placed) < p.params.MaxSettlements {
		p.logger.Debug("Settlement placement stopped early",
			"placed", len(placed),
			"target", p.params.MaxSettlements,
			"budget_left", budget,
			"attempts", attempts)
	}
	return placed
}

// designateMetropolis upgrades the most populous settlement, picks its
// specialization from local context, and claims one or two adjacent land
// tiles for its sprawl.
func (p *Planner) designateMetropolis(settlements []world.POI, index map[world.Coordinate]*world.Tile, stream rng.StreamInterface, plan *Plan) {
	if len(settlements) == 0 {
		return
	}

	largest := 0
	for i := range settlements {
		if settlements[i].Population > settlements[largest].Population {
			largest = i
		}
	}
	metro := &settlements[largest]
	metro.Metropolis = true

	tile := index[metro.Coordinate]
	if tile.POI != nil {
		tile.POI.Metropolis = true
	}

	mtype := p.pickMetropolisType(tile, stream)
	plan.MetropolisType = &mtype

	wanted := 1 + stream.Intn(2)
	neighbors := metro.Coordinate.Neighbors4()
	order := neighbors[:]
	stream.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	claimed := 0
	for _, n := range order {
		nt := index[n]
		if nt == nil || nt.Biome.IsWater() || nt.POI != nil || nt.ClaimedBy != "" {
			continue
		}
		nt.ClaimedBy = metro.ID
		claimed++
		if claimed == wanted {
			break
		}
	}
	if claimed < wanted {
		p.logger.Debug("Metropolis sprawl truncated", "name", metro.Name, "claimed", claimed, "wanted", wanted)
	}

	plan.Events = append(plan.Events, world.Event{
		Kind:   "metropolis_designated",
		Detail: fmt.Sprintf("%s raised to %s metropolis", metro.Name, mtype),
	})
}

// pickMetropolisType rolls the specialization weighted by the metropolis
// tile: coastal sites favor ports, dangerous surroundings favor fortresses,
// high ground favors arcane nexuses.
func (p *Planner) pickMetropolisType(tile *world.Tile, stream rng.StreamInterface) world.MetropolisType {
	options := []struct {
		t world.MetropolisType
		w int
	}{
		{world.MetropolisTradeHub, 4},
		{world.MetropolisTempleCity, 2},
		{world.MetropolisArcaneNexus, 1},
		{world.MetropolisFortress, 1},
		{world.MetropolisPort, 0},
	}
	if tile.Coastal {
		options[4].w = 6
	}
	if tile.DangerLevel >= 5 {
		options[3].w = 4
	}
	if tile.Elevation >= 0.6 {
		options[2].w = 3
	}

	total := 0
	for _, o := range options {
		total += o.w
	}
	roll := stream.Intn(total)
	for _, o := range options {
		if roll < o.w {
			return o.t
		}
		roll -= o.w
	}
	return world.MetropolisTradeHub
}

func (p *Planner) placePOIs(ordered []*world.Tile, existing []world.POI, stream rng.StreamInterface, plan *Plan) []world.POI {
	maxAttempts := p.params.POICount * p.params.PlacementAttempts
	spacingAgainst := append([]world.POI(nil), existing...)

	var placed []world.POI
	attempts := 0
	for len(placed) < p.params.POICount && attempts < maxAttempts {
		attempts++
		tile := ordered[stream.Intn(len(ordered))]
		if tile.Biome.IsWater() || tile.POI != nil || tile.ClaimedBy != "" {
			continue
		}
		if tooClose(tile.Coordinate, spacingAgainst, p.params.MinPOISpacing) {
			continue
		}

		ptype := poiTypeForDanger(tile.DangerLevel, stream)
		name := poiName(ptype, stream)
		poi := world.POI{
			ID:         poiID(stream.Seed(), tile.Coordinate, name),
			Coordinate: tile.Coordinate,
			Type:       ptype,
			Name:       name,
		}
		attach := poi
		tile.POI = &attach
		spacingAgainst = append(spacingAgainst, poi)
		placed = append(placed, poi)
		plan.Events = append(plan.Events, world.Event{
			Kind:   "poi_charted",
			Detail: fmt.Sprintf("%s charted at %s", name, tile.Coordinate),
		})
	}

	if len(placed) < p.params.POICount {
		p.logger.Debug("POI placement stopped early",
			"placed", len(placed), "target", p.params.POICount, "attempts", attempts)
	}
	return placed
}

func tooClose(c world.Coordinate, placed []world.POI, minSpacing int) bool {
	for _, other := range placed {
		if c.ManhattanDistance(other.Coordinate) < minSpacing {
			return true
		}
	}
	return false
}

// poiID derives a stable identifier from the stream seed, site, and name, so
// regenerating the same region yields the same IDs.
func poiID(seed int64, c world.Coordinate, name string) string {
	return uuid.DeriveFromString(fmt.Sprintf("poi:%d:%s:%s", seed, c, name))
}
