package world

// RegionSize is the side length of a region's square tile grid.
const RegionSize = 15

// RegionTileCount is the number of tiles every region carries.
const RegionTileCount = RegionSize * RegionSize

// POIType labels a point of interest.
type POIType string

const (
	POISettlement  POIType = "settlement"
	POISocial      POIType = "social"
	POIExploration POIType = "exploration"
	POIDungeon     POIType = "dungeon"
)

// MetropolisType names the specialization of a region's metropolis.
type MetropolisType string

const (
	MetropolisTradeHub    MetropolisType = "trade_hub"
	MetropolisFortress    MetropolisType = "fortress"
	MetropolisPort        MetropolisType = "port"
	MetropolisTempleCity  MetropolisType = "temple_city"
	MetropolisArcaneNexus MetropolisType = "arcane_nexus"
)

// POI is a point of interest anchored to a tile.
type POI struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Type       POIType    `json:"type"`
	Name       string     `json:"name"`
	// Population is set for settlements only.
	Population int  `json:"population,omitempty"`
	Metropolis bool `json:"metropolis,omitempty"`
}

// Event is one entry of a region's memory, recording what happened to the
// region during generation. Later gameplay systems append their own.
type Event struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Region is one generation unit: a square grid of tiles plus the aggregate
// state derived from them.
type Region struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Seed       Seed       `json:"seed"`
	// Tiles are stored in row-major order over the region grid.
	Tiles           []*Tile `json:"tiles"`
	POIs            []POI   `json:"pois,omitempty"`
	TotalPopulation int     `json:"total_population"`
	// TensionLevel summarizes regional unrest on the 0-10 scale.
	TensionLevel   int             `json:"tension_level"`
	MetropolisType *MetropolisType `json:"metropolis_type,omitempty"`
	Memory         []Event         `json:"memory,omitempty"`
}

// TileAt returns the tile with the given local coordinate, or nil when the
// coordinate lies outside the region.
func (r *Region) TileAt(c Coordinate) *Tile {
	if c.X < 0 || c.X >= RegionSize || c.Y < 0 || c.Y >= RegionSize {
		return nil
	}
	idx := c.Y*RegionSize + c.X
	if idx < 0 || idx >= len(r.Tiles) {
		return nil
	}
	return r.Tiles[idx]
}
