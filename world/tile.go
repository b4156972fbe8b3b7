package world

// RiverType labels a tile's position along a river course.
type RiverType string

const (
	RiverSource  RiverType = "source"
	RiverChannel RiverType = "channel"
	RiverMouth   RiverType = "mouth"
)

// RiverInfo is the hydrology overlay on a river tile.
type RiverInfo struct {
	Type RiverType `json:"type"`
	// Width grows as the river descends; expressed in abstract channel units.
	Width int `json:"width"`
}

// Tile is one cell of a region. Tiles are created once during generation and
// never mutated afterwards.
type Tile struct {
	Coordinate  Coordinate `json:"coordinate"`
	Biome       Biome      `json:"biome"`
	Elevation   float64    `json:"elevation"`
	Humidity    float64    `json:"humidity"`
	Temperature float64    `json:"temperature"`
	// DangerLevel is on the 0-10 scale; everything else environmental
	// stays in [0,1].
	DangerLevel int        `json:"danger_level"`
	Coastal     bool       `json:"coastal,omitempty"`
	River       *RiverInfo `json:"river,omitempty"`
	POI         *POI       `json:"poi,omitempty"`
	// ClaimedBy holds the POI ID of the metropolis whose sprawl covers
	// this tile, when any.
	ClaimedBy string     `json:"claimed_by,omitempty"`
	Resources []Resource `json:"resources,omitempty"`
}

// TileMap is the working form the pipeline stages pass between each other.
// The final Region flattens it into an ordered slice.
type TileMap map[Coordinate]*Tile

// SortedCoordinates returns the map's keys in row-major order so iteration
// is reproducible.
func (m TileMap) SortedCoordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	SortCoordinates(coords)
	return coords
}

// Flatten returns the tiles in row-major order.
func (m TileMap) Flatten() []*Tile {
	coords := m.SortedCoordinates()
	tiles := make([]*Tile, 0, len(coords))
	for _, c := range coords {
		tiles = append(tiles, m[c])
	}
	return tiles
}
