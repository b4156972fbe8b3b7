package world

import "time"

// Continent is the top-level generation record: the set of region
// coordinates produced by the contiguous walk plus identity and metadata.
type Continent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seed Seed   `json:"seed"`
	// RegionCoordinates lists regions in placement order; the first entry
	// is always the origin.
	RegionCoordinates []Coordinate `json:"region_coordinates"`
	// RegionIDs runs parallel to RegionCoordinates.
	RegionIDs []string `json:"region_ids"`
	// Origin is the coordinate the footprint walk grew from.
	Origin   Coordinate        `json:"origin"`
	Boundary *Bounds           `json:"boundary,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	// GeneratedAt is caller-facing bookkeeping; it stays out of the
	// serialized form so identical seeds keep producing identical bytes.
	GeneratedAt time.Time `json:"-"`
}

// RegionCount returns the number of regions the continent spans.
func (c *Continent) RegionCount() int {
	return len(c.RegionCoordinates)
}

// ContainsRegion reports whether the continent includes the coordinate.
func (c *Continent) ContainsRegion(coord Coordinate) bool {
	for _, rc := range c.RegionCoordinates {
		if rc == coord {
			return true
		}
	}
	return false
}

// World bundles a continent with its generated regions, keyed in the
// continent's placement order. This is the full output of one generation run.
type World struct {
	Continent *Continent `json:"continent"`
	Regions   []*Region  `json:"regions"`
}
