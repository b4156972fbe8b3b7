// Package world defines the shared vocabulary of the generation pipeline:
// coordinates, seeds, biomes, tiles, regions, continents, and the error
// sentinels every service wraps. It has no dependencies on the services and
// every type serializes cleanly through encoding/json.
package world

import (
	"fmt"
	"math"
	"sort"
)

// Coordinate addresses a cell on the unbounded integer grid. Continents use
// it for region placement and regions use it for tile placement.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the fixed starting point of every continent walk.
var Origin = Coordinate{X: 0, Y: 0}

// cardinal neighbor offsets in a fixed order (north, east, south, west).
// Order matters: placement code shuffles these with the unit's stream, so
// the base order must never change.
var cardinalOffsets = [4]Coordinate{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Neighbors4 returns the four cardinal neighbors in fixed order.
func (c Coordinate) Neighbors4() [4]Coordinate {
	var out [4]Coordinate
	for i, off := range cardinalOffsets {
		out[i] = Coordinate{X: c.X + off.X, Y: c.Y + off.Y}
	}
	return out
}

// Add returns c translated by the given offset.
func (c Coordinate) Add(off Coordinate) Coordinate {
	return Coordinate{X: c.X + off.X, Y: c.Y + off.Y}
}

// ManhattanDistance returns |dx| + |dy| between two coordinates. Settlement
// spacing rules are expressed in this metric.
func (c Coordinate) ManhattanDistance(other Coordinate) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y)
}

// EuclideanDistance returns the straight-line distance between coordinates.
func (c Coordinate) EuclideanDistance(other Coordinate) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// String formats the coordinate as "(x,y)" for logging.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Less orders coordinates row-major (Y first, then X). All deterministic
// iteration over coordinate sets goes through this ordering.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// SortCoordinates sorts the slice in place into row-major order.
func SortCoordinates(coords []Coordinate) {
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
}

// Bounds is the inclusive bounding box of a coordinate set.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width returns the horizontal extent in cells.
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the vertical extent in cells.
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains reports whether the coordinate lies inside the box.
func (b Bounds) Contains(c Coordinate) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// BoundsOf computes the bounding box of the given coordinates. Returns nil
// for an empty set, matching the empty-continent edge case.
func BoundsOf(coords []Coordinate) *Bounds {
	if len(coords) == 0 {
		return nil
	}
	b := &Bounds{
		MinX: coords[0].X, MaxX: coords[0].X,
		MinY: coords[0].Y, MaxY: coords[0].Y,
	}
	for _, c := range coords[1:] {
		if c.X < b.MinX {
			b.MinX = c.X
		}
		if c.X > b.MaxX {
			b.MaxX = c.X
		}
		if c.Y < b.MinY {
			b.MinY = c.Y
		}
		if c.Y > b.MaxY {
			b.MaxY = c.Y
		}
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
