// Package continent grows the continent footprint as a contiguous coordinate
// walk and generates the region for every placed coordinate.
package continent

import (
	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// GenerateCoordinates grows a contiguous set of region coordinates outward
// from the origin. A target outside [minBound, maxBound] is replaced by a
// uniform draw from that range rather than rejected. The walk keeps a
// frontier of placed coordinates that may still have unseen neighbors: each
// step picks a random frontier member, shuffles its four offsets, and places
// the first unseen neighbor. Members with no unseen neighbors retire.
//
// The returned slice is the placement order; the origin is always first.
// Frontier exhaustion before the target is not an error, the walk simply
// returns what it grew.
func GenerateCoordinates(target, minBound, maxBound int, stream rng.StreamInterface) []world.Coordinate {
	logger := logging.WithFields("component", "coordinate-generator")

	if minBound < 1 {
		logger.Warn("Raising minimum region bound", "requested", minBound, "using", 1)
		minBound = 1
	}
	if maxBound < minBound {
		logger.Warn("Region bounds inverted", "min", minBound, "max", maxBound, "using_max", minBound)
		maxBound = minBound
	}
	if target < minBound || target > maxBound {
		redrawn := stream.Range(minBound, maxBound)
		logger.Warn("Region target out of bounds, redrawing",
			"requested", target, "min", minBound, "max", maxBound, "using", redrawn)
		target = redrawn
	}

	placed := map[world.Coordinate]bool{world.Origin: true}
	order := []world.Coordinate{world.Origin}
	frontier := []world.Coordinate{world.Origin}

	for len(order) < target && len(frontier) > 0 {
		idx := stream.Intn(len(frontier))
		current := frontier[idx]

		neighbors := current.Neighbors4()
		stream.Shuffle(len(neighbors), func(i, j int) {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		})

		grown := false
		for _, n := range neighbors {
			if placed[n] {
				continue
			}
			placed[n] = true
			order = append(order, n)
			frontier = append(frontier, n)
			grown = true
			break
		}
		if !grown {
			frontier[idx] = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		}
	}

	if len(order) < target {
		logger.Debug("Frontier exhausted before target", "placed", len(order), "target", target)
	}
	return order
}
