package resource

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Cluster is one named deposit field stamped over same-biome tiles around a
// center. Stamped deposits share the cluster's name and ID.
type Cluster struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Type   world.ResourceType `json:"type"`
	Center world.Coordinate   `json:"center"`
	Radius int                `json:"radius"`
	// Tiles counts the deposits the cluster stamped.
	Tiles int `json:"tiles"`
}

// StampClusters overlays up to ClusterCount named resource fields on the
// grid. Each cluster picks a random center, draws a deposit kind from the
// center biome's spawn table, and stamps every same-biome tile within its
// radius. Placement retries are bounded; when they run out the region simply
// carries fewer clusters.
func (d *Distributor) StampClusters(tiles []*world.Tile, stream rng.StreamInterface) ([]Cluster, error) {
	if err := validateTiles(tiles); err != nil {
		return nil, err
	}
	if d.params.ClusterCount == 0 {
		return nil, nil
	}

	sorted := sortTiles(tiles)
	clusters := make([]Cluster, 0, d.params.ClusterCount)
	maxAttempts := d.params.ClusterCount * d.params.PlacementAttempts

	for attempt := 0; attempt < maxAttempts && len(clusters) < d.params.ClusterCount; attempt++ {
		center := sorted[stream.Intn(len(sorted))]
		entries := d.table[center.Biome]
		if len(entries) == 0 {
			continue
		}
		if d.tooCloseToCluster(center.Coordinate, clusters) {
			continue
		}

		entry := entries[stream.Intn(len(entries))]
		radius := stream.Range(d.params.ClusterMinRadius, d.params.ClusterMaxRadius)
		id := clusterID(stream.Seed(), len(clusters), center.Coordinate, entry.Type)
		name := clusterName(entry.Type, stream)

		stamped := 0
		for _, tile := range sorted {
			if tile.Biome != center.Biome {
				continue
			}
			if center.Coordinate.EuclideanDistance(tile.Coordinate) > float64(radius) {
				continue
			}
			rarity := stream.Range(entry.MinRarity, entry.MaxRarity)
			quantity := stream.Range(entry.MinQuantity, entry.MaxQuantity)
			factor := 0.8 + 0.4*stream.Float64()
			tile.Resources = append(tile.Resources, world.Resource{
				Name:      name,
				Type:      entry.Type,
				Rarity:    rarity,
				Quantity:  quantity,
				Value:     resourceValue(rarity, quantity, factor),
				ClusterID: id,
			})
			stamped++
		}

		clusters = append(clusters, Cluster{
			ID:     id,
			Name:   name,
			Type:   entry.Type,
			Center: center.Coordinate,
			Radius: radius,
			Tiles:  stamped,
		})
		d.logger.Debug("Stamped resource cluster",
			"name", name, "type", entry.Type, "center", center.Coordinate,
			"radius", radius, "tiles", stamped)
	}

	if len(clusters) < d.params.ClusterCount {
		d.logger.Warn("Cluster placement exhausted before reaching target",
			"placed", len(clusters), "target", d.params.ClusterCount)
	}
	return clusters, nil
}

func (d *Distributor) tooCloseToCluster(c world.Coordinate, clusters []Cluster) bool {
	for _, cl := range clusters {
		if c.EuclideanDistance(cl.Center) < float64(d.params.MinClusterSpacing) {
			return true
		}
	}
	return false
}

// clusterID derives a stable identifier from the stream seed and the
// cluster's placement. The same region seed always reproduces the same IDs.
func clusterID(seed int64, ordinal int, center world.Coordinate, t world.ResourceType) string {
	input := fmt.Sprintf("cluster:%d:%d:%s:%s", seed, ordinal, center, t)
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:16]
}

// Name fragments for cluster deposits. Entries may be appended but never
// reordered: the name roll draws indexes from the region stream, so
// reordering would silently rename clusters in every world generated so far.
var clusterQualities = []string{"Abundant", "Ancient", "Deep", "Hidden", "Rich", "Veined"}

var clusterMetals = []string{"Copper", "Iron", "Silver", "Tin"}

func clusterName(t world.ResourceType, stream rng.StreamInterface) string {
	quality := clusterQualities[stream.Intn(len(clusterQualities))]
	switch t {
	case world.ResourceOre:
		metal := clusterMetals[stream.Intn(len(clusterMetals))]
		return quality + " " + metal + " Lode"
	case world.ResourcePreciousMetal:
		return quality + " Gold Vein"
	case world.ResourceGem:
		return quality + " Gem Seam"
	case world.ResourceStone:
		return quality + " Quarry"
	case world.ResourceHerb:
		return quality + " Grove"
	case world.ResourceCrop:
		return quality + " Fields"
	case world.ResourceAnimal:
		return quality + " Hunting Grounds"
	case world.ResourceFish:
		return quality + " Fishing Grounds"
	case world.ResourceWater:
		return quality + " Springs"
	case world.ResourceMagical:
		return quality + " Ley Well"
	default:
		return quality + " Deposit"
	}
}
