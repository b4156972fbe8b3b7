package world

// ResourceType groups resources into gameplay categories.
type ResourceType string

const (
	ResourceStone         ResourceType = "stone"
	ResourceOre           ResourceType = "ore"
	ResourceGem           ResourceType = "gem"
	ResourcePreciousMetal ResourceType = "precious_metal"
	ResourceHerb          ResourceType = "herb"
	ResourceCrop          ResourceType = "crop"
	ResourceAnimal        ResourceType = "animal"
	ResourceFish          ResourceType = "fish"
	ResourceWater         ResourceType = "water"
	ResourceMagical       ResourceType = "magical"
)

// Resource is one deposit attached to a tile. Rarity, Quantity, and Value
// all live on the 1-10 scale.
type Resource struct {
	Name     string       `json:"name"`
	Type     ResourceType `json:"type"`
	Rarity   int          `json:"rarity"`
	Quantity int          `json:"quantity"`
	Value    int          `json:"value"`
	// ClusterID ties deposits stamped by the same special cluster
	// together; empty for ordinary rolls.
	ClusterID string `json:"cluster_id,omitempty"`
}
