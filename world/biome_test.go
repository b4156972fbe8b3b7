package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiomeIsWater(t *testing.T) {
	assert.True(t, BiomeOcean.IsWater())
	assert.True(t, BiomeRiver.IsWater())
	assert.False(t, BiomeBeach.IsWater())
	assert.False(t, BiomeSwamp.IsWater())
}

func TestBiomeIsHighland(t *testing.T) {
	tests := []struct {
		name     string
		biome    Biome
		expected bool
	}{
		{name: "Hills", biome: BiomeHills, expected: true},
		{name: "Highlands", biome: BiomeHighlands, expected: true},
		{name: "Mountains", biome: BiomeMountains, expected: true},
		{name: "Alpine", biome: BiomeAlpine, expected: true},
		{name: "Plains", biome: BiomePlains, expected: false},
		{name: "Ocean", biome: BiomeOcean, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.biome.IsHighland())
		})
	}
}

func TestBiomeIsValid(t *testing.T) {
	for _, b := range AllBiomes {
		assert.True(t, b.IsValid(), "declared biome %q should be valid", b)
	}
	assert.False(t, Biome("lava").IsValid())
	assert.False(t, Biome("").IsValid())
}

func TestBaseDanger(t *testing.T) {
	// Every declared biome has an explicit entry on the 0-10 scale.
	for _, b := range AllBiomes {
		d := b.BaseDanger()
		assert.GreaterOrEqual(t, d, 0, "biome %q", b)
		assert.LessOrEqual(t, d, 10, "biome %q", b)
	}

	assert.Greater(t, BiomeAlpine.BaseDanger(), BiomePlains.BaseDanger(),
		"remote terrain should be more dangerous than farmland")
	assert.Equal(t, 5, Biome("unknown").BaseDanger(), "unknown biomes use the middling default")
}

func TestSeasonIsValid(t *testing.T) {
	for _, s := range AllSeasons {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Season("monsoon").IsValid())
}
