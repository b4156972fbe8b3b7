package noise

import (
	"github.com/aquilax/go-perlin"
)

// GeneratorInterface defines the interface for noise generation operations.
// This enables dependency injection and makes services easily testable.
type GeneratorInterface interface {
	GetNoise(x, y float64) float64
	GetTerrainNoise(x, y int, scale float64) float64
	GetOctaveNoise(x, y float64, octaves int, persistence, lacunarity float64) float64
	GetSeed() int64
}

// Generator implements the GeneratorInterface using Perlin noise.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a new noise generator with the given seed.
func NewGenerator(seed int64) GeneratorInterface {
	// Create perlin noise with alpha=2, beta=2, n=3
	// These values give good terrain-like noise
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// GetNoise returns a noise value between -1 and 1 for the given coordinates
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// GetTerrainNoise returns noise values suitable for terrain generation
// Scale controls the "zoom" level - higher values = more detailed terrain
func (g *Generator) GetTerrainNoise(x, y int, scale float64) float64 {
	fx := float64(x) / scale
	fy := float64(y) / scale
	return g.GetNoise(fx, fy)
}

// GetOctaveNoise layers several noise octaves on top of each other. Each
// octave scales up in frequency by lacunarity and down in amplitude by
// persistence, then the sum is normalized back into [-1, 1].
func (g *Generator) GetOctaveNoise(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		total += g.noise.Noise2D(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}

	if maxAmplitude == 0 {
		return 0
	}
	return total / maxAmplitude
}

// GetSeed returns the current seed
func (g *Generator) GetSeed() int64 {
	return g.seed
}

// Normalized01 maps a [-1, 1] noise value into [0, 1].
func Normalized01(v float64) float64 {
	n := (v + 1) / 2
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
