// Package elevation turns layered noise into the heightmap every later
// stage builds on.
package elevation

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/noise"
	"github.com/hexcrawl/worldgen/services/rng"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes the heightmap synthesis. Out-of-range values are clamped at
// construction with a warning rather than rejected.
type Params struct {
	// Octaves is the number of noise layers, valid range 1-8.
	Octaves int `yaml:"octaves"`
	// Scale is the grid-to-noise zoom factor; larger values give smoother
	// terrain. Must be positive.
	Scale float64 `yaml:"scale"`
	// Persistence is the per-octave amplitude falloff, valid range (0, 1].
	Persistence float64 `yaml:"persistence"`
	// Lacunarity is the per-octave frequency growth, valid range [1.5, 4].
	Lacunarity float64 `yaml:"lacunarity"`
	// IslandFalloff fades elevation toward the grid edge when set.
	IslandFalloff bool `yaml:"island_falloff"`
	// FalloffExponent shapes the edge fade; higher keeps the interior
	// flatter before the drop. Valid range [1, 8].
	FalloffExponent float64 `yaml:"falloff_exponent"`
	// PeakCount mountain peaks are stamped at random positions.
	PeakCount int `yaml:"peak_count"`
	// PeakHeight is the maximum raise at a stamp center, range [0, 1].
	PeakHeight float64 `yaml:"peak_height"`
	// PeakRadius is the stamp footprint in cells.
	PeakRadius int `yaml:"peak_radius"`
	// ValleyCount depressions are stamped the same way peaks are.
	ValleyCount int `yaml:"valley_count"`
	// ValleyDepth is the maximum drop at a stamp center, range [0, 1].
	ValleyDepth float64 `yaml:"valley_depth"`
	// ValleyRadius is the stamp footprint in cells.
	ValleyRadius int `yaml:"valley_radius"`
	// SmoothingPasses box-average passes run after stamping, range 0-10.
	SmoothingPasses int `yaml:"smoothing_passes"`
}

// DefaultParams returns the tuning used when the caller supplies nothing.
func DefaultParams() Params {
	return Params{
		Octaves:         4,
		Scale:           12.0,
		Persistence:     0.5,
		Lacunarity:      2.0,
		IslandFalloff:   false,
		FalloffExponent: 3.5,
		PeakCount:       2,
		PeakHeight:      0.35,
		PeakRadius:      4,
		ValleyCount:     1,
		ValleyDepth:     0.25,
		ValleyRadius:    3,
		SmoothingPasses: 1,
	}
}

// Synthesizer generates elevation grids from coherent noise plus stamped
// peaks and valleys.
type Synthesizer struct {
	noise  noise.GeneratorInterface
	params Params
	logger *log.Logger
}

// NewSynthesizer creates an elevation synthesizer with the given noise
// source and tuning.
func NewSynthesizer(noiseGen noise.GeneratorInterface, params Params) *Synthesizer {
	logger := logging.WithFields("component", "elevation-synthesizer")
	return &Synthesizer{
		noise:  noiseGen,
		params: sanitizeParams(params, logger),
		logger: logger,
	}
}

// sanitizeParams clamps out-of-range tuning into validity, logging each
// correction so misconfigured worlds are diagnosable.
func sanitizeParams(p Params, logger *log.Logger) Params {
	if p.Octaves < 1 || p.Octaves > 8 {
		logger.Warn("Clamping octaves into valid range", "requested", p.Octaves, "range", "1-8")
		p.Octaves = clampInt(p.Octaves, 1, 8)
	}
	if p.Scale <= 0 {
		logger.Warn("Non-positive noise scale, using default", "requested", p.Scale)
		p.Scale = DefaultParams().Scale
	}
	if p.Persistence <= 0 || p.Persistence > 1 {
		logger.Warn("Clamping persistence into valid range", "requested", p.Persistence, "range", "(0,1]")
		p.Persistence = clampFloat(p.Persistence, 0.1, 1.0)
	}
	if p.Lacunarity < 1.5 || p.Lacunarity > 4 {
		logger.Warn("Clamping lacunarity into valid range", "requested", p.Lacunarity, "range", "[1.5,4]")
		p.Lacunarity = clampFloat(p.Lacunarity, 1.5, 4.0)
	}
	if p.FalloffExponent < 1 || p.FalloffExponent > 8 {
		p.FalloffExponent = clampFloat(p.FalloffExponent, 1, 8)
	}
	if p.PeakCount < 0 {
		p.PeakCount = 0
	}
	if p.ValleyCount < 0 {
		p.ValleyCount = 0
	}
	p.PeakHeight = clampFloat(p.PeakHeight, 0, 1)
	p.ValleyDepth = clampFloat(p.ValleyDepth, 0, 1)
	if p.SmoothingPasses < 0 || p.SmoothingPasses > 10 {
		logger.Warn("Clamping smoothing passes into valid range", "requested", p.SmoothingPasses, "range", "0-10")
		p.SmoothingPasses = clampInt(p.SmoothingPasses, 0, 10)
	}
	return p
}

// Generate produces a width x height elevation grid with every cell in
// [0, 1]. The stream drives stamp placement only; the noise field itself is
// fixed by the generator's seed.
func (s *Synthesizer) Generate(width, height int, stream rng.StreamInterface) ([][]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("elevation grid dimensions %dx%d: %w", width, height, world.ErrBadInput)
	}

	s.logger.Debug("Generating elevation grid",
		"width", width,
		"height", height,
		"octaves", s.params.Octaves,
		"seed", s.noise.GetSeed())

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			n := s.noise.GetOctaveNoise(
				float64(x)/s.params.Scale,
				float64(y)/s.params.Scale,
				s.params.Octaves,
				s.params.Persistence,
				s.params.Lacunarity,
			)
			grid[y][x] = noise.Normalized01(n)
		}
	}

	s.stampFeatures(grid, width, height, stream)

	if s.params.IslandFalloff {
		s.applyIslandFalloff(grid, width, height)
	}

	for pass := 0; pass < s.params.SmoothingPasses; pass++ {
		grid = smoothGrid(grid, width, height)
	}

	clampGrid(grid)

	return grid, nil
}

// stampFeatures raises peaks and sinks valleys at stream-chosen positions.
// The contribution decays linearly to zero at the stamp radius, so each
// feature strictly weakens with distance from its center.
func (s *Synthesizer) stampFeatures(grid [][]float64, width, height int, stream rng.StreamInterface) {
	for i := 0; i < s.params.PeakCount; i++ {
		cx := stream.Intn(width)
		cy := stream.Intn(height)
		mag := s.params.PeakHeight * (0.5 + 0.5*stream.Float64())
		applyStamp(grid, width, height, cx, cy, s.params.PeakRadius, mag)
		s.logger.Debug("Stamped peak", "x", cx, "y", cy, "magnitude", mag)
	}
	for i := 0; i < s.params.ValleyCount; i++ {
		cx := stream.Intn(width)
		cy := stream.Intn(height)
		mag := s.params.ValleyDepth * (0.5 + 0.5*stream.Float64())
		applyStamp(grid, width, height, cx, cy, s.params.ValleyRadius, -mag)
		s.logger.Debug("Stamped valley", "x", cx, "y", cy, "magnitude", mag)
	}
}

func applyStamp(grid [][]float64, width, height, cx, cy, radius int, magnitude float64) {
	if radius <= 0 {
		return
	}
	r := float64(radius)
	for y := cy - radius; y <= cy+radius; y++ {
		if y < 0 || y >= height {
			continue
		}
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= width {
				continue
			}
			dx := float64(x - cx)
			dy := float64(y - cy)
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= r {
				continue
			}
			grid[y][x] += magnitude * (1 - d/r)
		}
	}
}

// applyIslandFalloff scales elevation down toward the grid edges so the
// landmass reads as surrounded by ocean.
func (s *Synthesizer) applyIslandFalloff(grid [][]float64, width, height int) {
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	maxDist := math.Sqrt(cx*cx + cy*cy)
	if maxDist == 0 {
		return
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Sqrt(dx*dx+dy*dy) / maxDist
			falloff := 1 - math.Pow(dist, s.params.FalloffExponent)
			if falloff < 0 {
				falloff = 0
			}
			grid[y][x] *= falloff
		}
	}
}

// smoothGrid runs one box-average pass. Averaging neighbors can never raise
// the spread of values, so repeated passes only ever flatten.
func smoothGrid(grid [][]float64, width, height int) [][]float64 {
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			sum := 0.0
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny, nx := y+dy, x+dx
					if ny < 0 || ny >= height || nx < 0 || nx >= width {
						continue
					}
					sum += grid[ny][nx]
					count++
				}
			}
			out[y][x] = sum / float64(count)
		}
	}
	return out
}

func clampGrid(grid [][]float64) {
	for y := range grid {
		for x := range grid[y] {
			if grid[y][x] < 0 {
				grid[y][x] = 0
			} else if grid[y][x] > 1 {
				grid[y][x] = 1
			}
		}
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
