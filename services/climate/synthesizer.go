// Package climate derives humidity and temperature fields from elevation,
// latitude, and dedicated noise layers.
package climate

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/noise"
	"github.com/hexcrawl/worldgen/world"
)

// Params tunes climate synthesis. Out-of-range values are clamped at
// construction with a warning.
type Params struct {
	// HumidityNoiseScale zooms the humidity noise field.
	HumidityNoiseScale float64 `yaml:"humidity_noise_scale"`
	// HumidityNoiseWeight is the share of humidity taken from noise; the
	// rest comes from inverted elevation. Range [0, 1].
	HumidityNoiseWeight float64 `yaml:"humidity_noise_weight"`
	// SeaLevel is the elevation below which cells count as open water.
	SeaLevel float64 `yaml:"sea_level"`
	// OceanHumidityBoost is added to water cells, scaled by how far under
	// sea level they sit. Range [0, 1].
	OceanHumidityBoost float64 `yaml:"ocean_humidity_boost"`
	// TemperatureNoiseScale zooms the temperature noise field.
	TemperatureNoiseScale float64 `yaml:"temperature_noise_scale"`
	// TemperatureNoiseWeight, LatitudeWeight, and ElevationWeight split
	// the temperature signal; they are renormalized to sum to one.
	TemperatureNoiseWeight float64 `yaml:"temperature_noise_weight"`
	LatitudeWeight         float64 `yaml:"latitude_weight"`
	ElevationWeight        float64 `yaml:"elevation_weight"`
	// SeasonShift is the temperature offset magnitude applied in summer
	// (positive) and winter (negative). Range [0, 0.5].
	SeasonShift float64 `yaml:"season_shift"`
}

// DefaultParams returns the tuning used when the caller supplies nothing.
func DefaultParams() Params {
	return Params{
		HumidityNoiseScale:     9.0,
		HumidityNoiseWeight:    0.55,
		SeaLevel:               0.30,
		OceanHumidityBoost:     0.25,
		TemperatureNoiseScale:  11.0,
		TemperatureNoiseWeight: 0.30,
		LatitudeWeight:         0.45,
		ElevationWeight:        0.25,
		SeasonShift:            0.15,
	}
}

// Synthesizer generates humidity and temperature grids. Humidity and
// temperature each get their own noise source so the two fields stay
// uncorrelated.
type Synthesizer struct {
	humidityNoise    noise.GeneratorInterface
	temperatureNoise noise.GeneratorInterface
	params           Params
	logger           *log.Logger
}

// NewSynthesizer creates a climate synthesizer from two independent noise
// sources and tuning.
func NewSynthesizer(humidityNoise, temperatureNoise noise.GeneratorInterface, params Params) *Synthesizer {
	logger := logging.WithFields("component", "climate-synthesizer")
	return &Synthesizer{
		humidityNoise:    humidityNoise,
		temperatureNoise: temperatureNoise,
		params:           sanitizeParams(params, logger),
		logger:           logger,
	}
}

func sanitizeParams(p Params, logger *log.Logger) Params {
	if p.HumidityNoiseScale <= 0 {
		logger.Warn("Non-positive humidity noise scale, using default", "requested", p.HumidityNoiseScale)
		p.HumidityNoiseScale = DefaultParams().HumidityNoiseScale
	}
	if p.TemperatureNoiseScale <= 0 {
		logger.Warn("Non-positive temperature noise scale, using default", "requested", p.TemperatureNoiseScale)
		p.TemperatureNoiseScale = DefaultParams().TemperatureNoiseScale
	}
	if p.HumidityNoiseWeight < 0 || p.HumidityNoiseWeight > 1 {
		logger.Warn("Clamping humidity noise weight", "requested", p.HumidityNoiseWeight, "range", "[0,1]")
		p.HumidityNoiseWeight = clamp01(p.HumidityNoiseWeight)
	}
	if p.SeaLevel < 0 || p.SeaLevel > 1 {
		logger.Warn("Clamping sea level", "requested", p.SeaLevel, "range", "[0,1]")
		p.SeaLevel = clamp01(p.SeaLevel)
	}
	p.OceanHumidityBoost = clamp01(p.OceanHumidityBoost)
	if p.SeasonShift < 0 || p.SeasonShift > 0.5 {
		logger.Warn("Clamping season shift", "requested", p.SeasonShift, "range", "[0,0.5]")
		if p.SeasonShift < 0 {
			p.SeasonShift = 0
		} else {
			p.SeasonShift = 0.5
		}
	}

	// Temperature weights renormalize to a unit sum so the blend stays in
	// range no matter what the config says.
	total := p.TemperatureNoiseWeight + p.LatitudeWeight + p.ElevationWeight
	if total <= 0 {
		d := DefaultParams()
		logger.Warn("Temperature weights sum to nothing, using defaults")
		p.TemperatureNoiseWeight = d.TemperatureNoiseWeight
		p.LatitudeWeight = d.LatitudeWeight
		p.ElevationWeight = d.ElevationWeight
	} else if total != 1 {
		p.TemperatureNoiseWeight /= total
		p.LatitudeWeight /= total
		p.ElevationWeight /= total
	}
	return p
}

// Humidity derives the humidity grid from elevation. Lower terrain runs
// wetter, open water wetter still, and the noise layer breaks up the
// gradient. Every output cell lies in [0, 1].
func (s *Synthesizer) Humidity(elev [][]float64) ([][]float64, error) {
	if err := validateGrid(elev); err != nil {
		return nil, err
	}

	height := len(elev)
	width := len(elev[0])
	s.logger.Debug("Generating humidity grid", "width", width, "height", height)

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			n := noise.Normalized01(s.humidityNoise.GetTerrainNoise(x, y, s.params.HumidityNoiseScale))
			h := s.params.HumidityNoiseWeight*n + (1-s.params.HumidityNoiseWeight)*(1-elev[y][x])

			if elev[y][x] < s.params.SeaLevel && s.params.SeaLevel > 0 {
				depth := (s.params.SeaLevel - elev[y][x]) / s.params.SeaLevel
				h += s.params.OceanHumidityBoost * depth
			}

			grid[y][x] = clamp01(h)
		}
	}
	return grid, nil
}

// Temperature derives the temperature grid from elevation, latitude, and
// season. The middle row is the equator; rows toward either edge cool down.
// Every output cell lies in [0, 1].
func (s *Synthesizer) Temperature(elev [][]float64, season world.Season) ([][]float64, error) {
	if err := validateGrid(elev); err != nil {
		return nil, err
	}
	if !season.IsValid() {
		return nil, fmt.Errorf("unknown season %q: %w", season, world.ErrBadInput)
	}

	height := len(elev)
	width := len(elev[0])
	s.logger.Debug("Generating temperature grid",
		"width", width,
		"height", height,
		"season", season)

	seasonOffset := s.seasonOffset(season)
	halfHeight := float64(height-1) / 2

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)

		warmth := 1.0
		if halfHeight > 0 {
			latitude := (float64(y) - halfHeight) / halfHeight
			if latitude < 0 {
				latitude = -latitude
			}
			warmth = 1 - latitude
		}

		for x := 0; x < width; x++ {
			n := noise.Normalized01(s.temperatureNoise.GetTerrainNoise(x, y, s.params.TemperatureNoiseScale))
			temp := s.params.TemperatureNoiseWeight*n +
				s.params.LatitudeWeight*warmth +
				s.params.ElevationWeight*(1-elev[y][x]) +
				seasonOffset
			grid[y][x] = clamp01(temp)
		}
	}
	return grid, nil
}

func (s *Synthesizer) seasonOffset(season world.Season) float64 {
	switch season {
	case world.SeasonWinter:
		return -s.params.SeasonShift
	case world.SeasonSummer:
		return s.params.SeasonShift
	default:
		return 0
	}
}

// validateGrid rejects empty, ragged, or out-of-range elevation input.
func validateGrid(elev [][]float64) error {
	if len(elev) == 0 || len(elev[0]) == 0 {
		return fmt.Errorf("empty elevation grid: %w", world.ErrBadInput)
	}
	width := len(elev[0])
	for y := range elev {
		if len(elev[y]) != width {
			return fmt.Errorf("ragged elevation grid at row %d: %w", y, world.ErrBadInput)
		}
		for x := range elev[y] {
			if elev[y][x] < 0 || elev[y][x] > 1 {
				return fmt.Errorf("elevation %f outside [0,1] at (%d,%d): %w",
					elev[y][x], x, y, world.ErrBadInput)
			}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
