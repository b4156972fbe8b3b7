// Package biome classifies tiles from their environment and enforces the
// adjacency rules that keep neighboring biomes plausible.
package biome

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/world"
)

// Thresholds carve the elevation, temperature, and humidity axes into biome
// bands. Elevation cuts must rise strictly from SeaLevel to AlpineLevel.
type Thresholds struct {
	SeaLevel      float64 `yaml:"sea_level"`
	HillLevel     float64 `yaml:"hill_level"`
	HighlandLevel float64 `yaml:"highland_level"`
	MountainLevel float64 `yaml:"mountain_level"`
	AlpineLevel   float64 `yaml:"alpine_level"`
	// ColdTemp and HotTemp bound the temperate band.
	ColdTemp float64 `yaml:"cold_temp"`
	HotTemp  float64 `yaml:"hot_temp"`
	// DryHumidity and WetHumidity bound the moderate moisture band;
	// ForestHumidity is the moisture a closed canopy needs.
	DryHumidity    float64 `yaml:"dry_humidity"`
	WetHumidity    float64 `yaml:"wet_humidity"`
	ForestHumidity float64 `yaml:"forest_humidity"`
}

// DefaultThresholds returns the stock biome bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SeaLevel:       0.30,
		HillLevel:      0.55,
		HighlandLevel:  0.70,
		MountainLevel:  0.80,
		AlpineLevel:    0.92,
		ColdTemp:       0.25,
		HotTemp:        0.70,
		DryHumidity:    0.25,
		WetHumidity:    0.70,
		ForestHumidity: 0.45,
	}
}

// Classifier maps environmental values onto biomes.
type Classifier struct {
	thresholds Thresholds
	logger     *log.Logger
}

// NewClassifier creates a classifier with the given thresholds. A threshold
// set whose elevation cuts are out of order is replaced wholesale with the
// defaults.
func NewClassifier(thresholds Thresholds) *Classifier {
	logger := logging.WithFields("component", "biome-classifier")
	if !elevationCutsOrdered(thresholds) {
		logger.Warn("Elevation thresholds out of order, using defaults",
			"sea", thresholds.SeaLevel,
			"hill", thresholds.HillLevel,
			"highland", thresholds.HighlandLevel,
			"mountain", thresholds.MountainLevel,
			"alpine", thresholds.AlpineLevel)
		thresholds = DefaultThresholds()
	}
	return &Classifier{
		thresholds: thresholds,
		logger:     logger,
	}
}

func elevationCutsOrdered(t Thresholds) bool {
	return t.SeaLevel < t.HillLevel &&
		t.HillLevel < t.HighlandLevel &&
		t.HighlandLevel < t.MountainLevel &&
		t.MountainLevel < t.AlpineLevel
}

// Classify picks the biome for one cell.
//
// The ladder runs elevation first (water, then the raised bands), then the
// temperature extremes, then moisture within the temperate band:
//
//	elevation:   ocean | ... | hills | highlands | mountains | alpine
//	cold band:   tundra (dry) or taiga (wooded)
//	hot band:    desert (dry) | savanna | jungle (wet)
//	temperate:   plains (dry) | forest | swamp (wet)
//
// Beach and river never come from classification; hydrology assigns them.
func (c *Classifier) Classify(elevation, temperature, humidity float64) (world.Biome, error) {
	if err := checkUnit("elevation", elevation); err != nil {
		return "", err
	}
	if err := checkUnit("temperature", temperature); err != nil {
		return "", err
	}
	if err := checkUnit("humidity", humidity); err != nil {
		return "", err
	}

	t := c.thresholds

	if elevation < t.SeaLevel {
		return world.BiomeOcean, nil
	}
	if elevation >= t.AlpineLevel {
		return world.BiomeAlpine, nil
	}
	if elevation >= t.MountainLevel {
		return world.BiomeMountains, nil
	}

	if temperature < t.ColdTemp {
		if humidity >= t.ForestHumidity {
			return world.BiomeTaiga, nil
		}
		return world.BiomeTundra, nil
	}

	if elevation >= t.HighlandLevel {
		return world.BiomeHighlands, nil
	}
	if elevation >= t.HillLevel {
		return world.BiomeHills, nil
	}

	if temperature > t.HotTemp {
		switch {
		case humidity < t.DryHumidity:
			return world.BiomeDesert, nil
		case humidity > t.WetHumidity:
			return world.BiomeJungle, nil
		default:
			return world.BiomeSavanna, nil
		}
	}

	if humidity > t.WetHumidity {
		return world.BiomeSwamp, nil
	}
	if humidity >= t.ForestHumidity {
		return world.BiomeForest, nil
	}
	return world.BiomePlains, nil
}

// ClassifyGrid classifies every cell of matching elevation, temperature, and
// humidity grids.
func (c *Classifier) ClassifyGrid(elevation, temperature, humidity [][]float64) ([][]world.Biome, error) {
	if len(elevation) == 0 || len(elevation[0]) == 0 {
		return nil, fmt.Errorf("empty elevation grid: %w", world.ErrBadInput)
	}
	if len(temperature) != len(elevation) || len(humidity) != len(elevation) {
		return nil, fmt.Errorf("grid heights differ (elevation %d, temperature %d, humidity %d): %w",
			len(elevation), len(temperature), len(humidity), world.ErrBadInput)
	}

	height := len(elevation)
	width := len(elevation[0])
	c.logger.Debug("Classifying biome grid", "width", width, "height", height)

	out := make([][]world.Biome, height)
	for y := 0; y < height; y++ {
		if len(elevation[y]) != width || len(temperature[y]) != width || len(humidity[y]) != width {
			return nil, fmt.Errorf("grid widths differ at row %d: %w", y, world.ErrBadInput)
		}
		out[y] = make([]world.Biome, width)
		for x := 0; x < width; x++ {
			b, err := c.Classify(elevation[y][x], temperature[y][x], humidity[y][x])
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			out[y][x] = b
		}
	}
	return out, nil
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s %f outside [0,1]: %w", name, v, world.ErrBadInput)
	}
	return nil
}
