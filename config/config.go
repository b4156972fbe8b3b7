// Package config aggregates every stage's tunable parameters into one YAML
// document. Stage packages own their parameter types and defaults; this
// package only collects them for the CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/biome"
	"github.com/hexcrawl/worldgen/services/climate"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/services/elevation"
	"github.com/hexcrawl/worldgen/services/hydrology"
	"github.com/hexcrawl/worldgen/services/region"
	"github.com/hexcrawl/worldgen/services/resource"
	"github.com/hexcrawl/worldgen/services/settlement"
	"github.com/hexcrawl/worldgen/world"
)

// Config is the full pipeline configuration. Every field has a working
// default, so a partial file only overrides what it names.
type Config struct {
	// Seed is the world seed as the caller wrote it; canonicalize with
	// CanonicalSeed. The CLI's -seed flag wins over this value.
	Seed   string       `yaml:"seed"`
	Season world.Season `yaml:"season"`

	Continent  continent.Params  `yaml:"continent"`
	Elevation  elevation.Params  `yaml:"elevation"`
	Climate    climate.Params    `yaml:"climate"`
	Thresholds biome.Thresholds  `yaml:"thresholds"`
	Hydrology  hydrology.Params  `yaml:"hydrology"`
	Settlement settlement.Params `yaml:"settlement"`
	Resource   resource.Params   `yaml:"resource"`
	// DangerJitter is the half-width of per-tile danger variation.
	DangerJitter int `yaml:"danger_jitter"`

	// RulesPath and TablesPath point at optional JSON files for biome
	// adjacency rules and resource spawn tables. Empty paths use the
	// compiled-in data.
	RulesPath  string `yaml:"rules_path"`
	TablesPath string `yaml:"tables_path"`
}

// Default returns the full default configuration.
func Default() *Config {
	return &Config{
		Seed:         "",
		Season:       world.SeasonSummer,
		Continent:    continent.DefaultParams(),
		Elevation:    elevation.DefaultParams(),
		Climate:      climate.DefaultParams(),
		Thresholds:   biome.DefaultThresholds(),
		Hydrology:    hydrology.DefaultParams(),
		Settlement:   settlement.DefaultParams(),
		Resource:     resource.DefaultParams(),
		DangerJitter: 1,
	}
}

// Load reads a YAML file over the defaults, so a partial file overrides only
// the fields it names. A missing, unreadable, or malformed file logs a
// warning and yields the full defaults, never an error.
func Load(path string) *Config {
	logger := logging.WithFields("component", "config")

	cfg := Default()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Falling back to default configuration", "path", path, "error", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.Warn("Falling back to default configuration: bad YAML", "path", path, "error", err)
		return Default()
	}
	return cfg
}

// CanonicalSeed returns the configured seed in canonical integer form.
func (c *Config) CanonicalSeed() world.Seed {
	return world.ParseSeed(c.Seed)
}

// RegionOptions assembles the region pipeline options, loading the rule and
// table files when paths are configured.
func (c *Config) RegionOptions() region.Options {
	opts := region.Options{
		Elevation:    c.Elevation,
		Climate:      c.Climate,
		Thresholds:   c.Thresholds,
		Rules:        biome.DefaultRuleSet(),
		Hydrology:    c.Hydrology,
		Settlement:   c.Settlement,
		Resource:     c.Resource,
		Table:        resource.DefaultTable(),
		Season:       c.Season,
		DangerJitter: c.DangerJitter,
	}
	if c.RulesPath != "" {
		opts.Rules = biome.LoadRuleSet(c.RulesPath)
	}
	if c.TablesPath != "" {
		opts.Table = resource.LoadTable(c.TablesPath)
	}
	return opts
}
