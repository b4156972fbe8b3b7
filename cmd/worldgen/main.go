package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hexcrawl/worldgen/config"
	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/services/region"
	"github.com/hexcrawl/worldgen/world"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	seed := flag.String("seed", "", "World seed, text or integer (overrides config)")
	regions := flag.Int("regions", 0, "Target region count (overrides config)")
	rulesPath := flag.String("rules", "", "Path to a JSON adjacency rule file (overrides config)")
	tablesPath := flag.String("resources", "", "Path to a JSON resource table file (overrides config)")
	regionOnly := flag.String("region-only", "", "Generate a single region at x,y instead of a continent")
	outPath := flag.String("out", "", "Write JSON to this file instead of stdout")
	pretty := flag.Bool("pretty", false, "Indent the JSON output")
	flag.Parse()

	envMissing := godotenv.Load() != nil
	logging.InitLogger()
	logger := logging.WithFields("component", "worldgen-cli")
	if envMissing {
		logger.Debug("No .env file found, using system environment variables")
	}

	cfg := config.Load(*configPath)
	if *seed != "" {
		cfg.Seed = *seed
	}
	if *regions > 0 {
		cfg.Continent.TargetRegions = *regions
	}
	if *rulesPath != "" {
		cfg.RulesPath = *rulesPath
	}
	if *tablesPath != "" {
		cfg.TablesPath = *tablesPath
	}

	regionGen := region.NewGenerator(cfg.RegionOptions())
	continentGen := continent.NewGenerator(cfg.Continent, regionGen)

	ctx, cancel := signalContext()
	defer cancel()

	canonicalSeed := cfg.CanonicalSeed()
	logger.Info("Starting world generation", "seed", cfg.Seed, "canonical_seed", canonicalSeed)

	var payload any
	if *regionOnly != "" {
		coord, err := parseCoordinate(*regionOnly)
		if err != nil {
			logger.Fatal("Invalid -region-only coordinate", "value", *regionOnly, "error", err)
		}
		r, err := continentGen.GenerateRegion(ctx, canonicalSeed, coord)
		if err != nil {
			logger.Fatal("Region generation failed", "coordinate", coord, "error", err)
		}
		payload = r
	} else {
		w, err := continentGen.Generate(ctx, canonicalSeed)
		if err != nil {
			logger.Fatal("Continent generation failed", "seed", canonicalSeed, "error", err)
		}
		payload = w
	}

	data, err := encodeJSON(payload, *pretty)
	if err != nil {
		logger.Fatal("Failed to encode output", "error", err)
	}

	if err := writeOutput(*outPath, data); err != nil {
		logger.Fatal("Failed to write output", "path", *outPath, "error", err)
	}
}

// parseCoordinate reads a "x,y" pair as passed to -region-only.
func parseCoordinate(s string) (world.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return world.Coordinate{}, fmt.Errorf("expected x,y: %w", world.ErrBadInput)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return world.Coordinate{}, fmt.Errorf("bad x %q: %w", parts[0], world.ErrBadInput)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return world.Coordinate{}, fmt.Errorf("bad y %q: %w", parts[1], world.ErrBadInput)
	}
	return world.Coordinate{X: x, Y: y}, nil
}

func encodeJSON(payload any, pretty bool) ([]byte, error) {
	if pretty {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// signalContext cancels the returned context on SIGINT or SIGTERM so
// continent generation stops between regions instead of being killed
// mid-write.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
