package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/cmd/debug/models"
	"github.com/hexcrawl/worldgen/config"
	"github.com/hexcrawl/worldgen/internal/logging"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/services/region"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	seed := flag.String("seed", "", "World seed, text or integer")
	startView := flag.String("view", "menu", "Starting view (menu, map, overview)")
	logLevel := flag.String("log", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Setup logging. Warnings only by default so generator output does not
	// tear the alternate screen.
	logging.InitLogger()
	switch *logLevel {
	case "debug":
		logging.GetLogger().SetLevel(log.DebugLevel)
	case "info":
		logging.GetLogger().SetLevel(log.InfoLevel)
	case "warn":
		logging.GetLogger().SetLevel(log.WarnLevel)
	case "error":
		logging.GetLogger().SetLevel(log.ErrorLevel)
	default:
		logging.GetLogger().SetLevel(log.WarnLevel)
	}

	// Setup file logging for debug
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	cfg := config.Load(*configPath)
	if *seed != "" {
		cfg.Seed = *seed
	}

	regionGen := region.NewGenerator(cfg.RegionOptions())
	continentGen := continent.NewGenerator(cfg.Continent, regionGen)

	// Initialize the main app model
	app := models.NewApp(cfg, continentGen, *startView)

	// Create and run the Bubble Tea program
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting worldgen debug tool", "seed", cfg.Seed, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}
}
