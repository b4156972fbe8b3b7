package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hexcrawl/worldgen/world"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Danger scale
	SafeColor    = lipgloss.Color("#04B575") // Green
	UneasyColor  = lipgloss.Color("#FFA500") // Orange
	PerilColor   = lipgloss.Color("#FF4040") // Red
	ClaimedColor = lipgloss.Color("#FFD700") // Gold
)

// Biome palette, roughly matching what each terrain would look like from above.
var biomeColors = map[world.Biome]lipgloss.Color{
	world.BiomeOcean:     lipgloss.Color("#1E90FF"),
	world.BiomeRiver:     lipgloss.Color("#00BFFF"),
	world.BiomeBeach:     lipgloss.Color("#EED9A4"),
	world.BiomePlains:    lipgloss.Color("#7CFC00"),
	world.BiomeForest:    lipgloss.Color("#228B22"),
	world.BiomeJungle:    lipgloss.Color("#006400"),
	world.BiomeSavanna:   lipgloss.Color("#DAA520"),
	world.BiomeDesert:    lipgloss.Color("#F4A460"),
	world.BiomeSwamp:     lipgloss.Color("#556B2F"),
	world.BiomeTundra:    lipgloss.Color("#B0C4DE"),
	world.BiomeTaiga:     lipgloss.Color("#2E8B57"),
	world.BiomeHills:     lipgloss.Color("#BDB76B"),
	world.BiomeHighlands: lipgloss.Color("#CD853F"),
	world.BiomeMountains: lipgloss.Color("#A9A9A9"),
	world.BiomeAlpine:    lipgloss.Color("#FFFAFA"),
}

// Two-character biome codes, sized to GridCellStyle.
var biomeSymbols = map[world.Biome]string{
	world.BiomeOcean:     "~~",
	world.BiomeRiver:     "rv",
	world.BiomeBeach:     "be",
	world.BiomePlains:    "pl",
	world.BiomeForest:    "fo",
	world.BiomeJungle:    "ju",
	world.BiomeSavanna:   "sa",
	world.BiomeDesert:    "de",
	world.BiomeSwamp:     "sw",
	world.BiomeTundra:    "tu",
	world.BiomeTaiga:     "ta",
	world.BiomeHills:     "hi",
	world.BiomeHighlands: "hl",
	world.BiomeMountains: "mt",
	world.BiomeAlpine:    "al",
}

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(34)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	// Grid styles (for region visualization)
	GridCellStyle = lipgloss.NewStyle().
			Width(2).
			Height(1).
			Align(lipgloss.Center)

	GridSelectedCellStyle = lipgloss.NewStyle().
				Width(2).
				Height(1).
				Align(lipgloss.Center).
				Background(PrimaryColor).
				Foreground(lipgloss.Color("#FAFAFA"))
)

// Overlay symbols drawn on top of the biome grid
const (
	SettlementSymbol  = "S!"
	MetropolisSymbol  = "M!"
	SocialSymbol      = "o!"
	ExplorationSymbol = "x?"
	DungeonSymbol     = "D!"
	CursorSymbol      = "><"
	UnknownSymbol     = "??"
)

// GetTileSymbol returns the grid symbol for a tile. POIs override the biome
// code so inhabited sites stay visible.
func GetTileSymbol(tile *world.Tile) string {
	if tile == nil {
		return UnknownSymbol
	}
	if tile.POI != nil {
		switch {
		case tile.POI.Metropolis:
			return MetropolisSymbol
		case tile.POI.Type == world.POISettlement:
			return SettlementSymbol
		case tile.POI.Type == world.POISocial:
			return SocialSymbol
		case tile.POI.Type == world.POIExploration:
			return ExplorationSymbol
		case tile.POI.Type == world.POIDungeon:
			return DungeonSymbol
		}
	}
	if s, ok := biomeSymbols[tile.Biome]; ok {
		return s
	}
	return UnknownSymbol
}

// GetTileColor returns the grid color for a tile.
func GetTileColor(tile *world.Tile) lipgloss.Color {
	if tile == nil {
		return Gray
	}
	if tile.POI != nil {
		if tile.POI.Metropolis {
			return AccentColor
		}
		return DangerColor
	}
	if tile.ClaimedBy != "" {
		return ClaimedColor
	}
	if c, ok := biomeColors[tile.Biome]; ok {
		return c
	}
	return Gray
}

// GetDangerColor maps the 0-10 danger scale onto the traffic-light palette.
func GetDangerColor(level int) lipgloss.Color {
	switch {
	case level >= 7:
		return PerilColor
	case level >= 4:
		return UneasyColor
	default:
		return SafeColor
	}
}
