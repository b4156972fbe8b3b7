package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexcrawl/worldgen/cmd/debug/components"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/world"
)

// RegionMapModel handles the region visualization view
type RegionMapModel struct {
	generator *continent.Generator
	seed      world.Seed

	// Current state
	regionCoord world.Coordinate
	cursorX     int
	cursorY     int
	width       int
	height      int

	// Data
	region    *world.Region
	isLoading bool
	errorMsg  string

	// UI state
	showInfo bool
}

// NewRegionMapModel creates a new region map model
func NewRegionMapModel(generator *continent.Generator, seed world.Seed) RegionMapModel {
	return RegionMapModel{
		generator:   generator,
		seed:        seed,
		regionCoord: world.Origin,
		cursorX:     world.RegionSize / 2,
		cursorY:     world.RegionSize / 2,
		showInfo:    true,
	}
}

// Init initializes the region map
func (m RegionMapModel) Init() tea.Cmd {
	return m.loadRegionCmd()
}

// Update handles region map messages
func (m RegionMapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		// Cursor movement within the region
		case "up", "k":
			if m.cursorY > 0 {
				m.cursorY--
			}
		case "down", "j":
			if m.cursorY < world.RegionSize-1 {
				m.cursorY++
			}
		case "left", "h":
			if m.cursorX > 0 {
				m.cursorX--
			}
		case "right", "l":
			if m.cursorX < world.RegionSize-1 {
				m.cursorX++
			}

		// Region navigation
		case "shift+up", "K":
			m.regionCoord.Y--
			return m.recenter()

		case "shift+down", "J":
			m.regionCoord.Y++
			return m.recenter()

		case "shift+left", "H":
			m.regionCoord.X--
			return m.recenter()

		case "shift+right", "L":
			m.regionCoord.X++
			return m.recenter()

		// Actions
		case "r":
			m.isLoading = true
			return m, m.loadRegionCmd()

		case "i":
			m.showInfo = !m.showInfo
		}

	case regionLoadedMsg:
		m.region = msg.region
		m.isLoading = false
		m.errorMsg = ""

	case regionErrorMsg:
		m.isLoading = false
		m.errorMsg = string(msg)
	}

	return m, nil
}

func (m RegionMapModel) recenter() (tea.Model, tea.Cmd) {
	m.cursorX = world.RegionSize / 2
	m.cursorY = world.RegionSize / 2
	m.isLoading = true
	return m, m.loadRegionCmd()
}

// View renders the region map
func (m RegionMapModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	// Title
	title := components.TitleStyle.Render(fmt.Sprintf("Region Map - %s", m.regionCoord))
	s.WriteString(title + "\n")

	// Main content area
	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(),
		m.renderInfoPanel(),
	)
	s.WriteString(mainContent + "\n")

	// Status bar
	s.WriteString(m.renderStatusBar())

	return s.String()
}

// renderGrid renders the region tile grid
func (m RegionMapModel) renderGrid() string {
	if m.region == nil {
		if m.isLoading {
			return components.BorderStyle.Render("Generating region...")
		}
		if m.errorMsg != "" {
			return components.BorderStyle.Render("Error: " + m.errorMsg)
		}
		return components.BorderStyle.Render("No data")
	}

	var gridRows []string
	for y := 0; y < world.RegionSize; y++ {
		var row []string
		for x := 0; x < world.RegionSize; x++ {
			tile := m.region.TileAt(world.Coordinate{X: x, Y: y})
			cellContent := components.GetTileSymbol(tile)
			cellStyle := components.GridCellStyle.Foreground(components.GetTileColor(tile))

			// Highlight cursor position
			if x == m.cursorX && y == m.cursorY {
				cellStyle = components.GridSelectedCellStyle
			}

			row = append(row, cellStyle.Render(cellContent))
		}
		gridRows = append(gridRows, strings.Join(row, ""))
	}

	grid := strings.Join(gridRows, "\n")

	return components.BorderStyle.
		Width(world.RegionSize*2 + 2).
		Height(world.RegionSize + 2).
		Render(grid)
}

// renderInfoPanel renders the information panel for the cursor tile
func (m RegionMapModel) renderInfoPanel() string {
	if !m.showInfo {
		return ""
	}

	var info strings.Builder

	// Current cursor position info
	info.WriteString(components.SubtitleStyle.Render("Position") + "\n")
	info.WriteString(fmt.Sprintf("Region: %s\n", m.regionCoord))
	info.WriteString(fmt.Sprintf("Local: (%d,%d)\n", m.cursorX, m.cursorY))
	info.WriteString(fmt.Sprintf("World: (%d,%d)\n\n",
		m.regionCoord.X*world.RegionSize+m.cursorX,
		m.regionCoord.Y*world.RegionSize+m.cursorY))

	// Tile under the cursor
	if m.region != nil {
		tile := m.region.TileAt(world.Coordinate{X: m.cursorX, Y: m.cursorY})
		info.WriteString(components.SubtitleStyle.Render("Tile") + "\n")
		if tile != nil {
			info.WriteString(fmt.Sprintf("Biome: %s\n", tile.Biome))
			info.WriteString(fmt.Sprintf("Elevation: %.2f\n", tile.Elevation))
			info.WriteString(fmt.Sprintf("Humidity: %.2f\n", tile.Humidity))
			info.WriteString(fmt.Sprintf("Temperature: %.2f\n", tile.Temperature))

			danger := lipgloss.NewStyle().
				Foreground(components.GetDangerColor(tile.DangerLevel)).
				Render(fmt.Sprintf("%d/10", tile.DangerLevel))
			info.WriteString(fmt.Sprintf("Danger: %s\n", danger))

			if tile.Coastal {
				info.WriteString("Coastal: yes\n")
			}
			if tile.River != nil {
				info.WriteString(fmt.Sprintf("River: %s, width %d\n", tile.River.Type, tile.River.Width))
			}
			if tile.ClaimedBy != "" {
				info.WriteString("Claimed by the metropolis\n")
			}
			if tile.POI != nil {
				info.WriteString(fmt.Sprintf("POI: %s (%s)\n", tile.POI.Name, tile.POI.Type))
				if tile.POI.Population > 0 {
					info.WriteString(fmt.Sprintf("Population: %d\n", tile.POI.Population))
				}
			}
			for _, res := range tile.Resources {
				info.WriteString(fmt.Sprintf("%s R%d Q%d V%d\n", res.Name, res.Rarity, res.Quantity, res.Value))
			}
		} else {
			info.WriteString("No tile at this position\n")
		}
	}

	// Legend
	info.WriteString("\n" + components.SubtitleStyle.Render("Legend") + "\n")
	info.WriteString("~~ ocean   rv river  be beach\n")
	info.WriteString("pl plains  fo forest mt mountains\n")
	info.WriteString("S! town    M! metro  D! dungeon\n")
	info.WriteString("o! social  x? site   >< cursor\n")

	// Controls
	info.WriteString("\n" + components.SubtitleStyle.Render("Controls") + "\n")
	info.WriteString("Arrow keys: Move cursor\n")
	info.WriteString("Shift+Arrow: Move region\n")
	info.WriteString("r: Regenerate  i: Toggle info\n")
	info.WriteString("q: Back\n")

	return components.InfoPanelStyle.Render(info.String())
}

// renderStatusBar renders the status bar
func (m RegionMapModel) renderStatusBar() string {
	var status []string

	status = append(status, fmt.Sprintf("Seed: %d", m.seed))

	if m.region != nil {
		status = append(status, fmt.Sprintf("POIs: %d", len(m.region.POIs)))
		status = append(status, fmt.Sprintf("Population: %d", m.region.TotalPopulation))
		status = append(status, fmt.Sprintf("Tension: %d/10", m.region.TensionLevel))
		if m.region.MetropolisType != nil {
			status = append(status, fmt.Sprintf("Metropolis: %s", *m.region.MetropolisType))
		}
	}

	if m.isLoading {
		status = append(status, "Generating...")
	}
	if m.errorMsg != "" {
		status = append(status, fmt.Sprintf("Error: %s", m.errorMsg))
	}

	statusText := strings.Join(status, " • ")
	return components.StatusBarStyle.Width(m.width).Render(statusText)
}

// SetSize updates the region map size
func (m *RegionMapModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadRegionCmd creates a command to generate the current region
func (m RegionMapModel) loadRegionCmd() tea.Cmd {
	generator := m.generator
	seed := m.seed
	coord := m.regionCoord
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		region, err := generator.GenerateRegion(ctx, seed, coord)
		if err != nil {
			return regionErrorMsg(err.Error())
		}

		return regionLoadedMsg{region: region}
	}
}

// Messages
type regionLoadedMsg struct {
	region *world.Region
}

type regionErrorMsg string
