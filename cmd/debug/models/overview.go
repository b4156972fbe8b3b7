package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexcrawl/worldgen/cmd/debug/components"
	"github.com/hexcrawl/worldgen/services/continent"
	"github.com/hexcrawl/worldgen/world"
)

// OverviewModel generates a full continent and summarizes it
type OverviewModel struct {
	generator *continent.Generator
	seed      world.Seed

	w         *world.World
	isLoading bool
	errorMsg  string
	width     int
	height    int
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(generator *continent.Generator, seed world.Seed) OverviewModel {
	return OverviewModel{
		generator: generator,
		seed:      seed,
	}
}

// Init initializes the overview
func (m OverviewModel) Init() tea.Cmd {
	if m.w != nil {
		return nil
	}
	return m.loadWorldCmd()
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.isLoading = true
			return m, m.loadWorldCmd()
		}

	case continentLoadedMsg:
		m.w = msg.w
		m.isLoading = false
		m.errorMsg = ""

	case continentErrorMsg:
		m.isLoading = false
		m.errorMsg = string(msg)
	}

	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder

	title := components.TitleStyle.Render("Continent Overview")
	s.WriteString(title + "\n")

	if m.w == nil {
		if m.isLoading {
			s.WriteString(components.BorderStyle.Render("Generating continent...") + "\n")
		} else if m.errorMsg != "" {
			s.WriteString(components.BorderStyle.Render("Error: "+m.errorMsg) + "\n")
		} else {
			s.WriteString(components.BorderStyle.Render("No data") + "\n")
		}
		s.WriteString(components.StatusBarStyle.Width(m.width).Render("Press 'r' to generate • 'q' to go back"))
		return s.String()
	}

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderRecordPanel(),
		m.renderBiomePanel(),
		m.renderSettlementPanel(),
	)
	s.WriteString(mainContent + "\n")
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(
		fmt.Sprintf("Seed: %d • Regions: %d • Press 'r' to regenerate • 'q' to go back",
			m.seed, m.w.Continent.RegionCount())))

	return s.String()
}

func (m OverviewModel) renderRecordPanel() string {
	c := m.w.Continent

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Continent") + "\n")
	info.WriteString(fmt.Sprintf("Name: %s\n", c.Name))
	info.WriteString(fmt.Sprintf("Seed: %d\n", c.Seed))
	info.WriteString(fmt.Sprintf("Regions: %d\n", c.RegionCount()))
	if c.Boundary != nil {
		info.WriteString(fmt.Sprintf("Bounds: (%d,%d) to (%d,%d)\n",
			c.Boundary.MinX, c.Boundary.MinY, c.Boundary.MaxX, c.Boundary.MaxY))
	}

	riverTiles := 0
	beachTiles := 0
	for _, r := range m.w.Regions {
		for _, tile := range r.Tiles {
			switch tile.Biome {
			case world.BiomeRiver:
				riverTiles++
			case world.BiomeBeach:
				beachTiles++
			}
		}
	}
	info.WriteString("\n" + components.SubtitleStyle.Render("Hydrology") + "\n")
	info.WriteString(fmt.Sprintf("River tiles: %d\n", riverTiles))
	info.WriteString(fmt.Sprintf("Beach tiles: %d\n", beachTiles))

	return components.InfoPanelStyle.Render(info.String())
}

func (m OverviewModel) renderBiomePanel() string {
	counts := map[world.Biome]int{}
	total := 0
	for _, r := range m.w.Regions {
		for _, tile := range r.Tiles {
			counts[tile.Biome]++
			total++
		}
	}

	type biomeCount struct {
		biome world.Biome
		count int
	}
	ranked := make([]biomeCount, 0, len(counts))
	for b, n := range counts {
		ranked = append(ranked, biomeCount{b, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].biome < ranked[j].biome
	})

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Biomes") + "\n")
	shown := ranked
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, bc := range shown {
		share := float64(bc.count) / float64(total)
		bar := strings.Repeat("#", int(share*20+0.5))
		info.WriteString(fmt.Sprintf("%-10s %4.1f%% %s\n", bc.biome, share*100, bar))
	}

	return components.InfoPanelStyle.Render(info.String())
}

func (m OverviewModel) renderSettlementPanel() string {
	totalPop := 0
	settlements := 0
	dungeons := 0
	var metros []string
	for _, r := range m.w.Regions {
		totalPop += r.TotalPopulation
		for _, poi := range r.POIs {
			switch {
			case poi.Metropolis:
				settlements++
				mtype := ""
				if r.MetropolisType != nil {
					mtype = string(*r.MetropolisType)
				}
				metros = append(metros, fmt.Sprintf("%s (%s) in %s", poi.Name, mtype, r.Coordinate))
			case poi.Type == world.POISettlement:
				settlements++
			case poi.Type == world.POIDungeon:
				dungeons++
			}
		}
	}

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Civilization") + "\n")
	info.WriteString(fmt.Sprintf("Population: %d\n", totalPop))
	info.WriteString(fmt.Sprintf("Settlements: %d\n", settlements))
	info.WriteString(fmt.Sprintf("Dungeons: %d\n", dungeons))

	if len(metros) > 0 {
		info.WriteString("\n" + components.SubtitleStyle.Render("Metropolises") + "\n")
		shown := metros
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, line := range shown {
			info.WriteString(line + "\n")
		}
	}

	return components.InfoPanelStyle.Render(info.String())
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadWorldCmd creates a command to generate the full continent
func (m OverviewModel) loadWorldCmd() tea.Cmd {
	generator := m.generator
	seed := m.seed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		w, err := generator.Generate(ctx, seed)
		if err != nil {
			return continentErrorMsg(err.Error())
		}

		return continentLoadedMsg{w: w}
	}
}

// Messages
type continentLoadedMsg struct {
	w *world.World
}

type continentErrorMsg string
