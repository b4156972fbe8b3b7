package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/hexcrawl/worldgen/config"
	"github.com/hexcrawl/worldgen/services/continent"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	RegionMapView
	OverviewView
)

const viewCount = 3

// App is the main application model
type App struct {
	cfg       *config.Config
	generator *continent.Generator

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu      MenuModel
	regionMap RegionMapModel
	overview  OverviewModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, generator *continent.Generator, startView string) *App {
	app := &App{
		cfg:         cfg,
		generator:   generator,
		currentView: MenuView,
	}

	seed := cfg.CanonicalSeed()
	app.menu = NewMenuModel()
	app.regionMap = NewRegionMapModel(generator, seed)
	app.overview = NewOverviewModel(generator, seed)

	// Set starting view based on parameter
	switch startView {
	case "map":
		app.currentView = RegionMapView
	case "overview":
		app.currentView = OverviewView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "seed", m.cfg.Seed)
	return m.getCurrentViewModel().Init()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.regionMap.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			// If not in menu, go back to menu instead of quitting
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			// Cycle through views
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.getCurrentViewModel().Init()

		case "1":
			if m.currentView == MenuView {
				m.currentView = RegionMapView
				return m, m.regionMap.Init()
			}
		case "2":
			if m.currentView == MenuView {
				m.currentView = OverviewView
				return m, m.overview.Init()
			}
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.getCurrentViewModel().Init()
	}

	// Handle help view
	if m.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "?" {
			m.showHelp = false
		}
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case RegionMapView:
		newModel, cmd := m.regionMap.Update(msg)
		m.regionMap = newModel.(RegionMapModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case RegionMapView:
		return m.regionMap.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

// getCurrentViewModel returns the current view's model
func (m *App) getCurrentViewModel() tea.Model {
	switch m.currentView {
	case MenuView:
		return &m.menu
	case RegionMapView:
		return &m.regionMap
	case OverviewView:
		return &m.overview
	}
	return &m.menu
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `
Worldgen Debug Tool - Help

Global Keys:
  q, Ctrl+C    Quit (from menu) / Back to menu
  ?            Toggle this help
  Tab          Cycle through views
  1-2          Select view (from menu)

Views:
  1. Region Map         - Walk the tile grid of any region
  2. Continent Overview - Generate and summarize a continent

Navigation:
  Arrow keys   Move the tile cursor
  Shift+Arrow  Step to the neighboring region
  i            Toggle the info panel
  r            Regenerate the current view

Press ? again to close this help
`
	return help
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
