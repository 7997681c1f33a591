package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

// Viewer tick rate bounds and the number of contacts kept for the run log.
const (
	minTickRate  = 1
	maxTickRate  = 240
	maxRecorded  = 50000
	chromeHeight = 2 // HUD line and help line
)

// Model is the Bubble Tea model that steps and draws one simulation.
type Model struct {
	sim        registry.Simulation
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	keys       ViewerKeyMap
	help       help.Model
	inputFrame core.InputFrame
	state      core.SimState
	last       []core.ContactInfo
	recorded   []core.ContactInfo
	started    time.Time
	runSaved   bool // Whether the current run is already in the run log
	quitting   bool
}

// NewModel creates a viewer model for the given simulation.
// A nil store disables the run log.
func NewModel(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		sim:        sim,
		screen:     core.NewScreen(cfg.ScreenW, sceneHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		logger:     logger,
		keys:       DefaultViewerKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// sceneHeight is the number of rows left for the scene.
func sceneHeight(screenH int) int {
	return max(screenH-chromeHeight, 1)
}

// Init resets the simulation and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.sim.Reset(m.config)
	// Note: state and start time are set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if _, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("cannot save screenshot", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The scene is refitted on
// every render, so the simulation keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, sceneHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	switch {
	case m.inputFrame.Has(core.ActionRestart):
		m.saveRun()
		m.sim.Reset(m.config)
		m.state = m.sim.State()
		m.last = nil
		m.recorded = nil
		m.started = time.Now()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	case m.inputFrame.Has(core.ActionFaster):
		m.config.TickRate = min(m.config.TickRate*2, maxTickRate)
	case m.inputFrame.Has(core.ActionSlower):
		m.config.TickRate = max(m.config.TickRate/2, minTickRate)
	}

	result := m.sim.Step(m.inputFrame)
	m.state = result.State
	if len(result.Contacts) > 0 {
		m.last = result.Contacts
		if room := maxRecorded - len(m.recorded); room > 0 {
			m.recorded = append(m.recorded, result.Contacts[:min(room, len(result.Contacts))]...)
		}
	}

	// Log the run once it finishes
	if m.state.Done {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run in the run log once.
func (m *Model) saveRun() {
	if m.store == nil || m.runSaved || m.state.Step == 0 {
		return
	}
	m.runSaved = true

	var elapsed time.Duration
	if !m.started.IsZero() {
		elapsed = time.Since(m.started)
	}
	runID, err := m.store.SaveRun(storage.Run{
		ScenarioID: m.sim.ID(),
		Steps:      m.state.Step,
		Bodies:     m.state.Bodies,
		Contacts:   m.state.TotalContacts,
		Duration:   elapsed,
	})
	if err != nil {
		m.logger.Warn("cannot save run", "scenario", m.sim.ID(), "error", err)
		return
	}
	if err := m.store.SaveContacts(runID, m.recorded); err != nil {
		m.logger.Warn("cannot save contacts", "run", runID, "error", err)
	}
}

// saveScreenshot saves the current scene to a file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.screen.Clear()
	m.sim.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".collide", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_step%d_%s.txt", m.sim.ID(), m.state.Step, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the HUD, the scene and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.sim.Render(m.screen)

	return RenderHUD(m.sim.Title(), m.state, m.config.TickRate, m.last, m.config.ScreenW) + "\n" +
		RenderScreen(m.screen) + "\n" +
		hudDimStyle.Render(m.help.View(m.keys))
}

// State returns the simulation state as of the last tick.
func (m Model) State() core.SimState {
	return m.state
}

// Run starts the Bubble Tea program for the given simulation.
func Run(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(sim, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
