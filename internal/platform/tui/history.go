package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the scenario sidebar
	sidebarWidth       = 22  // Width of the scenario sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	scenarios   []registry.Info
	cursor      int // Currently selected scenario index
	store       *storage.Store
	runs        []storage.Run
	stats       storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewHistoryModel creates a history browser starting at scenarioID.
// An unknown or empty scenarioID starts at the first scenario.
func NewHistoryModel(store *storage.Store, scenarioID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scenarios:   historyScenarios(store),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range m.scenarios {
		if s.ID == scenarioID {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[m.cursor].ID)
	}
	return m
}

// historyScenarios lists registered scenarios plus any scenario that only
// appears in the run log, such as ones loaded from a file.
func historyScenarios(store *storage.Store) []registry.Info {
	list := registry.List()
	if store == nil {
		return list
	}
	runs, err := store.RecentRuns("", maxRuns)
	if err != nil {
		return list
	}
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		seen[s.ID] = true
	}
	var extra []registry.Info
	for _, r := range runs {
		if !seen[r.ScenarioID] {
			seen[r.ScenarioID] = true
			extra = append(extra, registry.Info{ID: r.ScenarioID, Title: r.ScenarioID})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	return append(list, extra...)
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Steps", Width: 7},
		{Title: "Bodies", Width: 7},
		{Title: "Contacts", Width: 9},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the runs and stats of the given scenario.
func (m *HistoryModel) loadRuns(scenarioID string) {
	m.runs = nil
	m.stats = storage.Stats{ScenarioID: scenarioID}
	m.loadErr = nil
	if m.store != nil {
		if m.runs, m.loadErr = m.store.RecentRuns(scenarioID, maxRuns); m.loadErr == nil {
			m.stats, m.loadErr = m.store.ScenarioStats(scenarioID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Bodies),
			fmt.Sprintf("%d", r.Contacts),
			r.Duration.Round(10 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to the table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.scenarios[m.cursor].Title)
	}
	b.WriteString(menuTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderTableContent() + "\n\n" + m.renderStats())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(panel)
	}

	b.WriteString("\n")
	b.WriteString(hudDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar renders the scenario list.
func (m HistoryModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Scenarios\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.scenarios {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := s.ID
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + name))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("Run log unavailable.")
	case m.loadErr != nil:
		return empty.Render(fmt.Sprintf("Cannot load runs: %v", m.loadErr))
	case len(m.runs) == 0:
		return empty.Render("No runs recorded yet.\nSimulate or view a scenario to record one!")
	}
	return m.table.View()
}

// renderStats renders the aggregate line for the selected scenario.
func (m HistoryModel) renderStats() string {
	return hudDimStyle.Render(FormatStats(m.stats))
}

// FormatStats renders scenario stats as a single line.
func FormatStats(s storage.Stats) string {
	if s.Runs == 0 {
		return "no runs"
	}
	sides := make([]string, 0, len(s.Sides))
	for _, side := range []core.Side{core.SideTop, core.SideBottom, core.SideLeft, core.SideRight, core.SideNone} {
		if n := s.Sides[side]; n > 0 {
			sides = append(sides, fmt.Sprintf("%s %d", side, n))
		}
	}
	line := fmt.Sprintf("%d runs  %d contacts  max depth %.3f", s.Runs, s.Contacts, s.MaxDepth)
	if len(sides) > 0 {
		line += "  (" + strings.Join(sides, ", ") + ")"
	}
	return line
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// RunHistory runs the history browser.
// Returns true if user wants to go back to the menu, false if quitting.
func RunHistory(store *storage.Store, scenarioID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, scenarioID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
