package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

// fakeSim reports one contact per step and finishes after limit steps.
type fakeSim struct {
	limit  int
	resets int
	state  core.SimState
}

func (f *fakeSim) ID() string    { return "fake" }
func (f *fakeSim) Title() string { return "Fake scenario" }

func (f *fakeSim) Reset(core.RuntimeConfig) {
	f.resets++
	f.state = core.SimState{Bodies: 2}
}

func (f *fakeSim) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		f.state.Paused = !f.state.Paused
	}
	if f.state.Done || (f.state.Paused && !in.Has(core.ActionStep)) {
		return core.StepResult{State: f.state}
	}
	f.state.Step++
	f.state.TotalContacts++
	f.state.Done = f.limit > 0 && f.state.Step >= f.limit
	return core.StepResult{
		State:    f.state,
		Contacts: []core.ContactInfo{{Step: f.state.Step, Left: "a", Right: "b", Side: core.SideRight, Depth: 0.5}},
	}
}

func (f *fakeSim) Render(dst *core.Screen) { dst.DrawText(0, 0, "scene", core.ColorCyan) }
func (f *fakeSim) State() core.SimState    { return f.state }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(t *testing.T, sim *fakeSim, store *storage.Store) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Logger = log.New(io.Discard)
	m := NewModel(sim, store, cfg)
	m.Init()
	return m
}

// update feeds msg to m and returns the resulting viewer model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	vm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return vm, cmd
}

func TestMapKey(t *testing.T) {
	keys := DefaultViewerKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause},
		{"p pauses", runes("p"), core.ActionPause},
		{"n steps", runes("n"), core.ActionStep},
		{"right steps", tea.KeyMsg{Type: tea.KeyRight}, core.ActionStep},
		{"r restarts", runes("r"), core.ActionRestart},
		{"plus speeds up", runes("+"), core.ActionFaster},
		{"minus slows down", runes("-"), core.ActionSlower},
		{"q quits", runes("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestModelTicksAndPauses(t *testing.T) {
	sim := &fakeSim{}
	m := testModel(t, sim, nil)
	if sim.resets != 1 {
		t.Fatalf("Init reset the simulation %d times, expected 1", sim.resets)
	}

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.State().Step != 1 {
		t.Fatalf("Step = %d after one tick, expected 1", m.State().Step)
	}

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	if s := m.State(); !s.Paused || s.Step != 1 {
		t.Errorf("paused model state = %+v, expected step 1 paused", s)
	}

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, TickMsg{})
	if s := m.State(); s.Step != 2 {
		t.Errorf("single step reached step %d, expected 2", s.Step)
	}
}

func TestModelTickRate(t *testing.T) {
	m := testModel(t, &fakeSim{}, nil)
	rate := m.config.TickRate

	m, _ = update(t, m, runes("+"))
	m, _ = update(t, m, TickMsg{})
	if m.config.TickRate != rate*2 {
		t.Errorf("TickRate = %d after faster, expected %d", m.config.TickRate, rate*2)
	}

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, runes("-"))
		m, _ = update(t, m, TickMsg{})
	}
	if m.config.TickRate != minTickRate {
		t.Errorf("TickRate = %d after slowing down, expected %d", m.config.TickRate, minTickRate)
	}
}

func TestModelRestart(t *testing.T) {
	sim := &fakeSim{}
	m := testModel(t, sim, nil)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, runes("r"))
	m, _ = update(t, m, TickMsg{})
	if sim.resets != 2 || m.State().Step != 0 {
		t.Errorf("after restart: resets=%d step=%d, expected 2 and 0", sim.resets, m.State().Step)
	}
	if len(m.recorded) != 0 || len(m.last) != 0 {
		t.Errorf("restart kept %d recorded contacts", len(m.recorded))
	}
}

func TestModelSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := testModel(t, &fakeSim{limit: 3}, store)
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.State().Done {
		t.Fatalf("model not done after the step limit: %+v", m.State())
	}
	// Quitting after a saved run must not record it twice
	if _, cmd := update(t, m, runes("q")); cmd == nil {
		t.Error("quit key did not return a command")
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	if runs[0].Steps != 3 || runs[0].Contacts != 3 || runs[0].Bodies != 2 {
		t.Errorf("run = %+v, expected 3 steps with 3 contacts", runs[0])
	}
	contacts, err := store.RunContacts(runs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 3 {
		t.Errorf("recorded %d contacts, expected 3", len(contacts))
	}
}

func TestModelQuitWithoutStepsSavesNothing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := testModel(t, &fakeSim{}, store)
	m, _ = update(t, m, runes("q"))
	if m.View() != "" {
		t.Error("quitting model still renders")
	}
	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("recorded %d runs for an unstarted simulation", len(runs))
	}
}

func TestModelView(t *testing.T) {
	m := testModel(t, &fakeSim{}, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})
	m, _ = update(t, m, TickMsg{})

	out := m.View()
	for _, want := range []string{"Fake scenario", "step 1", "scene", "a→b:right", "pause"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
	if h := m.screen.Height(); h != 10 {
		t.Errorf("scene height = %d, expected 10", h)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(1, 0, '#', core.ColorRed)
	s.Set(2, 1, 'o')

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "#") || !strings.Contains(lines[1], "o") {
		t.Errorf("RenderScreen lost cells:\n%s", out)
	}
}

func TestDescribeContacts(t *testing.T) {
	contacts := make([]core.ContactInfo, 5)
	for i := range contacts {
		contacts[i] = core.ContactInfo{Left: "a", Right: "b", Side: core.SideTop}
	}
	got := describeContacts(contacts)
	if strings.Count(got, "a→b:top") != 3 || !strings.HasSuffix(got, "+2") {
		t.Errorf("describeContacts() = %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	if got := FormatStats(storage.Stats{}); got != "no runs" {
		t.Errorf("FormatStats(empty) = %q", got)
	}
	got := FormatStats(storage.Stats{
		Runs:     2,
		Contacts: 7,
		MaxDepth: 1.25,
		Sides:    map[core.Side]int{core.SideBottom: 4, core.SideLeft: 3},
	})
	want := "2 runs  7 contacts  max depth 1.250  (bottom 4, left 3)"
	if got != want {
		t.Errorf("FormatStats() = %q, expected %q", got, want)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := MenuModel{
		items: []registry.Info{{ID: "bounce", Title: "Bounce"}, {ID: "slide", Title: "Slide"}},
		width: 60,
	}
	if r := m.result(); !r.Quit {
		t.Errorf("result without a selection = %+v, expected quit", r)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("select did not quit the menu")
	}
	menu := next.(MenuModel)
	if r := menu.result(); r.ScenarioID != "slide" || r.Quit {
		t.Errorf("result = %+v, expected slide", r)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if r := next.(MenuModel).result(); !r.WantsHistory {
		t.Errorf("result = %+v, expected history", r)
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveRun(storage.Run{ScenarioID: "from-file", Steps: 12, Bodies: 3, Contacts: 4}); err != nil {
		t.Fatal(err)
	}

	m := NewHistoryModel(store, "from-file", 100, 30)
	if got := m.scenarios[m.cursor].ID; got != "from-file" {
		t.Fatalf("history starts at %q, expected from-file", got)
	}
	if len(m.runs) != 1 || m.stats.Runs != 1 {
		t.Fatalf("loaded %d runs, stats %+v", len(m.runs), m.stats)
	}
	out := m.View()
	if !strings.Contains(out, "from-file") || !strings.Contains(out, "1 runs  4 contacts") {
		t.Errorf("View() missing the run:\n%s", out)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(HistoryModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
}
