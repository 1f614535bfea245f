package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/storage"
)

type stubGame struct {
	resets  int
	resized bool
	inputs  []core.InputFrame
	cfg     core.RuntimeConfig
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.cfg = cfg
}

func (g *stubGame) Step(input core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, input)
	return core.StepResult{State: core.GameState{Wave: len(g.inputs)}}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub screen")
}

func (g *stubGame) State() core.GameState { return core.GameState{} }

type resizingGame struct {
	stubGame
}

func (g *resizingGame) Resize(w, h int) { g.resized = true }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionNextWave},
		{"n", runeKey('n'), core.ActionNextWave},
		{"d", runeKey('d'), core.ActionUpgradeDefense},
		{"t", runeKey('t'), core.ActionUpgradeTower},
		{"p", runeKey('p'), core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"quit is not an action", runeKey('q'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestModelKeysReachGameOnTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	if g.resets != 1 {
		t.Fatalf("Reset called %d times, want 1", g.resets)
	}
	if g.cfg.ScreenH != 10-helpHeight {
		t.Errorf("game screen height = %d, want %d", g.cfg.ScreenH, 10-helpHeight)
	}

	next, _ := m.Update(runeKey('d'))
	next, cmd := next.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	next, _ = next.Update(TickMsg(time.Now()))

	if len(g.inputs) != 2 {
		t.Fatalf("Step called %d times, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionUpgradeDefense) {
		t.Error("first tick should carry the key press")
	}
	if g.inputs[1].Has(core.ActionUpgradeDefense) {
		t.Error("input should be cleared after a tick")
	}
	if st := next.(Model).State(); st.Wave != 2 {
		t.Errorf("State() = %+v, want the last step result", st)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	plain := &stubGame{}
	m := NewModel(plain, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if plain.resets != 2 {
		t.Errorf("plain game resets = %d, want 2", plain.resets)
	}

	rg := &resizingGame{}
	m = NewModel(rg, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !rg.resized || rg.resets != 1 {
		t.Errorf("resizer: resized=%v resets=%d, want true/1", rg.resized, rg.resets)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&stubGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	view := m.View()
	if !strings.Contains(view, "stub screen") {
		t.Errorf("View() missing game output: %q", view)
	}
	if !strings.Contains(view, "next wave") {
		t.Errorf("View() missing help bar: %q", view)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "red", core.ColorRed)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	if !strings.Contains(out, "red") || !strings.Contains(out, "plain") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() should have one newline, got %q", out)
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, id := range []string{"first-session", "second-session"} {
		if err := store.SaveSession(storage.SessionRecord{ID: id, Preset: "normal", NextWave: 2}); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}
	if _, err := store.SaveWaveResult(storage.WaveRecord{
		SessionID:  "second-session",
		WaveResult: director.WaveResult{WaveIndex: 1, StartingHealth: 100, HealthLost: 25, CombatDuration: 42},
		Pattern:    "escort",
	}); err != nil {
		t.Fatalf("SaveWaveResult() failed: %v", err)
	}

	m := NewHistoryModel(store, "second", 120, 30)
	if sel := m.Selected(); sel == nil || sel.ID != "second-session" {
		t.Fatalf("Selected() = %+v, want second-session", sel)
	}
	if len(m.waves) != 1 {
		t.Fatalf("waves = %d, want 1", len(m.waves))
	}
	view := m.View()
	if !strings.Contains(view, "SESSION HISTORY") || !strings.Contains(view, "escort") {
		t.Errorf("View() = %q", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	hm := next.(HistoryModel)
	if hm.Selected().ID == "second-session" {
		t.Error("tab should move to another session")
	}
	if len(hm.waves) != 0 {
		t.Errorf("first-session waves = %d, want 0", len(hm.waves))
	}
}

func TestWaveRows(t *testing.T) {
	rows := WaveRows([]storage.WaveRecord{{
		WaveResult: director.WaveResult{
			WaveIndex: 3, StartingHealth: 100, HealthLost: 40, CombatDuration: 61.3,
			EnemiesSpawned: 9, ElitesSpawned: 2, MiniBossesSpawned: 1,
		},
		Pattern:         "burst",
		DifficultyScore: 0.456,
		SpawnDelay:      1.5,
		Kills:           8,
	}})
	want := []string{"3", "burst", "0.46", "1.50s", "9", "2/1", "40/100", "61.3s", "8"}
	if len(rows) != 1 || len(rows[0]) != len(want) {
		t.Fatalf("WaveRows() = %v", rows)
	}
	for i, cell := range rows[0] {
		if cell != want[i] {
			t.Errorf("cell %d = %q, want %q", i, cell, want[i])
		}
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, time.Second / 30},
		{-5, time.Second / 30},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestModelScreenshotNotice(t *testing.T) {
	m := NewModel(&stubGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	next, _ := m.Update(screenshotMsg{path: "/tmp/stub.txt"})
	if view := next.View(); !strings.Contains(view, "saved /tmp/stub.txt") {
		t.Errorf("View() should show the notice: %q", view)
	}

	for i := 0; i < noticeTicks; i++ {
		next, _ = next.Update(TickMsg(time.Now()))
	}
	if view := next.View(); !strings.Contains(view, "next wave") {
		t.Errorf("help bar should return after the notice: %q", view)
	}
}
