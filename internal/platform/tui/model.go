package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/game"
)

// helpHeight is the row reserved under the game screen for the help bar.
const helpHeight = 1

// noticeTicks is how long a status notice replaces the help bar.
const noticeTicks = 3 * core.DefaultTickRate

// Resizer is implemented by games that can follow terminal resizes without
// restarting.
type Resizer interface {
	Resize(w, h int)
}

// screenshotMsg reports where a screenshot went, or why it did not.
type screenshotMsg struct {
	path string
	err  error
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Model drives one game: it collects key presses between ticks, steps the
// game on every tick and draws it above a help bar.
type Model struct {
	game    game.Game
	rc      core.RuntimeConfig
	screen  *core.Screen
	keys    GameKeyMap
	help    help.Model
	pending core.InputFrame
	last    core.GameState

	notice     string
	noticeLeft int
	done       bool
}

// NewModel resets g to the playable area left after the help bar.
func NewModel(g game.Game, rc core.RuntimeConfig) Model {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultTickRate
	}
	rc.ScreenH = core.Max(0, rc.ScreenH-helpHeight)

	m := Model{
		game:    g,
		rc:      rc,
		screen:  core.NewScreen(rc.ScreenW, rc.ScreenH),
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		pending: core.NewInputFrame(),
	}
	m.help.Width = rc.ScreenW

	// Init has a value receiver, so the first Reset happens here.
	g.Reset(m.rc)
	m.last = g.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rc.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.last = m.game.Step(m.pending).State
		m.pending.Clear()
		if m.noticeLeft > 0 {
			m.noticeLeft--
		}
		return m, tickCmd(m.rc.TickRate)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.done = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Screenshot) {
			return m, m.screenshot()
		}
		if a := m.keys.Action(msg); a != core.ActionNone {
			m.pending.Set(a)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case screenshotMsg:
		if msg.err != nil {
			m.flash("screenshot failed: " + msg.err.Error())
		} else {
			m.flash("saved " + msg.path)
		}
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.rc.ScreenW = width
	m.rc.ScreenH = core.Max(0, height-helpHeight)
	m.screen.Resize(m.rc.ScreenW, m.rc.ScreenH)
	m.help.Width = width

	switch r := m.game.(type) {
	case Resizer:
		r.Resize(m.rc.ScreenW, m.rc.ScreenH)
	default:
		// A finished battle keeps its final screen.
		if !m.last.GameOver {
			m.game.Reset(m.rc)
		}
	}
}

func (m *Model) flash(text string) {
	m.notice = text
	m.noticeLeft = noticeTicks
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.last
}

// screenshot captures the current frame and writes it in the background
// to ~/.topdeck/screenshots.
func (m Model) screenshot() tea.Cmd {
	m.game.Render(m.screen)
	frame := m.screen.String()
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))

	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return screenshotMsg{err: err}
		}
		dir := filepath.Join(home, ".topdeck", "screenshots")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return screenshotMsg{err: err}
		}
		path := filepath.Join(dir, name)
		return screenshotMsg{path: path, err: os.WriteFile(path, []byte(frame), 0o600)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}
	m.game.Render(m.screen)

	bar := helpStyle.Render(m.help.View(m.keys))
	if m.noticeLeft > 0 {
		bar = noticeStyle.Render(m.notice)
	}
	return RenderScreen(m.screen) + "\n" + bar
}

// Run plays g full screen until the player quits.
func Run(g game.Game, rc core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(g, rc), tea.WithAltScreen()).Run()
	return err
}
