package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/topdeck/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the session sidebar
	sidebarWidth       = 24
	maxSessions        = 50
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSession key.Binding
	PrevSession key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSession, k.PrevSession, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSession, k.PrevSession},
		{k.Quit},
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
		NextSession: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next session"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev session"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses stored sessions and their waves.
type HistoryModel struct {
	store       *storage.Store
	sessions    []storage.SessionRecord
	cursor      int
	waves       []storage.WaveRecord
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel loads the most recent sessions. focusID, when set, selects
// that session (id or prefix) first.
func NewHistoryModel(store *storage.Store, focusID string, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if store != nil {
		m.sessions, m.err = store.RecentSessions(maxSessions)
	}
	if focusID != "" {
		for i, s := range m.sessions {
			if strings.HasPrefix(s.ID, focusID) {
				m.cursor = i
				break
			}
		}
	}
	m.loadWaves()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Wave", Width: 5},
		{Title: "Pattern", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "Delay", Width: 6},
		{Title: "Enemies", Width: 8},
		{Title: "Elite/Boss", Width: 10},
		{Title: "HP lost", Width: 9},
		{Title: "Time", Width: 7},
		{Title: "Kills", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
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

// loadWaves loads the waves of the selected session.
func (m *HistoryModel) loadWaves() {
	m.waves = nil
	if m.store != nil && len(m.sessions) > 0 {
		waves, err := m.store.WaveRecords(m.sessions[m.cursor].ID)
		if err != nil {
			m.err = err
		} else {
			m.waves = waves
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current waves.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(WaveRows(m.waves))
	m.table.GotoTop()
}

// WaveRows formats wave records as table rows. The CLI prints the same rows.
func WaveRows(waves []storage.WaveRecord) []table.Row {
	rows := make([]table.Row, len(waves))
	for i, w := range waves {
		rows[i] = table.Row{
			fmt.Sprint(w.WaveIndex),
			w.Pattern,
			fmt.Sprintf("%.2f", w.DifficultyScore),
			fmt.Sprintf("%.2fs", w.SpawnDelay),
			fmt.Sprint(w.EnemiesSpawned),
			fmt.Sprintf("%d/%d", w.ElitesSpawned, w.MiniBossesSpawned),
			fmt.Sprintf("%d/%d", w.HealthLost, w.StartingHealth),
			fmt.Sprintf("%.1fs", w.CombatDuration),
			fmt.Sprint(w.Kills),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSession):
			if len(m.sessions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sessions)
				m.loadWaves()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSession):
			if len(m.sessions) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sessions)) % len(m.sessions)
				m.loadWaves()
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted session, or nil.
func (m HistoryModel) Selected() *storage.SessionRecord {
	if len(m.sessions) == 0 {
		return nil
	}
	s := m.sessions[m.cursor]
	return &s
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SESSION HISTORY"
	if s := m.Selected(); s != nil {
		title = fmt.Sprintf("SESSION HISTORY - %s", shortID(s.ID))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the session list next to the wave table.
func (m HistoryModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Sessions\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.sessions {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s w%d %s", shortID(s.ID), s.NextWave-1, s.Preset)
		if maxLen := sidebarWidth - 6; len(line) > maxLen {
			line = line[:maxLen]
		}
		sidebar.WriteString(style.Render(cursor + line))
		sidebar.WriteString("\n")
	}

	sidebarRendered := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the selected session above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder
	if s := m.Selected(); s != nil {
		b.WriteString(centerText(fmt.Sprintf("< %s  %s  %s  $%d >",
			shortID(s.ID), s.Preset, s.Source, s.Money), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.waves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No waves recorded yet.\nRun `topdeck play` or `topdeck simulate` first.")
	}
	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = strings.Repeat(" ", (width-w)/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, focusID string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, focusID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
