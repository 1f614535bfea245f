package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/topdeck/internal/core"
)

// GameKeyMap holds the key bindings of the game screen.
// It implements help.KeyMap so the help bar stays in sync with the bindings.
type GameKeyMap struct {
	NextWave       key.Binding
	UpgradeDefense key.Binding
	UpgradeTower   key.Binding
	Pause          key.Binding
	Restart        key.Binding
	Screenshot     key.Binding
	Quit           key.Binding
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		NextWave: key.NewBinding(
			key.WithKeys(" ", "space", "n", "enter"),
			key.WithHelp("space/n", "next wave"),
		),
		UpgradeDefense: key.NewBinding(
			key.WithKeys("d", "1"),
			key.WithHelp("d", "upgrade defenders"),
		),
		UpgradeTower: key.NewBinding(
			key.WithKeys("t", "2"),
			key.WithHelp("t", "upgrade tower"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextWave, k.UpgradeDefense, k.UpgradeTower, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextWave, k.UpgradeDefense, k.UpgradeTower},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// Action translates a key message to a game action.
// Quit and Screenshot are handled by the model and map to ActionNone.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.NextWave):
		return core.ActionNextWave
	case key.Matches(msg, k.UpgradeDefense):
		return core.ActionUpgradeDefense
	case key.Matches(msg, k.UpgradeTower):
		return core.ActionUpgradeTower
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
