// Package game defines the contract between playable games and the
// terminal platform that drives them.
package game

import "github.com/vovakirdan/topdeck/internal/core"

// Game is a tick-driven game the platform can run.
// The platform calls Reset once, then Step at the tick rate and Render
// whenever the view is drawn.
type Game interface {
	// ID returns the unique identifier for this game.
	ID() string

	// Title returns the display name.
	Title() string

	// Reset initializes or restarts the game with the given configuration.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick using the given input.
	Step(input core.InputFrame) core.StepResult

	// Render draws the current state onto the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}
