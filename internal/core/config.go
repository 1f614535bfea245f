package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 30

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // characters
	ScreenH  int   // characters
	TickRate int   // Step calls per second
	Seed     int64 // 0 lets the platform pick one
}

// DeltaSeconds is the simulated time covered by one Step.
func (c RuntimeConfig) DeltaSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the part of a game the platform reads after each tick.
type GameState struct {
	Score    int
	Wave     int // current wave, 0 before the first one starts
	GameOver bool
	Paused   bool
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
	// WaveCompleted is set on the tick a wave ends.
	WaveCompleted bool
}
