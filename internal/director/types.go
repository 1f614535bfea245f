// Package director implements the adaptive wave director: it turns wave
// progression, upgrade levels and recent player performance into the tuning
// of the next wave.
package director

import (
	"fmt"

	"github.com/vovakirdan/topdeck/internal/spawn"
)

// WaveTuning is the director's output for one wave.
type WaveTuning struct {
	EnemyCount        int
	SpawnDelay        float64 // seconds between spawns
	Pattern           spawn.PatternType
	EliteBudget       int
	MiniBossBudget    int
	DifficultyScore   float64 // [0,1]
	PatternAggression float64 // [0,1]
}

// String formats the tuning for logs and the CLI.
func (t WaveTuning) String() string {
	return fmt.Sprintf("enemies=%d delay=%.2fs pattern=%s elites=%d bosses=%d score=%.2f aggression=%.2f",
		t.EnemyCount, t.SpawnDelay, t.Pattern, t.EliteBudget, t.MiniBossBudget,
		t.DifficultyScore, t.PatternAggression)
}

// WaveResult is the outcome of a finished wave, reported by the caller.
type WaveResult struct {
	WaveIndex         int
	StartingHealth    int
	HealthLost        int
	CombatDuration    float64 // seconds
	EnemiesSpawned    int
	ElitesSpawned     int
	MiniBossesSpawned int
}

// Sample is what the director keeps of a WaveResult.
type Sample struct {
	Wave       int
	HealthLoss float64 // lost / starting, [0,1]
	Pace       float64 // HealthLoss * min(1, target / duration), [0,1]
}
