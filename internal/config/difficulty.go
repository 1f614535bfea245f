package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/topdeck/internal/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every known preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables adaptation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// CountScaleForPreset returns the enemy count multiplier for a preset.
func CountScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ApplyPreset modifies the director and battle config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	d := &cfg.Director
	d.EnemyCountCurve = scaleCurve(d.EnemyCountCurve, CountScaleForPreset(preset))

	switch preset {
	case DifficultyEasy:
		// Slower spawns and a director that backs off sooner.
		d.SpawnDelayRange.Min *= 1.25
		d.SpawnDelayRange.Max *= 1.25
		d.HealthPenaltyWeight = clampF(d.HealthPenaltyWeight*1.5, 0, 1)
		d.DurationPenaltyWeight = clampF(d.DurationPenaltyWeight*1.25, 0, 1)
		cfg.Battle.StartingMoney += cfg.Battle.StartingMoney / 2
	case DifficultyHard:
		d.SpawnDelayRange.Min *= 0.8
		d.SpawnDelayRange.Max *= 0.8
		d.HealthPenaltyWeight *= 0.6
		d.DurationPenaltyWeight *= 0.6
		d.EliteBudgetCurve = scaleCurve(d.EliteBudgetCurve, 1.5)
		cfg.Variants.RollUnforced = true
	case DifficultyFixed:
		// Performance no longer moves the score; only waves and upgrades do.
		d.HealthPenaltyWeight = 0
		d.DurationPenaltyWeight = 0
	}
}

func scaleCurve(c core.Curve, factor float64) core.Curve {
	out := c.Clone()
	for i := range out.Keys {
		out.Keys[i].Value *= factor
	}
	return out
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
