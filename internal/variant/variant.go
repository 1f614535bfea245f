// Package variant derives procedural enemy variants from base enemy types.
//
// A variant scales a base type by wave progression and defender upgrades,
// applies a small seeded jitter, may be promoted to elite or mini-boss, and
// carries a tint for rendering.
package variant

import (
	"fmt"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
)

// Category is the promotion tier of a variant.
type Category int

const (
	Normal Category = iota
	Elite
	MiniBoss
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Elite:
		return "elite"
	case MiniBoss:
		return "mini-boss"
	default:
		return "normal"
	}
}

// Request carries per-spawn context from the wave planner.
type Request struct {
	ForceElite    bool
	ForceMiniBoss bool

	// RollCategory lets the chance curves promote an unforced spawn.
	RollCategory bool

	PatternAggression float64 // [0,1]
	DifficultyScalar  float64 // [0,1], usually the director score

	// Slot selects the jitter stream. The same slot yields the same jitter
	// at every wave, which keeps stats monotonic in wave and level.
	Slot int
}

// Variant is a scaled enemy definition ready to spawn.
type Variant struct {
	Definition config.EnemyType
	Category   Category

	HealthMultiplier float64
	SpeedMultiplier  float64
	DamageMultiplier float64
	SizeMultiplier   float64
	Tint             core.Tint
}

// Summary returns a one-line description for logs and the CLI.
func (v Variant) Summary() string {
	return fmt.Sprintf("%s[%s] hp=%d spd=%.2f dmg=%d x%.2f/%.2f/%.2f %s",
		v.Definition.ID, v.Category,
		v.Definition.BaseHealth, v.Definition.MoveSpeed, v.Definition.DamageToPlayer,
		v.HealthMultiplier, v.SpeedMultiplier, v.DamageMultiplier,
		v.Tint.Hex())
}

// FallbackType is used when no base type is supplied.
func FallbackType() config.EnemyType {
	return config.EnemyType{
		ID:             "variant",
		Glyph:          "e",
		BaseHealth:     100,
		MoveSpeed:      3,
		TowerDamage:    20,
		AttackRange:    1.5,
		AttackRate:     1,
		DamageToPlayer: 10,
		SpawnWeight:    1,
	}
}
