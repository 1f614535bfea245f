// Package upgrade tracks defender and tower upgrade levels, the stat
// modifiers they grant and the shop that sells them.
package upgrade

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
)

var (
	ErrMaxLevel          = errors.New("upgrade: already at max level")
	ErrInsufficientFunds = errors.New("upgrade: not enough money")
)

// Track identifies an upgrade track.
type Track int

const (
	Defender Track = iota
	Tower
)

// String returns the track name.
func (t Track) String() string {
	if t == Tower {
		return "tower"
	}
	return "defender"
}

// State holds the upgrade levels of one session.
type State struct {
	cfg           config.UpgradeConfig
	defenderLevel int
	towerLevel    int
}

// NewState creates a state at level 0 on both tracks.
func NewState(cfg config.UpgradeConfig) *State {
	return &State{cfg: cfg}
}

// Config returns the upgrade tracks.
func (s *State) Config() config.UpgradeConfig {
	return s.cfg
}

// DefenderLevel returns the current defender level.
func (s *State) DefenderLevel() int {
	return core.Clamp(s.defenderLevel, 0, s.DefenderMaxLevel())
}

// DefenderMaxLevel returns the defender level cap, at least 1.
func (s *State) DefenderMaxLevel() int {
	return core.Max(1, s.cfg.Defender.MaxLevel)
}

// TowerLevel returns the current tower level.
func (s *State) TowerLevel() int {
	return core.Clamp(s.towerLevel, 0, s.TowerMaxLevel())
}

// TowerMaxLevel returns the tower level cap, at least 1.
func (s *State) TowerMaxLevel() int {
	return core.Max(1, s.cfg.Tower.MaxLevel)
}

// Level returns the level of a track.
func (s *State) Level(t Track) int {
	if t == Tower {
		return s.TowerLevel()
	}
	return s.DefenderLevel()
}

// CanUpgrade reports whether a track is below its cap.
func (s *State) CanUpgrade(t Track) bool {
	if t == Tower {
		return s.towerLevel < s.TowerMaxLevel()
	}
	return s.defenderLevel < s.DefenderMaxLevel()
}

// Upgrade raises a track by one level. It returns false at the cap.
func (s *State) Upgrade(t Track) bool {
	if !s.CanUpgrade(t) {
		return false
	}
	if t == Tower {
		s.towerLevel++
	} else {
		s.defenderLevel++
	}
	return true
}

// SetLevels restores levels, clamped to the caps.
func (s *State) SetLevels(defender, tower int) {
	s.defenderLevel = core.Clamp(defender, 0, s.DefenderMaxLevel())
	s.towerLevel = core.Clamp(tower, 0, s.TowerMaxLevel())
}

// Cost returns the price of the next level of a track.
func (s *State) Cost(t Track) int {
	if t == Tower {
		return core.Max(0, s.cfg.Tower.Cost)
	}
	return core.Max(0, s.cfg.Defender.Cost)
}

// DefenderHealthBonus returns the flat defender health bonus at the current level.
func (s *State) DefenderHealthBonus() int {
	return s.DefenderLevel() * core.Max(0, s.cfg.Defender.HealthBonusPerLevel)
}

// TowerHealthBonus returns the flat tower health bonus at the current level.
func (s *State) TowerHealthBonus() int {
	return s.TowerLevel() * core.Max(0, s.cfg.Tower.HealthBonusPerLevel)
}

// TowerHealth returns the player's starting health for the next wave.
func (s *State) TowerHealth() int {
	return core.Max(1, s.cfg.Tower.BaseHealth) + s.TowerHealthBonus()
}

// DefenderHealth returns a defender's health at the current level.
func (s *State) DefenderHealth() int {
	return core.Max(1, s.cfg.Defender.BaseHealth) + s.DefenderHealthBonus()
}

// DefenderHealthModifier returns the defender health multiplier at level.
func (s *State) DefenderHealthModifier(level int) float64 {
	base := float64(core.Max(1, s.cfg.Defender.BaseHealth))
	bonus := float64(core.Max(0, level) * core.Max(0, s.cfg.Defender.HealthBonusPerLevel))
	return (base + bonus) / base
}

// TowerHealthModifier returns the tower health multiplier at level.
func (s *State) TowerHealthModifier(level int) float64 {
	base := float64(core.Max(1, s.cfg.Tower.BaseHealth))
	bonus := float64(core.Max(0, level) * core.Max(0, s.cfg.Tower.HealthBonusPerLevel))
	return (base + bonus) / base
}

// DefenderDamageModifier returns the defender damage multiplier at level.
func (s *State) DefenderDamageModifier(level int) float64 {
	return 1 + float64(core.Max(0, level))*maxF(0, s.cfg.Defender.DamageMultiplierPerLevel)
}

// DefenderFireRateModifier returns the defender fire rate multiplier at level.
func (s *State) DefenderFireRateModifier(level int) float64 {
	return 1 + float64(core.Max(0, level))*maxF(0, s.cfg.Defender.FireRateMultiplierPerLevel)
}

// EnemyHealthScaling returns the enemy health multiplier that answers tower
// upgrades: 1 at tower level 0.
func (s *State) EnemyHealthScaling() float64 {
	return 1 + maxF(0, s.cfg.EnemyHealthScalingPerLevel)*float64(s.TowerLevel())
}

// String formats the levels for the HUD.
func (s *State) String() string {
	return fmt.Sprintf("DEF %d/%d  TWR %d/%d",
		s.DefenderLevel(), s.DefenderMaxLevel(), s.TowerLevel(), s.TowerMaxLevel())
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
