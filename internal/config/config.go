// Package config provides YAML-based configuration for the wave director,
// variant generator, upgrades, enemy roster and battle simulation.
package config

import "github.com/vovakirdan/topdeck/internal/core"

// Config is the root configuration document.
type Config struct {
	Director DirectorConfig `yaml:"director"`
	Variants VariantConfig  `yaml:"variants"`
	Upgrades UpgradeConfig  `yaml:"upgrades"`
	Enemies  []EnemyType    `yaml:"enemies"`
	Battle   BattleConfig   `yaml:"battle"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DirectorConfig tunes the adaptive wave director.
type DirectorConfig struct {
	EnemyCountCurve     core.Curve `yaml:"enemy_count_curve"`
	ReferenceWaveCount  int        `yaml:"reference_wave_count"`
	SpawnDelayCurve     core.Curve `yaml:"spawn_delay_curve"`
	SpawnDelayRange     core.Range `yaml:"spawn_delay_range"` // seconds, min is the fastest
	EliteBudgetCurve    core.Curve `yaml:"elite_budget_curve"`
	MiniBossBudgetCurve core.Curve `yaml:"mini_boss_budget_curve"`

	HealthPenaltyWeight   float64 `yaml:"health_penalty_weight"`
	DurationPenaltyWeight float64 `yaml:"duration_penalty_weight"`
	UpgradeBoostWeight    float64 `yaml:"upgrade_boost_weight"`
	TargetCombatDuration  float64 `yaml:"target_combat_duration"` // seconds
	HistoryWindow         int     `yaml:"history_window"`
	ReferenceUpgradeCap   int     `yaml:"reference_upgrade_cap"`
}

// VariantConfig tunes procedural enemy variants.
type VariantConfig struct {
	ReferenceWaveCount    int     `yaml:"reference_wave_count"`
	WaveScaleFactor       float64 `yaml:"wave_scale_factor"`
	DefenderCounterFactor float64 `yaml:"defender_counter_factor"`
	Jitter                float64 `yaml:"jitter"` // half-width of the random band around 1.0

	HealthCurve core.Curve `yaml:"health_curve"`
	HealthRange core.Range `yaml:"health_range"`
	SpeedCurve  core.Curve `yaml:"speed_curve"`
	SpeedRange  core.Range `yaml:"speed_range"`
	DamageCurve core.Curve `yaml:"damage_curve"`
	DamageRange core.Range `yaml:"damage_range"`

	AggressionSpeedBoost  float64 `yaml:"aggression_speed_boost"`
	AggressionDamageBoost float64 `yaml:"aggression_damage_boost"`

	HueScale         float64       `yaml:"hue_scale"`
	Saturation       float64       `yaml:"saturation"`
	TintGradient     core.Gradient `yaml:"tint_gradient"`
	ExtremeThreshold float64       `yaml:"extreme_threshold"`

	// RollUnforced lets the chance curves promote spawns the planner did
	// not flag, on top of the director's budgets.
	RollUnforced bool           `yaml:"roll_unforced"`
	Elite        CategoryConfig `yaml:"elite"`
	MiniBoss     CategoryConfig `yaml:"mini_boss"`
}

// CategoryConfig holds the multipliers of a promoted variant category.
type CategoryConfig struct {
	ChanceCurve      core.Curve    `yaml:"chance_curve"`
	HealthMultiplier float64       `yaml:"health_multiplier"`
	SpeedMultiplier  float64       `yaml:"speed_multiplier"`
	DamageMultiplier float64       `yaml:"damage_multiplier"`
	SizeMultiplier   float64       `yaml:"size_multiplier"`
	TintGradient     core.Gradient `yaml:"tint_gradient"`
	TintBlend        float64       `yaml:"tint_blend"`
}

// UpgradeConfig defines defender and tower upgrade tracks.
type UpgradeConfig struct {
	Defender DefenderUpgrades `yaml:"defender"`
	Tower    TowerUpgrades    `yaml:"tower"`

	// Enemy health grows by this fraction per tower level.
	EnemyHealthScalingPerLevel float64 `yaml:"enemy_health_scaling_per_level"`
}

// DefenderUpgrades defines the defender upgrade track.
type DefenderUpgrades struct {
	MaxLevel                   int     `yaml:"max_level"`
	Cost                       int     `yaml:"cost"`
	BaseHealth                 int     `yaml:"base_health"`
	HealthBonusPerLevel        int     `yaml:"health_bonus_per_level"`
	DamageMultiplierPerLevel   float64 `yaml:"damage_multiplier_per_level"`
	FireRateMultiplierPerLevel float64 `yaml:"fire_rate_multiplier_per_level"`
}

// TowerUpgrades defines the central tower upgrade track.
type TowerUpgrades struct {
	MaxLevel            int `yaml:"max_level"`
	Cost                int `yaml:"cost"`
	BaseHealth          int `yaml:"base_health"` // player health at level 0
	HealthBonusPerLevel int `yaml:"health_bonus_per_level"`
}

// EnemyType is a base attacker definition that variants are derived from.
type EnemyType struct {
	ID             string  `yaml:"id"`
	Glyph          string  `yaml:"glyph"`
	BaseHealth     int     `yaml:"base_health"`
	MoveSpeed      float64 `yaml:"move_speed"`
	TowerDamage    float64 `yaml:"tower_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackRate     float64 `yaml:"attack_rate"`
	DamageToPlayer int     `yaml:"damage_to_player"`
	SpawnWeight    float64 `yaml:"spawn_weight"`
}

// BattleConfig defines the lane battlefield used by the simulator and the game.
type BattleConfig struct {
	Lanes          int     `yaml:"lanes"`
	LaneLength     float64 `yaml:"lane_length"`
	StartingMoney  int     `yaml:"starting_money"`
	KillReward     int     `yaml:"kill_reward"`
	WaveReward     int     `yaml:"wave_reward"`
	BaseSpawnDelay float64 `yaml:"base_spawn_delay"`
	MaxWaveTime    float64 `yaml:"max_wave_time"` // seconds before a wave is force-ended

	Defender DefenderStats `yaml:"defender"`
}

// DefenderStats are the base stats of the lane defender.
type DefenderStats struct {
	Damage   int     `yaml:"damage"`
	FireRate float64 `yaml:"fire_rate"` // shots per second
	Range    float64 `yaml:"range"`
	Position float64 `yaml:"position"` // distance from the lane start
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string        `yaml:"level"`  // debug, info, warn, error
	Format string        `yaml:"format"` // text, json, logfmt
	File   LogFileConfig `yaml:"file"`
}

// LogFileConfig enables a rotating log file next to stderr output.
type LogFileConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// EnemyByID returns the enemy type with the given id.
func (c Config) EnemyByID(id string) (EnemyType, bool) {
	for _, e := range c.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyType{}, false
}
