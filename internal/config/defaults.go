package config

import (
	_ "embed"

	"github.com/vovakirdan/topdeck/internal/core"
)

//go:embed defaults/topdeck.yaml
var defaultTopdeckYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Director: DefaultDirectorConfig(),
		Variants: DefaultVariantConfig(),
		Upgrades: DefaultUpgradeConfig(),
		Enemies:  DefaultEnemies(),
		Battle:   DefaultBattleConfig(),
		Logging:  DefaultLoggingConfig(),
	}
}

// DefaultDirectorConfig returns the default adaptive director tuning.
func DefaultDirectorConfig() DirectorConfig {
	return DirectorConfig{
		EnemyCountCurve:       core.LinearCurve(0, 6, 1, 28),
		ReferenceWaveCount:    15,
		SpawnDelayCurve:       core.LinearCurve(0, 0, 1, 1),
		SpawnDelayRange:       core.Range{Min: 0.35, Max: 1.5},
		EliteBudgetCurve:      core.LinearCurve(0, 0, 1, 3),
		MiniBossBudgetCurve:   core.LinearCurve(0, 0, 1, 1.5),
		HealthPenaltyWeight:   0.45,
		DurationPenaltyWeight: 0.35,
		UpgradeBoostWeight:    0.2,
		TargetCombatDuration:  35,
		HistoryWindow:         3,
		ReferenceUpgradeCap:   4,
	}
}

// DefaultVariantConfig returns the default variant generator tuning.
func DefaultVariantConfig() VariantConfig {
	return VariantConfig{
		ReferenceWaveCount:    15,
		WaveScaleFactor:       0.05,
		DefenderCounterFactor: 0.03,
		Jitter:                0.04,
		HealthCurve:           core.LinearCurve(0, 1, 1, 1.2),
		HealthRange:           core.Range{Min: 0.9, Max: 1.2},
		SpeedCurve:            core.LinearCurve(0, 1, 1, 1.15),
		SpeedRange:            core.Range{Min: 0.9, Max: 1.15},
		DamageCurve:           core.LinearCurve(0, 1, 1, 1.15),
		DamageRange:           core.Range{Min: 0.9, Max: 1.15},
		AggressionSpeedBoost:  0.25,
		AggressionDamageBoost: 0.2,
		HueScale:              0.15,
		Saturation:            0.4,
		TintGradient: core.Gradient{Keys: []core.GradientKey{
			{Time: 0, Tint: core.Tint{R: 1, G: 1, B: 1}},
			{Time: 1, Tint: core.Tint{R: 1, G: 0.45, B: 0.3}},
		}},
		ExtremeThreshold: 0.85,
		Elite: CategoryConfig{
			ChanceCurve:      core.LinearCurve(0, 0.05, 1, 0.35),
			HealthMultiplier: 1.75,
			SpeedMultiplier:  1.05,
			DamageMultiplier: 1.4,
			SizeMultiplier:   1.15,
			TintGradient: core.Gradient{Keys: []core.GradientKey{
				{Time: 0, Tint: core.Tint{R: 1, G: 0.85, B: 0.3}},
				{Time: 1, Tint: core.Tint{R: 1, G: 0.6, B: 0.1}},
			}},
			TintBlend: 0.6,
		},
		MiniBoss: CategoryConfig{
			ChanceCurve:      core.LinearCurve(0, 0, 1, 0.15),
			HealthMultiplier: 3,
			SpeedMultiplier:  0.8,
			DamageMultiplier: 2,
			SizeMultiplier:   1.35,
			TintGradient: core.Gradient{Keys: []core.GradientKey{
				{Time: 0, Tint: core.Tint{R: 0.75, G: 0.4, B: 1}},
				{Time: 1, Tint: core.Tint{R: 0.55, G: 0.1, B: 0.8}},
			}},
			TintBlend: 0.75,
		},
	}
}

// DefaultUpgradeConfig returns the default upgrade tracks.
func DefaultUpgradeConfig() UpgradeConfig {
	return UpgradeConfig{
		Defender: DefenderUpgrades{
			MaxLevel:                   2,
			Cost:                       200,
			BaseHealth:                 100,
			HealthBonusPerLevel:        25,
			DamageMultiplierPerLevel:   0.1,
			FireRateMultiplierPerLevel: 0.1,
		},
		Tower: TowerUpgrades{
			MaxLevel:            2,
			Cost:                300,
			BaseHealth:          100,
			HealthBonusPerLevel: 50,
		},
		EnemyHealthScalingPerLevel: 0.15,
	}
}

// DefaultEnemies returns the default enemy roster.
func DefaultEnemies() []EnemyType {
	return []EnemyType{
		{
			ID: "grunt", Glyph: "g",
			BaseHealth: 100, MoveSpeed: 3, TowerDamage: 20,
			AttackRange: 1.5, AttackRate: 1, DamageToPlayer: 10,
			SpawnWeight: 3,
		},
		{
			ID: "runner", Glyph: "r",
			BaseHealth: 60, MoveSpeed: 5, TowerDamage: 10,
			AttackRange: 1.2, AttackRate: 1.5, DamageToPlayer: 6,
			SpawnWeight: 2,
		},
		{
			ID: "brute", Glyph: "B",
			BaseHealth: 220, MoveSpeed: 1.8, TowerDamage: 35,
			AttackRange: 1.8, AttackRate: 0.7, DamageToPlayer: 18,
			SpawnWeight: 1,
		},
	}
}

// DefaultBattleConfig returns the default battlefield settings.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Lanes:          3,
		LaneLength:     40,
		StartingMoney:  1000,
		KillReward:     5,
		WaveReward:     50,
		BaseSpawnDelay: 1,
		MaxWaveTime:    180,
		Defender: DefenderStats{
			Damage:   25,
			FireRate: 1,
			Range:    5,
			Position: 34,
		},
	}
}

// DefaultLoggingConfig returns text logging at info level, stderr only.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "text",
		File: LogFileConfig{
			Path:       "topdeck.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
