// Package sim runs waves headlessly on a lane battlefield and reports the
// outcome as a director.WaveResult.
package sim

import (
	"math"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/upgrade"
	"github.com/vovakirdan/topdeck/internal/variant"
	"github.com/vovakirdan/topdeck/internal/wave"
)

// Enemy is a spawned attacker walking down a lane toward the player.
type Enemy struct {
	ID        int
	Lane      int
	Pos       float64 // distance from the lane start
	Health    float64
	MaxHealth float64
	Variant   variant.Variant

	attackCooldown float64
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool { return e.Health > 0 }

// Defender guards one lane.
type Defender struct {
	Lane      int
	Pos       float64
	Health    float64
	MaxHealth float64
	Damage    float64
	FireRate  float64
	Range     float64

	cooldown float64
}

// Alive reports whether the defender still stands.
func (d *Defender) Alive() bool { return d.Health > 0 }

// Battle is one wave in progress.
type Battle struct {
	cfg      config.BattleConfig
	plan     wave.Plan
	spawner  *wave.Spawner
	rng      *core.RNG
	accuracy float64

	enemies   []*Enemy
	defenders []*Defender

	startHealth int
	health      int
	elapsed     float64
	nextID      int

	kills, leaks int
	earned       int
	elites       int
	miniBosses   int
}

// BattleOption configures a Battle.
type BattleOption func(*Battle)

// WithAccuracy sets the chance that a defender shot lands, in [0,1].
func WithAccuracy(a float64) BattleOption {
	return func(b *Battle) { b.accuracy = core.Clamp01(a) }
}

// WithRNG sets the random source for shot rolls.
func WithRNG(rng *core.RNG) BattleOption {
	return func(b *Battle) { b.rng = rng }
}

// NewBattle sets up a wave. Defenders take their stats from the battle
// config scaled by the current upgrades.
func NewBattle(cfg config.BattleConfig, plan wave.Plan, up *upgrade.State, opts ...BattleOption) *Battle {
	b := &Battle{
		cfg:      cfg,
		plan:     plan,
		spawner:  wave.NewSpawner(plan.Spawns),
		accuracy: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = core.NewRNG(core.DeriveSeed(int64(plan.Wave), 0x5eed))
	}

	b.startHealth = up.TowerHealth()
	b.health = b.startHealth

	level := up.DefenderLevel()
	lanes := core.Max(1, cfg.Lanes)
	for lane := 0; lane < lanes; lane++ {
		hp := float64(up.DefenderHealth())
		b.defenders = append(b.defenders, &Defender{
			Lane:      lane,
			Pos:       core.ClampF(cfg.Defender.Position, 0, cfg.LaneLength),
			Health:    hp,
			MaxHealth: hp,
			Damage:    float64(cfg.Defender.Damage) * up.DefenderDamageModifier(level),
			FireRate:  cfg.Defender.FireRate * up.DefenderFireRateModifier(level),
			Range:     cfg.Defender.Range,
		})
	}
	return b
}

// Step advances the battle by dt seconds.
func (b *Battle) Step(dt float64) {
	if b.Done() || dt <= 0 {
		return
	}
	b.elapsed += dt

	for _, sp := range b.spawner.Tick(dt) {
		b.spawnEnemy(sp)
	}
	b.moveEnemies(dt)
	b.fireDefenders(dt)
	b.sweep()
}

func (b *Battle) spawnEnemy(sp wave.Spawn) {
	hp := float64(sp.Variant.Definition.BaseHealth)
	b.nextID++
	b.enemies = append(b.enemies, &Enemy{
		ID:        b.nextID,
		Lane:      core.Clamp(sp.SpawnPoint, 0, len(b.defenders)-1),
		Health:    hp,
		MaxHealth: hp,
		Variant:   sp.Variant,
	})
	switch sp.Variant.Category {
	case variant.Elite:
		b.elites++
	case variant.MiniBoss:
		b.miniBosses++
	}
}

func (b *Battle) moveEnemies(dt float64) {
	for _, e := range b.enemies {
		if !e.Alive() {
			continue
		}
		def := e.Variant.Definition
		d := b.defenders[e.Lane]

		// A standing defender blocks the lane; attackers in reach fight it.
		if d.Alive() && e.Pos <= d.Pos && d.Pos-e.Pos <= def.AttackRange {
			e.attackCooldown -= dt
			if e.attackCooldown <= 0 {
				d.Health -= def.TowerDamage
				e.attackCooldown += 1 / math.Max(0.1, def.AttackRate)
			}
			continue
		}

		next := e.Pos + def.MoveSpeed*dt
		if d.Alive() && e.Pos <= d.Pos {
			next = math.Min(next, d.Pos-def.AttackRange*0.9)
			next = math.Max(next, e.Pos)
		}
		e.Pos = next

		if e.Pos >= b.cfg.LaneLength {
			b.health -= def.DamageToPlayer
			b.leaks++
			e.Health = 0
		}
	}
}

func (b *Battle) fireDefenders(dt float64) {
	for _, d := range b.defenders {
		if !d.Alive() {
			continue
		}
		d.cooldown -= dt
		if d.cooldown > 0 {
			continue
		}
		target := b.target(d)
		if target == nil {
			d.cooldown = 0
			continue
		}
		d.cooldown += 1 / math.Max(0.1, d.FireRate)
		if b.accuracy < 1 && !b.rng.Chance(b.accuracy) {
			continue
		}
		target.Health -= d.Damage
		if !target.Alive() {
			b.kills++
			b.earned += b.cfg.KillReward
		}
	}
}

// target returns the enemy in range that is furthest along the lane.
func (b *Battle) target(d *Defender) *Enemy {
	var best *Enemy
	for _, e := range b.enemies {
		if !e.Alive() || e.Lane != d.Lane || math.Abs(d.Pos-e.Pos) > d.Range {
			continue
		}
		if best == nil || e.Pos > best.Pos {
			best = e
		}
	}
	return best
}

func (b *Battle) sweep() {
	alive := b.enemies[:0]
	for _, e := range b.enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(b.enemies); i++ {
		b.enemies[i] = nil
	}
	b.enemies = alive
}

// Done reports whether the wave is over: everything spawned and cleared,
// the player is out of health, or the time limit passed.
func (b *Battle) Done() bool {
	if b.health <= 0 {
		return true
	}
	if b.cfg.MaxWaveTime > 0 && b.elapsed >= b.cfg.MaxWaveTime {
		return true
	}
	return b.spawner.Done() && len(b.enemies) == 0
}

// maxRunTime bounds Run when the config sets no wave time limit.
const maxRunTime = 3600.0

// Run steps the battle at a fixed dt until it is done.
func (b *Battle) Run(dt float64) director.WaveResult {
	if dt <= 0 {
		dt = 1.0 / 30
	}
	for !b.Done() && b.elapsed < maxRunTime {
		b.Step(dt)
	}
	return b.Result()
}

// Result reports the wave outcome so far.
func (b *Battle) Result() director.WaveResult {
	return director.WaveResult{
		WaveIndex:         b.plan.Wave,
		StartingHealth:    b.startHealth,
		HealthLost:        core.Clamp(b.startHealth-b.health, 0, b.startHealth),
		CombatDuration:    b.elapsed,
		EnemiesSpawned:    b.spawner.Released(),
		ElitesSpawned:     b.elites,
		MiniBossesSpawned: b.miniBosses,
	}
}

// Enemies returns the live enemies.
func (b *Battle) Enemies() []*Enemy { return b.enemies }

// Defenders returns the lane defenders.
func (b *Battle) Defenders() []*Defender { return b.defenders }

// Health returns the player's remaining health.
func (b *Battle) Health() int { return core.Max(0, b.health) }

// StartHealth returns the player's health at wave start.
func (b *Battle) StartHealth() int { return b.startHealth }

// Elapsed returns the seconds simulated so far.
func (b *Battle) Elapsed() float64 { return b.elapsed }

// Kills returns the number of enemies defeated.
func (b *Battle) Kills() int { return b.kills }

// Leaks returns the number of enemies that reached the end of a lane.
func (b *Battle) Leaks() int { return b.leaks }

// Earned returns the kill rewards collected this wave.
func (b *Battle) Earned() int { return b.earned }

// Pending returns the spawns not yet released.
func (b *Battle) Pending() int { return b.spawner.Remaining() }

// Plan returns the wave plan being played.
func (b *Battle) Plan() wave.Plan { return b.plan }
