// Package wave composes the director, spawn planner, variant generator and
// upgrade state into playable wave plans, and releases them over time.
package wave

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/logging"
	"github.com/vovakirdan/topdeck/internal/spawn"
	"github.com/vovakirdan/topdeck/internal/upgrade"
	"github.com/vovakirdan/topdeck/internal/variant"
)

// Spawn is a planned instruction with the enemy it releases.
type Spawn struct {
	spawn.Instruction
	Variant variant.Variant
}

// Plan is everything needed to run one wave.
type Plan struct {
	Wave          int
	Tuning        director.WaveTuning
	Spawns        []Spawn
	HealthScaling float64 // enemy health multiplier from tower upgrades
	Telemetry     string
}

// Elites returns the number of elite and mini-boss spawns.
func (p Plan) Elites() (elites, miniBosses int) {
	for _, s := range p.Spawns {
		switch s.Variant.Category {
		case variant.Elite:
			elites++
		case variant.MiniBoss:
			miniBosses++
		}
	}
	return elites, miniBosses
}

// Session is one player's run: wave counter, director history, upgrades and money.
// It is not safe for concurrent use.
type Session struct {
	id     string
	cfg    config.Config
	seed   int64
	wave   int
	logger *log.Logger

	director *director.Director
	variants *variant.Generator
	upgrades *upgrade.State
	wallet   *upgrade.Wallet
	shop     *upgrade.Shop
}

// Option configures a Session.
type Option func(*Session)

// WithSeed makes plans reproducible. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession starts a run at wave 1.
func NewSession(cfg config.Config, opts ...Option) *Session {
	s := &Session{cfg: cfg, wave: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.seed == 0 {
		s.seed = int64(uuid.New().ID())<<16 | 1
	}
	s.logger = logging.OrDiscard(s.logger).With("session", shortID(s.id))

	s.director = director.New(&cfg.Director, director.WithSeed(s.seed), director.WithLogger(s.logger))
	s.variants = variant.NewGenerator(&cfg.Variants, variant.WithSeed(s.seed), variant.WithLogger(s.logger))
	s.upgrades = upgrade.NewState(cfg.Upgrades)
	s.wallet = upgrade.NewWallet(cfg.Battle.StartingMoney)
	s.shop = upgrade.NewShop(s.upgrades, s.wallet)
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Seed returns the seed plans are derived from.
func (s *Session) Seed() int64 { return s.seed }

// Wave returns the next wave to be played, starting at 1.
func (s *Session) Wave() int { return s.wave }

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Director returns the adaptive director.
func (s *Session) Director() *director.Director { return s.director }

// Upgrades returns the upgrade state.
func (s *Session) Upgrades() *upgrade.State { return s.upgrades }

// Wallet returns the session wallet.
func (s *Session) Wallet() *upgrade.Wallet { return s.wallet }

// Shop returns the upgrade shop.
func (s *Session) Shop() *upgrade.Shop { return s.shop }

// Plan builds the plan for the current wave. It does not advance the session,
// and the same session state always yields the same plan.
func (s *Session) Plan() Plan {
	return s.PlanWave(s.wave)
}

// PlanWave builds the plan for an arbitrary wave with the current upgrades
// and history.
func (s *Session) PlanWave(wave int) Plan {
	wave = core.Max(1, wave)
	defLevel := s.upgrades.DefenderLevel()
	tuning := s.director.Evaluate(wave, defLevel, s.upgrades.TowerLevel())

	waveSeed := core.DeriveSeed(s.seed, int64(wave))
	instructions := spawn.Build(spawn.Request{
		Pattern:       tuning.Pattern,
		Total:         tuning.EnemyCount,
		EliteCount:    tuning.EliteBudget,
		MiniBossCount: tuning.MiniBossBudget,
		BaseDelay:     tuning.SpawnDelay,
		SpawnPoints:   s.cfg.Battle.Lanes,
		Seed:          waveSeed,
	})

	scaling := s.upgrades.EnemyHealthScaling()
	roster := s.cfg.Enemies
	weights := make([]float64, len(roster))
	for i, e := range roster {
		weights[i] = e.SpawnWeight
	}
	rng := core.NewRNG(waveSeed)

	plan := Plan{
		Wave:          wave,
		Tuning:        tuning,
		Spawns:        make([]Spawn, 0, len(instructions)),
		HealthScaling: scaling,
	}
	variants := make([]variant.Variant, 0, len(instructions))
	rollUnforced := s.variants.Config().RollUnforced
	for _, in := range instructions {
		var base *config.EnemyType
		if idx := rng.ChooseWeighted(weights); idx >= 0 {
			base = &roster[idx]
		}
		v := s.variants.CreateVariant(base, wave, defLevel, variant.Request{
			ForceElite:        in.ForceElite,
			ForceMiniBoss:     in.ForceMiniBoss,
			RollCategory:      rollUnforced,
			PatternAggression: tuning.PatternAggression,
			DifficultyScalar:  tuning.DifficultyScore,
			Slot:              in.Slot,
		})
		v.Definition.BaseHealth = core.Max(1, int(math.Round(float64(v.Definition.BaseHealth)*scaling)))
		plan.Spawns = append(plan.Spawns, Spawn{Instruction: in, Variant: v})
		variants = append(variants, v)
	}
	plan.Telemetry = variant.Telemetry(wave, variants)
	return plan
}

// Complete records the result of the current wave, pays the wave reward and
// advances to the next wave.
func (s *Session) Complete(result director.WaveResult) {
	if result.WaveIndex == 0 {
		result.WaveIndex = s.wave
	}
	s.director.RecordWaveResult(result)
	s.wallet.Earn(s.cfg.Battle.WaveReward)
	s.logger.Info("wave complete",
		"wave", result.WaveIndex,
		"health_lost", result.HealthLost,
		"duration", math.Round(result.CombatDuration*10)/10,
		"stress", math.Round(s.director.Stress()*100)/100)
	s.wave = result.WaveIndex + 1
}

// Restore rebuilds a session from persisted state: past results, levels and money.
func (s *Session) Restore(results []director.WaveResult, defenderLevel, towerLevel, money int) {
	s.director.Reset()
	next := 1
	for _, r := range results {
		s.director.RecordWaveResult(r)
		if r.WaveIndex >= next {
			next = r.WaveIndex + 1
		}
	}
	s.wave = next
	s.upgrades.SetLevels(defenderLevel, towerLevel)
	s.wallet = upgrade.NewWallet(money)
	s.shop = upgrade.NewShop(s.upgrades, s.wallet)
}
