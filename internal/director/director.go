package director

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/logging"
	"github.com/vovakirdan/topdeck/internal/spawn"
)

const (
	// minSpawnDelay floors the configured delay range, in seconds.
	minSpawnDelay = 0.05

	// A sample losing more than this share of health is a struggle; it never
	// lowers stress.
	struggleThreshold = 0.5
)

// Director computes per-wave tuning. It is owned by one session and is not
// safe for concurrent use.
type Director struct {
	cfg     config.DirectorConfig
	history []Sample
	stress  float64
	seed    int64
	logger  *log.Logger
}

// Option configures a Director.
type Option func(*Director)

// WithSeed sets the seed for pattern coin flips.
func WithSeed(seed int64) Option {
	return func(d *Director) { d.seed = seed }
}

// WithLogger sets the logger used for config warnings and history updates.
func WithLogger(l *log.Logger) Option {
	return func(d *Director) { d.logger = l }
}

// New creates a director. A nil cfg uses the defaults.
func New(cfg *config.DirectorConfig, opts ...Option) *Director {
	d := &Director{}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.OrDiscard(d.logger)
	d.cfg = config.DefaultDirectorConfig()
	if cfg != nil {
		d.ApplyConfig(cfg)
	}
	return d
}

// Evaluate returns the tuning for a wave. It reads the history but never
// changes it; out of range inputs are clamped.
func (d *Director) Evaluate(waveIndex, defenderLevel, towerLevel int) WaveTuning {
	cfg := d.cfg
	progress := core.Clamp01(float64(waveIndex-1) / math.Max(1, float64(cfg.ReferenceWaveCount)))
	upgrade := float64(core.Max(0, defenderLevel)+core.Max(0, towerLevel)) / math.Max(1, float64(cfg.ReferenceUpgradeCap))
	score := core.Clamp01(progress + upgrade*cfg.UpgradeBoostWeight - d.Stress())

	delayRange := cfg.SpawnDelayRange.Normalized()
	spawnLerp := core.Clamp01(cfg.SpawnDelayCurve.Evaluate(score))
	delay := delayRange.Clamp(core.Lerp(delayRange.Max, delayRange.Min, spawnLerp))

	rng := core.NewRNG(core.DeriveSeed(d.seed, int64(waveIndex)))
	pattern := spawn.SelectPattern(score, rng)

	return WaveTuning{
		EnemyCount:        core.Max(1, roundInt(cfg.EnemyCountCurve.Evaluate(score))),
		SpawnDelay:        delay,
		Pattern:           pattern,
		EliteBudget:       core.Max(0, roundInt(cfg.EliteBudgetCurve.Evaluate(score))),
		MiniBossBudget:    core.Max(0, roundInt(cfg.MiniBossBudgetCurve.Evaluate(score))),
		DifficultyScore:   score,
		PatternAggression: core.Clamp01(score + pattern.AggressionOffset()),
	}
}

// RecordWaveResult folds a finished wave into the rolling history.
// Results with WaveIndex <= 0 are ignored.
func (d *Director) RecordWaveResult(r WaveResult) {
	if r.WaveIndex <= 0 {
		return
	}

	s := Sample{Wave: r.WaveIndex}
	if r.StartingHealth > 0 {
		s.HealthLoss = core.Clamp01(float64(r.HealthLost) / float64(r.StartingHealth))
	}
	s.Pace = pace(s.HealthLoss, r.CombatDuration, d.cfg.TargetCombatDuration)

	prev := d.stress
	d.history = append(d.history, s)
	d.trim()
	if s.HealthLoss > struggleThreshold {
		d.stress = math.Max(prev, d.stress)
	}
	d.logger.Debug("wave recorded",
		"wave", r.WaveIndex, "health_loss", s.HealthLoss, "pace", s.Pace, "stress", d.stress)
}

// pace is the health loss, discounted when the wave ran longer than target.
// A wave at or under target seconds keeps its full loss.
func pace(loss, duration, target float64) float64 {
	if target <= 0 {
		return 0
	}
	if duration <= 0 {
		return loss
	}
	return loss * core.Clamp01(target/duration)
}

// Stress is the weighted struggle over the history window, in [0,1]. It is
// the window mean, except that a struggle sample keeps the previous value
// when the mean would drop.
func (d *Director) Stress() float64 {
	return d.stress
}

func (d *Director) windowMean() float64 {
	if len(d.history) == 0 {
		return 0
	}
	var health, fast float64
	for _, s := range d.history {
		health += s.HealthLoss
		fast += s.Pace
	}
	n := float64(len(d.history))
	return core.Clamp01(health/n*d.cfg.HealthPenaltyWeight + fast/n*d.cfg.DurationPenaltyWeight)
}

// History returns a copy of the retained samples, oldest first.
func (d *Director) History() []Sample {
	return append([]Sample(nil), d.history...)
}

// Reset clears the history.
func (d *Director) Reset() {
	d.history = nil
	d.stress = 0
}

// Config returns the active tuning.
func (d *Director) Config() config.DirectorConfig {
	return d.cfg
}

// ApplyConfig replaces every curve and parameter. Missing curves fall back to
// the built-in defaults and a nil config is ignored; both are logged.
func (d *Director) ApplyConfig(cfg *config.DirectorConfig) {
	if cfg == nil {
		d.logger.Warn("director config is nil, keeping current tuning")
		return
	}
	def := config.DefaultDirectorConfig()

	c := *cfg
	c.EnemyCountCurve = d.curveOr("enemy_count_curve", c.EnemyCountCurve, def.EnemyCountCurve)
	c.SpawnDelayCurve = d.curveOr("spawn_delay_curve", c.SpawnDelayCurve, def.SpawnDelayCurve)
	c.EliteBudgetCurve = d.curveOr("elite_budget_curve", c.EliteBudgetCurve, def.EliteBudgetCurve)
	c.MiniBossBudgetCurve = d.curveOr("mini_boss_budget_curve", c.MiniBossBudgetCurve, def.MiniBossBudgetCurve)
	c.SpawnDelayRange = d.delayRangeOr(c.SpawnDelayRange, def.SpawnDelayRange)
	if c.HistoryWindow < 1 {
		d.logger.Warn("director history window below 1, using 1", "history_window", c.HistoryWindow)
		c.HistoryWindow = 1
	}

	d.cfg = c
	d.trim()
}

func (d *Director) curveOr(name string, c, fallback core.Curve) core.Curve {
	if c.IsEmpty() {
		d.logger.Warn("director curve missing, using default", "curve", name)
		return fallback.Clone()
	}
	return c.Clone()
}

// delayRangeOr normalizes r, replaces it when it has no positive delay and
// floors it at minSpawnDelay.
func (d *Director) delayRangeOr(r, fallback core.Range) core.Range {
	r = r.Normalized()
	if r.Max <= 0 {
		d.logger.Warn("director spawn delay range not positive, using default",
			"min", r.Min, "max", r.Max)
		r = fallback.Normalized()
	}
	r.Min = math.Max(minSpawnDelay, r.Min)
	r.Max = math.Max(r.Min, r.Max)
	return r
}

// trim drops samples outside the window and recomputes the mean.
func (d *Director) trim() {
	if over := len(d.history) - d.cfg.HistoryWindow; over > 0 {
		d.history = append([]Sample(nil), d.history[over:]...)
	}
	d.stress = d.windowMean()
}

// roundInt rounds half away from zero.
func roundInt(v float64) int {
	return int(math.Round(v))
}
