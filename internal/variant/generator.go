package variant

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/difficulty"
	"github.com/vovakirdan/topdeck/internal/logging"
)

// Stat floors applied after every multiplier.
const (
	minMultiplier  = 0.05
	minMoveSpeed   = 0.5
	minAttackRange = 0.5
	minAttackRate  = 0.1
)

// Generator creates enemy variants from a VariantConfig.
// It is not safe for concurrent use.
type Generator struct {
	cfg    config.VariantConfig
	seed   int64
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the base seed for jitter and category rolls.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithLogger sets the logger used for config warnings.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator. A nil cfg uses the defaults.
func NewGenerator(cfg *config.VariantConfig, opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrDiscard(g.logger)
	g.SetConfig(cfg)
	return g
}

// SetConfig replaces the tuning. Nil restores the defaults; empty curves fall
// back to their default counterparts.
func (g *Generator) SetConfig(cfg *config.VariantConfig) {
	def := config.DefaultVariantConfig()
	if cfg == nil {
		g.cfg = def
		return
	}

	c := *cfg
	c.HealthCurve = g.curveOr("health_curve", c.HealthCurve, def.HealthCurve)
	c.SpeedCurve = g.curveOr("speed_curve", c.SpeedCurve, def.SpeedCurve)
	c.DamageCurve = g.curveOr("damage_curve", c.DamageCurve, def.DamageCurve)
	c.Elite.ChanceCurve = g.curveOr("elite.chance_curve", c.Elite.ChanceCurve, def.Elite.ChanceCurve)
	c.MiniBoss.ChanceCurve = g.curveOr("mini_boss.chance_curve", c.MiniBoss.ChanceCurve, def.MiniBoss.ChanceCurve)
	c.HealthRange = c.HealthRange.Normalized()
	c.SpeedRange = c.SpeedRange.Normalized()
	c.DamageRange = c.DamageRange.Normalized()
	if c.ReferenceWaveCount <= 0 {
		c.ReferenceWaveCount = def.ReferenceWaveCount
	}
	c.Jitter = core.ClampF(c.Jitter, 0, 0.5)
	g.cfg = c
}

func (g *Generator) curveOr(name string, c, fallback core.Curve) core.Curve {
	if c.IsEmpty() {
		g.logger.Warn("variant curve missing, using default", "curve", name)
		return fallback.Clone()
	}
	return c.Clone()
}

// Config returns the active tuning.
func (g *Generator) Config() config.VariantConfig {
	return g.cfg
}

// CreateVariant scales base for the given wave and defender upgrade level.
// A nil base uses FallbackType.
func (g *Generator) CreateVariant(base *config.EnemyType, wave, defenderLevel int, req Request) Variant {
	def := FallbackType()
	if base != nil {
		def = *base
	}
	if wave < 1 {
		wave = 1
	}
	if defenderLevel < 0 {
		defenderLevel = 0
	}

	cfg := g.cfg
	norm := core.Clamp01(float64(wave-1) / float64(core.Max(1, cfg.ReferenceWaveCount)))
	waveFactor := 1 + cfg.WaveScaleFactor*float64(wave-1)
	counter := 1 + cfg.DefenderCounterFactor*float64(defenderLevel)
	scale := waveFactor * counter

	// Draw order is fixed so a slot always sees the same numbers.
	rng := core.NewRNG(core.DeriveSeed(g.seed, int64(req.Slot)))
	jitter := func() float64 { return 1 + rng.FloatRange(-cfg.Jitter, cfg.Jitter) }
	jHealth, jSpeed, jDamage := jitter(), jitter(), jitter()
	jRange := rng.FloatRange(0.95, 1.1)
	jRate := rng.FloatRange(0.95, 1.1)
	roll := rng.Float64()

	health := scale * cfg.HealthRange.Clamp(cfg.HealthCurve.Evaluate(norm)) * jHealth
	speed := cfg.SpeedRange.Clamp(cfg.SpeedCurve.Evaluate(norm)) * (1 + (counter-1)*0.5) * jSpeed
	damage := cfg.DamageRange.Clamp(cfg.DamageCurve.Evaluate(norm)) * counter * jDamage

	aggression := core.Clamp01(req.PatternAggression)
	scalar := core.Clamp01(req.DifficultyScalar)
	speed *= 1 + aggression*cfg.AggressionSpeedBoost
	damage *= 1 + aggression*cfg.AggressionDamageBoost + scalar*cfg.AggressionDamageBoost*0.5

	category, rolled := g.category(req, norm, roll)
	size := difficulty.ScaleSize(1, wave)
	if cat, ok := g.categoryConfig(category); ok {
		mul := cat
		if rolled {
			mul = g.promotion(category)
		}
		health *= math.Max(1, mul.HealthMultiplier)
		speed *= math.Max(0.01, mul.SpeedMultiplier)
		damage *= math.Max(0.01, mul.DamageMultiplier)
		if cat.SizeMultiplier > 0 {
			size *= cat.SizeMultiplier
		}
	}

	health = math.Max(minMultiplier, health)
	speed = math.Max(minMultiplier, speed)
	damage = math.Max(minMultiplier, damage)

	v := Variant{
		Category:         category,
		HealthMultiplier: health,
		SpeedMultiplier:  speed,
		DamageMultiplier: damage,
		SizeMultiplier:   size,
		Tint:             g.tint(category, wave, scale, norm),
	}
	v.Definition = config.EnemyType{
		ID:             def.ID + suffix(category),
		Glyph:          def.Glyph,
		BaseHealth:     core.Max(1, int(math.Round(float64(def.BaseHealth)*health))),
		MoveSpeed:      math.Max(minMoveSpeed, def.MoveSpeed*speed),
		TowerDamage:    math.Max(0, def.TowerDamage*damage),
		AttackRange:    math.Max(minAttackRange, def.AttackRange*jRange),
		AttackRate:     math.Max(minAttackRate, def.AttackRate*jRate),
		DamageToPlayer: core.Max(1, int(math.Round(float64(def.DamageToPlayer)*damage))),
		SpawnWeight:    def.SpawnWeight,
	}
	return v
}

// category reports whether the result came from a chance roll rather than a
// planner flag.
func (g *Generator) category(req Request, norm, roll float64) (Category, bool) {
	switch {
	case req.ForceMiniBoss:
		return MiniBoss, false
	case req.ForceElite:
		return Elite, false
	case !req.RollCategory:
		return Normal, false
	}

	miniBoss := core.Clamp01(g.cfg.MiniBoss.ChanceCurve.Evaluate(norm))
	elite := core.Clamp01(g.cfg.Elite.ChanceCurve.Evaluate(norm))
	switch {
	case roll < miniBoss:
		return MiniBoss, true
	case roll < miniBoss+elite:
		return Elite, true
	default:
		return Normal, false
	}
}

// promotion returns the multipliers of a rolled category: each one is at
// least that of every lower category, so a slot that rolls higher as waves
// pass never gets slower or weaker.
func (g *Generator) promotion(c Category) config.CategoryConfig {
	mul := config.CategoryConfig{HealthMultiplier: 1, SpeedMultiplier: 1, DamageMultiplier: 1}
	for _, step := range []Category{Elite, MiniBoss} {
		cat, _ := g.categoryConfig(step)
		mul.HealthMultiplier = math.Max(mul.HealthMultiplier, cat.HealthMultiplier)
		mul.SpeedMultiplier = math.Max(mul.SpeedMultiplier, cat.SpeedMultiplier)
		mul.DamageMultiplier = math.Max(mul.DamageMultiplier, cat.DamageMultiplier)
		if step == c {
			break
		}
	}
	return mul
}

func (g *Generator) categoryConfig(c Category) (config.CategoryConfig, bool) {
	switch c {
	case Elite:
		return g.cfg.Elite, true
	case MiniBoss:
		return g.cfg.MiniBoss, true
	default:
		return config.CategoryConfig{}, false
	}
}

// tint starts from a hue keyed on the scale, drifts toward the wave gradient
// and is finally pulled toward the category gradient. Without a configured
// gradient the wave color is the stateless difficulty.Tint.
func (g *Generator) tint(c Category, wave int, scale, norm float64) core.Tint {
	cfg := g.cfg
	hue := math.Mod(scale*cfg.HueScale, 1) * 360
	col := colorful.Hsv(hue, core.Clamp01(cfg.Saturation), 1)

	wt := difficulty.Tint(wave)
	waveCol := colorful.Color{R: wt.R, G: wt.G, B: wt.B}
	if !cfg.TintGradient.IsEmpty() {
		waveCol = evalGradient(cfg.TintGradient, norm)
	}
	f := 0.35 * norm
	if norm >= cfg.ExtremeThreshold {
		f = 1
	}
	col = col.BlendLab(waveCol, f)

	if cat, ok := g.categoryConfig(c); ok && !cat.TintGradient.IsEmpty() {
		col = col.BlendLab(evalGradient(cat.TintGradient, norm), core.Clamp01(cat.TintBlend))
	}

	col = col.Clamped()
	return core.Tint{R: col.R, G: col.G, B: col.B}.Clamped()
}

func evalGradient(g core.Gradient, t float64) colorful.Color {
	from, to, f := g.Segment(t)
	a := colorful.Color{R: from.R, G: from.G, B: from.B}
	b := colorful.Color{R: to.R, G: to.G, B: to.B}
	return a.BlendLab(b, f).Clamped()
}

func suffix(c Category) string {
	switch c {
	case Elite:
		return "_elite"
	case MiniBoss:
		return "_boss"
	default:
		return "_var"
	}
}
