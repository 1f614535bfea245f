// Package defense is the playable lane-defense game: the player buys upgrades
// between waves and watches the director's waves play out in three lanes.
package defense

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/logging"
	"github.com/vovakirdan/topdeck/internal/sim"
	"github.com/vovakirdan/topdeck/internal/upgrade"
	"github.com/vovakirdan/topdeck/internal/wave"
)

// Phase is what the game is waiting for.
type Phase int

const (
	PhaseShop   Phase = iota // between waves, upgrades allowed
	PhaseBattle              // a wave is running
	PhaseOver                // the player lost all health
)

func (p Phase) String() string {
	switch p {
	case PhaseShop:
		return "shop"
	case PhaseBattle:
		return "battle"
	case PhaseOver:
		return "game over"
	default:
		return "unknown"
	}
}

// WaveReport describes a finished wave to the WaveHook.
type WaveReport struct {
	Plan   wave.Plan
	Result director.WaveResult
	Kills  int
	Leaks  int
	Earned int
}

// WaveHook is called after every finished wave, once the session has been
// advanced. Persistence lives behind it.
type WaveHook func(s *wave.Session, r WaveReport)

// Game implements game.Game.
type Game struct {
	cfg    config.Config
	logger *log.Logger
	hook   WaveHook

	resume  *wave.Session // used by the first Reset only
	session *wave.Session
	battle  *sim.Battle
	phase   Phase
	last    *WaveReport
	message string

	rc     core.RuntimeConfig // from the last Reset, with Resize applied
	dt     float64
	tick   uint64
	kills  int
	paused bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger passed to every session.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSession resumes an existing session instead of starting at wave 1.
func WithSession(s *wave.Session) Option {
	return func(g *Game) { g.resume = s }
}

// WithWaveHook registers a callback for finished waves.
func WithWaveHook(h WaveHook) Option {
	return func(g *Game) { g.hook = h }
}

// New creates a game using cfg for every session it starts.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrDiscard(g.logger)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return "defense" }

// Title returns the display name.
func (g *Game) Title() string { return "Lane Defense" }

// Reset starts a new session, or the resumed one on the first call.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.dt = rc.DeltaSeconds()
	g.tick = 0
	g.kills = 0
	g.paused = false
	g.battle = nil
	g.last = nil
	g.phase = PhaseShop

	if g.resume != nil {
		g.session = g.resume
		g.resume = nil
		g.message = fmt.Sprintf("Resumed at wave %d", g.session.Wave())
		return
	}
	g.session = wave.NewSession(g.cfg, wave.WithSeed(rc.Seed), wave.WithLogger(g.logger))
	g.message = "Buy upgrades, then press space to start wave 1"
}

// Resize updates the layout without touching the run.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW = w
	g.rc.ScreenH = h
}

// Session returns the current run.
func (g *Game) Session() *wave.Session { return g.session }

// Battle returns the running wave, or nil between waves.
func (g *Game) Battle() *sim.Battle { return g.battle }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// LastWave returns the report of the most recent wave, or nil.
func (g *Game) LastWave() *WaveReport { return g.last }

// Message returns the status line.
func (g *Game) Message() string { return g.message }

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.phase == PhaseOver {
		rc := g.rc
		rc.Seed = core.DeriveSeed(g.session.Seed(), int64(g.tick))
		g.Reset(rc)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.phase == PhaseBattle {
		g.paused = !g.paused
	}

	switch g.phase {
	case PhaseShop:
		g.shop(input)
	case PhaseBattle:
		if g.paused {
			break
		}
		if input.Has(core.ActionUpgradeDefense) || input.Has(core.ActionUpgradeTower) {
			g.message = "The shop opens after the wave"
		}
		g.battle.Step(g.dt)
		if g.battle.Done() {
			g.finishWave()
			return core.StepResult{State: g.State(), WaveCompleted: true}
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) shop(input core.InputFrame) {
	if input.Has(core.ActionUpgradeDefense) {
		g.buy(upgrade.Defender)
	}
	if input.Has(core.ActionUpgradeTower) {
		g.buy(upgrade.Tower)
	}
	if input.Has(core.ActionNextWave) {
		g.startWave()
	}
}

func (g *Game) buy(t upgrade.Track) {
	s := g.session
	cost := s.Upgrades().Cost(t)
	err := s.Shop().Purchase(t)
	switch {
	case errors.Is(err, upgrade.ErrMaxLevel):
		g.message = fmt.Sprintf("%s is already at max level", t)
	case errors.Is(err, upgrade.ErrInsufficientFunds):
		g.message = fmt.Sprintf("%s upgrade costs $%d, you have $%d", t, cost, s.Wallet().Balance())
	case err != nil:
		g.message = err.Error()
	default:
		g.message = fmt.Sprintf("%s upgraded to level %d", t, s.Upgrades().Level(t))
	}
}

func (g *Game) startWave() {
	s := g.session
	plan := s.Plan()
	rng := core.NewRNG(core.DeriveSeed(s.Seed(), int64(plan.Wave)<<8|0x51))
	g.battle = sim.NewBattle(s.Config().Battle, plan, s.Upgrades(), sim.WithRNG(rng))
	g.phase = PhaseBattle
	g.paused = false
	g.message = fmt.Sprintf("Wave %d: %d enemies, %s", plan.Wave, len(plan.Spawns), plan.Tuning.Pattern)
	g.logger.Debug("wave started", "wave", plan.Wave, "tuning", plan.Tuning.String())
}

func (g *Game) finishWave() {
	b := g.battle
	s := g.session
	result := b.Result()

	s.Wallet().Earn(b.Earned())
	s.Complete(result)
	g.kills += b.Kills()

	report := WaveReport{
		Plan:   b.Plan(),
		Result: result,
		Kills:  b.Kills(),
		Leaks:  b.Leaks(),
		Earned: b.Earned() + s.Config().Battle.WaveReward,
	}
	g.last = &report

	if result.HealthLost >= result.StartingHealth {
		g.phase = PhaseOver
		g.message = fmt.Sprintf("Overrun on wave %d. Press r to restart", result.WaveIndex)
	} else {
		g.phase = PhaseShop
		g.message = fmt.Sprintf("Wave %d cleared: -%d HP, %d kills, +$%d",
			result.WaveIndex, result.HealthLost, report.Kills, report.Earned)
	}

	if g.hook != nil {
		g.hook(s, report)
	}
}

// State returns the current game state. Score counts kills over the run.
func (g *Game) State() core.GameState {
	w := 0
	if g.session != nil {
		w = g.session.Wave()
		if g.phase != PhaseBattle {
			w-- // last played wave
		}
	}
	return core.GameState{
		Score:    g.kills,
		Wave:     w,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused,
	}
}
