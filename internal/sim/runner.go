package sim

import (
	"context"
	"errors"

	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/upgrade"
	"github.com/vovakirdan/topdeck/internal/wave"
)

// DefaultDT is the simulation step, matching the default tick rate.
const DefaultDT = 1.0 / 30

// Report is the record of one simulated wave.
type Report struct {
	Plan      wave.Plan
	Result    director.WaveResult
	Purchases []upgrade.Track
	Kills     int
	Leaks     int
	Money     int // balance after the wave
}

// Runner plays consecutive waves of a session with a player profile.
type Runner struct {
	session *wave.Session
	profile Profile
	dt      float64
}

// NewRunner creates a runner stepping at dt seconds (DefaultDT when <= 0).
func NewRunner(session *wave.Session, profile Profile, dt float64) *Runner {
	if dt <= 0 {
		dt = DefaultDT
	}
	return &Runner{session: session, profile: profile, dt: dt}
}

// Next shops, plays and records the session's current wave.
func (r *Runner) Next() Report {
	s := r.session

	var bought []upgrade.Track
	for _, t := range r.profile.Purchases(s.Upgrades()) {
		if err := s.Shop().Purchase(t); err == nil {
			bought = append(bought, t)
		}
	}

	plan := s.Plan()
	rng := core.NewRNG(core.DeriveSeed(s.Seed(), int64(plan.Wave)<<8|0x51))
	battle := NewBattle(s.Config().Battle, plan, s.Upgrades(),
		WithAccuracy(r.profile.Accuracy()), WithRNG(rng))
	result := battle.Run(r.dt)

	s.Wallet().Earn(battle.Earned())
	s.Complete(result)

	return Report{
		Plan:      plan,
		Result:    result,
		Purchases: bought,
		Kills:     battle.Kills(),
		Leaks:     battle.Leaks(),
		Money:     s.Wallet().Balance(),
	}
}

// ErrDefeated is returned by Run when the player runs out of health.
var ErrDefeated = errors.New("sim: player defeated")

// Run plays up to waves waves, stopping early on defeat or cancellation.
// The reports of every played wave are returned either way.
func (r *Runner) Run(ctx context.Context, waves int) ([]Report, error) {
	reports := make([]Report, 0, waves)
	for i := 0; i < waves; i++ {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep := r.Next()
		reports = append(reports, rep)
		if rep.Result.HealthLost >= rep.Result.StartingHealth {
			return reports, ErrDefeated
		}
	}
	return reports, nil
}
