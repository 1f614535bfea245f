package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/game/defense"
	"github.com/vovakirdan/topdeck/internal/logging"
	"github.com/vovakirdan/topdeck/internal/storage"
	"github.com/vovakirdan/topdeck/internal/wave"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "topdeck.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// playWave completes the session's current wave and reports it like the game does.
func playWave(s *wave.Session, lost int) defense.WaveReport {
	plan := s.Plan()
	res := director.WaveResult{
		WaveIndex:      plan.Wave,
		StartingHealth: 100,
		HealthLost:     lost,
		CombatDuration: 40,
		EnemiesSpawned: len(plan.Spawns),
	}
	s.Complete(res)
	return defense.WaveReport{Plan: plan, Result: res, Kills: len(plan.Spawns), Leaks: 0}
}

func TestRecorderSavesWaves(t *testing.T) {
	store := openStore(t)
	s := wave.NewSession(config.DefaultConfig(), wave.WithSeed(5))
	hook := recorder(store, config.DifficultyHard, "play", logging.Discard())

	hook(s, playWave(s, 10))
	hook(s, playWave(s, 30))

	rec, err := store.Session(s.ID())
	if err != nil || rec == nil {
		t.Fatalf("Session() = %v, %v", rec, err)
	}
	if rec.Source != "play" || rec.Preset != "hard" || rec.Seed != 5 {
		t.Errorf("session record = %+v", rec)
	}
	if rec.NextWave != 3 {
		t.Errorf("NextWave = %d, want 3", rec.NextWave)
	}

	waves, err := store.WaveRecords(s.ID())
	if err != nil {
		t.Fatalf("WaveRecords() failed: %v", err)
	}
	if len(waves) != 2 {
		t.Fatalf("stored %d waves, want 2", len(waves))
	}
	if waves[1].WaveIndex != 2 || waves[1].HealthLost != 30 {
		t.Errorf("second wave = %+v", waves[1])
	}
	if waves[0].Pattern == "" {
		t.Error("pattern not stored")
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	s := wave.NewSession(config.DefaultConfig(), wave.WithSeed(5))
	hook := recorder(nil, config.DifficultyNormal, "play", logging.Discard())
	hook(s, playWave(s, 0))
}

func TestResumeSession(t *testing.T) {
	store := openStore(t)
	base := config.DefaultConfig()

	hard := config.DefaultConfig()
	config.ApplyPreset(&hard, config.DifficultyHard)
	live := wave.NewSession(hard, wave.WithSeed(42))
	hook := recorder(store, config.DifficultyHard, "simulate:greedy", logging.Discard())
	hook(live, playWave(live, 70))
	hook(live, playWave(live, 50))

	resumed, preset, err := resumeSession(store, base, live.ID()[:8], logging.Discard())
	if err != nil {
		t.Fatalf("resumeSession() failed: %v", err)
	}
	if preset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", preset)
	}
	if resumed.ID() != live.ID() || resumed.Seed() != live.Seed() {
		t.Errorf("resumed %s/%d, want %s/%d", resumed.ID(), resumed.Seed(), live.ID(), live.Seed())
	}
	if resumed.Wave() != live.Wave() {
		t.Errorf("resumed wave = %d, want %d", resumed.Wave(), live.Wave())
	}
	if resumed.Wallet().Balance() != live.Wallet().Balance() {
		t.Errorf("resumed money = %d, want %d", resumed.Wallet().Balance(), live.Wallet().Balance())
	}
	if got, want := resumed.Plan().Tuning, live.Plan().Tuning; got != want {
		t.Errorf("resumed tuning = %v, want %v", got, want)
	}
}

func TestResumeSessionUnknown(t *testing.T) {
	store := openStore(t)
	if _, _, err := resumeSession(store, config.DefaultConfig(), "nope", logging.Discard()); err == nil {
		t.Error("expected an error for an unknown session")
	}
}
