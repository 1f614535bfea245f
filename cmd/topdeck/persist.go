package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/game/defense"
	"github.com/vovakirdan/topdeck/internal/storage"
	"github.com/vovakirdan/topdeck/internal/wave"
)

// sessionRecord snapshots a session for the store.
func sessionRecord(s *wave.Session, preset config.DifficultyPreset, source string) storage.SessionRecord {
	return storage.SessionRecord{
		ID:            s.ID(),
		Seed:          s.Seed(),
		Preset:        string(preset),
		Source:        source,
		NextWave:      s.Wave(),
		DefenderLevel: s.Upgrades().DefenderLevel(),
		TowerLevel:    s.Upgrades().TowerLevel(),
		Money:         s.Wallet().Balance(),
	}
}

// waveRecord builds the stored form of a finished wave.
func waveRecord(sessionID string, plan wave.Plan, result director.WaveResult, kills, leaks int) storage.WaveRecord {
	return storage.WaveRecord{
		SessionID:       sessionID,
		WaveResult:      result,
		Pattern:         plan.Tuning.Pattern.String(),
		DifficultyScore: plan.Tuning.DifficultyScore,
		SpawnDelay:      plan.Tuning.SpawnDelay,
		Kills:           kills,
		Leaks:           leaks,
	}
}

// saveWave stores a finished wave and the session progress after it.
func saveWave(store *storage.Store, s *wave.Session, preset config.DifficultyPreset, source string, rec storage.WaveRecord) error {
	if err := store.SaveSession(sessionRecord(s, preset, source)); err != nil {
		return err
	}
	_, err := store.SaveWaveResult(rec)
	return err
}

// recorder persists every finished wave of a game. Store errors are logged,
// the game keeps running.
func recorder(store *storage.Store, preset config.DifficultyPreset, source string, l *log.Logger) defense.WaveHook {
	return func(s *wave.Session, r defense.WaveReport) {
		if store == nil {
			return
		}
		rec := waveRecord(s.ID(), r.Plan, r.Result, r.Kills, r.Leaks)
		if err := saveWave(store, s, preset, source, rec); err != nil {
			l.Warn("could not save wave", "session", s.ID(), "wave", r.Result.WaveIndex, "error", err)
		}
	}
}

// resumeSession rebuilds a stored session: same id and seed, director history
// replayed from its wave results.
func resumeSession(store *storage.Store, cfg config.Config, id string, l *log.Logger) (*wave.Session, config.DifficultyPreset, error) {
	rec, err := store.Session(id)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", fmt.Errorf("no session matches %q", id)
	}
	results, err := store.WaveResults(rec.ID)
	if err != nil {
		return nil, "", err
	}

	preset, err := config.ParsePreset(rec.Preset)
	if err != nil {
		return nil, "", err
	}
	config.ApplyPreset(&cfg, preset)

	s := wave.NewSession(cfg, wave.WithID(rec.ID), wave.WithSeed(rec.Seed), wave.WithLogger(l))
	s.Restore(results, rec.DefenderLevel, rec.TowerLevel, rec.Money)
	return s, preset, nil
}
