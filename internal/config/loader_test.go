package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := Parse(defaultTopdeckYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	def := DefaultConfig()

	if cfg.Director.ReferenceWaveCount != def.Director.ReferenceWaveCount {
		t.Errorf("ReferenceWaveCount = %d, want %d", cfg.Director.ReferenceWaveCount, def.Director.ReferenceWaveCount)
	}
	if cfg.Director.SpawnDelayRange != def.Director.SpawnDelayRange {
		t.Errorf("SpawnDelayRange = %+v, want %+v", cfg.Director.SpawnDelayRange, def.Director.SpawnDelayRange)
	}
	if got, want := cfg.Director.EnemyCountCurve.Evaluate(1), def.Director.EnemyCountCurve.Evaluate(1); got != want {
		t.Errorf("EnemyCountCurve(1) = %v, want %v", got, want)
	}
	if cfg.Variants.Elite.HealthMultiplier != def.Variants.Elite.HealthMultiplier {
		t.Errorf("Elite.HealthMultiplier = %v, want %v", cfg.Variants.Elite.HealthMultiplier, def.Variants.Elite.HealthMultiplier)
	}
	if cfg.Upgrades.Defender.Cost != 200 || cfg.Upgrades.Tower.Cost != 300 {
		t.Errorf("upgrade costs = %d/%d, want 200/300", cfg.Upgrades.Defender.Cost, cfg.Upgrades.Tower.Cost)
	}
	if len(cfg.Enemies) != len(def.Enemies) {
		t.Errorf("len(Enemies) = %d, want %d", len(cfg.Enemies), len(def.Enemies))
	}
	if cfg.Battle != def.Battle {
		t.Errorf("Battle = %+v, want %+v", cfg.Battle, def.Battle)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("director:\n  history_window: 7\nbattle:\n  lanes: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Director.HistoryWindow != 7 {
		t.Errorf("HistoryWindow = %d, want 7", cfg.Director.HistoryWindow)
	}
	if cfg.Battle.Lanes != 5 {
		t.Errorf("Lanes = %d, want 5", cfg.Battle.Lanes)
	}
	// Untouched fields keep their defaults
	if cfg.Director.TargetCombatDuration != 35 {
		t.Errorf("TargetCombatDuration = %v, want 35", cfg.Director.TargetCombatDuration)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("director: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed file should fail")
	}
}

func TestEnemyByID(t *testing.T) {
	cfg := DefaultConfig()
	if e, ok := cfg.EnemyByID("brute"); !ok || e.BaseHealth != 220 {
		t.Errorf("EnemyByID(brute) = %+v, %v", e, ok)
	}
	if _, ok := cfg.EnemyByID("dragon"); ok {
		t.Error("EnemyByID(dragon) should not exist")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/y.db"); got != "/abs/y.db" {
		t.Errorf("ExpandHome(abs) = %q", got)
	}
}

func TestResolveSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("battle:\n  lanes: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, source, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if source != path || cfg.Battle.Lanes != 4 {
		t.Errorf("Resolve() = lanes %d from %q", cfg.Battle.Lanes, source)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)
	cfg.Battle.Lanes = 6

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if back.Battle != cfg.Battle {
		t.Errorf("Battle = %+v, want %+v", back.Battle, cfg.Battle)
	}
	if back.Director.HealthPenaltyWeight != cfg.Director.HealthPenaltyWeight {
		t.Errorf("HealthPenaltyWeight = %v, want %v", back.Director.HealthPenaltyWeight, cfg.Director.HealthPenaltyWeight)
	}
	if got, want := back.Director.EnemyCountCurve.Evaluate(5), cfg.Director.EnemyCountCurve.Evaluate(5); got != want {
		t.Errorf("EnemyCountCurve(5) = %v, want %v", got, want)
	}
}
