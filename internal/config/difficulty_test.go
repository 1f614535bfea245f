package config

import "testing"

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", DifficultyNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePreset(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Director.EnemyCountCurve.Evaluate(1) >= base.Director.EnemyCountCurve.Evaluate(1) {
		t.Error("easy should spawn fewer enemies")
	}
	if easy.Director.SpawnDelayRange.Max <= base.Director.SpawnDelayRange.Max {
		t.Error("easy should spawn slower")
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Director.EnemyCountCurve.Evaluate(1) <= base.Director.EnemyCountCurve.Evaluate(1) {
		t.Error("hard should spawn more enemies")
	}
	if hard.Director.HealthPenaltyWeight >= base.Director.HealthPenaltyWeight {
		t.Error("hard should react less to player struggle")
	}
	if !hard.Variants.RollUnforced || base.Variants.RollUnforced {
		t.Error("only hard should roll unforced promotions")
	}

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Director.HealthPenaltyWeight != 0 || fixed.Director.DurationPenaltyWeight != 0 {
		t.Error("fixed should disable performance adaptation")
	}

	// The default curve must not be shared with the scaled copy
	if base.Director.EnemyCountCurve.Evaluate(1) != 28 {
		t.Errorf("default curve mutated: %v", base.Director.EnemyCountCurve.Evaluate(1))
	}
}
