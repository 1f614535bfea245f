package difficulty

import (
	"math"
	"strings"
	"testing"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		wave     int
		expected float64
	}{
		{"wave 1", 1, 1.0},
		{"wave 2", 2, 1.10},
		{"wave 5", 5, math.Pow(1.10, 4)},
		{"wave 10", 10, math.Pow(1.10, 9)},
		{"wave 15 is the cap", 15, math.Pow(1.10, 14)},
		{"wave 20 capped", 20, math.Pow(1.10, 14)},
		{"wave 100 capped", 100, math.Pow(1.10, 14)},
		{"wave 0 clamped to 1", 0, 1.0},
		{"negative wave clamped to 1", -5, 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Multiplier(tc.wave)
			if !approx(got, tc.expected, 0.001) {
				t.Errorf("Multiplier(%d) = %v, expected %v", tc.wave, got, tc.expected)
			}
		})
	}
}

func TestMultiplierWave15IsApproximately3Point8(t *testing.T) {
	if got := Multiplier(15); !approx(got, 3.797, 0.01) {
		t.Errorf("Multiplier(15) = %v, expected ~3.797", got)
	}
}

func TestMultiplierStrictlyIncreasesUntilCap(t *testing.T) {
	for wave := 1; wave < MaxWave; wave++ {
		if Multiplier(wave+1) <= Multiplier(wave) {
			t.Errorf("Wave %d should be harder than wave %d", wave+1, wave)
		}
	}
	for wave := MaxWave; wave <= 40; wave++ {
		if Multiplier(wave) != Multiplier(MaxWave) {
			t.Errorf("Multiplier(%d) should equal the wave %d cap", wave, MaxWave)
		}
	}
}

func TestScaleHealth(t *testing.T) {
	tests := []struct {
		wave     int
		expected int
	}{
		{1, 100},
		{5, 146},
		{15, 380},
	}

	for _, tc := range tests {
		if got := ScaleHealth(100, tc.wave); got != tc.expected {
			t.Errorf("ScaleHealth(100, %d) = %d, expected %d", tc.wave, got, tc.expected)
		}
	}
}

func TestScaleDamage(t *testing.T) {
	if got := ScaleDamage(10, 1); got != 10 {
		t.Errorf("ScaleDamage(10, 1) = %d, expected 10", got)
	}

	expected := int(math.Round(10 * math.Pow(1.10, 9)))
	if got := ScaleDamage(10, 10); got != expected {
		t.Errorf("ScaleDamage(10, 10) = %d, expected %d", got, expected)
	}
}

func TestScaleSpeed(t *testing.T) {
	if got := ScaleSpeed(3.0, 1); !approx(got, 3.0, 0.001) {
		t.Errorf("ScaleSpeed(3, 1) = %v, expected 3", got)
	}
	if got := ScaleSpeed(3.0, 0); !approx(got, 3.0, 0.001) {
		t.Errorf("ScaleSpeed(3, 0) = %v, wave should floor at 1", got)
	}

	// Speed grows slower than health
	for wave := 2; wave <= 20; wave++ {
		if SpeedMultiplier(wave) > Multiplier(wave) {
			t.Errorf("Wave %d: speed multiplier %v exceeds health multiplier %v",
				wave, SpeedMultiplier(wave), Multiplier(wave))
		}
	}
}

func TestScaleSize(t *testing.T) {
	if got := ScaleSize(1.0, 1); !approx(got, 1.0, 0.001) {
		t.Errorf("ScaleSize(1, 1) = %v, expected 1", got)
	}

	for wave := 1; wave <= 20; wave++ {
		got := ScaleSize(1.0, wave)
		if got < 0.8 || got > 1.4 {
			t.Errorf("ScaleSize(1, %d) = %v, expected within [0.8, 1.4]", wave, got)
		}
	}

	// Clamping happens on the result, so very late waves hit the ceiling
	if got := ScaleSize(2.0, 40); !approx(got, 2.8, 0.001) {
		t.Errorf("ScaleSize(2, 40) = %v, expected 2.8", got)
	}
}

func TestTint(t *testing.T) {
	if got := Tint(1); got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("Tint(1) = %+v, expected white", got)
	}

	final := Tint(15)
	if !approx(final.R, 1, 0.01) || !approx(final.G, 0.3, 0.01) || !approx(final.B, 0.3, 0.01) {
		t.Errorf("Tint(15) = %+v, expected (1, 0.3, 0.3)", final)
	}

	w1, w8, w15 := Tint(1), Tint(8), Tint(15)
	if !(w1.G > w8.G && w8.G > w15.G) {
		t.Errorf("Green should fade: %v, %v, %v", w1.G, w8.G, w15.G)
	}

	if Tint(30) != Tint(15) {
		t.Error("Tint should be clamped past wave 15")
	}
}

func TestDebugInfo(t *testing.T) {
	info := DebugInfo(5)
	if !strings.Contains(info, "Wave 5") {
		t.Errorf("DebugInfo should contain the wave number, got %q", info)
	}
	if !strings.Contains(info, "Multiplier") {
		t.Errorf("DebugInfo should contain the multiplier, got %q", info)
	}
}
