// Package difficulty provides stateless wave-based stat scaling.
//
// Health and damage grow exponentially (1.10 per wave) up to MaxWave; speed
// and size grow linearly and much slower, so late waves get tougher rather
// than faster.
package difficulty

import (
	"fmt"
	"math"

	"github.com/vovakirdan/topdeck/internal/core"
)

// Scaling constants
const (
	BaseMultiplier    = 1.10 // Health/damage growth per wave
	MaxWave           = 15   // Waves past this use the MaxWave multiplier
	SpeedScalePerWave = 0.03
	SizeScalePerWave  = 0.02
	MinSizeFactor     = 0.8
	MaxSizeFactor     = 1.4
	FinalTintChannel  = 0.3 // Green/blue channel value at MaxWave
)

// clampWave restricts wave to [1, MaxWave].
func clampWave(wave int) int {
	return core.Clamp(wave, 1, MaxWave)
}

// Multiplier returns the health/damage multiplier for a wave:
// 1.10^(wave-1) with wave clamped to [1, MaxWave].
func Multiplier(wave int) float64 {
	return math.Pow(BaseMultiplier, float64(clampWave(wave)-1))
}

// ScaleHealth scales base health by the wave multiplier, rounding half away from zero.
func ScaleHealth(baseHealth, wave int) int {
	return int(math.Round(float64(baseHealth) * Multiplier(wave)))
}

// ScaleDamage scales base damage by the wave multiplier, rounding half away from zero.
func ScaleDamage(baseDamage, wave int) int {
	return int(math.Round(float64(baseDamage) * Multiplier(wave)))
}

// SpeedMultiplier returns 1 + (wave-1)*0.03. Wave is floored at 1 but not capped.
func SpeedMultiplier(wave int) float64 {
	return 1.0 + float64(core.Max(wave, 1)-1)*SpeedScalePerWave
}

// ScaleSpeed scales base speed linearly with the wave.
func ScaleSpeed(baseSpeed float64, wave int) float64 {
	return baseSpeed * SpeedMultiplier(wave)
}

// ScaleSize scales base size linearly with the wave, then clamps the result
// to [0.8*base, 1.4*base].
func ScaleSize(baseSize float64, wave int) float64 {
	scaled := baseSize * (1.0 + float64(core.Max(wave, 1)-1)*SizeScalePerWave)
	bounds := core.Range{Min: baseSize * MinSizeFactor, Max: baseSize * MaxSizeFactor}
	return bounds.Clamp(scaled)
}

// Tint returns the enemy tint for a wave: white at wave 1, fading green and
// blue linearly to 0.3 at MaxWave. Red stays at 1.
func Tint(wave int) core.Tint {
	progress := float64(clampWave(wave)-1) / float64(MaxWave-1)
	channel := core.Lerp(1.0, FinalTintChannel, progress)
	return core.Tint{R: 1, G: channel, B: channel}
}

// DebugInfo returns a one-line summary of the scaling at a wave.
func DebugInfo(wave int) string {
	m := Multiplier(wave)
	return fmt.Sprintf("Wave %d: Multiplier=%.2f, Health=x%.2f, Speed=x%.2f",
		wave, m, m, SpeedMultiplier(wave))
}
