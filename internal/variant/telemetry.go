package variant

import (
	"fmt"
	"math"
)

// TelemetryLine formats the wave mutator summary shown to the player,
// e.g. "Wave 4 Mutators: +18% HP, +3% SPD, +7% DMG".
func TelemetryLine(wave int, health, speed, damage float64) string {
	return fmt.Sprintf("Wave %d Mutators: %+d%% HP, %+d%% SPD, %+d%% DMG",
		wave, percent(health), percent(speed), percent(damage))
}

// Telemetry averages the multipliers of a wave's variants into a TelemetryLine.
func Telemetry(wave int, variants []Variant) string {
	if len(variants) == 0 {
		return TelemetryLine(wave, 1, 1, 1)
	}
	var h, s, d float64
	for _, v := range variants {
		h += v.HealthMultiplier
		s += v.SpeedMultiplier
		d += v.DamageMultiplier
	}
	n := float64(len(variants))
	return TelemetryLine(wave, h/n, s/n, d/n)
}

func percent(mult float64) int {
	return int(math.Round((mult - 1) * 100))
}
