// Package core holds the pieces shared by the wave tooling and the terminal
// game: keyframe curves, tints, a seeded RNG, input frames and a character
// screen buffer. Nothing here imports a UI package.
package core

import "cmp"

// Clamp limits v to [lo, hi]. lo wins when the bounds are inverted.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampF is Clamp for float64, for call sites with untyped constants.
func ClampF(v, lo, hi float64) float64 { return Clamp(v, lo, hi) }

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// Lerp interpolates from a to b; t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// Min returns the smaller of a and b.
func Min[T cmp.Ordered](a, b T) T { return min(a, b) }

// Max returns the larger of a and b.
func Max[T cmp.Ordered](a, b T) T { return max(a, b) }
