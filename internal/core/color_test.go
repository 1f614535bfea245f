package core

import (
	"math"
	"testing"
)

func TestTintLerpAndClamp(t *testing.T) {
	red := Tint{R: 1, G: 0.3, B: 0.3}

	mid := White.Lerp(red, 0.5)
	if mid.R != 1 || math.Abs(mid.G-0.65) > 1e-9 || math.Abs(mid.B-0.65) > 1e-9 {
		t.Errorf("Lerp(0.5) = %+v", mid)
	}

	over := Tint{R: 1.5, G: -0.2, B: 0.5}.Clamped()
	if over.R != 1 || over.G != 0 || over.B != 0.5 {
		t.Errorf("Clamped() = %+v", over)
	}
}

func TestTintHex(t *testing.T) {
	if got := White.Hex(); got != "#ffffff" {
		t.Errorf("White.Hex() = %q", got)
	}
	if got := (Tint{R: 1}).Hex(); got != "#ff0000" {
		t.Errorf("Red Hex() = %q", got)
	}
}

func TestGradientSegment(t *testing.T) {
	g := Gradient{Keys: []GradientKey{
		{Time: 0, Tint: White},
		{Time: 1, Tint: Tint{R: 1}},
	}}

	from, to, f := g.Segment(0.25)
	if from != White || to != (Tint{R: 1}) || math.Abs(f-0.25) > 1e-9 {
		t.Errorf("Segment(0.25) = %v, %v, %v", from, to, f)
	}

	from, to, _ = g.Segment(2)
	if from != to || from != (Tint{R: 1}) {
		t.Error("Segment past the end should hold the last stop")
	}

	var empty Gradient
	from, to, _ = empty.Segment(0.5)
	if from != White || to != White {
		t.Error("Empty gradient should be white")
	}
}

func TestTintNearest(t *testing.T) {
	tests := []struct {
		tint Tint
		want Color
	}{
		{White, ColorBrightWhite},
		{Tint{R: 1}, ColorRed},
		{Tint{R: 1, G: 1, B: 0.3}, ColorBrightYellow},
		{Tint{R: 1, G: 0.5}, ColorOrange},
		{Tint{R: 0.5, G: 0.5, B: 0.5}, ColorGray},
	}
	for _, tt := range tests {
		if got := tt.tint.Nearest(); got != tt.want {
			t.Errorf("%v.Nearest() = %v, want %v", tt.tint, got, tt.want)
		}
	}
}
