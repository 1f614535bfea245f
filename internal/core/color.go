package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Tint is a linear RGB color with channels in [0, 1].
type Tint struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// White is the neutral tint.
var White = Tint{R: 1, G: 1, B: 1}

// Clamped returns the tint with every channel clamped to [0, 1].
func (t Tint) Clamped() Tint {
	return Tint{R: Clamp01(t.R), G: Clamp01(t.G), B: Clamp01(t.B)}
}

// Lerp blends from t to other by f (clamped to [0, 1]).
func (t Tint) Lerp(other Tint, f float64) Tint {
	return Tint{
		R: Lerp(t.R, other.R, f),
		G: Lerp(t.G, other.G, f),
		B: Lerp(t.B, other.B, f),
	}
}

// Hex returns the tint as #rrggbb.
func (t Tint) Hex() string {
	c := t.Clamped()
	return fmt.Sprintf("#%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B))
}

func toByte(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

// palette approximates the terminal colors a Tint can be mapped onto.
var palette = []struct {
	color Color
	tint  Tint
}{
	{ColorRed, Tint{R: 0.8}},
	{ColorGreen, Tint{G: 0.8}},
	{ColorYellow, Tint{R: 0.8, G: 0.8}},
	{ColorBlue, Tint{B: 0.8}},
	{ColorMagenta, Tint{R: 0.8, B: 0.8}},
	{ColorCyan, Tint{G: 0.8, B: 0.8}},
	{ColorBrightRed, Tint{R: 1, G: 0.33, B: 0.33}},
	{ColorBrightGreen, Tint{R: 0.33, G: 1, B: 0.33}},
	{ColorBrightYellow, Tint{R: 1, G: 1, B: 0.33}},
	{ColorBrightBlue, Tint{R: 0.33, G: 0.33, B: 1}},
	{ColorBrightMagenta, Tint{R: 1, G: 0.33, B: 1}},
	{ColorBrightCyan, Tint{R: 0.33, G: 1, B: 1}},
	{ColorBrightWhite, White},
	{ColorOrange, Tint{R: 1, G: 0.53}},
	{ColorGray, Tint{R: 0.54, G: 0.54, B: 0.54}},
}

// Nearest returns the palette color perceptually closest to the tint.
func (t Tint) Nearest() Color {
	c := t.Clamped()
	want := colorful.Color{R: c.R, G: c.G, B: c.B}
	best, bestDist := ColorBrightWhite, -1.0
	for _, p := range palette {
		d := want.DistanceLab(colorful.Color{R: p.tint.R, G: p.tint.G, B: p.tint.B})
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.color, d
		}
	}
	return best
}

// GradientKey is a tint stop on a Gradient.
type GradientKey struct {
	Time float64 `yaml:"time"`
	Tint Tint    `yaml:"tint"`
}

// Gradient is an ordered list of tint stops over [0, 1].
// Blending between stops is left to the caller.
type Gradient struct {
	Keys []GradientKey `yaml:"keys"`
}

// IsEmpty reports whether the gradient has no stops.
func (g Gradient) IsEmpty() bool {
	return len(g.Keys) == 0
}

// Segment returns the two stops surrounding t and the local blend factor.
// For an empty gradient both stops are White.
func (g Gradient) Segment(t float64) (from, to Tint, f float64) {
	n := len(g.Keys)
	switch {
	case n == 0:
		return White, White, 0
	case n == 1 || t <= g.Keys[0].Time:
		return g.Keys[0].Tint, g.Keys[0].Tint, 0
	case t >= g.Keys[n-1].Time:
		return g.Keys[n-1].Tint, g.Keys[n-1].Tint, 0
	}

	for i := 1; i < n; i++ {
		a, b := g.Keys[i-1], g.Keys[i]
		if t > b.Time {
			continue
		}
		span := b.Time - a.Time
		if span <= 0 {
			return b.Tint, b.Tint, 0
		}
		return a.Tint, b.Tint, (t - a.Time) / span
	}
	last := g.Keys[n-1].Tint
	return last, last, 0
}
