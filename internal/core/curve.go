package core

import "sort"

// Keyframe is a single (time, value) point on a Curve.
type Keyframe struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// Curve is a piecewise-linear function defined by keyframes.
// Outside the first and last key the curve holds the end values.
type Curve struct {
	Keys []Keyframe `yaml:"keys"`
}

// LinearCurve returns a two-key curve from (t0, v0) to (t1, v1).
func LinearCurve(t0, v0, t1, v1 float64) Curve {
	return NewCurve(Keyframe{Time: t0, Value: v0}, Keyframe{Time: t1, Value: v1})
}

// ConstantCurve returns a curve that evaluates to v everywhere.
func ConstantCurve(v float64) Curve {
	return LinearCurve(0, v, 1, v)
}

// NewCurve builds a curve from keys, sorted by time.
func NewCurve(keys ...Keyframe) Curve {
	c := Curve{Keys: append([]Keyframe(nil), keys...)}
	c.sort()
	return c
}

func (c *Curve) sort() {
	sort.SliceStable(c.Keys, func(i, j int) bool {
		return c.Keys[i].Time < c.Keys[j].Time
	})
}

// IsEmpty reports whether the curve has no keys.
func (c Curve) IsEmpty() bool {
	return len(c.Keys) == 0
}

// Clone returns a deep copy of the curve with keys sorted by time.
func (c Curve) Clone() Curve {
	return NewCurve(c.Keys...)
}

// Evaluate returns the curve value at t. An empty curve evaluates to 0.
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.Keys)
	if n == 0 {
		return 0
	}
	if n == 1 || t <= c.Keys[0].Time {
		return c.Keys[0].Value
	}
	if t >= c.Keys[n-1].Time {
		return c.Keys[n-1].Value
	}

	// First key strictly after t
	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time > t })
	a, b := c.Keys[i-1], c.Keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	return a.Value + (b.Value-a.Value)*(t-a.Time)/span
}

// Range is a closed float interval, typically loaded from YAML as {min, max}.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Normalized returns the range with Min <= Max.
func (r Range) Normalized() Range {
	if r.Min > r.Max {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	n := r.Normalized()
	return ClampF(v, n.Min, n.Max)
}

// Lerp interpolates from Min to Max.
func (r Range) Lerp(t float64) float64 {
	return Lerp(r.Min, r.Max, t)
}
