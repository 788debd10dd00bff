package vmath

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyCurve is returned by Validate for a curve without keys
var ErrEmptyCurve = errors.New("curve has no keys")

// Keyframe is a curve control point with Hermite tangents (slope per unit time)
type Keyframe struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Curve is a keyframed scalar function evaluated with cubic Hermite segments
// Inputs outside the key range are clamped to the first/last key value
// The zero value has no keys and evaluates to 0
type Curve struct {
	keys []Keyframe
}

// NewCurve builds a curve from keys, sorted by time
func NewCurve(keys ...Keyframe) Curve {
	ks := make([]Keyframe, len(keys))
	copy(ks, keys)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].Time < ks[j].Time })
	return Curve{keys: ks}
}

// Constant returns a flat curve
func Constant(v float64) Curve {
	return NewCurve(Keyframe{Time: 0, Value: v})
}

// Linear returns a straight segment from (t0, v0) to (t1, v1)
func Linear(t0, v0, t1, v1 float64) Curve {
	slope := 0.0
	if t1 != t0 {
		slope = (v1 - v0) / (t1 - t0)
	}
	return NewCurve(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

// EaseInOut returns a smooth segment with zero tangents at both ends
func EaseInOut(t0, v0, t1, v1 float64) Curve {
	return NewCurve(
		Keyframe{Time: t0, Value: v0},
		Keyframe{Time: t1, Value: v1},
	)
}

// Keys returns a copy of the control points
func (c Curve) Keys() []Keyframe {
	out := make([]Keyframe, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the key count
func (c Curve) Len() int { return len(c.keys) }

// Validate reports empty curves and non-finite keys
func (c Curve) Validate() error {
	if len(c.keys) == 0 {
		return ErrEmptyCurve
	}
	for _, k := range c.keys {
		if !finite(k.Time) || !finite(k.Value) || !finite(k.InTangent) || !finite(k.OutTangent) {
			return errors.New("curve key is not finite")
		}
	}
	return nil
}

// Evaluate samples the curve at t with flat extrapolation outside the key range
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	// NaN fails every comparison below
	if n == 1 || t <= c.keys[0].Time || math.IsNaN(t) {
		return c.keys[0].Value
	}
	last := c.keys[n-1]
	if t >= last.Time {
		return last.Value
	}

	// First key with Time > t, segment is [i-1, i]
	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t })
	k0, k1 := c.keys[i-1], c.keys[i]

	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / span

	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*span*k0.OutTangent + h01*k1.Value + h11*span*k1.InTangent
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
