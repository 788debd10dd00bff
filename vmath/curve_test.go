package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve_Evaluate(t *testing.T) {
	linear := Linear(0, 0, 1, 1)
	ease := EaseInOut(0, 0, 1, 1)

	tests := []struct {
		name  string
		curve Curve
		in    float64
		want  float64
	}{
		{"linear mid", linear, 0.5, 0.5},
		{"linear quarter", linear, 0.25, 0.25},
		{"linear clamps high", linear, 1.7, 1},
		{"linear clamps low", linear, -3, 0},
		{"ease quarter", ease, 0.25, 0.15625},
		{"ease mid", ease, 0.5, 0.5},
		{"constant", Constant(0.8), 12, 0.8},
		{"empty", Curve{}, 0.5, 0},
		{"nan reads first key", Linear(0, 1, 1, 0.5), math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.curve.Evaluate(tt.in), 1e-12)
		})
	}
}

func TestCurve_SortsAndHitsKeys(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 1, Value: 0.2},
		Keyframe{Time: 0, Value: 1},
		Keyframe{Time: 0.5, Value: 0.7},
	)
	require.Equal(t, 3, c.Len())
	assert.Equal(t, 0.0, c.Keys()[0].Time)
	assert.InDelta(t, 1.0, c.Evaluate(0), 1e-12)
	assert.InDelta(t, 0.7, c.Evaluate(0.5), 1e-12)
	assert.InDelta(t, 0.2, c.Evaluate(1), 1e-12)
}

func TestCurve_Validate(t *testing.T) {
	assert.ErrorIs(t, Curve{}.Validate(), ErrEmptyCurve)
	assert.NoError(t, Linear(0, 0, 1, 1).Validate())
	assert.Error(t, NewCurve(Keyframe{Time: 0, Value: math.NaN()}).Validate())
}
