package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vehicle-sim/config"
	"github.com/lixenwraith/vehicle-sim/logging"
	"github.com/lixenwraith/vehicle-sim/sim"
	"github.com/lixenwraith/vehicle-sim/vehicle"
)

func newTestRunner(t *testing.T, s script, steer, throttle float64) (*runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "info", false)
	require.NoError(t, err)

	w, err := sim.NewWorld(config.Default(), sim.WithInput(vehicle.InputFunc(scriptedInput(steer, throttle))))
	require.NoError(t, err)
	return newRunner(w, s, logger), &buf
}

func TestRunner_StraightRun(t *testing.T) {
	r, buf := newTestRunner(t, script{
		Duration: 2 * time.Second,
		Frame:    16 * time.Millisecond,
		FlipAt:   -1,
	}, 0, 1)

	sum, err := r.run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(125), sum.Frames)
	assert.Equal(t, uint64(100), sum.Ticks)
	assert.Greater(t, sum.Distance, 2.0)
	assert.Greater(t, sum.Final.Z(), 2.0)
	assert.True(t, sum.Upright)
	assert.Zero(t, sum.Recoveries)

	// Telemetry at 0, 0.5, 1, 1.5 and 2 seconds
	assert.Equal(t, 5, strings.Count(buf.String(), `"message":"telemetry"`))
}

func TestRunner_FlipRecovers(t *testing.T) {
	r, buf := newTestRunner(t, script{
		Duration: 9 * time.Second,
		Frame:    16 * time.Millisecond,
		FlipAt:   time.Second,
	}, 0, 0)

	sum, err := r.run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Recoveries)
	assert.GreaterOrEqual(t, sum.Landings, 1)
	assert.True(t, sum.Upright)
	assert.Contains(t, buf.String(), `"phase":"Lifting"`)
}

func TestRunner_Cancelled(t *testing.T) {
	r, _ := newTestRunner(t, script{
		Duration: time.Hour,
		Frame:    16 * time.Millisecond,
		FlipAt:   -1,
	}, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := r.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Frames)
}

func TestRunner_RealtimeCancelled(t *testing.T) {
	r, _ := newTestRunner(t, script{
		Duration: time.Hour,
		Frame:    5 * time.Millisecond,
		FlipAt:   -1,
		Realtime: true,
	}, 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := r.run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_RealtimeCompletes(t *testing.T) {
	r, _ := newTestRunner(t, script{
		Duration: 60 * time.Millisecond,
		Frame:    5 * time.Millisecond,
		FlipAt:   -1,
		Realtime: true,
	}, 0, 1)

	sum, err := r.run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, sum.Frames)
}
