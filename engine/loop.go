package engine

import (
	"context"
	"time"
)

// FrameFunc receives the measured time since the previous frame
type FrameFunc func(dt time.Duration)

// Loop drives a FrameFunc at a target frame interval until its context ends
type Loop struct {
	clock    Clock
	interval time.Duration
	frame    FrameFunc

	// maxFrame bounds dt handed to the frame after a stall
	maxFrame time.Duration
}

// NewLoop creates a frame loop; clock nil uses the system time
func NewLoop(clock Clock, interval time.Duration, frame FrameFunc) *Loop {
	if clock == nil {
		clock = NewTimeProvider()
	}
	return &Loop{
		clock:    clock,
		interval: interval,
		frame:    frame,
		maxFrame: interval * 4,
	}
}

// Run blocks until ctx is done, returning ctx.Err()
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			now := l.clock.Now()
			dt := now.Sub(last)
			last = now
			if dt > l.maxFrame {
				dt = l.maxFrame
			}
			l.frame(dt)
		}
	}
}
