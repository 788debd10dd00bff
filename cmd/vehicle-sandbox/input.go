package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// keyHold is how long an axis stays pressed after its last key event
// Terminals report repeats but never releases, so a held key reads as a stream of presses
const keyHold = 180 * time.Millisecond

type axis struct {
	value   float64
	pressed time.Time
}

func (a *axis) read(now time.Time) float64 {
	if now.Sub(a.pressed) > keyHold {
		return 0
	}
	return a.value
}

// keyInput turns key repeats into a decaying move vector
type keyInput struct {
	now      func() time.Time
	steer    axis
	throttle axis
}

func newKeyInput(now func() time.Time) *keyInput {
	if now == nil {
		now = time.Now
	}
	return &keyInput{now: now}
}

// Move implements vehicle.InputSource
func (k *keyInput) Move() mgl64.Vec2 {
	now := k.now()
	return mgl64.Vec2{k.steer.read(now), k.throttle.read(now)}
}

// handle maps driving keys and reports whether the key was one
func (k *keyInput) handle(ev *tcell.EventKey) bool {
	now := k.now()
	switch ev.Key() {
	case tcell.KeyUp:
		k.throttle = axis{1, now}
	case tcell.KeyDown:
		k.throttle = axis{-1, now}
	case tcell.KeyLeft:
		k.steer = axis{-1, now}
	case tcell.KeyRight:
		k.steer = axis{1, now}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.throttle = axis{1, now}
		case 's', 'S':
			k.throttle = axis{-1, now}
		case 'a', 'A':
			k.steer = axis{-1, now}
		case 'd', 'D':
			k.steer = axis{1, now}
		case ' ':
			k.throttle = axis{}
			k.steer = axis{}
		default:
			return false
		}
	default:
		return false
	}
	return true
}
