package vehicle

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/vmath"
)

// WheelVisual smooths a wheel mesh's anchor-local offset toward the suspension target
type WheelVisual struct {
	Rest   mgl64.Vec3
	Offset mgl64.Vec3
}

// NewWheelVisual starts at the unsprung rest offset
func NewWheelVisual(rest mgl64.Vec3) WheelVisual {
	return WheelVisual{Rest: rest, Offset: rest}
}

// Follow moves the offset toward target at speed per second
func (v *WheelVisual) Follow(target mgl64.Vec3, speed float64, dt time.Duration) {
	v.Offset = vmath.V3Slerp(v.Offset, target, speed*dt.Seconds())
}

// Reset snaps the offset back to rest
func (v *WheelVisual) Reset() {
	v.Offset = v.Rest
}
