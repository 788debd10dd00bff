package vehicle

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type appliedForce struct {
	Force   mgl64.Vec3
	Point   mgl64.Vec3
	AtPoint bool
}

// fakeBody is a rigid body frozen in place that records every force it receives
type fakeBody struct {
	mu sync.Mutex

	pos    mgl64.Vec3
	rot    mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3
	com    mgl64.Vec3

	forces    []appliedForce
	torques   []mgl64.Vec3
	kinematic bool
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, rot: mgl64.QuatIdent(), com: pos}
}

func (b *fakeBody) PointVelocity(p mgl64.Vec3) mgl64.Vec3 {
	return b.vel.Add(b.angVel.Cross(p.Sub(b.com)))
}

func (b *fakeBody) Position() mgl64.Vec3        { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat        { return b.rot }
func (b *fakeBody) LinearVelocity() mgl64.Vec3  { return b.vel }
func (b *fakeBody) CenterOfMass() mgl64.Vec3    { return b.com }
func (b *fakeBody) SetKinematic(kinematic bool) { b.kinematic = kinematic }

func (b *fakeBody) AddForce(f mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forces = append(b.forces, appliedForce{Force: f})
}

func (b *fakeBody) AddForceAtPoint(f, p mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forces = append(b.forces, appliedForce{Force: f, Point: p, AtPoint: true})
}

func (b *fakeBody) AddTorque(t mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.torques = append(b.torques, t)
}

func (b *fakeBody) clear() {
	b.forces = nil
	b.torques = nil
}

// planeScene is an infinite horizontal surface at height y on one layer
type planeScene struct {
	y     float64
	layer LayerMask
	calls int
	mu    sync.Mutex
}

func (s *planeScene) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RaycastHit, bool) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if !mask.Includes(s.layer) || dir.Y() >= 0 {
		return RaycastHit{}, false
	}
	t := (s.y - origin.Y()) / dir.Y()
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Distance: t,
		Point:    origin.Add(dir.Mul(t)),
		Normal:   mgl64.Vec3{0, 1, 0},
		Layer:    s.layer,
	}, true
}

// emptyScene never reports a hit
type emptyScene struct{}

func (emptyScene) Raycast(mgl64.Vec3, mgl64.Vec3, float64, LayerMask) (RaycastHit, bool) {
	return RaycastHit{}, false
}

func testRig(name string, local mgl64.Vec3, powered, steering bool) WheelRig {
	return WheelRig{
		Name:          name,
		LocalPosition: local,
		Radius:        0.3,
		RestLength:    0.5,
		SpringTravel:  0.25,
		Powered:       powered,
		Steering:      steering,
	}
}

func testRigs() []WheelRig {
	return []WheelRig{
		testRig("front_left", mgl64.Vec3{-0.8, 0, 1.2}, false, true),
		testRig("front_right", mgl64.Vec3{0.8, 0, 1.2}, false, true),
		testRig("rear_left", mgl64.Vec3{-0.8, 0, -1.1}, true, false),
		testRig("rear_right", mgl64.Vec3{0.8, 0, -1.1}, true, false),
	}
}
