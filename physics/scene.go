package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/vehicle"
	"github.com/lixenwraith/vehicle-sim/vmath"
)

// Box is an axis-aligned static block
type Box struct {
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer vehicle.LayerMask
}

// Contains reports whether p lies inside or on the box
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Scene is a horizontal ground plane plus static boxes
// Geometry is fixed after setup, concurrent Raycast calls are safe once AddBox is no longer called
type Scene struct {
	groundHeight float64
	groundLayer  vehicle.LayerMask
	boxes        []Box
}

// NewScene creates drivable ground at height
func NewScene(height float64) *Scene {
	return &Scene{
		groundHeight: height,
		groundLayer:  vehicle.LayerMask(parameter.LayerDrivable),
	}
}

// AddBox adds a block, min and max are reordered per axis
func (s *Scene) AddBox(b Box) {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	s.boxes = append(s.boxes, b)
}

// Boxes returns a copy of the static blocks
func (s *Scene) Boxes() []Box {
	return append([]Box(nil), s.boxes...)
}

// GroundHeight is the height of the infinite plane
func (s *Scene) GroundHeight() float64 {
	return s.groundHeight
}

// Raycast returns the nearest surface along dir within maxDistance whose layer is in mask
// Rays starting inside a box ignore that box
func (s *Scene) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask vehicle.LayerMask) (vehicle.RaycastHit, bool) {
	best := vehicle.RaycastHit{Distance: math.Inf(1)}
	found := false

	if mask.Includes(s.groundLayer) && math.Abs(dir.Y()) > vmath.Epsilon {
		t := (s.groundHeight - origin.Y()) / dir.Y()
		if t >= 0 && t <= maxDistance {
			best = vehicle.RaycastHit{
				Distance: t,
				Point:    origin.Add(dir.Mul(t)),
				Normal:   vmath.WorldUp,
				Layer:    s.groundLayer,
			}
			if origin.Y() < s.groundHeight {
				best.Normal = vmath.WorldDown
			}
			found = true
		}
	}

	for _, b := range s.boxes {
		if !mask.Includes(b.Layer) {
			continue
		}
		t, normal, ok := raySlab(origin, dir, b)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		best = vehicle.RaycastHit{
			Distance: t,
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Layer:    b.Layer,
		}
		found = true
	}

	if !found {
		return vehicle.RaycastHit{}, false
	}
	return best, true
}

// raySlab intersects a ray with a box using the slab method, entry only
func raySlab(origin, dir mgl64.Vec3, b Box) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	enterAxis, enterSign := -1, 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < vmath.Epsilon {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis, enterSign = i, sign
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if enterAxis < 0 || tmin < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var n mgl64.Vec3
	n[enterAxis] = enterSign
	return tmin, n, true
}

// SurfaceHeight is the top of the highest surface under (x, z) that is no higher than ceiling
func (s *Scene) SurfaceHeight(x, z, ceiling float64) float64 {
	h := s.groundHeight
	for _, b := range s.boxes {
		if x < b.Min.X() || x > b.Max.X() || z < b.Min.Z() || z > b.Max.Z() {
			continue
		}
		if b.Max.Y() > h && b.Max.Y() <= ceiling {
			h = b.Max.Y()
		}
	}
	return h
}
