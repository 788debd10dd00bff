package parameter

// Reference Rigid Body
const (
	Gravity = -9.81

	BodyMass = 20.0

	// Chassis half extents for inertia and hull points
	BodyHalfWidth  = 0.9
	BodyHalfHeight = 0.35
	BodyHalfLength = 1.6

	LinearDamping  = 0.05
	AngularDamping = 0.5
)

// Hull Ground Contact
const (
	// HullContactStiffness is the penalty spring per hull point in N/m
	HullContactStiffness = 4000.0
	// HullContactDamping opposes penetration speed per hull point
	HullContactDamping = 120.0
	// HullFriction scales tangential damping at hull contacts
	HullFriction = 0.6
)

// Scene Layers
const (
	LayerDefault  = 1 << 0
	LayerDrivable = 1 << 1
	LayerProp     = 1 << 2
)
