package vehicle

import "errors"

var (
	// ErrNilBody is returned when the controller is built without a rigid body
	ErrNilBody = errors.New("vehicle: rigid body is required")

	// ErrNilScene is returned when the controller is built without a scene query
	ErrNilScene = errors.New("vehicle: scene query is required")

	// ErrInvalidConfig wraps every attribute and wheel validation failure
	ErrInvalidConfig = errors.New("vehicle: invalid configuration")
)
