package model

import "errors"

// Error taxonomy. Invalid input is surfaced at the offending call, never
// repaired or clamped; check with errors.Is.
var (
	// ErrConfiguration: unsupported anthropometry or equation-variant
	// combination, raised at model construction.
	ErrConfiguration = errors.New("thermo: unsupported configuration")

	// ErrInvalidBoundaryCondition: conflicting or out-of-range environmental
	// or clothing input, raised at setter time.
	ErrInvalidBoundaryCondition = errors.New("thermo: invalid boundary condition")

	// ErrInvalidArgument: bad times/dtime, raised at simulate entry.
	ErrInvalidArgument = errors.New("thermo: invalid argument")

	// ErrUnstableStepSize: the requested step would violate the integration
	// stability bound even after sub-stepping.
	ErrUnstableStepSize = errors.New("thermo: unstable step size")
)
