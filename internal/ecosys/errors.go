package ecosys

import "errors"

// Domain errors for engine operations.
var (
	// ErrInvalidParameters indicates a missing or malformed parameter block.
	ErrInvalidParameters = errors.New("ecosys: invalid parameters")

	// ErrNumericDegeneracy indicates a parameter combination that would
	// divide by zero or otherwise produce NaN/Inf instead of a trajectory.
	ErrNumericDegeneracy = errors.New("ecosys: numeric degeneracy")
)
