package opr

import "errors"

// Sentinel kinds for estimator failures.
var (
	ErrInsufficientMatches = errors.New("insufficient matches for a least-squares solve")
	ErrSingularSystem      = errors.New("singular system")
	ErrNonFiniteScore      = errors.New("non-finite alliance score")
	ErrSolveFailed         = errors.New("least-squares solve failed")
)
