package picklist

import "errors"

// Sentinel kinds for pick-list errors.
var (
	ErrInconsistentState = errors.New("inconsistent ranking state")
	ErrInvalidTieBreak   = errors.New("invalid tie-break policy")
)
