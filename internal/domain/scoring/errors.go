package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)
