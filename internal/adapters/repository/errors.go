package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("pick list not found")
	ErrTeamNotFound = errors.New("team not on pick list")
	ErrInvalidKey   = errors.New("invalid event key")
)
