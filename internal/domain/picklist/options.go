package picklist

import (
	"fmt"
	"strings"
	"time"
)

// TieBreak selects how teams with equal composite scores are ordered.
type TieBreak string

// Supported tie-break policies.
const (
	// TieBreakInputOrder keeps equal scores in input order.
	TieBreakInputOrder TieBreak = "input"
	// TieBreakOPR puts the higher OPR first, then input order.
	TieBreakOPR TieBreak = "opr"
	// TieBreakTeamNumber puts the lower team number first.
	TieBreakTeamNumber TieBreak = "team_number"
)

// ParseTieBreak resolves a policy name; empty means input order.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakInputOrder:
		return TieBreakInputOrder, nil
	case TieBreakOPR:
		return TieBreakOPR, nil
	case TieBreakTeamNumber:
		return TieBreakTeamNumber, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTieBreak, s)
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinMatches sets the default minimum matches a team must have played.
func WithMinMatches(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.minMatches = n
		}
	}
}

// WithThresholds sets the strength and weakness label thresholds.
func WithThresholds(strength, weakness float64) Option {
	return func(e *Engine) {
		if weakness >= 0 && strength <= 1 && weakness < strength {
			e.strengthThreshold = strength
			e.weaknessThreshold = weakness
		}
	}
}

// WithTieBreak sets the tie-break policy.
func WithTieBreak(tb TieBreak) Option {
	return func(e *Engine) {
		if tb != "" {
			e.tieBreak = tb
		}
	}
}

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how result IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}
