package model

import (
	"fmt"
	"math"
)

// AllianceSize is the number of teams on one alliance.
const AllianceSize = 3

// ScoreBreakdown carries an alliance's aggregate score components for one
// match. Components the source did not report are nil.
type ScoreBreakdown struct {
	AutoPoints      *float64 `json:"auto_points,omitempty"`
	TeleopHubPoints *float64 `json:"teleop_hub_points,omitempty"`
	EndgamePoints   *float64 `json:"endgame_points,omitempty"`
	TotalHubPoints  *float64 `json:"total_hub_points,omitempty"`
	TotalPoints     float64  `json:"total_points"`
}

// Alliance is one side of a match.
type Alliance struct {
	Teams     [AllianceSize]int `json:"teams"`
	Breakdown ScoreBreakdown    `json:"breakdown"`
}

// MatchRecord is a played match with both alliances.
type MatchRecord struct {
	Key  string   `json:"key"`
	Red  Alliance `json:"red"`
	Blue Alliance `json:"blue"`
}

// Validate checks rosters: positive team numbers, no team on both sides.
func (m *MatchRecord) Validate() error {
	seen := make(map[int]struct{}, 2*AllianceSize)
	for _, side := range []Alliance{m.Red, m.Blue} {
		for _, team := range side.Teams {
			if team <= 0 {
				return fmt.Errorf("%w: match %q: team numbers must be positive", ErrInvalidMatch, m.Key)
			}
			if _, dup := seen[team]; dup {
				return fmt.Errorf("%w: match %q: team %d appears twice", ErrInvalidMatch, m.Key, team)
			}
			seen[team] = struct{}{}
		}
		if math.IsNaN(side.Breakdown.TotalPoints) || math.IsInf(side.Breakdown.TotalPoints, 0) {
			return fmt.Errorf("%w: match %q: total_points is not finite", ErrInvalidMatch, m.Key)
		}
	}
	return nil
}
