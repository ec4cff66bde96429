// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel kinds for model validation errors.
var (
	ErrInvalidTeam   = errors.New("invalid team metrics")
	ErrInvalidWeight = errors.New("invalid weight configuration")
	ErrInvalidMatch  = errors.New("invalid match record")
)

// RawTeamMetrics is the per-event aggregate for one team as produced by the
// data-access layer. Optional fields are nil when the source had no value.
type RawTeamMetrics struct {
	TeamNumber    int    `json:"team_number"`
	TeamName      string `json:"team_name,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	MatchesPlayed int    `json:"matches_played"`

	OPR  float64 `json:"opr"`
	DPR  float64 `json:"dpr"`
	CCWM float64 `json:"ccwm"`

	AvgAutoScore    *float64 `json:"avg_auto_score,omitempty"`
	AvgTeleopScore  *float64 `json:"avg_teleop_score,omitempty"`
	AvgEndgameScore *float64 `json:"avg_endgame_score,omitempty"`
	AvgTotalScore   *float64 `json:"avg_total_score,omitempty"`
	// AvgHubScore is the team's share of alliance hub points across all
	// phases. It is not a total-score average.
	AvgHubScore *float64 `json:"avg_hub_score,omitempty"`

	// ReliabilityScore is a percentage in [0,100].
	ReliabilityScore *float64 `json:"reliability_score,omitempty"`

	// Qualitative ratings on a 1-5 scale.
	DefenseRating     *float64 `json:"defense_rating,omitempty"`
	DriverSkillRating *float64 `json:"driver_skill_rating,omitempty"`
	SpeedRating       *float64 `json:"speed_rating,omitempty"`

	Notes []string `json:"notes,omitempty"`
}

// Validate reports whether the record satisfies the input invariants.
func (t *RawTeamMetrics) Validate() error {
	if t.TeamNumber <= 0 {
		return fmt.Errorf("%w: team_number must be positive, got %d", ErrInvalidTeam, t.TeamNumber)
	}
	if t.MatchesPlayed < 0 {
		return fmt.Errorf("%w: team %d: matches_played must not be negative", ErrInvalidTeam, t.TeamNumber)
	}
	required := map[string]float64{"opr": t.OPR, "dpr": t.DPR, "ccwm": t.CCWM}
	for name, v := range required {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: team %d: %s is not finite", ErrInvalidTeam, t.TeamNumber, name)
		}
	}
	optional := map[string]*float64{
		"avg_auto_score":      t.AvgAutoScore,
		"avg_teleop_score":    t.AvgTeleopScore,
		"avg_endgame_score":   t.AvgEndgameScore,
		"avg_total_score":     t.AvgTotalScore,
		"avg_hub_score":       t.AvgHubScore,
		"reliability_score":   t.ReliabilityScore,
		"defense_rating":      t.DefenseRating,
		"driver_skill_rating": t.DriverSkillRating,
		"speed_rating":        t.SpeedRating,
	}
	for name, v := range optional {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: team %d: %s is not finite", ErrInvalidTeam, t.TeamNumber, name)
		}
	}
	return nil
}

// DisplayName returns the nickname, falling back to the team name.
func (t *RawTeamMetrics) DisplayName() string {
	if t.Nickname != "" {
		return t.Nickname
	}
	return t.TeamName
}

// Float returns a pointer to v. Handy for populating optional fields.
func Float(v float64) *float64 { return &v }
