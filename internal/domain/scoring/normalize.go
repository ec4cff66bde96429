// Package scoring normalizes team metrics, combines them into a composite
// score and labels each team's strengths and weaknesses.
package scoring

import (
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/numeric"
)

// Neutral values used when a team did not report an optional metric.
const (
	neutralRating      = 3.0   // midpoint of the 1-5 qualitative scale
	neutralReliability = 100.0 // assume a team is reliable until shown otherwise
	degenerateValue    = 0.5   // normalized value when the pool has no spread
)

// NormalizedMetric is one metric of one team rescaled against the pool.
type NormalizedMetric struct {
	Original   float64 `json:"original"`
	Normalized float64 `json:"normalized"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Range      float64 `json:"range"`
}

// NormalizedTeam holds every tracked metric of a team, indexed by model.Metric.
type NormalizedTeam struct {
	TeamNumber int
	Metrics    [model.MetricCount]NormalizedMetric
}

// Get returns the normalized entry for m.
func (n *NormalizedTeam) Get(m model.Metric) NormalizedMetric {
	if m < 0 || int(m) >= model.MetricCount {
		return NormalizedMetric{}
	}
	return n.Metrics[m]
}

// Normalize rescales value into [0,1] against [minValue,maxValue]. With invert
// the scale is flipped so that lower raw values score higher. A zero range
// yields 0.5. The result is clamped and rounded to four decimals.
func Normalize(value, minValue, maxValue float64, invert bool) NormalizedMetric {
	rng := maxValue - minValue
	scaled := degenerateValue
	if rng != 0 {
		scaled = numeric.Round(numeric.Clamp((value-minValue)/rng, 0, 1), numeric.ScorePlaces)
		if invert {
			scaled = numeric.Round(1-scaled, numeric.ScorePlaces)
		}
	}
	return NormalizedMetric{
		Original:   value,
		Normalized: scaled,
		Min:        minValue,
		Max:        maxValue,
		Range:      rng,
	}
}

// inverted reports whether lower raw values are better for m.
func inverted(m model.Metric) bool {
	return m == model.MetricDPR
}

// NormalizeAll normalizes every tracked metric of every team against the
// pool's per-metric min and max. Teams are keyed by team number.
func NormalizeAll(teams []model.RawTeamMetrics) map[int]NormalizedTeam {
	out := make(map[int]NormalizedTeam, len(teams))
	if len(teams) == 0 {
		return out
	}

	defaults := poolDefaultsFor(teams)
	values := make([][model.MetricCount]float64, len(teams))
	var lo, hi [model.MetricCount]float64
	for i := range teams {
		for _, m := range model.Metrics() {
			v := metricValue(&teams[i], m, defaults)
			values[i][m] = v
			if i == 0 || v < lo[m] {
				lo[m] = v
			}
			if i == 0 || v > hi[m] {
				hi[m] = v
			}
		}
	}

	for i := range teams {
		nt := NormalizedTeam{TeamNumber: teams[i].TeamNumber}
		for _, m := range model.Metrics() {
			nt.Metrics[m] = Normalize(values[i][m], lo[m], hi[m], inverted(m))
		}
		out[nt.TeamNumber] = nt
	}
	return out
}

// poolDefaults carries the pool-derived fill values for phase averages.
type poolDefaults struct {
	auto, teleop, endgame float64
}

func poolDefaultsFor(teams []model.RawTeamMetrics) poolDefaults {
	return poolDefaults{
		auto:    presentMean(teams, func(t *model.RawTeamMetrics) *float64 { return t.AvgAutoScore }),
		teleop:  presentMean(teams, func(t *model.RawTeamMetrics) *float64 { return t.AvgTeleopScore }),
		endgame: presentMean(teams, func(t *model.RawTeamMetrics) *float64 { return t.AvgEndgameScore }),
	}
}

// presentMean averages the finite values the pool actually reported.
func presentMean(teams []model.RawTeamMetrics, field func(*model.RawTeamMetrics) *float64) float64 {
	var sum float64
	var n int
	for i := range teams {
		if v := field(&teams[i]); v != nil && numeric.Finite(*v) {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// metricValue is the single place where missing or non-finite inputs are
// replaced with neutral values.
func metricValue(t *model.RawTeamMetrics, m model.Metric, d poolDefaults) float64 {
	switch m {
	case model.MetricOPR:
		return finiteOr(t.OPR, 0)
	case model.MetricDPR:
		return finiteOr(t.DPR, 0)
	case model.MetricCCWM:
		return finiteOr(t.CCWM, 0)
	case model.MetricAutoScore:
		return optional(t.AvgAutoScore, d.auto)
	case model.MetricTeleopScore:
		return optional(t.AvgTeleopScore, d.teleop)
	case model.MetricEndgameScore:
		return optional(t.AvgEndgameScore, d.endgame)
	case model.MetricReliability:
		return optional(t.ReliabilityScore, neutralReliability)
	case model.MetricDriverSkill:
		return optional(t.DriverSkillRating, neutralRating)
	case model.MetricDefenseRating:
		return optional(t.DefenseRating, neutralRating)
	case model.MetricSpeedRating:
		return optional(t.SpeedRating, neutralRating)
	default:
		return 0
	}
}

func optional(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return finiteOr(*v, fallback)
}

func finiteOr(v, fallback float64) float64 {
	if numeric.Finite(v) {
		return v
	}
	return fallback
}
