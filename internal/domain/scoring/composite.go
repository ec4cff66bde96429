package scoring

import (
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/numeric"
)

// Score combines a team's normalized metrics into a single value in [0,1]:
// the weighted mean of the normalized values. A zero weight sum yields 0.
func Score(team *NormalizedTeam, weights model.WeightConfiguration) float64 {
	total := weights.Sum()
	if total == 0 || !numeric.Finite(total) {
		return 0
	}
	var acc float64
	for _, m := range model.Metrics() {
		acc += weights.Get(m) * team.Get(m).Normalized
	}
	return numeric.Round(numeric.Clamp(acc/total, 0, 1), numeric.ScorePlaces)
}
