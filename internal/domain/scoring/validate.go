package scoring

import (
	"fmt"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/numeric"
)

// Advisory band for the weight sum. Scores are renormalized by the sum, so
// values outside the band still rank correctly.
const (
	MinRecommendedWeightSum = 0.5
	MaxRecommendedWeightSum = 2.0
)

// ValidationResult is advisory; callers decide whether to proceed.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

// ValidateWeights checks a weight configuration without modifying it.
// Negative, non-finite and all-zero weights make the result invalid; a sum
// outside the recommended band only adds a warning.
func ValidateWeights(w model.WeightConfiguration) ValidationResult {
	res := ValidationResult{Valid: true, Warnings: []string{}}

	for _, m := range model.Metrics() {
		v := w.Get(m)
		switch {
		case !numeric.Finite(v):
			res.Valid = false
			res.Warnings = append(res.Warnings, fmt.Sprintf("Weight for %s is not a finite number", m))
		case v < 0:
			res.Valid = false
			res.Warnings = append(res.Warnings, fmt.Sprintf("Weight for %s is negative (%.2f)", m, v))
		}
	}

	sum := w.Sum()
	switch {
	case sum == 0:
		res.Valid = false
		res.Warnings = append(res.Warnings, "All weights sum to zero; ranking will be meaningless")
	case numeric.Finite(sum) && (sum < MinRecommendedWeightSum || sum > MaxRecommendedWeightSum):
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Total weight %.2f is outside the recommended range [%.2f, %.2f]; scores are renormalized by the total",
			sum, MinRecommendedWeightSum, MaxRecommendedWeightSum))
	}
	return res
}
