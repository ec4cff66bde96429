package picklist

import (
	"math"
	"sort"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/numeric"
)

// ComputeStatistics summarizes a ranked list with population statistics.
// An empty list yields all zeros.
func ComputeStatistics(teams []model.PickListTeam) model.Statistics {
	if len(teams) == 0 {
		return model.Statistics{}
	}

	n := float64(len(teams))
	scores := make([]float64, len(teams))
	var sumScore, sumOPR, sumDPR, sumCCWM float64
	for i := range teams {
		scores[i] = teams[i].CompositeScore
		sumScore += teams[i].CompositeScore
		sumOPR += teams[i].OPR
		sumDPR += teams[i].DPR
		sumCCWM += teams[i].CCWM
	}
	mean := sumScore / n

	var sq float64
	for _, s := range scores {
		sq += (s - mean) * (s - mean)
	}

	return model.Statistics{
		AvgCompositeScore:    numeric.Round(mean, numeric.ScorePlaces),
		MedianCompositeScore: numeric.Round(median(scores), numeric.ScorePlaces),
		StdDevCompositeScore: numeric.Round(math.Sqrt(sq/n), numeric.ScorePlaces),
		AvgOPR:               numeric.Round(sumOPR/n, numeric.ScorePlaces),
		AvgDPR:               numeric.Round(sumDPR/n, numeric.ScorePlaces),
		AvgCCWM:              numeric.Round(sumCCWM/n, numeric.ScorePlaces),
	}
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return 0.5 * (cp[mid-1] + cp[mid])
}
