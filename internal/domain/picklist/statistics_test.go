package picklist_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/picklist"
)

func scored(scores ...float64) []model.PickListTeam {
	out := make([]model.PickListTeam, len(scores))
	for i, s := range scores {
		out[i] = model.PickListTeam{
			RawTeamMetrics: model.RawTeamMetrics{TeamNumber: i + 1, OPR: float64(10 * (i + 1)), DPR: 5, CCWM: float64(i)},
			CompositeScore: s,
		}
	}
	return out
}

func TestComputeStatistics(t *testing.T) {
	Convey("ComputeStatistics", t, func() {
		Convey("is all zeros for an empty list", func() {
			So(picklist.ComputeStatistics(nil), ShouldResemble, model.Statistics{})
		})

		Convey("uses the middle value for odd counts", func() {
			stats := picklist.ComputeStatistics(scored(0.9, 0.1, 0.5))
			So(stats.MedianCompositeScore, ShouldEqual, 0.5)
			So(stats.AvgCompositeScore, ShouldEqual, 0.5)
		})

		Convey("averages the two middle values for even counts", func() {
			stats := picklist.ComputeStatistics(scored(0.8, 0.2, 0.4, 0.6))
			So(stats.MedianCompositeScore, ShouldEqual, 0.5)
		})

		Convey("reports the population standard deviation", func() {
			// population sd of {0.2, 0.4, 0.6, 0.8} is sqrt(0.05)
			stats := picklist.ComputeStatistics(scored(0.2, 0.4, 0.6, 0.8))
			So(stats.StdDevCompositeScore, ShouldEqual, 0.2236)
		})

		Convey("averages the power ratings", func() {
			stats := picklist.ComputeStatistics(scored(0.1, 0.2, 0.3))
			So(stats.AvgOPR, ShouldEqual, 20)
			So(stats.AvgDPR, ShouldEqual, 5)
			So(stats.AvgCCWM, ShouldEqual, 1)
		})

		Convey("is zero spread for a single team", func() {
			stats := picklist.ComputeStatistics(scored(0.7))
			So(stats.StdDevCompositeScore, ShouldEqual, 0)
			So(stats.MedianCompositeScore, ShouldEqual, 0.7)
		})
	})
}
