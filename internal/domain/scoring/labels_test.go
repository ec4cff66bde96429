package scoring_test

import (
	"testing"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractStrengths(t *testing.T) {
	Convey("Given a team strong on offense and reliability", t, func() {
		team := teamWith(0.95, 0.5, 0.7, 0.2, 0.5, 0.5, 0.92, 0.5, 0.5, 0.8)

		Convey("When extracting strengths with the default threshold", func() {
			got := scoring.ExtractStrengths(team, scoring.DefaultStrengthThreshold)

			Convey("Then labels follow the fixed metric priority order", func() {
				So(got, ShouldResemble, []string{
					"High offensive output (OPR)",
					"Strong contribution to winning margin (CCWM)",
					"Extremely reliable",
					"Fast and agile",
				})
			})
		})

		Convey("When reliability is high but below the bonus threshold", func() {
			team.Metrics[model.MetricReliability].Normalized = 0.85

			Convey("Then no reliability strength is reported", func() {
				So(scoring.ExtractStrengths(team, scoring.DefaultStrengthThreshold), ShouldNotContain, "Extremely reliable")
			})
		})

		Convey("When the caller raises the threshold", func() {
			got := scoring.ExtractStrengths(team, 0.9)

			Convey("Then only the strongest metrics remain", func() {
				So(got, ShouldResemble, []string{"High offensive output (OPR)", "Extremely reliable"})
			})
		})
	})
}

func TestExtractWeaknesses(t *testing.T) {
	Convey("Given a team with weak auto and middling reliability", t, func() {
		team := teamWith(0.5, 0.1, 0.5, 0.2, 0.5, 0.5, 0.65, 0.5, 0.5, 0.5)

		Convey("When extracting weaknesses with the default threshold", func() {
			got := scoring.ExtractWeaknesses(team, scoring.DefaultWeaknessThreshold)

			Convey("Then reliability uses the laxer threshold", func() {
				So(got, ShouldResemble, []string{
					"Allows opponents to score (high DPR)",
					"Weak autonomous scoring",
					"Reliability concerns",
				})
			})
		})
	})

	Convey("Given a pool with no spread on a metric", t, func() {
		team := teamWith(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5)
		team.Metrics[model.MetricReliability] = scoring.NormalizedMetric{Original: 100, Normalized: 0.5, Min: 100, Max: 100}

		Convey("Then the degenerate metric produces no label", func() {
			So(scoring.ExtractWeaknesses(team, scoring.DefaultWeaknessThreshold), ShouldBeEmpty)
			So(scoring.ExtractStrengths(team, scoring.DefaultStrengthThreshold), ShouldBeEmpty)
		})
	})
}
