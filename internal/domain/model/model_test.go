package model_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/scoutrank/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRawTeamMetrics_Validate(t *testing.T) {
	convey.Convey("Given raw team metrics", t, func() {
		team := model.RawTeamMetrics{TeamNumber: 254, MatchesPlayed: 10, OPR: 60, DPR: 20, CCWM: 40}

		convey.Convey("When all fields are well formed", func() {
			convey.Convey("Then validation should pass", func() {
				convey.So(team.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When matches played is negative", func() {
			team.MatchesPlayed = -1

			convey.Convey("Then validation should fail with ErrInvalidTeam", func() {
				err := team.Validate()
				convey.So(errors.Is(err, model.ErrInvalidTeam), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the team number is zero", func() {
			team.TeamNumber = 0

			convey.Convey("Then validation should fail", func() {
				convey.So(team.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When an optional rating is NaN", func() {
			team.DefenseRating = model.Float(math.NaN())

			convey.Convey("Then validation should name the field", func() {
				err := team.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "defense_rating")
			})
		})

		convey.Convey("When OPR is infinite", func() {
			team.OPR = math.Inf(1)

			convey.Convey("Then validation should fail", func() {
				convey.So(team.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRawTeamMetrics_DisplayName(t *testing.T) {
	convey.Convey("Given a team with name and nickname", t, func() {
		team := model.RawTeamMetrics{TeamName: "Team 254", Nickname: "The Cheesy Poofs"}

		convey.Convey("Then the nickname wins", func() {
			convey.So(team.DisplayName(), convey.ShouldEqual, "The Cheesy Poofs")
		})

		convey.Convey("And the team name is used when no nickname is set", func() {
			team.Nickname = ""
			convey.So(team.DisplayName(), convey.ShouldEqual, "Team 254")
		})
	})
}

func TestWeightConfiguration(t *testing.T) {
	convey.Convey("Given a weight map keyed by metric name", t, func() {
		convey.Convey("When every key is known", func() {
			w, err := model.WeightsFromMap(map[string]float64{"opr": 0.5, "dpr": 0.25, "Reliability": 0.25})

			convey.Convey("Then the configuration carries the weights", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(w.OPR, convey.ShouldEqual, 0.5)
				convey.So(w.Get(model.MetricDPR), convey.ShouldEqual, 0.25)
				convey.So(w.Reliability, convey.ShouldEqual, 0.25)
				convey.So(w.CCWM, convey.ShouldEqual, 0)
				convey.So(w.Sum(), convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When a key is unknown", func() {
			_, err := model.WeightsFromMap(map[string]float64{"vibes": 1})

			convey.Convey("Then it should fail with ErrInvalidWeight", func() {
				convey.So(errors.Is(err, model.ErrInvalidWeight), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given the metric enumeration", t, func() {
		convey.Convey("Then there are ten metrics with round-trippable names", func() {
			convey.So(model.MetricCount, convey.ShouldEqual, 10)
			for _, m := range model.Metrics() {
				parsed, err := model.ParseMetric(m.String())
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, m)
			}
		})

		convey.Convey("And Set/Get address the same field", func() {
			var w model.WeightConfiguration
			for i, m := range model.Metrics() {
				w.Set(m, float64(i+1))
			}
			for i, m := range model.Metrics() {
				convey.So(w.Get(m), convey.ShouldEqual, float64(i+1))
			}
			convey.So(w.Sum(), convey.ShouldEqual, 55.0)
		})
	})
}

func TestPickListResult_Clone(t *testing.T) {
	convey.Convey("Given a pick list result", t, func() {
		orig := model.PickListResult{
			EventKey: "2024casj",
			Teams: []model.PickListTeam{
				{RawTeamMetrics: model.RawTeamMetrics{TeamNumber: 1}, Strengths: []string{"a"}},
			},
			Metadata: model.Metadata{Warnings: []string{"w"}},
		}

		convey.Convey("When the clone is mutated", func() {
			clone := orig.Clone()
			clone.Teams[0].Picked = true
			clone.Teams[0].Strengths[0] = "changed"
			clone.Metadata.Warnings[0] = "changed"

			convey.Convey("Then the original is untouched", func() {
				convey.So(orig.Teams[0].Picked, convey.ShouldBeFalse)
				convey.So(orig.Teams[0].Strengths[0], convey.ShouldEqual, "a")
				convey.So(orig.Metadata.Warnings[0], convey.ShouldEqual, "w")
			})
		})
	})
}

func TestMatchRecord_Validate(t *testing.T) {
	convey.Convey("Given a match record", t, func() {
		match := model.MatchRecord{
			Key:  "qm1",
			Red:  model.Alliance{Teams: [3]int{1, 2, 3}},
			Blue: model.Alliance{Teams: [3]int{4, 5, 6}},
		}

		convey.Convey("Then a well formed match validates", func() {
			convey.So(match.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When a team is on both alliances", func() {
			match.Blue.Teams[0] = 1

			convey.Convey("Then validation fails with ErrInvalidMatch", func() {
				convey.So(errors.Is(match.Validate(), model.ErrInvalidMatch), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a roster slot is empty", func() {
			match.Red.Teams[2] = 0

			convey.Convey("Then validation fails", func() {
				convey.So(match.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}
