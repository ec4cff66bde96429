package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutrank/internal/adapters/repository"
	"github.com/okian/scoutrank/internal/app"
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/opr"
	"github.com/okian/scoutrank/internal/domain/picklist"
	"github.com/okian/scoutrank/internal/domain/scoring"
	"github.com/okian/scoutrank/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func teams() []model.RawTeamMetrics {
	return []model.RawTeamMetrics{
		{TeamNumber: 1, Nickname: "A", MatchesPlayed: 8, OPR: 50, DPR: 20, CCWM: 30},
		{TeamNumber: 2, Nickname: "B", MatchesPlayed: 8, OPR: 40, DPR: 10, CCWM: 30},
		{TeamNumber: 3, Nickname: "C", MatchesPlayed: 2, OPR: 45, DPR: 15, CCWM: 30},
	}
}

func started(t *testing.T, opts ...app.Option) *app.Service {
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := app.New(app.WithMaxTeams(10))
		ctx := context.Background()

		Convey("Calls before Start fail", func() {
			_, err := svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj"})
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("Start and Stop are idempotent", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["storedPickLists"], ShouldEqual, 0)
			So(stats["maxTeams"], ShouldEqual, 10)

			svc.Stop()
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_GeneratePickList(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started(t, app.WithEngineOptions(picklist.WithMinMatches(5)))
		defer svc.Stop()
		ctx := context.Background()

		Convey("The balanced default ranks A over B and drops C", func() {
			result, err := svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj", Teams: teams()})
			So(err, ShouldBeNil)
			So(result.Strategy, ShouldEqual, scoring.StrategyBalanced)
			So(result.Teams, ShouldHaveLength, 2)
			So(result.Teams[0].TeamNumber, ShouldEqual, 1)
			So(result.Teams[0].CompositeScore, ShouldEqual, 0.55)
			So(result.Metadata.TeamsFiltered, ShouldEqual, 1)

			stored, err := svc.PickList(ctx, "2026casj")
			So(err, ShouldBeNil)
			So(stored.ID, ShouldEqual, result.ID)
			So(svc.GetStats()["storedPickLists"], ShouldEqual, 1)
		})

		Convey("Explicit weights are reported as custom", func() {
			w := model.WeightConfiguration{DPR: 1}
			result, err := svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj", Teams: teams(), Weights: &w})
			So(err, ShouldBeNil)
			So(result.Strategy, ShouldEqual, scoring.StrategyCustom)
			So(result.Teams[0].TeamNumber, ShouldEqual, 2)
		})

		Convey("Unknown strategies fail loudly", func() {
			_, err := svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj", Teams: teams(), Strategy: "chaotic"})
			So(errors.Is(err, scoring.ErrUnknownStrategy), ShouldBeTrue)

			_, err = svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj", Teams: teams(), Strategy: "custom"})
			So(errors.Is(err, scoring.ErrUnknownStrategy), ShouldBeTrue)
		})

		Convey("Bad input is rejected", func() {
			_, err := svc.GeneratePickList(ctx, app.GenerateRequest{Teams: teams()})
			So(errors.Is(err, app.ErrInvalidRequest), ShouldBeTrue)

			dup := append(teams(), teams()[0])
			_, err = svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "x", Teams: dup})
			So(errors.Is(err, app.ErrInvalidRequest), ShouldBeTrue)

			bad := teams()
			bad[0].MatchesPlayed = -1
			_, err = svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "x", Teams: bad})
			So(errors.Is(err, model.ErrInvalidTeam), ShouldBeTrue)

			neg := -2
			_, err = svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "x", Teams: teams(), MinMatches: &neg})
			So(errors.Is(err, app.ErrInvalidRequest), ShouldBeTrue)

			_, err = svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "evt\n99,9999,injected", Teams: teams()})
			So(errors.Is(err, app.ErrInvalidRequest), ShouldBeTrue)
			So(svc.GetStats()["storedPickLists"], ShouldEqual, 0)
		})

		Convey("Matches fill absent phase averages and report failed components", func() {
			result, err := svc.GeneratePickList(ctx, app.GenerateRequest{
				EventKey: "2026casj",
				Teams:    teams(),
				Matches:  autoOnlyMatches(),
			})
			So(err, ShouldBeNil)
			So(result.Teams[0].AvgAutoScore, ShouldNotBeNil)
			So(result.Teams[0].AvgEndgameScore, ShouldBeNil)

			joined := strings.Join(result.Metadata.Warnings, "\n")
			So(joined, ShouldContainSubstring, "Component endgame unavailable")
			So(joined, ShouldNotContainSubstring, "Component auto unavailable")
		})
	})

	Convey("Given a service with a team cap and custom weights", t, func() {
		svc := started(t,
			app.WithMaxTeams(2),
			app.WithCustomWeights(model.WeightConfiguration{OPR: 1}),
			app.WithDefaultStrategy("custom"),
		)
		defer svc.Stop()

		Convey("Oversized requests are rejected", func() {
			_, err := svc.GeneratePickList(context.Background(), app.GenerateRequest{EventKey: "x", Teams: teams()})
			So(errors.Is(err, app.ErrTooManyTeams), ShouldBeTrue)
		})

		Convey("The default custom strategy uses the configured weights", func() {
			result, err := svc.GeneratePickList(context.Background(), app.GenerateRequest{
				EventKey: "x", Teams: teams()[:2], MinMatches: new(int),
			})
			So(err, ShouldBeNil)
			So(result.Strategy, ShouldEqual, "custom")
			So(result.Weights.OPR, ShouldEqual, 1)
		})

		Convey("Custom appears in the strategy list", func() {
			list := svc.Strategies()
			So(list, ShouldHaveLength, 5)
			So(list[4].ID, ShouldEqual, "custom")
		})
	})
}

func TestService_PicksAndExport(t *testing.T) {
	Convey("Given a stored pick list", t, func() {
		svc := started(t, app.WithEngineOptions(picklist.WithMinMatches(5)))
		defer svc.Stop()
		ctx := context.Background()

		_, err := svc.GeneratePickList(ctx, app.GenerateRequest{EventKey: "2026casj", Teams: teams()})
		So(err, ShouldBeNil)

		Convey("Picking a team keeps its rank", func() {
			team, err := svc.SetPicked(ctx, "2026casj", 2, true)
			So(err, ShouldBeNil)
			So(team.Picked, ShouldBeTrue)
			So(team.Rank, ShouldEqual, 2)

			summaries, err := svc.PickLists(ctx)
			So(err, ShouldBeNil)
			So(summaries, ShouldHaveLength, 1)
			So(summaries[0].Picked, ShouldEqual, 1)
		})

		Convey("Unknown events and teams are not found", func() {
			_, err := svc.SetPicked(ctx, "2026none", 2, true)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = svc.SetPicked(ctx, "2026casj", 3, true)
			So(errors.Is(err, repository.ErrTeamNotFound), ShouldBeTrue)
		})

		Convey("Export writes CSV", func() {
			var buf bytes.Buffer
			So(svc.ExportPickList(ctx, "2026casj", &buf), ShouldBeNil)
			So(buf.String(), ShouldStartWith, "# event: 2026casj")
			So(buf.String(), ShouldContainSubstring, "rank,team_number,name")

			err := svc.ExportPickList(ctx, "2026none", &buf)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_OPR(t *testing.T) {
	Convey("Given match data", t, func() {
		svc := app.New(app.WithEstimatorOptions(opr.WithRidgeLambda(0)))
		ctx := context.Background()

		Convey("Component OPR reports every component", func() {
			report, err := svc.ComponentOPR(ctx, autoOnlyMatches())
			So(err, ShouldBeNil)
			So(report.Results, ShouldHaveLength, 4)
			v, ok := report.Contribution(opr.Auto, 1)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 10, 1e-6)
		})

		Convey("Power ratings recover OPR", func() {
			ratings, err := svc.PowerRatings(ctx, autoOnlyMatches())
			So(err, ShouldBeNil)
			So(ratings.OPR[2], ShouldAlmostEqual, 20, 1e-6)
		})

		Convey("Empty or invalid match lists are rejected", func() {
			_, err := svc.ComponentOPR(ctx, nil)
			So(errors.Is(err, app.ErrInvalidRequest), ShouldBeTrue)

			bad := autoOnlyMatches()
			bad[0].Blue.Teams[0] = bad[0].Red.Teams[0]
			_, err = svc.PowerRatings(ctx, bad)
			So(errors.Is(err, model.ErrInvalidMatch), ShouldBeTrue)
		})
	})
}

// autoOnlyMatches is a full-rank schedule over teams 1-7 where each team's
// auto and total contribution equals its per-team value below.
func autoOnlyMatches() []model.MatchRecord {
	per := map[int]float64{1: 10, 2: 20, 3: 30, 4: 5, 5: 15, 6: 25, 7: 12}
	side := func(teams [3]int) model.Alliance {
		var sum float64
		for _, t := range teams {
			sum += per[t]
		}
		return model.Alliance{Teams: teams, Breakdown: model.ScoreBreakdown{
			AutoPoints:  model.Float(sum),
			TotalPoints: sum,
		}}
	}
	schedule := [][2][3]int{
		{{1, 2, 3}, {4, 5, 6}},
		{{1, 4, 7}, {2, 5, 6}},
		{{1, 5, 6}, {2, 3, 7}},
		{{3, 4, 6}, {1, 2, 7}},
	}
	out := make([]model.MatchRecord, len(schedule))
	for i, s := range schedule {
		out[i] = model.MatchRecord{Key: "qm" + string(rune('1'+i)), Red: side(s[0]), Blue: side(s[1])}
	}
	return out
}
