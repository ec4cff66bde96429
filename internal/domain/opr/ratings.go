package opr

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scoutrank/internal/domain/model"
)

// Ratings are the classical power ratings keyed by team number.
type Ratings struct {
	OPR  map[int]float64 `json:"opr"`
	DPR  map[int]float64 `json:"dpr"`
	CCWM map[int]float64 `json:"ccwm"`
}

// Rating names reported to the observer.
const (
	RatingOPR  = "opr"
	RatingDPR  = "dpr"
	RatingCCWM = "ccwm"
)

// PowerRatings fits OPR against each alliance's own total, DPR against the
// opponent's total and CCWM against the winning margin. Unlike Components
// any failure fails the whole call.
func (e *Estimator) PowerRatings(ctx context.Context, matches []model.MatchRecord) (Ratings, error) {
	var r Ratings
	targets := []struct {
		name string
		fn   func(own, opp *model.Alliance) (float64, bool)
		out  *map[int]float64
	}{
		{RatingOPR, func(own, _ *model.Alliance) (float64, bool) { return own.Breakdown.TotalPoints, true }, &r.OPR},
		{RatingDPR, func(_, opp *model.Alliance) (float64, bool) { return opp.Breakdown.TotalPoints, true }, &r.DPR},
		{RatingCCWM, func(own, opp *model.Alliance) (float64, bool) {
			return own.Breakdown.TotalPoints - opp.Breakdown.TotalPoints, true
		}, &r.CCWM},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, t := range targets {
		g.Go(func() error {
			start := time.Now()
			res, err := e.rating(gctx, matches, t.fn)
			if e.observer != nil {
				e.observer(t.name, time.Since(start), err)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", t.name, err)
			}
			*t.out = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Ratings{}, err
	}
	return r, nil
}

func (e *Estimator) rating(ctx context.Context, matches []model.MatchRecord, fn func(own, opp *model.Alliance) (float64, bool)) (map[int]float64, error) {
	obs, err := observations(matches, fn)
	if err != nil {
		return nil, err
	}
	return e.solve(ctx, obs)
}
