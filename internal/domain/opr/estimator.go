// Package opr attributes alliance-level scores to individual teams by least
// squares, the way classical Offensive Power Rating is computed.
package opr

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scoutrank/internal/domain/model"
)

// Estimator solves per-team contributions. It is safe for concurrent use.
type Estimator struct {
	minMatches  int
	lambda      float64
	concurrency int
	observer    Observer
}

// NewEstimator creates an Estimator with configuration options.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		minMatches:  DefaultMinMatches,
		lambda:      DefaultRidgeLambda,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one component solve. Contributions is empty
// when Err is set.
type Result struct {
	Component     string          `json:"component"`
	Contributions map[int]float64 `json:"contributions"`
	Matches       int             `json:"matches"`
	Err           error           `json:"-"`
}

// Report holds one Result per requested component, in request order.
type Report struct {
	Results []Result `json:"results"`
}

// Get returns the result for a component.
func (r *Report) Get(component string) (Result, bool) {
	for _, res := range r.Results {
		if res.Component == component {
			return res, true
		}
	}
	return Result{}, false
}

// Contribution returns a team's solved value for a component. It is false
// when the component failed or the team never appeared.
func (r *Report) Contribution(component string, team int) (float64, bool) {
	res, ok := r.Get(component)
	if !ok || res.Err != nil {
		return 0, false
	}
	v, ok := res.Contributions[team]
	return v, ok
}

// Components solves each component independently. A failed solve is
// recorded on its own Result and never stops the others. With no
// components given the four defaults are used.
func (e *Estimator) Components(ctx context.Context, matches []model.MatchRecord, components ...Component) Report {
	if len(components) == 0 {
		components = defaultComponents
	}

	results := make([]Result, len(components))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, c := range components {
		g.Go(func() error {
			results[i] = e.component(ctx, matches, c)
			return nil
		})
	}
	_ = g.Wait()

	return Report{Results: results}
}

func (e *Estimator) component(ctx context.Context, matches []model.MatchRecord, c Component) (res Result) {
	start := time.Now()
	res = Result{Component: c.Name, Contributions: map[int]float64{}}
	defer func() {
		if r := recover(); r != nil {
			res.Contributions = map[int]float64{}
			res.Err = fmt.Errorf("%w: %s: %v", ErrSolveFailed, c.Name, r)
		}
		if e.observer != nil {
			e.observer(c.Name, time.Since(start), res.Err)
		}
	}()

	obs, err := observations(matches, func(own, _ *model.Alliance) (float64, bool) {
		return c.Extract(&own.Breakdown)
	})
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", c.Name, err)
		return res
	}
	res.Matches = distinctMatches(obs)

	contrib, err := e.solve(ctx, obs)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", c.Name, err)
		return res
	}
	res.Contributions = contrib
	return res
}
