package opr

import "time"

// Defaults for the estimator.
const (
	DefaultMinMatches  = 3
	DefaultRidgeLambda = 0.01
	DefaultConcurrency = 4
)

// Observer is told about every finished solve.
type Observer func(component string, elapsed time.Duration, err error)

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithMinMatches sets how many distinct matches a solve needs.
func WithMinMatches(n int) Option {
	return func(e *Estimator) {
		if n > 0 {
			e.minMatches = n
		}
	}
}

// WithRidgeLambda sets the Tikhonov term added to the normal equations.
// Zero disables regularization.
func WithRidgeLambda(lambda float64) Option {
	return func(e *Estimator) {
		if lambda >= 0 {
			e.lambda = lambda
		}
	}
}

// WithConcurrency bounds how many solves run at once.
func WithConcurrency(n int) Option {
	return func(e *Estimator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithObserver registers a callback for solve outcomes.
func WithObserver(o Observer) Option {
	return func(e *Estimator) {
		e.observer = o
	}
}
