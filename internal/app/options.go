package app

import (
	"github.com/okian/scoutrank/internal/adapters/repository"
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/opr"
	"github.com/okian/scoutrank/internal/domain/picklist"
	"github.com/okian/scoutrank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pick-list store. Without one, Start creates an
// in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreCapacity bounds the in-memory store created by Start.
func WithStoreCapacity(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.storeCapacity = n
		}
	}
}

// WithEngineOptions configures the ranking engine.
func WithEngineOptions(opts ...picklist.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithEstimatorOptions configures the component OPR estimator.
func WithEstimatorOptions(opts ...opr.Option) Option {
	return func(s *Service) {
		s.estimatorOpts = append(s.estimatorOpts, opts...)
	}
}

// WithDefaultStrategy sets the strategy used when a request names none.
func WithDefaultStrategy(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.defaultStrategy = id
		}
	}
}

// WithCustomWeights configures the weights behind the "custom" strategy.
func WithCustomWeights(w model.WeightConfiguration) Option {
	return func(s *Service) {
		s.customWeights = &w
	}
}

// WithMaxTeams caps the candidates accepted per request.
func WithMaxTeams(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTeams = n
		}
	}
}
