// Package app wires the ranking engine, the component OPR estimator and the
// pick-list store into the service behind the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/okian/scoutrank/internal/adapters/repository"
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/opr"
	"github.com/okian/scoutrank/internal/domain/picklist"
	"github.com/okian/scoutrank/internal/domain/scoring"
	"github.com/okian/scoutrank/pkg/logger"
	"github.com/okian/scoutrank/pkg/metrics"
)

const defaultMaxTeams = 512

// Service implements the API dependencies for pick-list generation.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	ownsStore bool
	engine    *picklist.Engine
	estimator *opr.Estimator

	// Configuration
	engineOpts      []picklist.Option
	estimatorOpts   []opr.Option
	defaultStrategy string
	customWeights   *model.WeightConfiguration
	maxTeams        int
	storeCapacity   int

	// State
	started   bool
	generated atomic.Int64

	logger logger.Logger
}

// GenerateRequest asks for one pick list.
type GenerateRequest struct {
	EventKey string
	Teams    []model.RawTeamMetrics

	// Strategy names a preset or "custom"; empty uses the default.
	Strategy string
	// Weights, when set, override Strategy and are reported as "custom".
	Weights *model.WeightConfiguration

	// MinMatches overrides the engine default when set.
	MinMatches *int

	// Matches, when given, fill absent phase averages from component OPR.
	Matches []model.MatchRecord
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultStrategy: scoring.StrategyBalanced,
		maxTeams:        defaultMaxTeams,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.engine = picklist.NewEngine(s.engineOpts...)
	s.estimator = opr.NewEstimator(append(s.estimatorOpts, opr.WithObserver(observeSolve))...)
	return s
}

// Start initializes the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting pick-list service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx, repository.WithCapacity(s.storeCapacity))
		s.ownsStore = true
		s.logger.Info(ctx, "using in-memory store", logger.Int("capacity", s.storeCapacity))
	}

	s.started = true
	s.logger.Info(ctx, "pick-list service started",
		logger.String("defaultStrategy", s.defaultStrategy),
		logger.Int("defaultMinMatches", s.engine.MinMatches()),
		logger.Int("maxTeams", s.maxTeams),
		logger.Bool("customWeights", s.customWeights != nil),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping pick-list service...")

	if s.ownsStore {
		if closer, ok := s.store.(io.Closer); ok {
			_ = closer.Close()
		}
		s.store = nil
		s.ownsStore = false
	}

	s.started = false
	s.logger.Info(context.Background(), "pick-list service stopped")
}

func (s *Service) ready() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// GeneratePickList ranks the request, stores the result under its event key
// and returns it.
func (s *Service) GeneratePickList(ctx context.Context, req GenerateRequest) (model.PickListResult, error) {
	store, err := s.ready()
	if err != nil {
		return model.PickListResult{}, err
	}
	if err := s.validate(&req); err != nil {
		metrics.RecordErrorByComponent("service", "invalid_request")
		return model.PickListResult{}, err
	}

	strategy, weights, err := s.resolveWeights(req.Strategy, req.Weights)
	if err != nil {
		metrics.RecordErrorByComponent("service", "unknown_strategy")
		return model.PickListResult{}, err
	}

	teams := req.Teams
	var enrichWarnings []string
	if len(req.Matches) > 0 {
		report := s.estimator.Components(ctx, req.Matches)
		for _, res := range report.Results {
			if res.Err != nil {
				s.logger.Warn(ctx, "component opr unavailable",
					logger.String("event", req.EventKey),
					logger.String("component", res.Component),
					logger.Error(res.Err),
				)
				enrichWarnings = append(enrichWarnings,
					fmt.Sprintf("Component %s unavailable: %v", res.Component, res.Err))
			}
		}
		teams = opr.Enrich(teams, &report)
	}

	start := time.Now()
	result, err := s.engine.Generate(picklist.GenerateInput{
		EventKey:   strings.TrimSpace(req.EventKey),
		Teams:      teams,
		Strategy:   strategy,
		Weights:    weights,
		MinMatches: req.MinMatches,
	})
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordErrorByComponent("engine", "inconsistent_state")
		s.logger.Error(ctx, "ranking failed", logger.String("event", req.EventKey), logger.Error(err))
		return model.PickListResult{}, err
	}
	result.Metadata.Warnings = append(result.Metadata.Warnings, enrichWarnings...)

	if err := store.Save(ctx, result); err != nil {
		return model.PickListResult{}, fmt.Errorf("save pick list: %w", err)
	}

	s.generated.Add(1)
	metrics.RecordPickListGenerated(strategy)
	metrics.RecordRankingLatency(float64(elapsed.Microseconds()) / 1000)
	metrics.RecordTeamsRanked(len(result.Teams))
	metrics.RecordTeamsFiltered(result.Metadata.TeamsFiltered)
	metrics.RecordWeightWarnings(len(scoring.ValidateWeights(weights).Warnings))

	s.logger.Info(ctx, "pick list generated",
		logger.String("event", result.EventKey),
		logger.String("strategy", strategy),
		logger.Int("ranked", len(result.Teams)),
		logger.Int("filtered", result.Metadata.TeamsFiltered),
		logger.Int("warnings", len(result.Metadata.Warnings)),
		logger.Duration("took", elapsed),
	)
	return result, nil
}

func (s *Service) validate(req *GenerateRequest) error {
	if strings.TrimSpace(req.EventKey) == "" {
		return fmt.Errorf("%w: event_key is required", ErrInvalidRequest)
	}
	if strings.IndexFunc(req.EventKey, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: event_key contains control characters", ErrInvalidRequest)
	}
	if len(req.Teams) > s.maxTeams {
		return fmt.Errorf("%w: %d teams, limit %d", ErrTooManyTeams, len(req.Teams), s.maxTeams)
	}
	if req.MinMatches != nil && *req.MinMatches < 0 {
		return fmt.Errorf("%w: min_matches must not be negative", ErrInvalidRequest)
	}
	seen := make(map[int]struct{}, len(req.Teams))
	for i := range req.Teams {
		if err := req.Teams[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[req.Teams[i].TeamNumber]; dup {
			return fmt.Errorf("%w: team %d listed twice", ErrInvalidRequest, req.Teams[i].TeamNumber)
		}
		seen[req.Teams[i].TeamNumber] = struct{}{}
	}
	return validateMatches(req.Matches)
}

func validateMatches(matches []model.MatchRecord) error {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// resolveWeights picks the weights for a request. Explicit weights win,
// then the named strategy, then the configured default.
func (s *Service) resolveWeights(strategy string, explicit *model.WeightConfiguration) (string, model.WeightConfiguration, error) {
	if explicit != nil {
		return scoring.StrategyCustom, *explicit, nil
	}
	if strings.TrimSpace(strategy) == "" {
		strategy = s.defaultStrategy
	}
	if strings.EqualFold(strings.TrimSpace(strategy), scoring.StrategyCustom) {
		if s.customWeights == nil {
			return "", model.WeightConfiguration{}, fmt.Errorf("%w: custom strategy has no configured weights", scoring.ErrUnknownStrategy)
		}
		return scoring.StrategyCustom, *s.customWeights, nil
	}
	preset, err := scoring.Preset(strategy)
	if err != nil {
		return "", model.WeightConfiguration{}, err
	}
	return preset.ID, preset.Weights, nil
}

// PickList returns the stored pick list for an event.
func (s *Service) PickList(ctx context.Context, eventKey string) (model.PickListResult, error) {
	store, err := s.ready()
	if err != nil {
		return model.PickListResult{}, err
	}
	return store.Get(ctx, eventKey)
}

// PickLists returns summaries of every stored pick list.
func (s *Service) PickLists(ctx context.Context) ([]repository.Summary, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// SetPicked marks a team as taken or available. Ranks and scores are left
// as generated.
func (s *Service) SetPicked(ctx context.Context, eventKey string, team int, picked bool) (model.PickListTeam, error) {
	store, err := s.ready()
	if err != nil {
		return model.PickListTeam{}, err
	}
	t, err := store.SetPicked(ctx, eventKey, team, picked)
	if err != nil {
		return model.PickListTeam{}, err
	}
	metrics.RecordPickToggled()
	s.logger.Debug(ctx, "pick toggled",
		logger.String("event", eventKey),
		logger.Int("team", team),
		logger.Bool("picked", picked),
	)
	return t, nil
}

// ExportPickList writes the stored pick list for an event as CSV.
func (s *Service) ExportPickList(ctx context.Context, eventKey string, w io.Writer) error {
	result, err := s.PickList(ctx, eventKey)
	if err != nil {
		return err
	}
	return picklist.WriteCSV(w, &result)
}

// ComponentOPR solves the default phase components over matches. Failed
// components are reported on their own result.
func (s *Service) ComponentOPR(ctx context.Context, matches []model.MatchRecord) (opr.Report, error) {
	if len(matches) == 0 {
		return opr.Report{}, fmt.Errorf("%w: matches are required", ErrInvalidRequest)
	}
	if err := validateMatches(matches); err != nil {
		return opr.Report{}, err
	}
	return s.estimator.Components(ctx, matches), nil
}

// PowerRatings computes OPR, DPR and CCWM over matches.
func (s *Service) PowerRatings(ctx context.Context, matches []model.MatchRecord) (opr.Ratings, error) {
	if len(matches) == 0 {
		return opr.Ratings{}, fmt.Errorf("%w: matches are required", ErrInvalidRequest)
	}
	if err := validateMatches(matches); err != nil {
		return opr.Ratings{}, err
	}
	return s.estimator.PowerRatings(ctx, matches)
}

// Strategies lists the presets, plus "custom" when configured.
func (s *Service) Strategies() []scoring.Strategy {
	out := scoring.Presets()
	if s.customWeights != nil {
		out = append(out, scoring.Strategy{
			ID:          scoring.StrategyCustom,
			Name:        "Custom",
			Description: "Weights supplied by configuration",
			Weights:     *s.customWeights,
		})
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"defaultStrategy":   s.defaultStrategy,
		"defaultMinMatches": s.engine.MinMatches(),
		"maxTeams":          s.maxTeams,
		"generated":         s.generated.Load(),
	}

	if s.started {
		stats["storedPickLists"] = s.store.Count(context.Background())
	}

	return stats
}

// observeSolve feeds estimator outcomes into metrics.
func observeSolve(component string, elapsed time.Duration, err error) {
	metrics.RecordOPRSolve(component, solveStatus(err))
	metrics.RecordOPRSolveLatency(component, float64(elapsed.Microseconds())/1000)
}

func solveStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, opr.ErrInsufficientMatches):
		return "insufficient_matches"
	case errors.Is(err, opr.ErrSingularSystem):
		return "singular"
	case errors.Is(err, opr.ErrNonFiniteScore):
		return "non_finite"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "failed"
	}
}
