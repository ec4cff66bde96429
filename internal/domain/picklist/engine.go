// Package picklist ranks alliance candidates and summarizes the result.
package picklist

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/scoring"
)

// DefaultMinMatches is the sample size below which a team is not ranked.
const DefaultMinMatches = 5

// Engine ranks teams. It holds configuration only, so one Engine may serve
// concurrent calls.
type Engine struct {
	minMatches        int
	strengthThreshold float64
	weaknessThreshold float64
	tieBreak          TieBreak
	now               func() time.Time
	newID             func() string
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		minMatches:        DefaultMinMatches,
		strengthThreshold: scoring.DefaultStrengthThreshold,
		weaknessThreshold: scoring.DefaultWeaknessThreshold,
		tieBreak:          TieBreakInputOrder,
		now:               time.Now,
		newID:             func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// MinMatches returns the engine's default threshold.
func (e *Engine) MinMatches() int { return e.minMatches }

// RankTeams filters out teams with fewer than minMatches matches, scores the
// rest against each other and returns them best first with ranks 1..N.
// An empty pool yields an empty, non-nil slice. Team numbers must be unique;
// a repeat fails with ErrInconsistentState.
func (e *Engine) RankTeams(teams []model.RawTeamMetrics, weights model.WeightConfiguration, minMatches int) ([]model.PickListTeam, error) {
	eligible := filterByMatches(teams, minMatches)
	if len(eligible) == 0 {
		return []model.PickListTeam{}, nil
	}

	// Normalization is keyed by team number; a repeated number would score
	// one record with another's metrics.
	seen := make(map[int]struct{}, len(eligible))
	for i := range eligible {
		if _, dup := seen[eligible[i].TeamNumber]; dup {
			return nil, fmt.Errorf("%w: team %d listed more than once", ErrInconsistentState, eligible[i].TeamNumber)
		}
		seen[eligible[i].TeamNumber] = struct{}{}
	}

	normalized := scoring.NormalizeAll(eligible)

	ranked := make([]model.PickListTeam, 0, len(eligible))
	for i := range eligible {
		nt, ok := normalized[eligible[i].TeamNumber]
		if !ok {
			return nil, fmt.Errorf("%w: team %d missing from normalization", ErrInconsistentState, eligible[i].TeamNumber)
		}
		ranked = append(ranked, model.PickListTeam{
			RawTeamMetrics:  eligible[i],
			CompositeScore:  scoring.Score(&nt, weights),
			Strengths:       scoring.ExtractStrengths(&nt, e.strengthThreshold),
			Weaknesses:      scoring.ExtractWeaknesses(&nt, e.weaknessThreshold),
			AggregatedNotes: aggregateNotes(eligible[i].Notes),
		})
	}

	sort.SliceStable(ranked, e.less(ranked))
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func (e *Engine) less(ranked []model.PickListTeam) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		switch e.tieBreak {
		case TieBreakOPR:
			return a.OPR > b.OPR
		case TieBreakTeamNumber:
			return a.TeamNumber < b.TeamNumber
		default:
			return false
		}
	}
}

// GenerateInput describes one pick-list run.
type GenerateInput struct {
	EventKey string
	Teams    []model.RawTeamMetrics
	Strategy string
	Weights  model.WeightConfiguration
	// MinMatches overrides the engine default when set.
	MinMatches *int
}

// Generate ranks the input and wraps it with statistics and warnings.
// Weight problems are reported as warnings, never as errors.
func (e *Engine) Generate(in GenerateInput) (model.PickListResult, error) {
	minMatches := e.minMatches
	if in.MinMatches != nil && *in.MinMatches >= 0 {
		minMatches = *in.MinMatches
	}

	validation := scoring.ValidateWeights(in.Weights)
	warnings := append([]string{}, validation.Warnings...)

	candidates, dupes := dedupeTeams(in.Teams)
	for _, n := range dupes {
		warnings = append(warnings, fmt.Sprintf("Team %d appears more than once; only the first record was ranked", n))
	}

	ranked, err := e.RankTeams(candidates, in.Weights, minMatches)
	if err != nil {
		return model.PickListResult{}, err
	}

	filtered := len(candidates) - len(ranked)
	switch {
	case len(ranked) == 0:
		warnings = append(warnings, fmt.Sprintf("No teams qualified: none played at least %d matches", minMatches))
	case filtered > 0:
		warnings = append(warnings, fmt.Sprintf("%d teams excluded for insufficient matches (fewer than %d)", filtered, minMatches))
	}

	return model.PickListResult{
		ID:              e.newID(),
		EventKey:        in.EventKey,
		Teams:           ranked,
		Strategy:        in.Strategy,
		Weights:         in.Weights,
		GeneratedAt:     e.now().UTC(),
		TotalCandidates: len(in.Teams),
		MinMatches:      minMatches,
		Metadata: model.Metadata{
			Statistics:    ComputeStatistics(ranked),
			TeamsFiltered: filtered,
			Warnings:      warnings,
		},
	}, nil
}

// filterByMatches copies the teams that meet the threshold.
func filterByMatches(teams []model.RawTeamMetrics, minMatches int) []model.RawTeamMetrics {
	out := make([]model.RawTeamMetrics, 0, len(teams))
	for _, t := range teams {
		if t.MatchesPlayed < minMatches {
			continue
		}
		t.Notes = append([]string(nil), t.Notes...)
		out = append(out, t)
	}
	return out
}

// dedupeTeams keeps the first record per team number.
func dedupeTeams(teams []model.RawTeamMetrics) ([]model.RawTeamMetrics, []int) {
	seen := make(map[int]struct{}, len(teams))
	out := make([]model.RawTeamMetrics, 0, len(teams))
	var dupes []int
	for _, t := range teams {
		if _, ok := seen[t.TeamNumber]; ok {
			dupes = append(dupes, t.TeamNumber)
			continue
		}
		seen[t.TeamNumber] = struct{}{}
		out = append(out, t)
	}
	return out, dupes
}

func aggregateNotes(notes []string) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "; ")
}
