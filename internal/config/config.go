// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/picklist"
	"github.com/okian/scoutrank/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DefaultStrategy is used when a request names none.
	DefaultStrategy string `koanf:"default_strategy"`

	// MinMatches is the default sample size below which teams are not ranked.
	MinMatches int `koanf:"min_matches"`

	// StrengthThreshold and WeaknessThreshold bound the normalized values
	// that earn a label.
	StrengthThreshold float64 `koanf:"strength_threshold"`
	WeaknessThreshold float64 `koanf:"weakness_threshold"`

	// TieBreak orders equal composite scores: input, opr or team_number.
	TieBreak string `koanf:"tie_break"`

	// MaxTeams caps the candidates accepted in one request.
	MaxTeams int `koanf:"max_teams"`

	// MaxStoredPickLists bounds the in-memory store; 0 is unbounded.
	MaxStoredPickLists int `koanf:"max_stored_picklists"`

	// OPRMinMatches is the fewest distinct matches a component solve needs.
	OPRMinMatches int `koanf:"opr_min_matches"`

	// OPRRidgeLambda regularizes the normal equations; 0 disables it.
	OPRRidgeLambda float64 `koanf:"opr_ridge_lambda"`

	// OPRConcurrency bounds parallel component solves.
	OPRConcurrency int `koanf:"opr_concurrency"`

	// CustomWeights backs the "custom" strategy, keyed by metric name.
	CustomWeights map[string]float64 `koanf:"custom_weights"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DefaultStrategy:   scoring.StrategyBalanced,
		MinMatches:        picklist.DefaultMinMatches,
		StrengthThreshold: scoring.DefaultStrengthThreshold,
		WeaknessThreshold: scoring.DefaultWeaknessThreshold,
		TieBreak:          string(picklist.TieBreakInputOrder),
		MaxTeams:          512,
		OPRMinMatches:     3,
		OPRRidgeLambda:    0.01,
		OPRConcurrency:    min(runtime.NumCPU(), 4),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MinMatches < 0 {
		return fmt.Errorf("%w: min_matches must not be negative", ErrInvalidConfig)
	}
	if c.WeaknessThreshold < 0 || c.StrengthThreshold > 1 || c.WeaknessThreshold >= c.StrengthThreshold {
		return fmt.Errorf("%w: need 0 <= weakness_threshold < strength_threshold <= 1", ErrInvalidConfig)
	}
	if _, err := picklist.ParseTieBreak(c.TieBreak); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxTeams < 1 {
		return fmt.Errorf("%w: max_teams must be positive", ErrInvalidConfig)
	}
	if c.MaxStoredPickLists < 0 {
		return fmt.Errorf("%w: max_stored_picklists must not be negative", ErrInvalidConfig)
	}
	if c.OPRMinMatches < 1 {
		return fmt.Errorf("%w: opr_min_matches must be positive", ErrInvalidConfig)
	}
	if c.OPRRidgeLambda < 0 {
		return fmt.Errorf("%w: opr_ridge_lambda must not be negative", ErrInvalidConfig)
	}
	if c.OPRConcurrency < 1 {
		return fmt.Errorf("%w: opr_concurrency must be positive", ErrInvalidConfig)
	}

	custom, err := c.Custom()
	if err != nil {
		return err
	}
	if strings.EqualFold(c.DefaultStrategy, scoring.StrategyCustom) {
		if custom == nil {
			return fmt.Errorf("%w: default_strategy custom needs custom_weights", ErrInvalidConfig)
		}
	} else if _, err := scoring.Preset(c.DefaultStrategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Custom parses CustomWeights. It returns nil when none are configured.
func (c *Config) Custom() (*model.WeightConfiguration, error) {
	if len(c.CustomWeights) == 0 {
		return nil, nil
	}
	w, err := model.WeightsFromMap(c.CustomWeights)
	if err != nil {
		return nil, fmt.Errorf("%w: custom_weights: %v", ErrInvalidConfig, err)
	}
	return &w, nil
}
