package api

import (
	"net/http"

	"github.com/okian/scoutrank/internal/domain/scoring"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

// StrategyProvider lists the available weight strategies.
type StrategyProvider interface {
	Strategies() []scoring.Strategy
}

// StrategiesHandler handles strategy listing.
type StrategiesHandler struct {
	deps StrategyProvider
}

// NewStrategiesHandler creates a new strategies handler.
func NewStrategiesHandler(deps StrategyProvider) *StrategiesHandler {
	return &StrategiesHandler{deps: deps}
}

// HandleList handles GET /strategies.
func (h *StrategiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Strategies())
}
