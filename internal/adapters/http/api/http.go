// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/scoutrank/internal/adapters/repository"
	"github.com/okian/scoutrank/internal/app"
	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/opr"
	"github.com/okian/scoutrank/internal/domain/scoring"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. *app.Service satisfies it.
type Dependencies interface {
	PickListDependencies
	OPRDependencies
	StrategyProvider
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	strategiesHandler *StrategiesHandler
	pickListHandler   *PickListHandler
	oprHandler        *OPRHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		strategiesHandler: NewStrategiesHandler(deps),
		pickListHandler:   NewPickListHandler(deps),
		oprHandler:        NewOPRHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, pattern))
	}

	route("GET /healthz", s.healthHandler.HandleHealth)
	route("GET /stats", s.statsHandler.HandleStats)
	route("GET /strategies", s.strategiesHandler.HandleList)

	route("POST /picklists", s.pickListHandler.HandleGenerate)
	route("GET /picklists", s.pickListHandler.HandleList)
	route("GET /picklists/{event}", s.pickListHandler.HandleGet)
	route("GET /picklists/{event}/export", s.pickListHandler.HandleExport)
	route("PUT /picklists/{event}/teams/{team}/picked", s.pickListHandler.HandleSetPicked)

	route("POST /opr/components", s.oprHandler.HandleComponents)
	route("POST /opr/ratings", s.oprHandler.HandleRatings)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to a status and error code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrTeamNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, scoring.ErrUnknownStrategy):
		return http.StatusBadRequest, "unknown_strategy"
	case errors.Is(err, app.ErrTooManyTeams):
		return http.StatusRequestEntityTooLarge, "too_many_teams"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, app.ErrInvalidRequest),
		errors.Is(err, repository.ErrInvalidKey),
		errors.Is(err, model.ErrInvalidTeam),
		errors.Is(err, model.ErrInvalidMatch),
		errors.Is(err, model.ErrInvalidWeight):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, opr.ErrInsufficientMatches),
		errors.Is(err, opr.ErrSingularSystem),
		errors.Is(err, opr.ErrNonFiniteScore):
		return http.StatusUnprocessableEntity, "unsolvable"
	case errors.Is(err, app.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
