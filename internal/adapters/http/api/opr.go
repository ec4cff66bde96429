package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/internal/domain/opr"
)

// OPRDependencies defines the estimator operations used by handlers.
type OPRDependencies interface {
	ComponentOPR(ctx context.Context, matches []model.MatchRecord) (opr.Report, error)
	PowerRatings(ctx context.Context, matches []model.MatchRecord) (opr.Ratings, error)
}

// OPRHandler handles least-squares rating requests.
type OPRHandler struct {
	deps OPRDependencies
}

// NewOPRHandler creates a new OPR handler.
func NewOPRHandler(deps OPRDependencies) *OPRHandler {
	return &OPRHandler{deps: deps}
}

type matchesRequest struct {
	Matches []model.MatchRecord `json:"matches"`
}

type componentResult struct {
	Component     string          `json:"component"`
	Contributions map[int]float64 `json:"contributions"`
	Matches       int             `json:"matches"`
	Error         string          `json:"error,omitempty"`
}

type componentsResponse struct {
	Results []componentResult `json:"results"`
}

// HandleComponents handles POST /opr/components. Failed components are
// reported inline and do not fail the request.
func (h *OPRHandler) HandleComponents(w http.ResponseWriter, r *http.Request) {
	var body matchesRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	report, err := h.deps.ComponentOPR(r.Context(), body.Matches)
	if err != nil {
		writeFailure(w, err)
		return
	}

	resp := componentsResponse{Results: make([]componentResult, 0, len(report.Results))}
	for _, res := range report.Results {
		cr := componentResult{Component: res.Component, Contributions: res.Contributions, Matches: res.Matches}
		if res.Err != nil {
			cr.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, cr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRatings handles POST /opr/ratings.
func (h *OPRHandler) HandleRatings(w http.ResponseWriter, r *http.Request) {
	var body matchesRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	ratings, err := h.deps.PowerRatings(r.Context(), body.Matches)
	if err != nil {
		writeFailure(w, fmt.Errorf("power ratings: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}
