package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/scoutrank/internal/adapters/repository"
	"github.com/okian/scoutrank/internal/app"
	"github.com/okian/scoutrank/internal/domain/model"
)

// PickListDependencies defines the pick-list operations used by handlers.
type PickListDependencies interface {
	GeneratePickList(ctx context.Context, req app.GenerateRequest) (model.PickListResult, error)
	PickList(ctx context.Context, eventKey string) (model.PickListResult, error)
	PickLists(ctx context.Context) ([]repository.Summary, error)
	SetPicked(ctx context.Context, eventKey string, team int, picked bool) (model.PickListTeam, error)
	ExportPickList(ctx context.Context, eventKey string, w io.Writer) error
}

// PickListHandler handles pick-list requests.
type PickListHandler struct {
	deps PickListDependencies
}

// NewPickListHandler creates a new pick-list handler.
func NewPickListHandler(deps PickListDependencies) *PickListHandler {
	return &PickListHandler{deps: deps}
}

// generateRequest mirrors the OpenAPI schema for POST /picklists.
type generateRequest struct {
	EventKey   string                 `json:"event_key"`
	Strategy   string                 `json:"strategy"`
	Weights    map[string]float64     `json:"weights"`
	MinMatches *int                   `json:"min_matches"`
	Teams      []model.RawTeamMetrics `json:"teams"`
	Matches    []model.MatchRecord    `json:"matches"`
}

func (g *generateRequest) toApp() (app.GenerateRequest, error) {
	req := app.GenerateRequest{
		EventKey:   g.EventKey,
		Teams:      g.Teams,
		Strategy:   g.Strategy,
		MinMatches: g.MinMatches,
		Matches:    g.Matches,
	}
	if g.Weights != nil {
		w, err := model.WeightsFromMap(g.Weights)
		if err != nil {
			return app.GenerateRequest{}, err
		}
		req.Weights = &w
	}
	return req, nil
}

type summariesResponse struct {
	PickLists []repository.Summary `json:"picklists"`
}

type pickedRequest struct {
	Picked *bool `json:"picked"`
}

// HandleGenerate handles POST /picklists.
func (h *PickListHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	req, err := body.toApp()
	if err != nil {
		writeFailure(w, err)
		return
	}
	result, err := h.deps.GeneratePickList(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleList handles GET /picklists.
func (h *PickListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.PickLists(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summariesResponse{PickLists: list})
}

// HandleGet handles GET /picklists/{event}.
func (h *PickListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.deps.PickList(r.Context(), r.PathValue("event"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleExport handles GET /picklists/{event}/export.
func (h *PickListHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	event := r.PathValue("event")

	// Buffer so a missing list still gets a JSON error.
	var buf bytes.Buffer
	if err := h.deps.ExportPickList(r.Context(), event, &buf); err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", strings.ToLower(event)+"-picklist.csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleSetPicked handles PUT /picklists/{event}/teams/{team}/picked.
func (h *PickListHandler) HandleSetPicked(w http.ResponseWriter, r *http.Request) {
	team, err := strconv.Atoi(r.PathValue("team"))
	if err != nil || team <= 0 {
		writeFailure(w, fmt.Errorf("%w: team must be a positive integer", ErrBadRequest))
		return
	}
	var body pickedRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	if body.Picked == nil {
		writeFailure(w, fmt.Errorf("%w: missing picked", ErrBadRequest))
		return
	}
	updated, err := h.deps.SetPicked(r.Context(), r.PathValue("event"), team, *body.Picked)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
