package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/service"
	"github.com/blaisecz/sleep-dashboard/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type PatternHandler struct {
	service service.PatternService
}

func NewPatternHandler(service service.PatternService) *PatternHandler {
	return &PatternHandler{service: service}
}

// Get handles GET /v1/patterns
// @Summary Load the sleep pattern
// @Description Fetch the report history from the analysis API and return aggregate statistics, the chronological trend chart and the score heatmap (in fetch order). When the history cannot be fetched the empty pattern is returned with status "unavailable".
// @Tags patterns
// @Produce json
// @Success 200 {object} domain.PatternView "Rendered pattern"
// @Router /patterns [get]
func (h *PatternHandler) Get(w http.ResponseWriter, r *http.Request) {
	writePattern(w, h.service.Load(r.Context()))
}

// GetCurrent handles GET /v1/patterns/current
// @Summary Get the rendered sleep pattern
// @Description Return the last rendered pattern, including the tooltip, without fetching the history.
// @Tags patterns
// @Produce json
// @Success 200 {object} domain.PatternView "Rendered pattern"
// @Router /patterns/current [get]
func (h *PatternHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	writePattern(w, h.service.Current())
}

// Focus handles PUT /v1/patterns/tooltip/{index}
// @Summary Show the heatmap tooltip
// @Description Show the tooltip (formatted date and score) for the heatmap cell at index. Any previous tooltip is replaced.
// @Tags patterns
// @Produce json
// @Param index path integer true "Heatmap cell index" minimum(0)
// @Success 200 {object} domain.Tooltip "Tooltip shown"
// @Failure 400 {object} problem.Problem "Invalid index"
// @Failure 404 {object} problem.Problem "No heatmap cell at index"
// @Router /patterns/tooltip/{index} [put]
func (h *PatternHandler) Focus(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		problem.BadRequest("Index must be an integer").Write(w)
		return
	}

	tip, err := h.service.Focus(index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("No heatmap cell at index " + strconv.Itoa(index)).Write(w)
			return
		}
		problem.InternalError("Failed to show tooltip").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tip)
}

// Blur handles DELETE /v1/patterns/tooltip
// @Summary Hide the heatmap tooltip
// @Tags patterns
// @Success 204 "Tooltip hidden"
// @Router /patterns/tooltip [delete]
func (h *PatternHandler) Blur(w http.ResponseWriter, r *http.Request) {
	h.service.Blur()
	w.WriteHeader(http.StatusNoContent)
}

func writePattern(w http.ResponseWriter, view domain.PatternView) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
