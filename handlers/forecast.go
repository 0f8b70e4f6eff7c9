// ABOUTME: HTTP handlers for growth forecasting
// ABOUTME: Single-model forecasts, cross-model comparison, and the model catalog

package handlers

import (
	"net/http"

	"github.com/markalston/graph-sizing-analyzer/models"
	"github.com/markalston/graph-sizing-analyzer/services"
)

// Forecast projects a base sizing over the requested horizon.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var input models.ForecastInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	result, err := h.sizing.ForecastSizing(input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	scaling := 0
	for _, p := range result.Projections {
		if p.ScalingNeeded {
			scaling++
		}
	}
	h.metrics.RecordForecast(result.GrowthModelUsed, scaling)

	h.writeJSON(w, http.StatusOK, result)
}

// CompareForecast runs the request under every growth model.
func (h *Handler) CompareForecast(w http.ResponseWriter, r *http.Request) {
	var input models.ForecastInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	result, err := h.sizing.CompareGrowthModels(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// GrowthModels lists workloads, domains, and the curves they select.
func (h *Handler) GrowthModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, services.Catalog())
}
