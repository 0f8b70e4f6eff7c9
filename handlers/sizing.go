// ABOUTME: HTTP handlers for point-in-time sizing
// ABOUTME: Accepts explicit graph statistics or reads them from the configured graph

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/graph-sizing-analyzer/metrics"
	"github.com/markalston/graph-sizing-analyzer/models"
	"github.com/markalston/graph-sizing-analyzer/services"
)

// CalculateSizing sizes a graph from the statistics in the request body.
func (h *Handler) CalculateSizing(w http.ResponseWriter, r *http.Request) {
	var input models.SizingInput
	if !h.decodeJSON(w, r, &input) {
		h.metrics.RecordSizing(metrics.OutcomeValidationError)
		return
	}

	result, err := h.sizing.CalculateSizing(input)
	if err != nil {
		h.metrics.RecordSizing(h.writeServiceError(w, err))
		return
	}

	h.metrics.RecordSizing(metrics.OutcomeSuccess)
	h.writeJSON(w, http.StatusOK, result)
}

// GraphStatistics returns statistics read from the configured graph.
func (h *Handler) GraphStatistics(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.fetchGraphStatistics(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// GraphSizing reads statistics from the configured graph and sizes it.
// Query parameters supply what the graph itself cannot report.
func (h *Handler) GraphSizing(w http.ResponseWriter, r *http.Request) {
	input, err := sizingOverrides(r)
	if err != nil {
		h.writeError(w, "Invalid query parameter", err.Error(), http.StatusBadRequest)
		return
	}

	stats, ok := h.fetchGraphStatistics(w, r)
	if !ok {
		return
	}

	base := services.ToSizingInput(stats)
	input.NumNodes = base.NumNodes
	input.NumRelationships = base.NumRelationships
	input.AvgPropertiesPerNode = base.AvgPropertiesPerNode
	input.AvgPropertiesPerRelationship = base.AvgPropertiesPerRelationship
	if input.NumberOfVectorIndexes == 0 {
		input.NumberOfVectorIndexes = base.NumberOfVectorIndexes
	}

	result, err := h.sizing.CalculateSizing(input)
	if err != nil {
		h.metrics.RecordSizing(h.writeServiceError(w, err))
		return
	}

	h.metrics.RecordSizing(metrics.OutcomeSuccess)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) fetchGraphStatistics(w http.ResponseWriter, r *http.Request) (models.GraphStatistics, bool) {
	if !h.graphStats.Configured() {
		h.metrics.RecordGraphStats(h.writeServiceError(w, services.ErrGraphNotConfigured))
		return models.GraphStatistics{}, false
	}

	stats, err := h.graphStats.Statistics(r.Context())
	if err != nil {
		slog.Error("Graph statistics collection failed", "error", err)
		h.metrics.RecordGraphStats(metrics.OutcomeError)
		h.writeError(w, "Failed to collect graph statistics", err.Error(), http.StatusBadGateway)
		return models.GraphStatistics{}, false
	}

	h.metrics.RecordGraphStats(metrics.OutcomeSuccess)
	return stats, true
}

// sizingOverrides parses the optional sizing inputs from the query string.
func sizingOverrides(r *http.Request) (models.SizingInput, error) {
	var in models.SizingInput
	q := r.URL.Query()

	if v := q.Get("vector_index_dimensions"); v != "" {
		dims, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("vector_index_dimensions: %w", err)
		}
		in.VectorIndexDimensions = &dims
	}
	if v := q.Get("percentage_nodes_with_vector_properties"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("percentage_nodes_with_vector_properties: %w", err)
		}
		in.PercentageNodesWithVectorProps = pct
	}
	if v := q.Get("number_of_vector_indexes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("number_of_vector_indexes: %w", err)
		}
		in.NumberOfVectorIndexes = n
	}
	if v := q.Get("quantization_enabled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return in, fmt.Errorf("quantization_enabled: %w", err)
		}
		in.QuantizationEnabled = b
	}
	if v := q.Get("memory_to_storage_ratio"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("memory_to_storage_ratio: %w", err)
		}
		in.MemoryToStorageRatio = &ratio
	}
	if v := q.Get("concurrent_end_users"); v != "" {
		users, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("concurrent_end_users: %w", err)
		}
		in.ConcurrentEndUsers = &users
	}
	return in, nil
}
