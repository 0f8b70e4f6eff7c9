// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports service version and which optional integrations are enabled

package handlers

import (
	"net/http"

	"github.com/markalston/graph-sizing-analyzer/models"
)

// Health returns API health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:               "ok",
		Version:              Version,
		GraphStatsConfigured: h.graphStats.Configured(),
		MCPEnabled:           h.cfg != nil && h.cfg.MCPEnabled,
	}
	h.writeJSON(w, http.StatusOK, resp)
}
