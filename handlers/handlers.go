// ABOUTME: HTTP handlers for the sizing and forecasting API
// ABOUTME: Shared handler state plus JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/markalston/graph-sizing-analyzer/config"
	"github.com/markalston/graph-sizing-analyzer/metrics"
	"github.com/markalston/graph-sizing-analyzer/models"
	"github.com/markalston/graph-sizing-analyzer/services"
)

// Version is reported by the health endpoint; overridden at build time.
var Version = "dev"

// maxRequestBodySize caps JSON request bodies at 1 MiB.
const maxRequestBodySize = 1 << 20

type Handler struct {
	cfg        *config.Config
	sizing     *services.SizingService
	graphStats *services.GraphStatsService
	metrics    *metrics.Metrics
}

// NewHandler wires the sizing service from cfg. Every argument may be nil:
// a nil cfg uses default forecasting thresholds, a nil graphStats disables
// the graph endpoints, and nil metrics disables recording.
func NewHandler(cfg *config.Config, graphStats *services.GraphStatsService, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:        cfg,
		sizing:     services.NewSizingService(services.NewGrowthProjector(ProjectorConfig(cfg))),
		graphStats: graphStats,
		metrics:    m,
	}
}

// ProjectorConfig maps the forecasting settings onto the projector.
func ProjectorConfig(cfg *config.Config) services.ProjectorConfig {
	if cfg == nil {
		return services.DefaultProjectorConfig()
	}
	return services.ProjectorConfig{
		StorageScalingThreshold:  cfg.StorageScalingThreshold,
		ResourceScalingThreshold: cfg.ResourceScalingThreshold,
		CoreScalingExponent:      cfg.CoreScalingExponent,
	}
}

// SizingService exposes the service so other transports share one instance.
func (h *Handler) SizingService() *services.SizingService {
	return h.sizing
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", "", http.StatusBadRequest)
			return false
		}
		h.writeError(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps engine errors onto HTTP status codes and returns
// the metrics outcome label.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) string {
	var validationErr *services.ValidationError
	var configErr *services.ConfigurationError

	switch {
	case errors.As(err, &validationErr):
		h.writeError(w, validationErr.Message, "field: "+validationErr.Field, http.StatusBadRequest)
		return metrics.OutcomeValidationError
	case errors.As(err, &configErr):
		h.writeError(w, configErr.Error(), "", http.StatusUnprocessableEntity)
		return metrics.OutcomeConfigError
	case errors.Is(err, services.ErrGraphNotConfigured):
		h.writeError(w, "Graph database not configured. Set NEO4J_URI, NEO4J_USERNAME, and NEO4J_PASSWORD.", "", http.StatusServiceUnavailable)
		return metrics.OutcomeError
	default:
		slog.Error("Request failed", "error", err)
		h.writeError(w, "Internal error", "", http.StatusInternalServerError)
		return metrics.OutcomeError
	}
}
