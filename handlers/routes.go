// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import (
	"net/http"

	"github.com/markalston/graph-sizing-analyzer/models"
)

// Rate limit costs. A comparison runs every growth model and the live graph
// routes query Neo4j, so they spend more of a client's budget.
var (
	compareCost = len(models.AllGrowthModelKinds)
	graphCost   = 2
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Cost    int              // Rate limit units charged per request (0 means 1)
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Sizing
		{Method: http.MethodPost, Path: "/api/v1/sizing", Handler: h.CalculateSizing},

		// Forecasting
		{Method: http.MethodPost, Path: "/api/v1/forecast", Handler: h.Forecast},
		{Method: http.MethodPost, Path: "/api/v1/forecast/compare", Handler: h.CompareForecast, Cost: compareCost},
		{Method: http.MethodGet, Path: "/api/v1/growth-models", Handler: h.GrowthModels},

		// Live graph
		{Method: http.MethodGet, Path: "/api/v1/graph/statistics", Handler: h.GraphStatistics, Cost: graphCost},
		{Method: http.MethodGet, Path: "/api/v1/graph/sizing", Handler: h.GraphSizing, Cost: graphCost},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
