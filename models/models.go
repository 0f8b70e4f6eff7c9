// ABOUTME: Shared API response models
// ABOUTME: Health status and JSON error envelope

package models

// HealthResponse reports service status.
type HealthResponse struct {
	Status               string `json:"status"`
	Version              string `json:"version"`
	GraphStatsConfigured bool   `json:"graph_stats_configured"`
	MCPEnabled           bool   `json:"mcp_enabled"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
