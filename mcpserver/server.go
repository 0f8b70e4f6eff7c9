// ABOUTME: MCP tool server exposing sizing and forecasting to agents
// ABOUTME: Registers tools and prompts on an official go-sdk server for stdio or streamable HTTP

package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markalston/graph-sizing-analyzer/services"
)

const (
	serverName = "graph-sizing-analyzer"

	toolCalculateSizing = "calculate_database_sizing"
	toolForecastSize    = "forecast_database_size"
)

// ToolName applies the optional namespace prefix to a tool name.
func ToolName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// New creates an MCP server with the sizing tools and their guidance prompts registered.
func New(svc *services.SizingService, prefix, version string) *mcp.Server {
	if svc == nil {
		svc = services.NewSizingService(nil)
	}
	st := &SizingTools{Service: svc}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        ToolName(prefix, toolCalculateSizing),
		Description: "Estimate storage, memory, and vCPUs for a property-graph database from node, relationship, property, and vector index counts",
	}, st.CalculateSizing)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        ToolName(prefix, toolForecastSize),
		Description: "Project database size, memory, and cores year by year using a growth model chosen from workloads or domain",
	}, st.ForecastSize)

	registerPrompts(srv, prefix)

	return srv
}
