// ABOUTME: MCP tool handlers wrapping the sizing service
// ABOUTME: Input types carry JSON schema descriptions; failures become IsError results

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markalston/graph-sizing-analyzer/models"
	"github.com/markalston/graph-sizing-analyzer/services"
)

// SizingTools holds the service the tool handlers delegate to.
type SizingTools struct {
	Service *services.SizingService
}

// --- Input types ---

type CalculateSizingInput struct {
	NumNodes                       int64    `json:"num_nodes" jsonschema:"Total number of nodes"`
	NumRelationships               int64    `json:"num_relationships" jsonschema:"Total number of relationships"`
	AvgPropertiesPerNode           int      `json:"avg_properties_per_node" jsonschema:"Average number of properties per node"`
	AvgPropertiesPerRelationship   int      `json:"avg_properties_per_relationship" jsonschema:"Average number of properties per relationship"`
	VectorIndexDimensions          int      `json:"vector_index_dimensions,omitempty" jsonschema:"Embedding dimensions of the vector indexes, e.g. 768 or 1536"`
	PercentageNodesWithVectorProps float64  `json:"percentage_nodes_with_vector_properties,omitempty" jsonschema:"Percentage of nodes carrying a vector property (0-100)"`
	NumberOfVectorIndexes          int      `json:"number_of_vector_indexes,omitempty" jsonschema:"Number of vector indexes"`
	QuantizationEnabled            bool     `json:"quantization_enabled,omitempty" jsonschema:"Whether vector quantization is enabled"`
	TotalNumLargeNodeProperties    int64    `json:"total_num_large_node_properties,omitempty" jsonschema:"Total count of node properties of 128 bytes or more"`
	TotalNumLargeReltypeProperties int64    `json:"total_num_large_reltype_properties,omitempty" jsonschema:"Total count of relationship properties of 128 bytes or more"`
	MemoryToStorageRatio           *float64 `json:"memory_to_storage_ratio,omitempty" jsonschema:"Memory-to-storage denominator: 1, 2, 4, or 8 (default 1)"`
	ConcurrentEndUsers             *int     `json:"concurrent_end_users,omitempty" jsonschema:"Expected concurrent end users; each needs 2 vCPUs"`
}

type ForecastSizeInput struct {
	BaseSizeGB           float64  `json:"base_size_gb" jsonschema:"Current total database size in GB"`
	BaseMemoryGB         int      `json:"base_memory_gb" jsonschema:"Current memory in GB"`
	BaseCores            int      `json:"base_cores" jsonschema:"Current number of cores"`
	AnnualGrowthRate     float64  `json:"annual_growth_rate" jsonschema:"Annual growth rate in percent"`
	ProjectionYears      int      `json:"projection_years" jsonschema:"Number of years to project (1-20)"`
	Domain               string   `json:"domain,omitempty" jsonschema:"Graph domain: customer, product, employee, supplier, transaction, process, security, or generic"`
	Workloads            []string `json:"workloads,omitempty" jsonschema:"Workload types: transactional, agentic, analytical, graph_data_science"`
	MemoryToStorageRatio float64  `json:"memory_to_storage_ratio,omitempty" jsonschema:"Memory-to-storage denominator: 1, 2, 4, or 8"`
	GrowthModel          string   `json:"growth_model,omitempty" jsonschema:"Force a growth model instead of selecting one: linear, compound, log_linear, exponential_with_vector, or logistic"`
	CarryingCapacity     float64  `json:"carrying_capacity_multiplier,omitempty" jsonschema:"Logistic ceiling as a multiple of base size, greater than 1 (default 2)"`
}

func (in CalculateSizingInput) toModel() models.SizingInput {
	out := models.SizingInput{
		NumNodes:                       in.NumNodes,
		NumRelationships:               in.NumRelationships,
		AvgPropertiesPerNode:           in.AvgPropertiesPerNode,
		AvgPropertiesPerRelationship:   in.AvgPropertiesPerRelationship,
		PercentageNodesWithVectorProps: in.PercentageNodesWithVectorProps,
		NumberOfVectorIndexes:          in.NumberOfVectorIndexes,
		QuantizationEnabled:            in.QuantizationEnabled,
		TotalNumLargeNodeProperties:    in.TotalNumLargeNodeProperties,
		TotalNumLargeReltypeProperties: in.TotalNumLargeReltypeProperties,
		MemoryToStorageRatio:           in.MemoryToStorageRatio,
		ConcurrentEndUsers:             in.ConcurrentEndUsers,
	}
	if in.VectorIndexDimensions != 0 {
		dims := in.VectorIndexDimensions
		out.VectorIndexDimensions = &dims
	}
	return out
}

func (in ForecastSizeInput) toModel() models.ForecastInput {
	rate := in.AnnualGrowthRate
	years := in.ProjectionYears
	out := models.ForecastInput{
		BaseSizeGB:                 in.BaseSizeGB,
		BaseMemoryGB:               in.BaseMemoryGB,
		BaseCores:                  in.BaseCores,
		AnnualGrowthRate:           &rate,
		ProjectionYears:            &years,
		Domain:                     in.Domain,
		Workloads:                  in.Workloads,
		GrowthModel:                models.GrowthModelKind(in.GrowthModel),
		CarryingCapacityMultiplier: in.CarryingCapacity,
	}
	if in.MemoryToStorageRatio != 0 {
		ratio := in.MemoryToStorageRatio
		out.MemoryToStorageRatio = &ratio
	}
	return out
}

// --- Handlers ---

func (t *SizingTools) CalculateSizing(_ context.Context, _ *mcp.CallToolRequest, input CalculateSizingInput) (*mcp.CallToolResult, any, error) {
	result, err := t.Service.CalculateSizing(input.toModel())
	if err != nil {
		slog.Debug("Sizing tool rejected input", "error", err)
		return toolError("%v", err), nil, nil
	}
	return toolJSON(result)
}

func (t *SizingTools) ForecastSize(_ context.Context, _ *mcp.CallToolRequest, input ForecastSizeInput) (*mcp.CallToolResult, any, error) {
	result, err := t.Service.ForecastSizing(input.toModel())
	if err != nil {
		slog.Debug("Forecast tool rejected input", "error", err)
		return toolError("%v", err), nil, nil
	}
	return toolJSON(result)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
