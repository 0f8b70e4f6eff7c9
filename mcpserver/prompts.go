// ABOUTME: MCP prompts that walk an agent through collecting sizing and forecast inputs
// ABOUTME: Prompt text lists the tool arguments and the domain/workload tables

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markalston/graph-sizing-analyzer/services"
)

const (
	promptSuffix         = "_prompt"
	argGraphDescription  = "graph_description"
	defaultGraphSummary  = "(no description given)"
	workloadSpeedUnknown = "unranked"
)

var workloadSpeeds = []string{"slowest", "moderate", "fast", "fastest"}

type sizingPrompts struct {
	sizingTool   string
	forecastTool string
}

func registerPrompts(srv *mcp.Server, prefix string) {
	p := &sizingPrompts{
		sizingTool:   ToolName(prefix, toolCalculateSizing),
		forecastTool: ToolName(prefix, toolForecastSize),
	}

	srv.AddPrompt(&mcp.Prompt{
		Name:        p.sizingTool + promptSuffix,
		Title:       "Calculate Database Sizing",
		Description: "Guide the agent through collecting complete graph information before calculating sizing",
		Arguments: []*mcp.PromptArgument{{
			Name:        argGraphDescription,
			Description: "Nodes, relationships, properties, and any vector search requirements",
			Required:    true,
		}},
	}, p.sizing)

	srv.AddPrompt(&mcp.Prompt{
		Name:        p.forecastTool + promptSuffix,
		Title:       "Forecast Database Size",
		Description: "Guide the agent through identifying the graph domain and workloads before forecasting growth",
		Arguments: []*mcp.PromptArgument{{
			Name:        argGraphDescription,
			Description: "The graph use case, domain, and workload types",
			Required:    true,
		}},
	}, p.forecast)
}

func describedGraph(req *mcp.GetPromptRequest) string {
	if req == nil || req.Params == nil {
		return defaultGraphSummary
	}
	if d := strings.TrimSpace(req.Params.Arguments[argGraphDescription]); d != "" {
		return d
	}
	return defaultGraphSummary
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}

func (p *sizingPrompts) sizing(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var b strings.Builder
	b.WriteString("The user wants to calculate database sizing for their graph.\n\n")
	fmt.Fprintf(&b, "**What they've told us:**\n%s\n\n", describedGraph(req))
	b.WriteString(`**Required information:**
- Num Nodes: total number of nodes
- Num Relationships: total number of relationships
- Avg Properties Per Node: average number of properties per node
- Avg Properties Per Relationship: average number of properties per relationship

**Important for accuracy:**
- Vector Index Dimensions: embedding size, e.g. 384, 768, or 1536 (default: none)
- Percentage Nodes With Vector Properties: 0-100 (default: 0)
- Number Of Vector Indexes (default: 0)
- Total Num Large Node Properties: node properties of 128 bytes or more (default: 0)
- Total Num Large Reltype Properties: relationship properties of 128 bytes or more (default: 0)
- Memory To Storage Ratio: 1, 2, 4, or 8 (default: 1)
- Concurrent End Users (default: none)

**Process:**
1. Identify what the description already provides and ask for any missing node or relationship counts.
2. Ask about properties and vectors; they change the estimate significantly.
`)
	fmt.Fprintf(&b, "3. Call `%s` with every collected parameter.\n", p.sizingTool)
	b.WriteString("4. Present the storage breakdown and explain the memory and vCPU recommendations.\n")
	return userPrompt("Collect graph statistics for sizing", b.String()), nil
}

func (p *sizingPrompts) forecast(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	cat := services.Catalog()

	var b strings.Builder
	b.WriteString("The user wants to forecast database growth for their graph.\n\n")
	fmt.Fprintf(&b, "**What they've told us:**\n%s\n\n", describedGraph(req))

	b.WriteString("**Graph domains and their default workloads:**\n")
	for _, d := range cat.Domains {
		ws := make([]string, 0, len(d.Workloads))
		for _, w := range d.Workloads {
			ws = append(ws, string(w))
		}
		if len(ws) == 0 {
			ws = append(ws, "none")
		}
		fmt.Fprintf(&b, "- %s: %s\n", d.Domain, strings.Join(ws, ", "))
	}

	b.WriteString("\n**Workload types (growth speed, curve, default annual rate):**\n")
	for _, w := range cat.Workloads {
		speed := workloadSpeedUnknown
		if w.Rank >= 0 && w.Rank < len(workloadSpeeds) {
			speed = workloadSpeeds[w.Rank]
		}
		fmt.Fprintf(&b, "- %s: %s, %s, %.0f%%\n", w.Workload, speed, w.GrowthModel, w.DefaultGrowthRate)
	}

	b.WriteString(`
**Process:**
1. Map the description to one domain; its default workloads apply unless workloads are given.
2. Identify workload types; explicit workloads override the domain defaults.
`)
	fmt.Fprintf(&b, "3. Collect base size, memory, and cores (the output of `%s` works), growth rate, and projection years.\n", p.sizingTool)
	fmt.Fprintf(&b, "4. Call `%s`. The fastest workload picks the growth model unless growth_model is set.\n", p.forecastTool)
	b.WriteString("5. Present the yearly projections and point out the first year that needs scaling.\n")
	return userPrompt("Identify domain and workloads for forecasting", b.String()), nil
}
