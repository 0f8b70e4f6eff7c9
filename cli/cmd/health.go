// ABOUTME: Health command for graph-sizing CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/client"
	"github.com/markalston/graph-sizing-analyzer/models"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the Graph Sizing Analyzer backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	output := map[string]interface{}{
		"backend":                url,
		"status":                 resp.Status,
		"version":                resp.Version,
		"graph_stats_configured": resp.GraphStatsConfigured,
		"mcp_enabled":            resp.MCPEnabled,
	}
	if done, err := writeStructured(w, output); done {
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	fmt.Fprintln(w, formatHealthHuman(url, resp))
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	return fmt.Sprintf(`Backend:      %s
Status:       %s
Version:      %s
Graph Stats:  %t
MCP:          %t`, url, resp.Status, resp.Version, resp.GraphStatsConfigured, resp.MCPEnabled)
}
