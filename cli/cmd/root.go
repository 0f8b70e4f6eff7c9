// ABOUTME: Root command for graph-sizing CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL       string
	jsonOutput   bool
	outputFormat string
)

const defaultAPIURL = "http://localhost:8080"

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "graph-sizing",
	Short: "CLI for the Graph Sizing Analyzer",
	Long: `graph-sizing is a command-line interface for the Graph Sizing Analyzer.

It sizes property-graph databases, forecasts their growth, and lets CI/CD
pipelines fail when a forecast says the deployment will need scaling.

Environment Variables:
  GRAPH_SIZING_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateOutputFormat(outputFormat)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides GRAPH_SIZING_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text (same as --output json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText, "Output format: text, json, or yaml")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GRAPH_SIZING_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return OutputFormat() == formatJSON
}

// OutputFormat resolves --json and --output into one format; --json wins.
func OutputFormat() string {
	if jsonOutput {
		return formatJSON
	}
	if outputFormat == "" {
		return formatText
	}
	return outputFormat
}

func validateOutputFormat(f string) error {
	switch f {
	case "", formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("--output must be text, json, or yaml, got %q", f)
	}
}
