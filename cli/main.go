// ABOUTME: Entry point for graph-sizing CLI
// ABOUTME: Command-line tool for graph database sizing, forecasting, and CI/CD checks

package main

import (
	"fmt"
	"os"

	"github.com/markalston/graph-sizing-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
