// ABOUTME: Models command for graph-sizing CLI
// ABOUTME: Prints the workload, domain, and growth model catalog

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/client"
	"github.com/markalston/graph-sizing-analyzer/cli/internal/styles"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List workloads, domains, and growth models",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runModels(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	catalog, err := c.GrowthModels(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if done, err := writeStructured(w, catalog); done {
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	heading(w, "Workloads")
	t := newTable(w)
	t.AddHeader("WORKLOAD", "RANK", "GROWTH MODEL", "DEFAULT RATE")
	for _, wl := range catalog.Workloads {
		t.AddLine(string(wl.Workload), fmt.Sprint(wl.Rank), string(wl.GrowthModel), fmt.Sprintf("%.0f%%", wl.DefaultGrowthRate))
	}
	t.Print()

	fmt.Fprintln(w)
	heading(w, "Domains")
	t = newTable(w)
	t.AddHeader("DOMAIN", "DEFAULT WORKLOADS")
	for _, d := range catalog.Domains {
		names := make([]string, len(d.Workloads))
		for i, wl := range d.Workloads {
			names[i] = string(wl)
		}
		workloads := strings.Join(names, ", ")
		if workloads == "" {
			workloads = "-"
		}
		t.AddLine(string(d.Domain), workloads)
	}
	t.Print()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", styles.Label.Render("Default model:"), catalog.DefaultModel)
	return 0
}
