// ABOUTME: Wizard command for graph-sizing CLI
// ABOUTME: Collects inputs interactively, then runs sizing and a seeded forecast

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/client"
	"github.com/markalston/graph-sizing-analyzer/cli/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively size a graph and forecast its growth",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		wz := wizard.New()
		if err := wz.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runWizard(ctx, os.Stdout, wz)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

// runWizard sends the collected answers: sizing first, then a forecast
// seeded from the sizing result.
func runWizard(ctx context.Context, w io.Writer, wz *wizard.Wizard) int {
	c := client.New(GetAPIURL())

	sizingInput, err := wz.SizingInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	sizing, err := c.CalculateSizing(ctx, &sizingInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	forecastInput, err := wz.ForecastInput(sizing.Calculations)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	forecast, err := c.Forecast(ctx, &forecastInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	combined := map[string]interface{}{
		"sizing":   sizing,
		"forecast": forecast,
	}
	if done, err := writeStructured(w, combined); done {
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	printSizing(w, &sizingInput, sizing)
	fmt.Fprintln(w)
	printForecast(w, forecast)
	return 0
}
