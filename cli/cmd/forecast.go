// ABOUTME: Forecast command for graph-sizing CLI
// ABOUTME: Projects growth year by year and fails CI/CD runs when scaling is needed

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/client"
	"github.com/markalston/graph-sizing-analyzer/cli/internal/styles"
	"github.com/markalston/graph-sizing-analyzer/models"
)

var forecastFlags struct {
	baseSize         float64
	baseMemory       int
	baseCores        int
	growthRate       float64
	years            int
	workloads        []string
	domain           string
	memoryRatio      float64
	growthModel      string
	carryingCapacity float64
	compare          bool
	failOnScaling    bool
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast database growth",
	Long: `Project storage, memory, and cores year by year under a growth model
selected from workloads, domain, or an explicit --growth-model.

Exit codes:
  0 - Success (or no scaling needed with --fail-on-scaling)
  1 - Scaling needed within the horizon (only with --fail-on-scaling;
      with --compare, judged on the selected model)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		input := forecastInputFromFlags(cmd.Flags())
		var exitCode int
		if forecastFlags.compare {
			exitCode = runCompare(ctx, os.Stdout, input, forecastFlags.failOnScaling)
		} else {
			exitCode = runForecast(ctx, os.Stdout, input, forecastFlags.failOnScaling)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	f := forecastCmd.Flags()
	f.Float64Var(&forecastFlags.baseSize, "base-size", 0, "Current total size in GB")
	f.IntVar(&forecastFlags.baseMemory, "base-memory", 0, "Current memory in GB")
	f.IntVar(&forecastFlags.baseCores, "base-cores", 0, "Current number of cores")
	f.Float64Var(&forecastFlags.growthRate, "growth-rate", 0, "Annual growth rate in percent (default: from workloads)")
	f.IntVar(&forecastFlags.years, "years", 3, "Projection horizon in years")
	f.StringSliceVar(&forecastFlags.workloads, "workload", nil, "Workload type (repeatable): transactional, agentic, analytical, graph_data_science")
	f.StringVar(&forecastFlags.domain, "domain", "", "Graph domain: customer, product, employee, supplier, transaction, process, security, generic")
	f.Float64Var(&forecastFlags.memoryRatio, "memory-ratio", 0, "Memory-to-storage ratio denominator (1, 2, 4, or 8)")
	f.StringVar(&forecastFlags.growthModel, "growth-model", "", "Force a growth model: linear, compound, log_linear, exponential_with_vector, logistic")
	f.Float64Var(&forecastFlags.carryingCapacity, "carrying-capacity", 0, "Logistic ceiling as a multiple of base size (default 2)")
	f.BoolVar(&forecastFlags.compare, "compare", false, "Compare every growth model instead of forecasting with one")
	f.BoolVar(&forecastFlags.failOnScaling, "fail-on-scaling", false, "Exit 1 if any projected year needs scaling")
}

// forecastInputFromFlags leaves rate and years unset unless given so the
// backend can apply its defaults.
func forecastInputFromFlags(f *pflag.FlagSet) *models.ForecastInput {
	in := &models.ForecastInput{
		BaseSizeGB:                 forecastFlags.baseSize,
		BaseMemoryGB:               forecastFlags.baseMemory,
		BaseCores:                  forecastFlags.baseCores,
		Workloads:                  forecastFlags.workloads,
		Domain:                     forecastFlags.domain,
		GrowthModel:                models.GrowthModelKind(forecastFlags.growthModel),
		CarryingCapacityMultiplier: forecastFlags.carryingCapacity,
	}
	if f.Changed("growth-rate") {
		rate := forecastFlags.growthRate
		in.AnnualGrowthRate = &rate
	}
	if f.Changed("years") {
		years := forecastFlags.years
		in.ProjectionYears = &years
	}
	if f.Changed("memory-ratio") {
		ratio := forecastFlags.memoryRatio
		in.MemoryToStorageRatio = &ratio
	}
	return in
}

// runForecast executes the forecast and returns exit code
func runForecast(ctx context.Context, w io.Writer, input *models.ForecastInput, failOnScaling bool) int {
	c := client.New(GetAPIURL())

	result, err := c.Forecast(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	done, err := writeStructured(w, result)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !done {
		printForecast(w, result)
	}

	if failOnScaling && result.FirstScalingYear() > 0 {
		if !done {
			fmt.Fprintf(w, "\nFAILED: scaling needed in year %d\n", result.FirstScalingYear())
		}
		return 1
	}
	return 0
}

func printForecast(w io.Writer, result *models.ForecastResult) {
	heading(w, fmt.Sprintf("%s at %.1f%% per year", result.GrowthModelUsed, result.AnnualGrowthRate))
	fmt.Fprintf(w, "Base: %s, %d GB memory, %d cores\n\n",
		formatGB(result.BaseSizeGB), result.BaseMemoryGB, result.BaseCores)

	t := newTable(w)
	t.AddHeader("YEAR", "SIZE", "MEMORY", "CORES", "SCALING")
	for _, p := range result.Projections {
		t.AddLine(
			strconv.Itoa(p.Year),
			formatGB(p.TotalSizeGB),
			fmt.Sprintf("%d GB", p.RecommendedMemoryGB),
			strconv.Itoa(p.RecommendedCores),
			scalingLabel(p.ScalingNeeded),
		)
	}
	t.Print()
}

// runCompare runs the forecast under every growth model and returns exit code.
// With failOnScaling only the selected model's forecast decides the exit code.
func runCompare(ctx context.Context, w io.Writer, input *models.ForecastInput, failOnScaling bool) int {
	c := client.New(GetAPIURL())

	result, err := c.CompareForecast(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	done, err := writeStructured(w, result)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !done {
		printComparison(w, result)
	}

	if !failOnScaling {
		return 0
	}
	for _, f := range result.Forecasts {
		if f.GrowthModel == result.SelectedModel && f.FirstScalingYear > 0 {
			if !done {
				fmt.Fprintf(w, "\nFAILED: %s needs scaling in year %d\n", f.GrowthModel, f.FirstScalingYear)
			}
			return 1
		}
	}
	return 0
}

func printComparison(w io.Writer, result *models.ModelComparison) {
	heading(w, fmt.Sprintf("Growth models over %d years at %.1f%% per year", result.ProjectionYears, result.AnnualGrowthRate))

	t := newTable(w)
	t.AddHeader("MODEL", "FINAL SIZE", "FIRST SCALING YEAR", "")
	for _, f := range result.Forecasts {
		first := "-"
		if f.FirstScalingYear > 0 {
			first = strconv.Itoa(f.FirstScalingYear)
		}
		marker := ""
		if f.GrowthModel == result.SelectedModel {
			marker = styles.StatusOK.Render("selected")
		}
		t.AddLine(string(f.GrowthModel), formatGB(f.FinalSizeGB), first, marker)
	}
	t.Print()
}
