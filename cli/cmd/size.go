// ABOUTME: Size command for graph-sizing CLI
// ABOUTME: Sends graph statistics to the backend and prints the sizing breakdown

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/client"
	"github.com/markalston/graph-sizing-analyzer/models"
)

var sizeFlags struct {
	nodes           int64
	relationships   int64
	nodeProps       int
	relProps        int
	largeNodeProps  int64
	largeRelProps   int64
	vectorDims      int
	vectorPct       float64
	vectorIndexes   int
	quantization    bool
	memoryRatio     float64
	concurrentUsers int
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Calculate storage, memory, and vCPUs for a graph",
	Long: `Calculate storage, memory, and vCPU requirements from graph statistics.

Exit codes:
  0 - Success
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSize(ctx, os.Stdout, sizeInputFromFlags(cmd.Flags()))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sizeCmd)
	f := sizeCmd.Flags()
	f.Int64Var(&sizeFlags.nodes, "nodes", 0, "Total number of nodes")
	f.Int64Var(&sizeFlags.relationships, "relationships", 0, "Total number of relationships")
	f.IntVar(&sizeFlags.nodeProps, "node-properties", 0, "Average properties per node")
	f.IntVar(&sizeFlags.relProps, "relationship-properties", 0, "Average properties per relationship")
	f.Int64Var(&sizeFlags.largeNodeProps, "large-node-properties", 0, "Total node properties of 128 bytes or more")
	f.Int64Var(&sizeFlags.largeRelProps, "large-relationship-properties", 0, "Total relationship properties of 128 bytes or more")
	f.IntVar(&sizeFlags.vectorDims, "vector-dimensions", 0, "Vector index dimensions (e.g. 768)")
	f.Float64Var(&sizeFlags.vectorPct, "vector-percentage", 0, "Percentage of nodes with vector properties")
	f.IntVar(&sizeFlags.vectorIndexes, "vector-indexes", 0, "Number of vector indexes")
	f.BoolVar(&sizeFlags.quantization, "quantization", false, "Vector quantization enabled")
	f.Float64Var(&sizeFlags.memoryRatio, "memory-ratio", 0, "Memory-to-storage ratio denominator (1, 2, 4, or 8)")
	f.IntVar(&sizeFlags.concurrentUsers, "concurrent-users", 0, "Concurrent end users")
}

// sizeInputFromFlags sets optional fields only when their flag was given.
func sizeInputFromFlags(f *pflag.FlagSet) *models.SizingInput {
	in := &models.SizingInput{
		NumNodes:                       sizeFlags.nodes,
		NumRelationships:               sizeFlags.relationships,
		AvgPropertiesPerNode:           sizeFlags.nodeProps,
		AvgPropertiesPerRelationship:   sizeFlags.relProps,
		TotalNumLargeNodeProperties:    sizeFlags.largeNodeProps,
		TotalNumLargeReltypeProperties: sizeFlags.largeRelProps,
		PercentageNodesWithVectorProps: sizeFlags.vectorPct,
		NumberOfVectorIndexes:          sizeFlags.vectorIndexes,
		QuantizationEnabled:            sizeFlags.quantization,
	}
	if f.Changed("vector-dimensions") {
		dims := sizeFlags.vectorDims
		in.VectorIndexDimensions = &dims
	}
	if f.Changed("memory-ratio") {
		ratio := sizeFlags.memoryRatio
		in.MemoryToStorageRatio = &ratio
	}
	if f.Changed("concurrent-users") {
		users := sizeFlags.concurrentUsers
		in.ConcurrentEndUsers = &users
	}
	return in
}

// runSize requests a sizing and returns exit code
func runSize(ctx context.Context, w io.Writer, input *models.SizingInput) int {
	c := client.New(GetAPIURL())

	result, err := c.CalculateSizing(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if done, err := writeStructured(w, result); done {
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	printSizing(w, input, result)
	return 0
}

func printSizing(w io.Writer, input *models.SizingInput, result *models.SizingResult) {
	calc := result.Calculations

	heading(w, fmt.Sprintf("Sizing for %s nodes, %s relationships",
		formatCount(input.NumNodes), formatCount(input.NumRelationships)))

	t := newTable(w)
	t.AddHeader("COMPONENT", "SIZE")
	t.AddLine("Nodes", formatGB(calc.SizeOfNodesGB))
	t.AddLine("Relationships", formatGB(calc.SizeOfRelationshipsGB))
	t.AddLine("Properties", formatGB(calc.SizeOfPropertiesGB))
	t.AddLine("Total without indexes", formatGB(calc.TotalSizeWithoutIndexesGB))
	t.AddLine("Non-vector indexes", formatGB(calc.SizeOfNonVectorIndexesGB))
	t.AddLine("Vector indexes", formatGB(calc.SizeOfVectorIndexesGB))
	t.AddLine("Total with indexes", formatGB(calc.TotalSizeWithIndexesGB))
	t.Print()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Recommended memory: %d GB\n", calc.RecommendedMemoryGB)
	fmt.Fprintf(w, "Recommended vCPUs:  %d\n", calc.RecommendedVCPUs)
}
