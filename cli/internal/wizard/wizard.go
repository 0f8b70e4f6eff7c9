// ABOUTME: Interactive sizing wizard built on huh forms
// ABOUTME: Collects graph statistics and growth hints, then builds API requests

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/styles"
	"github.com/markalston/graph-sizing-analyzer/models"
)

// Wizard holds the form field values (strings for huh).
type Wizard struct {
	nodes         string
	relationships string
	nodeProps     string
	relProps      string

	vectorDims    string
	vectorPct     string
	vectorIndexes string
	quantization  bool

	memoryRatio string
	domain      string
	workloads   []string
	growthRate  string
	years       string
}

// Embedding sizes offered for vector indexes ("0" means no vectors).
var dimensionOptions = []huh.Option[string]{
	huh.NewOption("No vector indexes", "0"),
	huh.NewOption("384", "384"),
	huh.NewOption("768", "768"),
	huh.NewOption("1024", "1024"),
	huh.NewOption("1536", "1536"),
}

var ratioOptions = []huh.Option[string]{
	huh.NewOption("1:1 (whole graph in memory)", "1"),
	huh.NewOption("1:2", "2"),
	huh.NewOption("1:4", "4"),
	huh.NewOption("1:8", "8"),
}

var yearOptions = []huh.Option[string]{
	huh.NewOption("1 year", "1"),
	huh.NewOption("3 years", "3"),
	huh.NewOption("5 years", "5"),
	huh.NewOption("10 years", "10"),
}

// New creates a wizard with defaults for a mid-sized graph.
func New() *Wizard {
	return &Wizard{
		nodes:         "1000000",
		relationships: "5000000",
		nodeProps:     "5",
		relProps:      "1",
		vectorDims:    "0",
		vectorPct:     "0",
		vectorIndexes: "0",
		memoryRatio:   "1",
		domain:        string(models.DomainGeneric),
		years:         "3",
	}
}

func domainOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.AllDomains))
	for _, d := range models.AllDomains {
		opts = append(opts, huh.NewOption(string(d), string(d)))
	}
	return opts
}

func workloadOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.AllWorkloads))
	for _, w := range models.AllWorkloads {
		opts = append(opts, huh.NewOption(string(w), string(w)))
	}
	return opts
}

// Form builds the three-step wizard form.
func (w *Wizard) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of nodes").
				Value(&w.nodes).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Number of relationships").
				Value(&w.relationships).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Average properties per node").
				Value(&w.nodeProps).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Average properties per relationship").
				Value(&w.relProps).
				Validate(validateNonNegativeInt),
		).Title("Step 1: Graph").
			Description("Current size of the graph"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Vector dimensions").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(dimensionOptions...).
				Value(&w.vectorDims),
			huh.NewInput().
				Title("Percentage of nodes with vectors").
				Value(&w.vectorPct).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Number of vector indexes").
				Value(&w.vectorIndexes).
				Validate(validateNonNegativeInt),
			huh.NewConfirm().
				Title("Quantization enabled?").
				Value(&w.quantization),
		).Title("Step 2: Vectors").
			Description("Embedding storage for similarity search"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Memory-to-storage ratio").
				Options(ratioOptions...).
				Value(&w.memoryRatio),
			huh.NewSelect[string]().
				Title("Domain").
				Options(domainOptions()...).
				Value(&w.domain),
			huh.NewMultiSelect[string]().
				Title("Workloads").
				Description("Leave empty to use the domain defaults").
				Options(workloadOptions()...).
				Value(&w.workloads),
			huh.NewInput().
				Title("Annual growth rate (%)").
				Description("Leave blank for the workload default").
				Placeholder("e.g., 15").
				Value(&w.growthRate).
				Validate(validateOptionalRate),
			huh.NewSelect[string]().
				Title("Projection horizon").
				Options(yearOptions...).
				Value(&w.years),
		).Title("Step 3: Growth").
			Description("How the graph is used and how fast it grows"),
	).WithTheme(createTheme())
}

// Run shows the form and blocks until it is submitted or aborted.
func (w *Wizard) Run() error {
	return w.Form().Run()
}

// SizingInput converts the collected answers into a sizing request.
func (w *Wizard) SizingInput() (models.SizingInput, error) {
	var in models.SizingInput
	var err error

	if in.NumNodes, err = strconv.ParseInt(strings.TrimSpace(w.nodes), 10, 64); err != nil {
		return in, fmt.Errorf("nodes: %w", err)
	}
	if in.NumRelationships, err = strconv.ParseInt(strings.TrimSpace(w.relationships), 10, 64); err != nil {
		return in, fmt.Errorf("relationships: %w", err)
	}
	if in.AvgPropertiesPerNode, err = strconv.Atoi(strings.TrimSpace(w.nodeProps)); err != nil {
		return in, fmt.Errorf("node properties: %w", err)
	}
	if in.AvgPropertiesPerRelationship, err = strconv.Atoi(strings.TrimSpace(w.relProps)); err != nil {
		return in, fmt.Errorf("relationship properties: %w", err)
	}

	dims, _ := strconv.Atoi(w.vectorDims)
	if dims > 0 {
		in.VectorIndexDimensions = &dims
		if in.PercentageNodesWithVectorProps, err = strconv.ParseFloat(strings.TrimSpace(w.vectorPct), 64); err != nil {
			return in, fmt.Errorf("vector percentage: %w", err)
		}
		if in.NumberOfVectorIndexes, err = strconv.Atoi(strings.TrimSpace(w.vectorIndexes)); err != nil {
			return in, fmt.Errorf("vector indexes: %w", err)
		}
		in.QuantizationEnabled = w.quantization
	}

	ratio, err := strconv.ParseFloat(w.memoryRatio, 64)
	if err != nil {
		return in, fmt.Errorf("memory ratio: %w", err)
	}
	in.MemoryToStorageRatio = &ratio
	return in, nil
}

// ForecastInput seeds a forecast from a sizing result and the growth answers.
func (w *Wizard) ForecastInput(sizing models.SizingCalculations) (models.ForecastInput, error) {
	in := models.ForecastInput{
		BaseSizeGB:   sizing.TotalSizeWithIndexesGB,
		BaseMemoryGB: sizing.RecommendedMemoryGB,
		BaseCores:    sizing.RecommendedVCPUs,
		Domain:       w.domain,
		Workloads:    w.workloads,
	}

	years, err := strconv.Atoi(w.years)
	if err != nil {
		return in, fmt.Errorf("projection years: %w", err)
	}
	in.ProjectionYears = &years

	if rate := strings.TrimSpace(w.growthRate); rate != "" {
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return in, fmt.Errorf("growth rate: %w", err)
		}
		in.AnnualGrowthRate = &v
	}

	if ratio, err := strconv.ParseFloat(w.memoryRatio, 64); err == nil {
		in.MemoryToStorageRatio = &ratio
	}
	return in, nil
}

// createTheme returns a huh theme using the shared CLI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(styles.Text)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Muted).
		SetString("  ")

	return t
}

func validateNonNegativeInt(s string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a whole number of 0 or more")
	}
	return nil
}

func validatePercentage(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func validateOptionalRate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1000 {
		return fmt.Errorf("must be between 0 and 1000")
	}
	return nil
}
