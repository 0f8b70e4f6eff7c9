// ABOUTME: Output helpers shared by CLI commands
// ABOUTME: Structured JSON/YAML encoding, tables, and number formatting

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/markalston/graph-sizing-analyzer/cli/internal/styles"
)

// writeStructured encodes v as JSON or YAML. It reports false for text output.
func writeStructured(w io.Writer, v interface{}) (bool, error) {
	switch OutputFormat() {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		fmt.Fprintln(w, string(data))
		return true, nil
	case formatYAML:
		// Round-trip through JSON so YAML keys match the API field names.
		data, err := json.Marshal(v)
		if err != nil {
			return true, err
		}
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return true, err
		}
		fmt.Fprint(w, string(out))
		return true, nil
	default:
		return false, nil
	}
}

// newTable returns a tabby table writing to w.
func newTable(w io.Writer) *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
}

// formatGB renders a size with at most two decimals and thousands separators.
func formatGB(v float64) string {
	return humanize.CommafWithDigits(v, 2) + " GB"
}

// formatCount renders a count with thousands separators.
func formatCount(v int64) string {
	return humanize.Comma(v)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, styles.Title.Render(title))
}

func scalingLabel(needed bool) string {
	if needed {
		return styles.StatusWarning.Render("yes")
	}
	return styles.StatusOK.Render("no")
}
