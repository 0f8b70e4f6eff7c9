// ABOUTME: Input validation for sizing and forecast requests
// ABOUTME: Range checks with field-named errors and log-safe token echoing

package services

import (
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/markalston/graph-sizing-analyzer/models"
)

const (
	maxAnnualGrowthRate = 1000.0
	maxProjectionYears  = 20
)

// allowedMemoryRatios are the supported memory-to-storage denominators (1:1 through 1:8).
var allowedMemoryRatios = []float64{1, 2, 4, 8}

// commonVectorDimensions are embedding sizes produced by widely used models.
var commonVectorDimensions = []int{384, 512, 768, 1024, 1536}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newValidationError(field, "%s must be a finite number", field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return newValidationError(field, "%s must be non-negative", field)
	}
	return nil
}

// ValidateMemoryRatio checks a memory-to-storage ratio against the supported set.
func ValidateMemoryRatio(ratio float64) error {
	if !slices.Contains(allowedMemoryRatios, ratio) {
		return newValidationError("memory_to_storage_ratio",
			"memory_to_storage_ratio must be 1.0 (1:1), 2.0 (1:2), 4.0 (1:4), or 8.0 (1:8)")
	}
	return nil
}

// ValidateSizingInput checks every sizing field. Unusual vector dimensions
// are logged but accepted.
func ValidateSizingInput(in models.SizingInput) error {
	checks := []struct {
		field string
		value float64
	}{
		{"num_nodes", float64(in.NumNodes)},
		{"num_relationships", float64(in.NumRelationships)},
		{"avg_properties_per_node", float64(in.AvgPropertiesPerNode)},
		{"avg_properties_per_relationship", float64(in.AvgPropertiesPerRelationship)},
		{"total_num_large_node_properties", float64(in.TotalNumLargeNodeProperties)},
		{"total_num_large_reltype_properties", float64(in.TotalNumLargeReltypeProperties)},
		{"vector_index_dimensions", float64(in.Dimensions())},
	}
	for _, c := range checks {
		if err := nonNegative(c.field, c.value); err != nil {
			return err
		}
	}

	if dims := in.Dimensions(); dims > 0 && !slices.Contains(commonVectorDimensions, dims) {
		slog.Warn("Unusual vector dimension",
			"vector_index_dimensions", dims,
			"common_values", commonVectorDimensions,
		)
	}

	if pct := in.PercentageNodesWithVectorProps; !(pct >= 0 && pct <= 100) {
		return newValidationError("percentage_nodes_with_vector_properties",
			"percentage_nodes_with_vector_properties must be between 0 and 100")
	}
	if err := nonNegative("number_of_vector_indexes", float64(in.NumberOfVectorIndexes)); err != nil {
		return err
	}
	if in.MemoryToStorageRatio != nil {
		if err := ValidateMemoryRatio(*in.MemoryToStorageRatio); err != nil {
			return err
		}
	}
	if in.ConcurrentEndUsers != nil {
		if err := nonNegative("concurrent_end_users", float64(*in.ConcurrentEndUsers)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForecastInput checks the numeric forecast fields. Token fields
// (workloads, domain, growth model) are checked during model selection.
func ValidateForecastInput(in models.ForecastInput) error {
	if err := nonNegative("base_size_gb", in.BaseSizeGB); err != nil {
		return err
	}
	if err := nonNegative("base_memory_gb", float64(in.BaseMemoryGB)); err != nil {
		return err
	}
	if err := nonNegative("base_cores", float64(in.BaseCores)); err != nil {
		return err
	}
	if in.AnnualGrowthRate != nil {
		rate := *in.AnnualGrowthRate
		if err := nonNegative("annual_growth_rate", rate); err != nil {
			return err
		}
		if rate > maxAnnualGrowthRate {
			return newValidationError("annual_growth_rate",
				"annual_growth_rate seems unreasonably high (>1000%%). Please verify the value.")
		}
	}
	if in.ProjectionYears != nil {
		years := *in.ProjectionYears
		if years < 1 {
			return newValidationError("projection_years", "projection_years must be at least 1")
		}
		if years > maxProjectionYears {
			return newValidationError("projection_years",
				"projection_years exceeds reasonable limit (20 years). Please use a value <= 20")
		}
	}
	if in.MemoryToStorageRatio != nil {
		if err := ValidateMemoryRatio(*in.MemoryToStorageRatio); err != nil {
			return err
		}
	}
	if m := in.CarryingCapacityMultiplier; m != 0 && (!(m > 1) || math.IsInf(m, 0)) {
		return newValidationError("carrying_capacity_multiplier", "carrying_capacity_multiplier must be greater than 1")
	}
	return nil
}
