// ABOUTME: Data models for multi-year growth forecasts
// ABOUTME: Base sizing plus growth hints in, per-year projections out

package models

// ForecastInput describes the starting point and growth assumptions.
// A nil AnnualGrowthRate or ProjectionYears takes the service default.
type ForecastInput struct {
	BaseSizeGB                 float64         `json:"base_size_gb"`
	BaseMemoryGB               int             `json:"base_memory_gb"`
	BaseCores                  int             `json:"base_cores"`
	AnnualGrowthRate           *float64        `json:"annual_growth_rate,omitempty"`
	ProjectionYears            *int            `json:"projection_years,omitempty"`
	Workloads                  []string        `json:"workloads,omitempty"`
	Domain                     string          `json:"domain,omitempty"`
	MemoryToStorageRatio       *float64        `json:"memory_to_storage_ratio,omitempty"`
	GrowthModel                GrowthModelKind `json:"growth_model,omitempty"`
	CarryingCapacityMultiplier float64         `json:"carrying_capacity_multiplier,omitempty"`
}

// ProjectionYear is one year of a forecast.
type ProjectionYear struct {
	Year                int     `json:"year"`
	TotalSizeGB         float64 `json:"total_size_gb"`
	RecommendedMemoryGB int     `json:"recommended_memory_gb"`
	RecommendedCores    int     `json:"recommended_cores"`
	ScalingNeeded       bool    `json:"scaling_needed"`
}

// Projection is the raw projector output: the years and the curve that made them.
type Projection struct {
	Years           []ProjectionYear
	GrowthModel     GrowthModelKind
	GrowthModelName string
}

// ForecastResult is the response for a forecast.
type ForecastResult struct {
	BaseSizeGB       float64          `json:"base_size_gb"`
	BaseMemoryGB     int              `json:"base_memory_gb"`
	BaseCores        int              `json:"base_cores"`
	AnnualGrowthRate float64          `json:"annual_growth_rate"`
	Projections      []ProjectionYear `json:"projections"`
	GrowthModelUsed  string           `json:"growth_model_used"`
}

// FirstScalingYear returns the first year flagged for scaling, or 0 if none.
func FirstScalingYear(years []ProjectionYear) int {
	for _, y := range years {
		if y.ScalingNeeded {
			return y.Year
		}
	}
	return 0
}

// FirstScalingYear returns the first projected year flagged for scaling, or 0 if none.
func (r ForecastResult) FirstScalingYear() int {
	return FirstScalingYear(r.Projections)
}

// ModelForecast is one growth curve's forecast inside a comparison.
type ModelForecast struct {
	GrowthModel      GrowthModelKind  `json:"growth_model"`
	Projections      []ProjectionYear `json:"projections"`
	FinalSizeGB      float64          `json:"final_size_gb"`
	FirstScalingYear int              `json:"first_scaling_year,omitempty"`
}

// ModelComparison runs the same forecast under every growth curve.
type ModelComparison struct {
	BaseSizeGB       float64         `json:"base_size_gb"`
	AnnualGrowthRate float64         `json:"annual_growth_rate"`
	ProjectionYears  int             `json:"projection_years"`
	SelectedModel    GrowthModelKind `json:"selected_model"`
	Forecasts        []ModelForecast `json:"forecasts"`
}
