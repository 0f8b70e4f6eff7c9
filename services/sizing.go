// ABOUTME: Sizing service orchestrating validation, calculation, and forecasting
// ABOUTME: Entry point used by the HTTP handlers, MCP tools, and CLI backend

package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/graph-sizing-analyzer/models"
)

const defaultProjectionYears = 3

// SizingService validates requests and delegates to the calculator and projector.
type SizingService struct {
	calculator *SizingCalculator
	projector  *GrowthProjector
}

// NewSizingService creates a service. A nil projector uses the default configuration.
func NewSizingService(projector *GrowthProjector) *SizingService {
	if projector == nil {
		projector = NewGrowthProjector(DefaultProjectorConfig())
	}
	return &SizingService{
		calculator: NewSizingCalculator(),
		projector:  projector,
	}
}

// CalculateSizing returns the current storage, memory, and vCPU estimate.
func (s *SizingService) CalculateSizing(in models.SizingInput) (models.SizingResult, error) {
	if err := ValidateSizingInput(in); err != nil {
		return models.SizingResult{}, err
	}

	calc := s.calculator.Calculate(in)

	cfg := map[string]interface{}{
		"quantization_enabled": in.QuantizationEnabled,
	}
	if dims := in.Dimensions(); dims > 0 {
		cfg["vector_index_dimensions"] = dims
		cfg["number_of_vector_indexes"] = in.NumberOfVectorIndexes
		cfg["percentage_nodes_with_vector_properties"] = in.PercentageNodesWithVectorProps
	}
	if in.MemoryToStorageRatio != nil {
		cfg["memory_to_storage_ratio"] = *in.MemoryToStorageRatio
	}
	if in.ConcurrentEndUsers != nil {
		cfg["concurrent_end_users"] = *in.ConcurrentEndUsers
	}

	return models.SizingResult{
		Calculations: calc,
		Metadata: models.SizingMetadata{
			CalculatorType:    s.calculator.Type(),
			CalculationConfig: cfg,
		},
	}, nil
}

// ForecastSizing projects a base sizing forward under the selected growth curve.
func (s *SizingService) ForecastSizing(in models.ForecastInput) (models.ForecastResult, error) {
	pin, err := s.prepare(in)
	if err != nil {
		return models.ForecastResult{}, err
	}

	projection, err := s.projector.Project(pin)
	if err != nil {
		return models.ForecastResult{}, err
	}

	slog.Debug("Forecast projected",
		"growth_model", projection.GrowthModel,
		"years", pin.ProjectionYears,
		"annual_growth_rate", pin.AnnualGrowthRate,
	)

	return models.ForecastResult{
		BaseSizeGB:       in.BaseSizeGB,
		BaseMemoryGB:     in.BaseMemoryGB,
		BaseCores:        in.BaseCores,
		AnnualGrowthRate: pin.AnnualGrowthRate,
		Projections:      projection.Years,
		GrowthModelUsed:  projection.GrowthModelName,
	}, nil
}

// CompareGrowthModels runs the same forecast under every growth curve so the
// selected curve can be weighed against the alternatives.
func (s *SizingService) CompareGrowthModels(ctx context.Context, in models.ForecastInput) (models.ModelComparison, error) {
	pin, err := s.prepare(in)
	if err != nil {
		return models.ModelComparison{}, err
	}
	selected, err := ResolveModel(pin)
	if err != nil {
		return models.ModelComparison{}, err
	}

	kinds := models.AllGrowthModelKinds
	forecasts := make([]models.ModelForecast, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			model, err := NewGrowthModel(kind)
			if err != nil {
				return err
			}
			if logistic, ok := model.(LogisticGrowth); ok {
				logistic.CarryingCapacityMultiplier = pin.CarryingCapacityMultiplier
				model = logistic
			}
			projection := s.projector.ProjectWith(model, pin)
			forecasts[i] = modelForecast(projection)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ModelComparison{}, err
	}

	return models.ModelComparison{
		BaseSizeGB:       pin.BaseSizeGB,
		AnnualGrowthRate: pin.AnnualGrowthRate,
		ProjectionYears:  pin.ProjectionYears,
		SelectedModel:    selected.Kind(),
		Forecasts:        forecasts,
	}, nil
}

func modelForecast(p models.Projection) models.ModelForecast {
	f := models.ModelForecast{
		GrowthModel:      p.GrowthModel,
		Projections:      p.Years,
		FirstScalingYear: models.FirstScalingYear(p.Years),
	}
	if n := len(p.Years); n > 0 {
		f.FinalSizeGB = p.Years[n-1].TotalSizeGB
	}
	return f
}

// prepare validates a forecast request and fills in the defaults: three
// years, and a growth rate matched to the fastest workload in play.
func (s *SizingService) prepare(in models.ForecastInput) (ProjectionInput, error) {
	if err := ValidateForecastInput(in); err != nil {
		return ProjectionInput{}, err
	}
	workloads, err := ResolveWorkloads(in.Workloads, in.Domain)
	if err != nil {
		return ProjectionInput{}, err
	}

	rate := DefaultGrowthRate(workloads)
	if in.AnnualGrowthRate != nil {
		rate = *in.AnnualGrowthRate
	}
	years := defaultProjectionYears
	if in.ProjectionYears != nil {
		years = *in.ProjectionYears
	}

	return ProjectionInput{
		BaseSizeGB:                 in.BaseSizeGB,
		BaseMemoryGB:               in.BaseMemoryGB,
		BaseCores:                  in.BaseCores,
		AnnualGrowthRate:           rate,
		ProjectionYears:            years,
		Workloads:                  in.Workloads,
		Domain:                     in.Domain,
		MemoryToStorageRatio:       in.MemoryToStorageRatio,
		GrowthModel:                in.GrowthModel,
		CarryingCapacityMultiplier: in.CarryingCapacityMultiplier,
	}, nil
}
