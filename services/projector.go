// ABOUTME: Multi-year growth projector for storage, memory, and cores
// ABOUTME: Folds a growth curve over the projection horizon and flags years needing scaling

package services

import (
	"math"

	"github.com/markalston/graph-sizing-analyzer/models"
)

// ProjectorConfig holds the scaling thresholds and the core scaling curve.
type ProjectorConfig struct {
	// StorageScalingThreshold flags a year once storage exceeds base × (1 + threshold).
	StorageScalingThreshold float64
	// ResourceScalingThreshold flags a year once memory or cores exceed base × (1 + threshold).
	ResourceScalingThreshold float64
	// CoreScalingExponent shapes core growth: cores track (size ratio)^exponent.
	CoreScalingExponent float64
}

// DefaultProjectorConfig returns the standard thresholds (50% storage, 20% resources)
// and square-root core scaling.
func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{
		StorageScalingThreshold:  0.5,
		ResourceScalingThreshold: 0.2,
		CoreScalingExponent:      0.5,
	}
}

// ProjectionInput is a validated forecast request with defaults applied.
type ProjectionInput struct {
	BaseSizeGB                 float64
	BaseMemoryGB               int
	BaseCores                  int
	AnnualGrowthRate           float64
	ProjectionYears            int
	Workloads                  []string
	Domain                     string
	MemoryToStorageRatio       *float64
	GrowthModel                models.GrowthModelKind
	CarryingCapacityMultiplier float64
}

// GrowthProjector turns a base sizing into per-year projections. It holds
// only configuration, so a single instance is safe for concurrent use.
type GrowthProjector struct {
	cfg ProjectorConfig
}

// NewGrowthProjector creates a projector. Zero config fields take defaults.
func NewGrowthProjector(cfg ProjectorConfig) *GrowthProjector {
	def := DefaultProjectorConfig()
	if cfg.StorageScalingThreshold <= 0 {
		cfg.StorageScalingThreshold = def.StorageScalingThreshold
	}
	if cfg.ResourceScalingThreshold <= 0 {
		cfg.ResourceScalingThreshold = def.ResourceScalingThreshold
	}
	if cfg.CoreScalingExponent <= 0 {
		cfg.CoreScalingExponent = def.CoreScalingExponent
	}
	return &GrowthProjector{cfg: cfg}
}

// Config returns the projector's effective configuration.
func (p *GrowthProjector) Config() ProjectorConfig {
	return p.cfg
}

// ResolveModel picks the curve for a request. An explicit growth model wins,
// then workloads, then domain, then CompoundGrowth.
func ResolveModel(in ProjectionInput) (GrowthModel, error) {
	// Tokens are validated even when an explicit model makes them moot.
	selected, err := SelectGrowthModel(in.Workloads, in.Domain)
	if err != nil {
		return nil, err
	}
	if in.GrowthModel == "" {
		return selected, nil
	}
	m, err := NewGrowthModel(models.GrowthModelKind(normalizeToken(string(in.GrowthModel))))
	if err != nil {
		return nil, err
	}
	if logistic, ok := m.(LogisticGrowth); ok {
		logistic.CarryingCapacityMultiplier = in.CarryingCapacityMultiplier
		return logistic, nil
	}
	return m, nil
}

// Project resolves the growth curve once and projects years 1..ProjectionYears.
func (p *GrowthProjector) Project(in ProjectionInput) (models.Projection, error) {
	if in.BaseSizeGB < 0 {
		return models.Projection{}, newValidationError("base_size_gb", "base_size_gb must be non-negative")
	}
	model, err := ResolveModel(in)
	if err != nil {
		return models.Projection{}, err
	}
	return p.ProjectWith(model, in), nil
}

// ProjectWith projects using an already-resolved growth curve.
func (p *GrowthProjector) ProjectWith(model GrowthModel, in ProjectionInput) models.Projection {
	years := make([]models.ProjectionYear, 0, in.ProjectionYears)
	prevCores := in.BaseCores

	for year := 1; year <= in.ProjectionYears; year++ {
		total := model.Calculate(in.BaseSizeGB, in.AnnualGrowthRate, year)
		memory := p.projectMemory(in, total)
		cores := p.projectCores(in, total, prevCores)
		prevCores = cores

		years = append(years, models.ProjectionYear{
			Year:                year,
			TotalSizeGB:         round2(total),
			RecommendedMemoryGB: memory,
			RecommendedCores:    cores,
			ScalingNeeded:       p.scalingNeeded(in, total, memory, cores),
		})
	}

	return models.Projection{
		Years:           years,
		GrowthModel:     model.Kind(),
		GrowthModelName: model.Name(),
	}
}

// growthRatio is how many times larger the projected store is than the base.
func growthRatio(base, total float64) float64 {
	if base <= 0 {
		return 1
	}
	return total / base
}

func (p *GrowthProjector) projectMemory(in ProjectionInput, total float64) int {
	var memory int
	if in.MemoryToStorageRatio != nil && *in.MemoryToStorageRatio > 0 {
		memory = toUnits(ceilGB(total / *in.MemoryToStorageRatio))
	} else {
		memory = toUnits(ceilGB(float64(in.BaseMemoryGB) * growthRatio(in.BaseSizeGB, total)))
	}
	return max(memory, in.BaseMemoryGB)
}

// projectCores never drops below the base or the previous year.
func (p *GrowthProjector) projectCores(in ProjectionInput, total float64, prevCores int) int {
	scaled := float64(in.BaseCores) * math.Pow(growthRatio(in.BaseSizeGB, total), p.cfg.CoreScalingExponent)
	return max(toUnits(floorTolerant(scaled)), in.BaseCores, prevCores)
}

func (p *GrowthProjector) scalingNeeded(in ProjectionInput, total float64, memory, cores int) bool {
	if total > in.BaseSizeGB*(1+p.cfg.StorageScalingThreshold) {
		return true
	}
	resourceFactor := 1 + p.cfg.ResourceScalingThreshold
	if float64(memory) > float64(in.BaseMemoryGB)*resourceFactor {
		return true
	}
	return float64(cores) > float64(in.BaseCores)*resourceFactor
}
