// ABOUTME: Growth curve families used to project database size over time
// ABOUTME: Each curve maps (base, annual rate %, year) to a projected size

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graph-sizing-analyzer/models"
)

const (
	defaultCarryingCapacityMultiplier = 2.0
	defaultVectorGrowthMultiplier     = 1.2
	defaultVectorProportion           = 0.3
)

// GrowthModel projects a size forward by whole years. rate is an annual
// percentage (10 means 10%). Year 0 always returns base.
type GrowthModel interface {
	Kind() models.GrowthModelKind
	Name() string
	Calculate(base, rate float64, year int) float64
}

// CompoundGrowth grows by a fixed percentage of the previous year.
type CompoundGrowth struct{}

func (CompoundGrowth) Kind() models.GrowthModelKind { return models.GrowthCompound }
func (CompoundGrowth) Name() string                 { return "CompoundGrowthModel" }

func (CompoundGrowth) Calculate(base, rate float64, year int) float64 {
	return base * math.Pow(1+rate/100, float64(year))
}

// LinearGrowth adds a fixed percentage of the base every year.
type LinearGrowth struct{}

func (LinearGrowth) Kind() models.GrowthModelKind { return models.GrowthLinear }
func (LinearGrowth) Name() string                 { return "LinearGrowthModel" }

func (LinearGrowth) Calculate(base, rate float64, year int) float64 {
	return base * (1 + rate/100*float64(year))
}

// LogLinearGrowth compounds continuously, which outpaces yearly compounding
// at the same rate. Used for transactional graphs where writes accumulate.
type LogLinearGrowth struct{}

func (LogLinearGrowth) Kind() models.GrowthModelKind { return models.GrowthLogLinear }
func (LogLinearGrowth) Name() string                 { return "LogLinearGrowthModel" }

func (LogLinearGrowth) Calculate(base, rate float64, year int) float64 {
	return base * math.Exp(rate/100*float64(year))
}

// LogisticGrowth approaches a ceiling of base × CarryingCapacityMultiplier.
// A zero multiplier means the default of 2.
type LogisticGrowth struct {
	CarryingCapacityMultiplier float64
}

func (LogisticGrowth) Kind() models.GrowthModelKind { return models.GrowthLogistic }
func (LogisticGrowth) Name() string                 { return "LogisticGrowthModel" }

func (m LogisticGrowth) Calculate(base, rate float64, year int) float64 {
	if base <= 0 {
		return 0
	}
	multiplier := m.CarryingCapacityMultiplier
	if multiplier <= 0 {
		multiplier = defaultCarryingCapacityMultiplier
	}
	capacity := base * multiplier
	k := rate / 100
	return capacity / (1 + ((capacity-base)/base)*math.Exp(-k*float64(year)))
}

// ExponentialWithVectorGrowth compounds continuously and additionally grows a
// vector-bearing share of the data by VectorGrowthMultiplier per year.
// Zero fields take the defaults (multiplier 1.2, share 0.3).
type ExponentialWithVectorGrowth struct {
	VectorGrowthMultiplier float64
	VectorProportion       float64
}

func (ExponentialWithVectorGrowth) Kind() models.GrowthModelKind {
	return models.GrowthExponentialWithVector
}

func (ExponentialWithVectorGrowth) Name() string { return "ExponentialWithVectorGrowthModel" }

func (m ExponentialWithVectorGrowth) Calculate(base, rate float64, year int) float64 {
	multiplier := m.VectorGrowthMultiplier
	if multiplier <= 0 {
		multiplier = defaultVectorGrowthMultiplier
	}
	share := m.VectorProportion
	if share <= 0 || share > 1 {
		share = defaultVectorProportion
	}
	y := float64(year)
	vectorFactor := (1 - share) + share*math.Pow(multiplier, y)
	return base * math.Exp(rate/100*y) * vectorFactor
}

// NewGrowthModel returns the model for a kind with default shape parameters.
func NewGrowthModel(kind models.GrowthModelKind) (GrowthModel, error) {
	switch kind {
	case models.GrowthCompound:
		return CompoundGrowth{}, nil
	case models.GrowthLinear:
		return LinearGrowth{}, nil
	case models.GrowthLogLinear:
		return LogLinearGrowth{}, nil
	case models.GrowthLogistic:
		return LogisticGrowth{}, nil
	case models.GrowthExponentialWithVector:
		return ExponentialWithVectorGrowth{}, nil
	default:
		return nil, &ConfigurationError{Kind: "growth_model", Token: string(kind)}
	}
}

// describeModel is used in debug logs.
func describeModel(m GrowthModel) string {
	return fmt.Sprintf("%s (%s)", m.Name(), m.Kind())
}
