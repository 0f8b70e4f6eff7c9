// ABOUTME: Storage sizing calculator for property-graph databases
// ABOUTME: Converts node/relationship/property/vector counts into GB, memory, and vCPUs

package services

import (
	"math"

	"github.com/markalston/graph-sizing-analyzer/models"
)

// Record sizes from the graph database sizing sheet.
const (
	bytesPerNode          = 19
	bytesPerRelationship  = 37
	bytesPerProperty      = 41
	bytesPerLargeProperty = 128 // properties of 128 bytes or more
	bytesPerGB            = 1024 * 1024 * 1024

	bytesPerVectorDimension = 4 // float32
	quantizationReduction   = 4 // int8 instead of float32

	nonVectorIndexOverhead = 0.15
	osBaseSizeGB           = 2.0
	minMemoryGB            = 2

	// vcpuCapacityThresholdGB is the store size one vCPU can serve; larger
	// stores get one vCPU per threshold's worth of data.
	vcpuCapacityThresholdGB = 64.0
	vcpusPerConcurrentUser  = 2

	// maxResourceUnits caps recommended memory (GB) and cores so runaway
	// projections saturate instead of overflowing int.
	maxResourceUnits = math.MaxInt32
)

// calculatorTypeName is reported in sizing metadata.
const calculatorTypeName = "Neo4jSizingCalculator"

// SizingCalculator computes storage and resource estimates. It is stateless.
type SizingCalculator struct{}

// NewSizingCalculator creates a new sizing calculator
func NewSizingCalculator() *SizingCalculator {
	return &SizingCalculator{}
}

// Type returns the calculator name reported in result metadata.
func (c *SizingCalculator) Type() string {
	return calculatorTypeName
}

// Calculate assumes a validated input.
func (c *SizingCalculator) Calculate(in models.SizingInput) models.SizingCalculations {
	nodes := float64(in.NumNodes)
	rels := float64(in.NumRelationships)

	nodePropBytes := nodes * float64(in.AvgPropertiesPerNode) * bytesPerProperty
	relPropBytes := rels * float64(in.AvgPropertiesPerRelationship) * bytesPerProperty
	largeNodeBytes := float64(in.TotalNumLargeNodeProperties) * bytesPerLargeProperty
	largeRelBytes := float64(in.TotalNumLargeReltypeProperties) * bytesPerLargeProperty

	nodesGB := (nodes*bytesPerNode + nodePropBytes + largeNodeBytes) / bytesPerGB
	relsGB := (rels*bytesPerRelationship + relPropBytes + largeRelBytes) / bytesPerGB
	propsGB := (nodePropBytes + relPropBytes + largeNodeBytes + largeRelBytes) / bytesPerGB

	withoutIndexes := nodesGB + relsGB
	nonVectorIndexes := ceilGB(withoutIndexes * nonVectorIndexOverhead)
	vectorIndexes := vectorIndexSizeGB(in)

	total := math.Max(withoutIndexes+nonVectorIndexes+vectorIndexes, osBaseSizeGB)

	ratio := 1.0
	if in.MemoryToStorageRatio != nil && *in.MemoryToStorageRatio > 0 {
		ratio = *in.MemoryToStorageRatio
	}
	memory := toUnits(ceilGB(total / ratio))
	if memory < minMemoryGB {
		memory = minMemoryGB
	}

	return models.SizingCalculations{
		SizeOfNodesGB:             round2(nodesGB),
		SizeOfRelationshipsGB:     round2(relsGB),
		SizeOfPropertiesGB:        round2(propsGB),
		SizeOfVectorIndexesGB:     round2(vectorIndexes),
		TotalSizeWithoutIndexesGB: round2(withoutIndexes),
		SizeOfNonVectorIndexesGB:  round2(nonVectorIndexes),
		TotalSizeWithIndexesGB:    round2(total),
		RecommendedMemoryGB:       memory,
		RecommendedVCPUs:          recommendedVCPUs(total, in.ConcurrentEndUsers),
	}
}

// vectorIndexSizeGB is zero unless dimensions, index count, and coverage are all positive.
func vectorIndexSizeGB(in models.SizingInput) float64 {
	dims := in.Dimensions()
	if dims <= 0 || in.NumberOfVectorIndexes <= 0 || in.PercentageNodesWithVectorProps <= 0 {
		return 0
	}
	bytesPerDim := float64(bytesPerVectorDimension)
	if in.QuantizationEnabled {
		bytesPerDim /= quantizationReduction
	}
	vectorNodes := float64(in.NumNodes) * in.PercentageNodesWithVectorProps / 100
	bytes := vectorNodes * float64(dims) * bytesPerDim * float64(in.NumberOfVectorIndexes)
	return ceilGB(bytes / bytesPerGB)
}

func recommendedVCPUs(totalGB float64, concurrentUsers *int) int {
	vcpus := 1
	if totalGB > vcpuCapacityThresholdGB {
		vcpus = toUnits(ceilGB(totalGB / vcpuCapacityThresholdGB))
	}
	if concurrentUsers != nil && *concurrentUsers > 0 {
		vcpus = max(vcpus, min(*concurrentUsers, maxResourceUnits/vcpusPerConcurrentUser)*vcpusPerConcurrentUser)
	}
	return vcpus
}

// floatTolerance absorbs representation error before rounding to whole units,
// so 100 * 1.1 ceils to 110 rather than 111.
const floatTolerance = 1e-9

func ceilGB(v float64) float64 {
	c := math.Ceil(v - floatTolerance)
	if c <= 0 {
		return 0
	}
	return c
}

func floorTolerant(v float64) float64 {
	return math.Floor(v + floatTolerance)
}

// toUnits converts a whole-unit float to int, saturating at maxResourceUnits.
func toUnits(v float64) int {
	if v >= maxResourceUnits {
		return maxResourceUnits
	}
	return int(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
