// ABOUTME: Data models for point-in-time database sizing
// ABOUTME: Graph statistics in, storage/memory/vCPU breakdown out

package models

// SizingInput holds the structural statistics of a graph.
// Optional fields are pointers so that "not supplied" differs from zero.
type SizingInput struct {
	NumNodes                       int64    `json:"num_nodes"`
	NumRelationships               int64    `json:"num_relationships"`
	AvgPropertiesPerNode           int      `json:"avg_properties_per_node"`
	AvgPropertiesPerRelationship   int      `json:"avg_properties_per_relationship"`
	TotalNumLargeNodeProperties    int64    `json:"total_num_large_node_properties,omitempty"`
	TotalNumLargeReltypeProperties int64    `json:"total_num_large_reltype_properties,omitempty"`
	VectorIndexDimensions          *int     `json:"vector_index_dimensions,omitempty"`
	PercentageNodesWithVectorProps float64  `json:"percentage_nodes_with_vector_properties,omitempty"`
	NumberOfVectorIndexes          int      `json:"number_of_vector_indexes,omitempty"`
	QuantizationEnabled            bool     `json:"quantization_enabled,omitempty"`
	MemoryToStorageRatio           *float64 `json:"memory_to_storage_ratio,omitempty"`
	ConcurrentEndUsers             *int     `json:"concurrent_end_users,omitempty"`
}

// Dimensions returns the vector dimensions, or 0 when none were given.
func (in SizingInput) Dimensions() int {
	if in.VectorIndexDimensions == nil {
		return 0
	}
	return *in.VectorIndexDimensions
}

// SizingCalculations is the storage breakdown. GB figures are rounded to
// two decimals; properties are reported separately but already counted in
// the node and relationship sizes.
type SizingCalculations struct {
	SizeOfNodesGB             float64 `json:"size_of_nodes_gb"`
	SizeOfRelationshipsGB     float64 `json:"size_of_relationships_gb"`
	SizeOfPropertiesGB        float64 `json:"size_of_properties_gb"`
	SizeOfVectorIndexesGB     float64 `json:"size_of_vector_indexes_gb"`
	TotalSizeWithoutIndexesGB float64 `json:"total_size_without_indexes_gb"`
	SizeOfNonVectorIndexesGB  float64 `json:"size_of_non_vector_indexes_gb"`
	TotalSizeWithIndexesGB    float64 `json:"total_size_with_indexes_gb"`
	RecommendedMemoryGB       int     `json:"recommended_memory_gb"`
	RecommendedVCPUs          int     `json:"recommended_vcpus"`
}

// SizingMetadata records which calculator ran and the inputs that shaped it.
type SizingMetadata struct {
	CalculatorType    string                 `json:"calculator_type"`
	CalculationConfig map[string]interface{} `json:"calculation_config"`
}

// SizingResult is the response for a sizing calculation.
type SizingResult struct {
	Calculations SizingCalculations `json:"calculations"`
	Metadata     SizingMetadata     `json:"metadata"`
}

// GraphStatistics is what the statistics collector reads from a live graph.
type GraphStatistics struct {
	NumNodes                     int64   `json:"num_nodes"`
	NumRelationships             int64   `json:"num_relationships"`
	AvgPropertiesPerNode         float64 `json:"avg_properties_per_node"`
	AvgPropertiesPerRelationship float64 `json:"avg_properties_per_relationship"`
	NumberOfVectorIndexes        int     `json:"number_of_vector_indexes"`
	SampleSize                   int     `json:"sample_size"`
	Database                     string  `json:"database,omitempty"`
	Cached                       bool    `json:"cached"`
}
