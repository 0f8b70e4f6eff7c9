// ABOUTME: Graph domain and workload vocabularies used to pick growth curves
// ABOUTME: Tokens are lowercase strings matching the JSON wire format

package models

// GraphDomain is the business area a graph models. Each domain implies a
// default set of workloads when none are given explicitly.
type GraphDomain string

const (
	DomainCustomer    GraphDomain = "customer"
	DomainProduct     GraphDomain = "product"
	DomainEmployee    GraphDomain = "employee"
	DomainSupplier    GraphDomain = "supplier"
	DomainTransaction GraphDomain = "transaction"
	DomainProcess     GraphDomain = "process"
	DomainSecurity    GraphDomain = "security"
	DomainGeneric     GraphDomain = "generic"
)

// AllDomains lists every known domain in display order.
var AllDomains = []GraphDomain{
	DomainCustomer,
	DomainProduct,
	DomainEmployee,
	DomainSupplier,
	DomainTransaction,
	DomainProcess,
	DomainSecurity,
	DomainGeneric,
}

// WorkloadType describes how a graph is used.
type WorkloadType string

const (
	WorkloadTransactional    WorkloadType = "transactional"
	WorkloadAgentic          WorkloadType = "agentic"
	WorkloadAnalytical       WorkloadType = "analytical"
	WorkloadGraphDataScience WorkloadType = "graph_data_science"
)

// AllWorkloads lists every known workload, slowest growing first.
var AllWorkloads = []WorkloadType{
	WorkloadGraphDataScience,
	WorkloadAnalytical,
	WorkloadTransactional,
	WorkloadAgentic,
}

// GrowthModelKind identifies one of the growth curve families.
type GrowthModelKind string

const (
	GrowthCompound              GrowthModelKind = "compound"
	GrowthLinear                GrowthModelKind = "linear"
	GrowthLogLinear             GrowthModelKind = "log_linear"
	GrowthLogistic              GrowthModelKind = "logistic"
	GrowthExponentialWithVector GrowthModelKind = "exponential_with_vector"
)

// AllGrowthModelKinds lists every growth curve family.
var AllGrowthModelKinds = []GrowthModelKind{
	GrowthLinear,
	GrowthCompound,
	GrowthLogLinear,
	GrowthExponentialWithVector,
	GrowthLogistic,
}

// WorkloadInfo describes how a workload maps to a growth curve.
type WorkloadInfo struct {
	Workload          WorkloadType    `json:"workload"`
	Rank              int             `json:"rank"`
	GrowthModel       GrowthModelKind `json:"growth_model"`
	DefaultGrowthRate float64         `json:"default_growth_rate"`
}

// DomainInfo describes the workloads a domain implies.
type DomainInfo struct {
	Domain    GraphDomain    `json:"domain"`
	Workloads []WorkloadType `json:"workloads"`
}

// GrowthModelCatalog is the response for the growth model listing.
type GrowthModelCatalog struct {
	Workloads    []WorkloadInfo    `json:"workloads"`
	Domains      []DomainInfo      `json:"domains"`
	GrowthModels []GrowthModelKind `json:"growth_models"`
	DefaultModel GrowthModelKind   `json:"default_model"`
}
