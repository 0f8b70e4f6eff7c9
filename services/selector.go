// ABOUTME: Chooses a growth curve from workload and domain hints
// ABOUTME: Table-driven: domain -> workloads -> fastest-growing model

package services

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/markalston/graph-sizing-analyzer/models"
)

const defaultGrowthRate = 10.0

// workloadModels maps each workload to the curve that describes its growth.
var workloadModels = map[models.WorkloadType]models.GrowthModelKind{
	models.WorkloadTransactional:    models.GrowthLogLinear,
	models.WorkloadAgentic:          models.GrowthExponentialWithVector,
	models.WorkloadAnalytical:       models.GrowthCompound,
	models.WorkloadGraphDataScience: models.GrowthLinear,
}

// workloadRank orders workloads by how fast they grow. Higher wins.
var workloadRank = map[models.WorkloadType]int{
	models.WorkloadGraphDataScience: 0,
	models.WorkloadAnalytical:       1,
	models.WorkloadTransactional:    2,
	models.WorkloadAgentic:          3,
}

// workloadGrowthRates are the annual rates assumed when a forecast omits one.
var workloadGrowthRates = map[models.WorkloadType]float64{
	models.WorkloadGraphDataScience: 3,
	models.WorkloadAnalytical:       5,
	models.WorkloadTransactional:    20,
	models.WorkloadAgentic:          25,
}

// domainWorkloads are the workloads implied by each domain.
var domainWorkloads = map[models.GraphDomain][]models.WorkloadType{
	models.DomainCustomer:    {models.WorkloadTransactional, models.WorkloadAnalytical},
	models.DomainProduct:     {models.WorkloadAnalytical},
	models.DomainEmployee:    {models.WorkloadAnalytical},
	models.DomainSupplier:    {models.WorkloadAnalytical},
	models.DomainTransaction: {models.WorkloadTransactional},
	models.DomainProcess:     {models.WorkloadAnalytical},
	models.DomainSecurity:    {models.WorkloadTransactional, models.WorkloadAnalytical},
	models.DomainGeneric:     {},
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseWorkloads converts workload tokens, rejecting unknown ones.
func ParseWorkloads(tokens []string) ([]models.WorkloadType, error) {
	out := make([]models.WorkloadType, 0, len(tokens))
	for _, tok := range tokens {
		w := models.WorkloadType(normalizeToken(tok))
		if _, ok := workloadModels[w]; !ok {
			return nil, &ConfigurationError{Kind: "workload", Token: tok}
		}
		out = append(out, w)
	}
	return out, nil
}

// ParseDomain converts a domain token. An empty token yields an empty domain.
func ParseDomain(token string) (models.GraphDomain, error) {
	if normalizeToken(token) == "" {
		return "", nil
	}
	d := models.GraphDomain(normalizeToken(token))
	if _, ok := domainWorkloads[d]; !ok {
		return "", &ConfigurationError{Kind: "domain", Token: token}
	}
	return d, nil
}

// ResolveWorkloads applies precedence: explicit workloads win over the
// domain's defaults. Both are validated.
func ResolveWorkloads(workloads []string, domain string) ([]models.WorkloadType, error) {
	parsed, err := ParseWorkloads(workloads)
	if err != nil {
		return nil, err
	}
	d, err := ParseDomain(domain)
	if err != nil {
		return nil, err
	}
	if len(parsed) > 0 {
		return parsed, nil
	}
	if d == "" {
		return nil, nil
	}
	return slices.Clone(domainWorkloads[d]), nil
}

// fastestWorkload returns the highest-ranked workload, or false for an empty set.
func fastestWorkload(workloads []models.WorkloadType) (models.WorkloadType, bool) {
	if len(workloads) == 0 {
		return "", false
	}
	best := workloads[0]
	for _, w := range workloads[1:] {
		if workloadRank[w] > workloadRank[best] {
			best = w
		}
	}
	return best, true
}

// SelectGrowthModel picks the curve for the fastest-growing workload in
// play. With no workloads and no domain (or the generic domain) it returns
// CompoundGrowth.
func SelectGrowthModel(workloads []string, domain string) (GrowthModel, error) {
	resolved, err := ResolveWorkloads(workloads, domain)
	if err != nil {
		return nil, err
	}
	return modelForWorkloads(resolved), nil
}

func modelForWorkloads(workloads []models.WorkloadType) GrowthModel {
	fastest, ok := fastestWorkload(workloads)
	if !ok {
		return CompoundGrowth{}
	}
	// Every workload has a table entry, so the lookup cannot fail.
	m, _ := NewGrowthModel(workloadModels[fastest])
	slog.Debug("Growth model selected", "workload", fastest, "model", describeModel(m))
	return m
}

// DefaultGrowthRate is the annual rate assumed for the fastest workload,
// or 10% when no workload applies.
func DefaultGrowthRate(workloads []models.WorkloadType) float64 {
	fastest, ok := fastestWorkload(workloads)
	if !ok {
		return defaultGrowthRate
	}
	return workloadGrowthRates[fastest]
}

// Catalog describes the selection tables for clients.
func Catalog() models.GrowthModelCatalog {
	cat := models.GrowthModelCatalog{
		GrowthModels: slices.Clone(models.AllGrowthModelKinds),
		DefaultModel: models.GrowthCompound,
	}
	for _, w := range models.AllWorkloads {
		cat.Workloads = append(cat.Workloads, models.WorkloadInfo{
			Workload:          w,
			Rank:              workloadRank[w],
			GrowthModel:       workloadModels[w],
			DefaultGrowthRate: workloadGrowthRates[w],
		})
	}
	for _, d := range models.AllDomains {
		ws := append([]models.WorkloadType{}, domainWorkloads[d]...)
		cat.Domains = append(cat.Domains, models.DomainInfo{Domain: d, Workloads: ws})
	}
	return cat
}
