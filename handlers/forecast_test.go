package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markalston/graph-sizing-analyzer/metrics"
	"github.com/markalston/graph-sizing-analyzer/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestForecast_CompoundDefault(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{"base_size_gb": 100, "base_memory_gb": 16, "base_cores": 4, "annual_growth_rate": 10}`
	w := postJSON(t, h.Forecast, "/api/v1/forecast", body)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ForecastResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.GrowthModelUsed != "CompoundGrowthModel" {
		t.Errorf("Expected CompoundGrowthModel, got %s", resp.GrowthModelUsed)
	}
	if len(resp.Projections) != 3 {
		t.Fatalf("Expected 3 default projection years, got %d", len(resp.Projections))
	}

	year1 := resp.Projections[0]
	if year1.TotalSizeGB != 110 || year1.RecommendedMemoryGB != 18 || year1.RecommendedCores != 4 {
		t.Errorf("Unexpected year 1: %+v", year1)
	}
	if year1.ScalingNeeded {
		t.Error("Expected no scaling in year 1")
	}
	if !resp.Projections[1].ScalingNeeded {
		t.Error("Expected scaling in year 2 once memory passes 120% of base")
	}
}

func TestForecast_UnknownWorkload(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{"base_size_gb": 100, "base_memory_gb": 16, "base_cores": 4, "workloads": ["quantum"]}`
	w := postJSON(t, h.Forecast, "/api/v1/forecast", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected code 422 in body, got %d", resp.Code)
	}
}

func TestForecast_NegativeBase(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := postJSON(t, h.Forecast, "/api/v1/forecast", `{"base_size_gb": -1, "base_memory_gb": 16, "base_cores": 4}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestForecast_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	h := NewHandler(nil, nil, m)

	body := `{"base_size_gb": 100, "base_memory_gb": 16, "base_cores": 4, "annual_growth_rate": 10}`
	postJSON(t, h.Forecast, "/api/v1/forecast", body)

	if got := testutil.ToFloat64(m.Forecasts.WithLabelValues("CompoundGrowthModel")); got != 1 {
		t.Errorf("Expected 1 forecast recorded, got %v", got)
	}
	if got := testutil.ToFloat64(m.ForecastScalingYears.WithLabelValues("CompoundGrowthModel")); got != 2 {
		t.Errorf("Expected 2 scaling years recorded, got %v", got)
	}
}

func TestCompareForecast_AllModels(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{"base_size_gb": 100, "base_memory_gb": 16, "base_cores": 4, "workloads": ["agentic"], "projection_years": 5}`
	w := postJSON(t, h.CompareForecast, "/api/v1/forecast/compare", body)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ModelComparison
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Forecasts) != len(models.AllGrowthModelKinds) {
		t.Fatalf("Expected %d forecasts, got %d", len(models.AllGrowthModelKinds), len(resp.Forecasts))
	}
	for i, f := range resp.Forecasts {
		if f.GrowthModel != models.AllGrowthModelKinds[i] {
			t.Errorf("Forecast %d: expected %s, got %s", i, models.AllGrowthModelKinds[i], f.GrowthModel)
		}
		if len(f.Projections) != 5 {
			t.Errorf("Forecast %s: expected 5 years, got %d", f.GrowthModel, len(f.Projections))
		}
	}
	if resp.SelectedModel != models.GrowthExponentialWithVector {
		t.Errorf("Expected agentic to select exponential_with_vector, got %s", resp.SelectedModel)
	}
	if resp.AnnualGrowthRate != 25 {
		t.Errorf("Expected agentic default rate 25, got %v", resp.AnnualGrowthRate)
	}
}

func TestGrowthModels_Catalog(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.GrowthModels(w, httptest.NewRequest("GET", "/api/v1/growth-models", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp models.GrowthModelCatalog
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.DefaultModel != models.GrowthCompound {
		t.Errorf("Expected compound default, got %s", resp.DefaultModel)
	}
	if len(resp.Domains) != len(models.AllDomains) {
		t.Errorf("Expected %d domains, got %d", len(models.AllDomains), len(resp.Domains))
	}
}
