// ABOUTME: End-to-end tests for the assembled HTTP router
// ABOUTME: Drives sizing, forecasting, CORS, rate limiting, metrics, and MCP through the real middleware chain

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markalston/graph-sizing-analyzer/config"
	"github.com/markalston/graph-sizing-analyzer/handlers"
	"github.com/markalston/graph-sizing-analyzer/metrics"
	"github.com/markalston/graph-sizing-analyzer/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                     "0",
		CORSAllowedOrigins:       []string{"https://app.example.com"},
		RateLimitEnabled:         false,
		RateLimitDefault:         100,
		MCPEnabled:               true,
		MetricsEnabled:           true,
		CoreScalingExponent:      0.5,
		StorageScalingThreshold:  0.5,
		ResourceScalingThreshold: 0.2,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}
	h := handlers.NewHandler(cfg, nil, m)

	srv := httptest.NewServer(newRouter(cfg, h, m))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestE2E_SizingThenForecast(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := post(t, srv.URL+"/api/v1/sizing", models.SizingInput{
		NumNodes:                     100_000_000,
		NumRelationships:             500_000_000,
		AvgPropertiesPerNode:         5,
		AvgPropertiesPerRelationship: 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected sizing 200, got %d", resp.StatusCode)
	}

	var sizing models.SizingResult
	if err := json.NewDecoder(resp.Body).Decode(&sizing); err != nil {
		t.Fatalf("decode sizing: %v", err)
	}
	calc := sizing.Calculations
	if calc.TotalSizeWithIndexesGB <= calc.TotalSizeWithoutIndexesGB {
		t.Errorf("expected indexes to add to the total, got %v <= %v",
			calc.TotalSizeWithIndexesGB, calc.TotalSizeWithoutIndexesGB)
	}
	if calc.RecommendedMemoryGB < 2 {
		t.Errorf("expected memory floor of 2 GB, got %d", calc.RecommendedMemoryGB)
	}

	rate := 20.0
	years := 3
	resp = post(t, srv.URL+"/api/v1/forecast", models.ForecastInput{
		BaseSizeGB:       calc.TotalSizeWithIndexesGB,
		BaseMemoryGB:     calc.RecommendedMemoryGB,
		BaseCores:        calc.RecommendedVCPUs,
		AnnualGrowthRate: &rate,
		ProjectionYears:  &years,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected forecast 200, got %d", resp.StatusCode)
	}

	var forecast models.ForecastResult
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		t.Fatalf("decode forecast: %v", err)
	}
	if len(forecast.Projections) != years {
		t.Fatalf("expected %d projections, got %d", years, len(forecast.Projections))
	}
	if forecast.GrowthModelUsed != "CompoundGrowthModel" {
		t.Errorf("expected CompoundGrowthModel, got %s", forecast.GrowthModelUsed)
	}
	for i := 1; i < len(forecast.Projections); i++ {
		if forecast.Projections[i].TotalSizeGB <= forecast.Projections[i-1].TotalSizeGB {
			t.Errorf("expected year %d to grow past year %d", i+1, i)
		}
	}
}

func TestE2E_ValidationErrorShape(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := post(t, srv.URL+"/api/v1/sizing", map[string]interface{}{
		"num_nodes":                       -1,
		"num_relationships":               0,
		"avg_properties_per_node":         0,
		"avg_properties_per_relationship": 0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Code != http.StatusBadRequest || body.Error == "" {
		t.Errorf("expected populated 400 error body, got %+v", body)
	}
}

func TestE2E_GraphStatisticsUnconfigured(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := http.Get(srv.URL + "/api/v1/graph/statistics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a statistics source, got %d", resp.StatusCode)
	}
}

func TestE2E_CORS(t *testing.T) {
	srv := newTestServer(t, testConfig())

	tests := []struct {
		name       string
		origin     string
		wantHeader string
	}{
		{"allowed origin", "https://app.example.com", "https://app.example.com"},
		{"disallowed origin", "https://evil.example.com", ""},
		{"same origin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected 200, got %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.wantHeader, got)
			}
		})
	}
}

func TestE2E_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/forecast", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("expected POST in allowed methods, got %q", got)
	}
}

func TestE2E_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitDefault = 2
	srv := newTestServer(t, cfg)

	var last int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/api/v1/growth-models")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		last = resp.StatusCode
		if i < 2 && last != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, last)
		}
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected third request to be 429, got %d", last)
	}
}

func TestE2E_MetricsExposed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rate := 10.0
	years := 2
	post(t, srv.URL+"/api/v1/forecast", models.ForecastInput{
		BaseSizeGB:       50,
		BaseMemoryGB:     8,
		BaseCores:        2,
		AnnualGrowthRate: &rate,
		ProjectionYears:  &years,
	})

	// Request counters are observed after the response is written, so poll.
	wants := []string{
		"graph_sizing_forecasts_total",
		"graph_sizing_http_requests_total",
		`path="/api/v1/forecast"`,
	}
	var body string
	for attempt := 0; attempt < 50; attempt++ {
		body = scrapeMetrics(t, srv.URL)
		if containsAll(body, wants) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %s", want)
		}
	}
}

func scrapeMetrics(t *testing.T, baseURL string) string {
	t.Helper()
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func TestE2E_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	srv := newTestServer(t, cfg)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 with metrics disabled, got %d", resp.StatusCode)
	}
}

func TestE2E_MCPOverHTTP(t *testing.T) {
	cfg := testConfig()
	cfg.MCPToolPrefix = "graph"
	srv := newTestServer(t, cfg)

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "e2e-client"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL + "/mcp"}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "graph_calculate_database_sizing",
		Arguments: map[string]any{
			"num_nodes":                       1000,
			"num_relationships":               5000,
			"avg_properties_per_node":         2,
			"avg_properties_per_relationship": 1,
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got tool error: %+v", result.Content)
	}

	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	var sizing models.SizingResult
	if err := json.Unmarshal([]byte(tc.Text), &sizing); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	if sizing.Calculations.RecommendedMemoryGB != 2 {
		t.Errorf("expected memory floor of 2 GB, got %d", sizing.Calculations.RecommendedMemoryGB)
	}
}
