// ABOUTME: HTTP client for the Graph Sizing Analyzer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markalston/graph-sizing-analyzer/models"
)

// Client is the API client for the sizing backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// CalculateSizing calls POST /api/v1/sizing
func (c *Client) CalculateSizing(ctx context.Context, input *models.SizingInput) (*models.SizingResult, error) {
	var result models.SizingResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/sizing", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Forecast calls POST /api/v1/forecast
func (c *Client) Forecast(ctx context.Context, input *models.ForecastInput) (*models.ForecastResult, error) {
	var result models.ForecastResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/forecast", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompareForecast calls POST /api/v1/forecast/compare
func (c *Client) CompareForecast(ctx context.Context, input *models.ForecastInput) (*models.ModelComparison, error) {
	var result models.ModelComparison
	if err := c.do(ctx, http.MethodPost, "/api/v1/forecast/compare", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GrowthModels calls GET /api/v1/growth-models
func (c *Client) GrowthModels(ctx context.Context) (*models.GrowthModelCatalog, error) {
	var catalog models.GrowthModelCatalog
	if err := c.do(ctx, http.MethodGet, "/api/v1/growth-models", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// do sends an optional JSON body and decodes a 200 response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s (%s)", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
