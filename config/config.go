// ABOUTME: Configuration loader for the sizing service
// ABOUTME: Loads settings from environment variables (optionally seeded from .env) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	LogLevel           string   // debug, info, warn, error (default: info)
	LogFormat          string   // text, json (default: text)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitDefault int  // Requests per minute per client (default: 100)

	// Surfaces
	MCPEnabled     bool   // Mount MCP streamable HTTP handler at /mcp (default: true)
	MCPToolPrefix  string // Optional namespace prefix for MCP tool names
	MetricsEnabled bool   // Expose Prometheus metrics at /metrics (default: true)

	// Forecasting
	CoreScalingExponent      float64 // cores grow with (size ratio)^exponent (default: 0.5)
	StorageScalingThreshold  float64 // storage growth that flags scaling (default: 0.5)
	ResourceScalingThreshold float64 // memory/core growth that flags scaling (default: 0.2)

	// Neo4j statistics source (optional)
	Neo4jURI             string
	Neo4jUsername        string
	Neo4jPassword        string
	Neo4jDatabase        string
	GraphStatsCacheTTL   int // seconds, default 300 (5 min)
	GraphStatsSampleSize int // nodes/relationships sampled for property averages
}

// Neo4jConfigured returns true if a statistics source connection is set
func (c *Config) Neo4jConfigured() bool {
	return c.Neo4jURI != "" && c.Neo4jUsername != ""
}

func Load() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		MCPEnabled:     getEnvBool("MCP_ENABLED", true),
		MCPToolPrefix:  os.Getenv("MCP_TOOL_PREFIX"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		CoreScalingExponent:      getEnvFloat("FORECAST_CORE_SCALING_EXPONENT", 0.5),
		StorageScalingThreshold:  getEnvFloat("FORECAST_STORAGE_SCALING_THRESHOLD", 0.5),
		ResourceScalingThreshold: getEnvFloat("FORECAST_RESOURCE_SCALING_THRESHOLD", 0.2),

		Neo4jURI:             os.Getenv("NEO4J_URI"),
		Neo4jUsername:        getEnv("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword:        os.Getenv("NEO4J_PASSWORD"),
		Neo4jDatabase:        getEnv("NEO4J_DATABASE", "neo4j"),
		GraphStatsCacheTTL:   getEnvInt("GRAPH_STATS_CACHE_TTL", 300),
		GraphStatsSampleSize: getEnvInt("GRAPH_STATS_SAMPLE_SIZE", 10000),
	}

	if cfg.RateLimitDefault < 1 || cfg.RateLimitDefault > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT must be between 1 and 10000, got %d", cfg.RateLimitDefault)
	}
	if cfg.CoreScalingExponent <= 0 || cfg.CoreScalingExponent > 1 {
		return nil, fmt.Errorf("FORECAST_CORE_SCALING_EXPONENT must be in (0, 1], got %v", cfg.CoreScalingExponent)
	}
	if cfg.StorageScalingThreshold <= 0 {
		return nil, fmt.Errorf("FORECAST_STORAGE_SCALING_THRESHOLD must be positive, got %v", cfg.StorageScalingThreshold)
	}
	if cfg.ResourceScalingThreshold <= 0 {
		return nil, fmt.Errorf("FORECAST_RESOURCE_SCALING_THRESHOLD must be positive, got %v", cfg.ResourceScalingThreshold)
	}
	if cfg.GraphStatsCacheTTL < 0 {
		return nil, fmt.Errorf("GRAPH_STATS_CACHE_TTL must be non-negative, got %d", cfg.GraphStatsCacheTTL)
	}
	if cfg.GraphStatsSampleSize < 1 {
		return nil, fmt.Errorf("GRAPH_STATS_SAMPLE_SIZE must be at least 1, got %d", cfg.GraphStatsSampleSize)
	}
	if cfg.Neo4jURI != "" && !strings.Contains(cfg.Neo4jURI, "://") {
		return nil, fmt.Errorf("NEO4J_URI must include a scheme (neo4j://, neo4j+s://, bolt://), got %s", cfg.Neo4jURI)
	}

	return cfg, nil
}

// loadDotEnv seeds the environment from path. Variables already set win,
// and a missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
