package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitDefault != 100 {
		t.Errorf("Expected rate limiting enabled at 100/min, got %v/%d", cfg.RateLimitEnabled, cfg.RateLimitDefault)
	}
	if !cfg.MCPEnabled || !cfg.MetricsEnabled {
		t.Error("Expected MCP and metrics enabled by default")
	}
	if cfg.CoreScalingExponent != 0.5 {
		t.Errorf("Expected core scaling exponent 0.5, got %v", cfg.CoreScalingExponent)
	}
	if cfg.StorageScalingThreshold != 0.5 || cfg.ResourceScalingThreshold != 0.2 {
		t.Errorf("Expected thresholds 0.5/0.2, got %v/%v", cfg.StorageScalingThreshold, cfg.ResourceScalingThreshold)
	}
	if cfg.GraphStatsCacheTTL != 300 {
		t.Errorf("Expected graph stats cache TTL 300, got %d", cfg.GraphStatsCacheTTL)
	}
	if cfg.Neo4jConfigured() {
		t.Error("Expected Neo4j unconfigured without NEO4J_URI")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                           "9090",
		"CORS_ALLOWED_ORIGINS":           "https://a.example.com, https://b.example.com,",
		"RATE_LIMIT_DEFAULT":             "250",
		"FORECAST_CORE_SCALING_EXPONENT": "0.75",
		"NEO4J_URI":                      "neo4j+s://db.example.com",
		"NEO4J_PASSWORD":                 "secret",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected 2 trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitDefault != 250 {
		t.Errorf("Expected rate limit 250, got %d", cfg.RateLimitDefault)
	}
	if cfg.CoreScalingExponent != 0.75 {
		t.Errorf("Expected exponent 0.75, got %v", cfg.CoreScalingExponent)
	}
	if !cfg.Neo4jConfigured() {
		t.Error("Expected Neo4j configured")
	}
	if cfg.Neo4jUsername != "neo4j" || cfg.Neo4jDatabase != "neo4j" {
		t.Errorf("Expected neo4j defaults, got %s/%s", cfg.Neo4jUsername, cfg.Neo4jDatabase)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"rate limit zero", map[string]string{"RATE_LIMIT_DEFAULT": "0"}},
		{"rate limit too high", map[string]string{"RATE_LIMIT_DEFAULT": "10001"}},
		{"exponent above one", map[string]string{"FORECAST_CORE_SCALING_EXPONENT": "1.5"}},
		{"negative storage threshold", map[string]string{"FORECAST_STORAGE_SCALING_THRESHOLD": "-0.1"}},
		{"zero resource threshold", map[string]string{"FORECAST_RESOURCE_SCALING_THRESHOLD": "0"}},
		{"zero sample size", map[string]string{"GRAPH_STATS_SAMPLE_SIZE": "0"}},
		{"uri without scheme", map[string]string{"NEO4J_URI": "db.example.com:7687"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))
			if _, err := Load(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"PORT": "7000"}))

	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=6000\nLOG_LEVEL=debug\nMCP_TOOL_PREFIX=aura\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	os.Setenv("ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Expected existing PORT to win over .env, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LOG_LEVEL from .env, got %s", cfg.LogLevel)
	}
	if cfg.MCPToolPrefix != "aura" {
		t.Errorf("Expected MCP_TOOL_PREFIX from .env, got %s", cfg.MCPToolPrefix)
	}
}

func TestLoadConfig_MalformedDotEnv(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	// A directory cannot be parsed as an env file.
	os.Setenv("ENV_FILE", t.TempDir())
	if _, err := Load(); err == nil {
		t.Error("Expected error for unreadable env file")
	}
}
