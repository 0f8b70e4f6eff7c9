// ABOUTME: Entry point for the graph sizing analyzer service
// ABOUTME: Serves the sizing/forecast HTTP API, Prometheus metrics, and MCP tools

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markalston/graph-sizing-analyzer/cache"
	"github.com/markalston/graph-sizing-analyzer/config"
	"github.com/markalston/graph-sizing-analyzer/handlers"
	"github.com/markalston/graph-sizing-analyzer/logger"
	"github.com/markalston/graph-sizing-analyzer/mcpserver"
	"github.com/markalston/graph-sizing-analyzer/metrics"
	"github.com/markalston/graph-sizing-analyzer/middleware"
	"github.com/markalston/graph-sizing-analyzer/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	mcpStdio := flag.Bool("mcp-stdio", false, "Serve MCP tools over stdin/stdout instead of HTTP")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging. In stdio mode stdout carries the protocol.
	if *mcpStdio {
		slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	} else {
		logger.Init(cfg.LogLevel, cfg.LogFormat)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *mcpStdio {
		svc := services.NewSizingService(services.NewGrowthProjector(handlers.ProjectorConfig(cfg)))
		srv := mcpserver.New(svc, cfg.MCPToolPrefix, handlers.Version)
		slog.Info("MCP server starting", "transport", "stdio")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			slog.Error("MCP server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serveHTTP(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config) error {
	slog.Info("Starting Graph Sizing Analyzer", "version", handlers.Version)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	graphStats, closeSource := newGraphStats(cfg)
	defer closeSource()

	h := handlers.NewHandler(cfg, graphStats, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, h, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter mounts the API routes with per-route middleware plus the
// optional metrics and MCP endpoints.
func newRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics) http.Handler {
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "requests_per_minute", cfg.RateLimitDefault)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Handler(middleware.CORS(cfg.CORSAllowedOrigins)))

	for _, route := range h.Routes() {
		r.Method(route.Method, route.Path, middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Instrument(m, route.Path),
			middleware.RateLimit(limiter, middleware.ClientIP, route.Cost),
		))
	}

	if m != nil {
		r.Handle("/metrics", m.Handler())
		slog.Info("Metrics enabled", "path", "/metrics")
	}

	if cfg.MCPEnabled {
		mcpSrv := mcpserver.New(h.SizingService(), cfg.MCPToolPrefix, handlers.Version)
		r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpSrv
		}, nil))
		slog.Info("MCP enabled", "path", "/mcp")
	}

	return r
}

// newGraphStats connects the optional Neo4j statistics source. Connection
// failures leave the graph endpoints disabled rather than stopping the server.
func newGraphStats(cfg *config.Config) (*services.GraphStatsService, func()) {
	ttl := time.Duration(cfg.GraphStatsCacheTTL) * time.Second
	c := cache.New(ttl)
	noop := func() { c.Close() }

	if !cfg.Neo4jConfigured() {
		slog.Info("Neo4j not configured, graph statistics disabled")
		return services.NewGraphStatsService(nil, c, ttl), noop
	}

	src, err := services.NewNeo4jStatsSource(cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword, cfg.Neo4jDatabase, cfg.GraphStatsSampleSize)
	if err != nil {
		slog.Warn("Neo4j unavailable, graph statistics disabled", "uri", cfg.Neo4jURI, "error", err)
		return services.NewGraphStatsService(nil, c, ttl), noop
	}

	slog.Info("Neo4j configured", "uri", cfg.Neo4jURI, "database", cfg.Neo4jDatabase, "cache_ttl", ttl)
	return services.NewGraphStatsService(src, c, ttl), func() {
		c.Close()
		if err := src.Close(); err != nil {
			slog.Warn("Failed to close Neo4j driver", "error", err)
		}
	}
}
