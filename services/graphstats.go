// ABOUTME: Graph statistics collector backed by a live Neo4j database
// ABOUTME: Caches results and collapses concurrent refreshes with singleflight

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"golang.org/x/sync/singleflight"

	"github.com/markalston/graph-sizing-analyzer/cache"
	"github.com/markalston/graph-sizing-analyzer/models"
)

const (
	graphStatsCacheKey = "graph:statistics"
	queryTimeout       = 30 * time.Second
	collectTimeout     = 2 * time.Minute
)

const (
	countNodesQuery         = "MATCH (n) RETURN count(n)"
	countRelationshipsQuery = "MATCH ()-[r]->() RETURN count(r)"
	avgNodePropsQuery       = "MATCH (n) WITH n LIMIT $sample RETURN coalesce(avg(size(keys(n))), 0.0)"
	avgRelPropsQuery        = "MATCH ()-[r]->() WITH r LIMIT $sample RETURN coalesce(avg(size(keys(r))), 0.0)"
	countVectorIndexesQuery = "SHOW INDEXES YIELD type WHERE type = 'VECTOR' RETURN count(*)"
)

// StatsSource reads structural statistics from a graph.
type StatsSource interface {
	Collect(ctx context.Context) (models.GraphStatistics, error)
}

// singleValueFunc runs a read query and returns the first column of its only row.
type singleValueFunc func(query string, params map[string]interface{}) (interface{}, error)

// Neo4jStatsSource collects statistics over the Bolt protocol.
type Neo4jStatsSource struct {
	driver     neo4j.Driver
	database   string
	sampleSize int
}

// NewNeo4jStatsSource connects to uri and verifies connectivity.
func NewNeo4jStatsSource(uri, username, password, database string, sampleSize int) (*Neo4jStatsSource, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(); err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}
	return &Neo4jStatsSource{driver: driver, database: database, sampleSize: sampleSize}, nil
}

// Close releases the driver's connection pool.
func (s *Neo4jStatsSource) Close() error {
	return s.driver.Close()
}

// Collect counts nodes and relationships, samples property counts, and
// counts vector indexes.
func (s *Neo4jStatsSource) Collect(ctx context.Context) (models.GraphStatistics, error) {
	session := s.driver.NewSession(neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close()

	run := func(query string, params map[string]interface{}) (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
			result, err := tx.Run(query, params)
			if err != nil {
				return nil, err
			}
			record, err := result.Single()
			if err != nil {
				return nil, err
			}
			return record.Values[0], nil
		}, neo4j.WithTxTimeout(queryTimeout))
	}

	stats, err := collectStatistics(run, s.sampleSize)
	if err != nil {
		return models.GraphStatistics{}, err
	}
	stats.Database = s.database
	return stats, nil
}

func collectStatistics(run singleValueFunc, sampleSize int) (models.GraphStatistics, error) {
	stats := models.GraphStatistics{SampleSize: sampleSize}
	sample := map[string]interface{}{"sample": sampleSize}

	v, err := run(countNodesQuery, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to count nodes: %w", err)
	}
	stats.NumNodes = toInt64(v)

	v, err = run(countRelationshipsQuery, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to count relationships: %w", err)
	}
	stats.NumRelationships = toInt64(v)

	v, err = run(avgNodePropsQuery, sample)
	if err != nil {
		return stats, fmt.Errorf("failed to sample node properties: %w", err)
	}
	stats.AvgPropertiesPerNode = toFloat64(v)

	v, err = run(avgRelPropsQuery, sample)
	if err != nil {
		return stats, fmt.Errorf("failed to sample relationship properties: %w", err)
	}
	stats.AvgPropertiesPerRelationship = toFloat64(v)

	// Servers without vector index support reject SHOW INDEXES filters on type.
	v, err = run(countVectorIndexesQuery, nil)
	if err != nil {
		slog.Warn("Vector index count unavailable, assuming none", "error", err)
	} else {
		stats.NumberOfVectorIndexes = int(toInt64(v))
	}

	return stats, nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// GraphStatsService fronts a StatsSource with a TTL cache.
// Uses singleflight to prevent thundering herd when the cache expires.
type GraphStatsService struct {
	source  StatsSource
	cache   *cache.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewGraphStatsService creates a service. A nil source means no graph is configured.
func NewGraphStatsService(source StatsSource, c *cache.Cache, ttl time.Duration) *GraphStatsService {
	if c == nil {
		c = cache.New(ttl)
	}
	return &GraphStatsService{source: source, cache: c, ttl: ttl}
}

// Configured reports whether a statistics source is available.
func (s *GraphStatsService) Configured() bool {
	return s != nil && s.source != nil
}

// ErrGraphNotConfigured is returned when no statistics source is set.
var ErrGraphNotConfigured = errors.New("graph database not configured")

// Statistics returns cached statistics, collecting them on a miss.
func (s *GraphStatsService) Statistics(ctx context.Context) (models.GraphStatistics, error) {
	if !s.Configured() {
		return models.GraphStatistics{}, ErrGraphNotConfigured
	}

	if cached, found := s.cache.Get(graphStatsCacheKey); found {
		stats := cached.(models.GraphStatistics)
		stats.Cached = true
		return stats, nil
	}

	ch := s.sfGroup.DoChan(graphStatsCacheKey, func() (interface{}, error) {
		// The flight is shared, so it must outlive any single caller's request.
		collectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), collectTimeout)
		defer cancel()

		stats, err := s.source.Collect(collectCtx)
		if err != nil {
			return nil, err
		}
		s.cache.SetWithTTL(graphStatsCacheKey, stats, s.ttl)
		slog.Info("Graph statistics collected",
			"nodes", stats.NumNodes,
			"relationships", stats.NumRelationships,
			"vector_indexes", stats.NumberOfVectorIndexes,
		)
		return stats, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.GraphStatistics{}, res.Err
		}
		return res.Val.(models.GraphStatistics), nil
	case <-ctx.Done():
		return models.GraphStatistics{}, ctx.Err()
	}
}

// ToSizingInput maps collected statistics onto a sizing request. Average
// property counts are rounded to the nearest whole property.
func ToSizingInput(stats models.GraphStatistics) models.SizingInput {
	return models.SizingInput{
		NumNodes:                     stats.NumNodes,
		NumRelationships:             stats.NumRelationships,
		AvgPropertiesPerNode:         int(math.Round(stats.AvgPropertiesPerNode)),
		AvgPropertiesPerRelationship: int(math.Round(stats.AvgPropertiesPerRelationship)),
		NumberOfVectorIndexes:        stats.NumberOfVectorIndexes,
	}
}
