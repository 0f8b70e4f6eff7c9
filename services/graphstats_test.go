// ABOUTME: Tests for graph statistics collection and caching
// ABOUTME: Uses fake sources and query runners in place of a live database

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markalston/graph-sizing-analyzer/cache"
	"github.com/markalston/graph-sizing-analyzer/models"
)

type fakeStatsSource struct {
	calls atomic.Int32
	delay time.Duration
	stats models.GraphStatistics
	err   error
}

func (f *fakeStatsSource) Collect(ctx context.Context) (models.GraphStatistics, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.GraphStatistics{}, ctx.Err()
		}
	}
	return f.stats, f.err
}

func TestGraphStatsService_CachesResults(t *testing.T) {
	src := &fakeStatsSource{stats: models.GraphStatistics{NumNodes: 42}}
	svc := NewGraphStatsService(src, cache.New(time.Minute), time.Minute)

	first, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first.Cached {
		t.Error("Expected first read to be uncached")
	}

	second, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !second.Cached {
		t.Error("Expected second read to be cached")
	}
	if second.NumNodes != 42 {
		t.Errorf("Expected 42 nodes, got %d", second.NumNodes)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected 1 collection, got %d", got)
	}
}

func TestGraphStatsService_CollapsesConcurrentRefreshes(t *testing.T) {
	src := &fakeStatsSource{delay: 50 * time.Millisecond, stats: models.GraphStatistics{NumNodes: 7}}
	svc := NewGraphStatsService(src, cache.New(time.Minute), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Statistics(context.Background()); err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		}()
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected concurrent reads to share 1 collection, got %d", got)
	}
}

func TestGraphStatsService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &fakeStatsSource{delay: 200 * time.Millisecond, stats: models.GraphStatistics{NumNodes: 9}}
	svc := NewGraphStatsService(src, cache.New(time.Minute), time.Minute)

	cancelled, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Statistics(cancelled)
		firstErr <- err
	}()

	// Let the first caller start the shared collection.
	time.Sleep(5 * time.Millisecond)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for live caller, got %v", err)
	}
	if stats.NumNodes != 9 {
		t.Errorf("Expected 9 nodes, got %d", stats.NumNodes)
	}

	if err := <-firstErr; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected first caller to see its own deadline, got %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected 1 shared collection, got %d", got)
	}
}

func TestGraphStatsService_ErrorsAreNotCached(t *testing.T) {
	src := &fakeStatsSource{err: errors.New("connection refused")}
	svc := NewGraphStatsService(src, nil, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := svc.Statistics(context.Background()); err == nil {
			t.Fatal("Expected error from failing source")
		}
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("Expected 2 collection attempts, got %d", got)
	}
}

func TestGraphStatsService_NotConfigured(t *testing.T) {
	svc := NewGraphStatsService(nil, nil, time.Minute)
	if svc.Configured() {
		t.Error("Expected service without a source to be unconfigured")
	}
	_, err := svc.Statistics(context.Background())
	if !errors.Is(err, ErrGraphNotConfigured) {
		t.Errorf("Expected ErrGraphNotConfigured, got %v", err)
	}
}

func TestCollectStatistics(t *testing.T) {
	responses := map[string]interface{}{
		countNodesQuery:         int64(1_000_000),
		countRelationshipsQuery: int64(4_000_000),
		avgNodePropsQuery:       4.6,
		avgRelPropsQuery:        1.2,
		countVectorIndexesQuery: int64(2),
	}
	var gotSample interface{}
	run := func(query string, params map[string]interface{}) (interface{}, error) {
		if query == avgNodePropsQuery {
			gotSample = params["sample"]
		}
		return responses[query], nil
	}

	stats, err := collectStatistics(run, 500)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.NumNodes != 1_000_000 || stats.NumRelationships != 4_000_000 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.AvgPropertiesPerNode != 4.6 || stats.AvgPropertiesPerRelationship != 1.2 {
		t.Errorf("Unexpected property averages: %+v", stats)
	}
	if stats.NumberOfVectorIndexes != 2 {
		t.Errorf("Expected 2 vector indexes, got %d", stats.NumberOfVectorIndexes)
	}
	if gotSample != 500 {
		t.Errorf("Expected sample size 500 passed to query, got %v", gotSample)
	}
}

func TestCollectStatistics_VectorIndexQueryUnsupported(t *testing.T) {
	run := func(query string, params map[string]interface{}) (interface{}, error) {
		if query == countVectorIndexesQuery {
			return nil, errors.New("Invalid input 'YIELD'")
		}
		return int64(10), nil
	}

	stats, err := collectStatistics(run, 100)
	if err != nil {
		t.Fatalf("Expected vector index failure to be tolerated, got %v", err)
	}
	if stats.NumberOfVectorIndexes != 0 {
		t.Errorf("Expected 0 vector indexes, got %d", stats.NumberOfVectorIndexes)
	}
}

func TestCollectStatistics_CountFailure(t *testing.T) {
	run := func(query string, params map[string]interface{}) (interface{}, error) {
		return nil, errors.New("database unavailable")
	}
	if _, err := collectStatistics(run, 100); err == nil {
		t.Error("Expected error when node count fails")
	}
}

func TestToSizingInput(t *testing.T) {
	in := ToSizingInput(models.GraphStatistics{
		NumNodes:                     100,
		NumRelationships:             300,
		AvgPropertiesPerNode:         3.6,
		AvgPropertiesPerRelationship: 0.4,
		NumberOfVectorIndexes:        1,
	})
	if in.AvgPropertiesPerNode != 4 {
		t.Errorf("Expected 4 node properties, got %d", in.AvgPropertiesPerNode)
	}
	if in.AvgPropertiesPerRelationship != 0 {
		t.Errorf("Expected 0 relationship properties, got %d", in.AvgPropertiesPerRelationship)
	}
	if in.NumNodes != 100 || in.NumRelationships != 300 || in.NumberOfVectorIndexes != 1 {
		t.Errorf("Unexpected mapping: %+v", in)
	}
}
