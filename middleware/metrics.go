// ABOUTME: Prometheus instrumentation middleware
// ABOUTME: Records request count and latency per route template

package middleware

import (
	"net/http"
	"time"

	"github.com/markalston/graph-sizing-analyzer/metrics"
)

// Instrument records each request against route, the registered path
// template, so that label cardinality stays bounded. A nil m disables it.
func Instrument(m *metrics.Metrics, route string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if m == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapWriter(w)
			next(wrapped, r)
			m.ObserveRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		}
	}
}
