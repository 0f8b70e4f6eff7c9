// ABOUTME: Rate limiting middleware with weighted fixed-window counters
// ABOUTME: Charges each request its route's cost against a per-client budget

package middleware

import (
	"log/slog"
	"math"
	"net"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepEvery is how many new windows are opened between full sweeps of
// expired entries, bounding memory to active keys plus this many stale ones.
const sweepEvery = 100

// counter tracks units spent within a fixed time window.
type counter struct {
	count     int
	expiresAt time.Time
}

// RateLimiter enforces a maximum number of cost units per time window.
// Each unique key gets an independent counter.
type RateLimiter struct {
	mu           sync.Mutex
	windows      map[string]*counter
	limit        int
	window       time.Duration
	sweepCounter int
}

// NewRateLimiter creates a rate limiter that allows limit units per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*counter),
		limit:   limit,
		window:  window,
	}
}

// Allow checks whether a single-unit request for the given key should be permitted.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	return rl.AllowN(key, 1)
}

// AllowN charges n units to key. Returns true if the window has room, or false
// with the duration until the window resets. Costs above the limit are clamped
// so an expensive route stays reachable once per window.
func (rl *RateLimiter) AllowN(key string, n int) (bool, time.Duration) {
	n = max(1, min(n, rl.limit))

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, exists := rl.windows[key]

	// Start a new window if none exists or the current one expired.
	// Use !now.Before (>=) so the boundary instant starts a new window
	// rather than returning retryAfter==0 while still denying the request.
	if !exists || !now.Before(c.expiresAt) {
		// Delete expired entry to prevent unbounded map growth
		if exists {
			delete(rl.windows, key)
		}
		rl.windows[key] = &counter{
			count:     n,
			expiresAt: now.Add(rl.window),
		}

		rl.sweepCounter++
		if rl.sweepCounter >= sweepEvery {
			rl.sweep(now)
			rl.sweepCounter = 0
		}

		return true, 0
	}

	if c.count+n <= rl.limit {
		c.count += n
		return true, 0
	}

	return false, c.expiresAt.Sub(now)
}

// sweep removes all expired entries from the windows map.
// Must be called while holding rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, c := range rl.windows {
		if !now.Before(c.expiresAt) {
			delete(rl.windows, k)
		}
	}
}

// ClientIP extracts the client IP from X-Forwarded-For (leftmost) or RemoteAddr.
// X-Forwarded-For is only trustworthy behind a reverse proxy that sets it;
// exposed directly, clients can spoof it to dodge their limit.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Leftmost entry is the original client. Reject unparseable values.
		parts := strings.SplitN(xff, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip != "" && net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	// Fall back to RemoteAddr, stripping port
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit returns middleware that charges cost units per request using the
// given limiter and key function. Costs below 1 count as 1.
// If limiter is nil, the middleware is a no-op (disabled mode).
// If keyFunc returns an empty string, the request passes through (unidentifiable client).
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, cost int) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// Disabled mode: nil limiter or nil keyFunc
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			allowed, retryAfter := limiter.AllowN(key, cost)
			if allowed {
				next(w, r)
				return
			}

			// Rate limited
			retrySeconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path, "cost", cost, "retry_after", retrySeconds)

			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			writeJSONErrorDetails(w, "Rate limit exceeded",
				fmt.Sprintf("%s costs %d of %d requests per window, retry after %ds", r.URL.Path, max(1, cost), limiter.limit, retrySeconds),
				http.StatusTooManyRequests)
		}
	}
}
