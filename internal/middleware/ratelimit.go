package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RealIP returns the host part of the request's remote address. The daemon
// talks to its shell directly on a loopback or LAN address with no proxy in
// front of it, so forwarded headers are not trusted.
func RealIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// pruneAbove bounds the window map. A handful of local shells is the
// expected population, so pruning almost never runs.
const pruneAbove = 64

type window struct {
	count  int
	resets time.Time
}

// RateLimiter counts requests per key in fixed windows, entirely in memory.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*window)}
}

// Allow reports whether key may make another request within its window.
// Expired windows are pruned once the map outgrows the expected client
// count.
func (rl *RateLimiter) Allow(key string, limit int, windowLen time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if len(rl.windows) > pruneAbove {
		for k, w := range rl.windows {
			if now.After(w.resets) {
				delete(rl.windows, k)
			}
		}
	}

	w, ok := rl.windows[key]
	if !ok || now.After(w.resets) {
		rl.windows[key] = &window{count: 1, resets: now.Add(windowLen)}
		return true
	}
	w.count++
	return w.count <= limit
}

// RateLimit rejects requests over the per-key limit with 429.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFunc(r), limit, window) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
