package handlers

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a per-source fixed-window counter. Single-instance
// and in-memory: a best-effort throttle, not a correctness guarantee.
// It is injected into each handler rather than living as package state.
type RateLimiter struct {
	mu      sync.Mutex
	sources map[string]*window
	limit   int
	per     time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(limit int, per time.Duration) *RateLimiter {
	rl := &RateLimiter{
		sources: make(map[string]*window),
		limit:   limit,
		per:     per,
	}
	go rl.evict()
	return rl
}

// Allow reports whether the source may proceed. The first request in a
// window fixes resetAt; the window does not slide on later requests.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.sources[key]
	if !ok || now.After(w.resetAt) {
		rl.sources[key] = &window{count: 1, resetAt: now.Add(rl.per)}
		return true
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// evict prunes expired windows so the map does not grow without bound
// in a long-running process.
func (rl *RateLimiter) evict() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.sources {
			if now.After(w.resetAt) {
				delete(rl.sources, key)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP derives the rate-limit key from the forwarded client IP,
// falling back through the fixed header precedence.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
