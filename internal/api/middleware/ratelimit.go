package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter enforces a fixed-window request limit per client IP. State
// is per process; horizontally scaled deployments get the limit per
// instance.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*rateWindow
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*rateWindow),
	}
}

// Middleware returns the rate limiting handler
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "900")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"message": "too many requests, slow down",
				"code":    "RATE_LIMITED",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	window, exists := l.windows[ip]
	if !exists || now.After(window.resetAt) {
		l.windows[ip] = &rateWindow{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return true
	}

	if window.count >= l.limit {
		return false
	}
	window.count++
	return true
}

// sweep drops expired windows so the map does not grow unbounded. Called
// with the lock held.
func (l *RateLimiter) sweep(now time.Time) {
	if len(l.windows) < 10000 {
		return
	}
	for ip, window := range l.windows {
		if now.After(window.resetAt) {
			delete(l.windows, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
