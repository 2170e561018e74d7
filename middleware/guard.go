// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client keeps its bucket
const visitorTTL = 3 * time.Minute

// RateLimiter gives each client IP its own token bucket. A nil
// *RateLimiter lets every request through.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps requests per second per client, with bursts
// of up to burst requests
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// limiterFor returns the bucket for ip, dropping idle buckets at most
// once per TTL
func (rl *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > visitorTTL {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Limit wraps a handler; requests over the limit get 429
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	if rl == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		if !rl.limiterFor(ip, time.Now()).Allow() {
			slog.Warn("rate limited",
				"request_id", RequestID(r.Context()),
				"remote", ip,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

// Harden wraps the whole server: panics become 500s and responses are
// gzip-compressed for clients that accept it
func Harden(h http.Handler) http.Handler {
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(panicLogger{}))
	return recovery(handlers.CompressHandler(h))
}

// panicLogger routes recovered panics into slog
type panicLogger struct{}

func (panicLogger) Println(v ...interface{}) {
	slog.Error("handler panic", "panic", fmt.Sprint(v...))
}
