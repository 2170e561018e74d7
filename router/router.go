// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/chamber-stats/cliparse"
	"github.com/danielhkuo/chamber-stats/handlers"
	"github.com/danielhkuo/chamber-stats/middleware"
	"github.com/danielhkuo/chamber-stats/stats"
	"github.com/danielhkuo/chamber-stats/store"
)

// postBurst is how many POSTs a client may send back to back
const postBurst = 10

func NewRouter(source store.Source, analyzer *stats.Analyzer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	statsHandler := handlers.NewStatsHandler(source, analyzer).WithAdminKey(cfg.AdminKey)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, postBurst)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reports over the configured source
	mux.HandleFunc("GET /stats/dashboard", middleware.WithLogging(statsHandler.GetDashboard))
	mux.HandleFunc("GET /stats/participation", middleware.WithLogging(statsHandler.GetParticipation))
	mux.HandleFunc("GET /stats/consensus", middleware.WithLogging(statsHandler.GetConsensus))
	mux.HandleFunc("GET /stats/affinity", middleware.WithLogging(statsHandler.GetAffinity))

	// Reports over a posted dataset
	mux.HandleFunc("POST /stats/analyze", middleware.WithLogging(limiter.Limit(statsHandler.PostAnalyze)))

	// Initiatives (IDs containing "/" must be sent as %2F; import may require X-Admin-Key)
	mux.HandleFunc("POST /initiatives", middleware.WithLogging(limiter.Limit(statsHandler.PostInitiatives)))
	mux.HandleFunc("GET /initiatives/{id}/consensus", middleware.WithLogging(statsHandler.GetInitiativeConsensus))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chamber-stats API v1"))
	})

	return mux
}
