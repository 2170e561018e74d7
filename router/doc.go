// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the chamber-stats API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(source, analyzer, cfg)

# Endpoints

Health:

	GET /health

Reports (read the configured source on every request):

	GET /stats/dashboard                       - Outcome aggregation
	GET /stats/participation                   - Attendance and anomalies
	GET /stats/consensus                       - Consensus ranking
	GET /stats/affinity?target=X&reference=Y   - Voting alignment
	GET /initiatives/{id}/consensus            - One initiative's metric

Ad-hoc analysis:

	POST /stats/analyze - All reports over a posted initiative array

Import (database sources only, X-Admin-Key when cfg.AdminKey is set):

	POST /initiatives - Upsert initiatives

Every route except /health and / is wrapped in middleware.WithLogging.
POST routes share a per-client rate limiter when cfg.RateLimit > 0.
Initiative IDs are path segments, so an ID such as "121/000045" is sent
as "121%2F000045".
*/
package router
