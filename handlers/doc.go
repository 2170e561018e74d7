// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the chamber-stats API.

# Handler Types

StatsHandler serves every report. It depends on a store.Source for the
initiative dataset and a *stats.Analyzer configured for the chamber:

	h := handlers.NewStatsHandler(store.NewSQLStore(db), stats.New(p.Options()))

The dataset is loaded on every request. Nothing is cached, so a re-import
or an edited data file shows up on the next call.

# Reports

	GET /stats/dashboard                  → GetDashboard (outcome aggregation)
	GET /stats/participation              → GetParticipation (attendance and anomalies)
	GET /stats/consensus                  → GetConsensus (top consensual and divisive)
	GET /stats/affinity?target=X&reference=Y → GetAffinity (voting alignment)
	GET /initiatives/{id}/consensus       → GetInitiativeConsensus

POST /stats/analyze accepts a JSON array of initiatives and returns all
three reports for it without touching the configured source.

# Importing

	POST /initiatives → PostInitiatives

Imports upsert by initiative ID and keep the original import order. Only
database-backed sources accept imports; a file source answers 409. When
the handler is built WithAdminKey, imports without a matching X-Admin-Key
header answer 401.
*/
package handlers
