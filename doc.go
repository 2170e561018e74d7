// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the chamber-stats API server.

chamber-stats computes analytics over the legislative initiatives of a
parliamentary chamber: how consensual each vote was, how often two groups
vote together, how initiatives end up by author, and who stays away from
the floor.

# Starting the Server

Point the server at a database or a JSON file of initiatives:

	DATABASE_URL=file:chamber.db go run .

	go run . -f initiatives.json -profile congreso.yaml

With -summary the reports are printed as text and the process exits:

	go run . -f initiatives.json -summary

# Configuration

A data source is required:

  - DATABASE_URL (-d): sqlite path/DSN or PostgreSQL connection string
  - DATA_FILE (-f): JSON array of initiatives

When both are set the database is used and the file seeds it if empty.

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CHAMBER_PROFILE (-profile): YAML chamber profile (seats, keywords, windows)
  - PORT (-p): Server port (default: 3318)
  - LOG_LEVEL (-log-level, or -v for debug): default info
  - ADMIN_KEY (-admin-key): key required in X-Admin-Key to import
  - RATE_LIMIT (-rate-limit): POST requests per second per client (default 5, 0 disables)
  - ENV_FILE (-env): env file loaded before the above, default .env

# Architecture

  - stats: the four analyzers (consensus, affinity, outcomes, participation)
  - profile: YAML chamber profiles turned into stats.Options
  - store: initiative sources (JSON file, SQL database)
  - handlers: HTTP request handlers over a store.Source
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request IDs, logging, rate limiting, panic recovery and gzip, JSON helpers
  - auth: Admin key checks for imports
  - summary: Plain-text report rendering
  - models: Input and report types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
