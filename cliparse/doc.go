// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite path or PostgreSQL connection string
  - DatabaseType: sqlite (default) or postgres
  - DataFile: JSON initiative file, used when no database is given
  - ProfilePath: YAML chamber profile (seats, labels, status keywords)
  - EnvFile: .env file loaded before reading the environment
  - LogLevel: debug, info (default), warn or error
  - AdminKey: key required in X-Admin-Key to import (empty: imports open)
  - RateLimit: POST requests per second per client (default 5, 0 disables)
  - Summary: print a text summary and exit instead of serving

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-f          Data file
	-profile    Chamber profile
	-env        Env file
	-log-level  Log level
	-v          Shorthand for -log-level debug
	-summary    One-shot summary mode
	-admin-key  Import key
	-rate-limit POST rate per client

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	DATA_FILE       → -f
	CHAMBER_PROFILE → -profile
	ENV_FILE        → -env
	LOG_LEVEL       → -log-level
	ADMIN_KEY       → -admin-key
	RATE_LIMIT      → -rate-limit

CLI flags take precedence over environment variables, and variables already
set take precedence over the env file. A missing default .env is ignored.

# Validation

ParseFlags returns an error if:

  - neither DATABASE_URL nor DATA_FILE is provided
  - PORT is not a number
  - DATABASE_TYPE is not sqlite or postgres
  - LOG_LEVEL is not a known level
  - RATE_LIMIT is not a non-negative number
*/
package cliparse
