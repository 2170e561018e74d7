// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statements stay within the dialect shared by sqlite and postgres.
const schema = `
-- Initiatives
CREATE TABLE IF NOT EXISTS initiative (
    id TEXT PRIMARY KEY,
    reference TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    voting TEXT,
    position INTEGER NOT NULL,
    imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_initiative_position ON initiative(position);
CREATE INDEX IF NOT EXISTS idx_initiative_status ON initiative(status);
`
