// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes the initiative table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.
The same statements run on sqlite and PostgreSQL.

# Tables

  - initiative: one row per legislative initiative

The voting column holds the initiative's vote record as JSON text, exactly
as it appears in the import file. position keeps the import order, which
the anomaly detectors depend on.

# Indexes

  - initiative.position
  - initiative.status
*/
package db
