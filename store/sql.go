// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/chamber-stats/models"
)

// SQLStore reads and writes the initiative table. Queries use $N
// placeholders, which both lib/pq and modernc sqlite accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Initiatives returns every stored initiative in import order
func (s *SQLStore) Initiatives(ctx context.Context) ([]models.Initiative, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reference, title, status, author, voting
		FROM initiative
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query initiatives: %w", err)
	}
	defer rows.Close()

	initiatives := []models.Initiative{}
	for rows.Next() {
		ini, err := scanInitiative(rows)
		if err != nil {
			return nil, err
		}
		initiatives = append(initiatives, ini)
	}

	return initiatives, rows.Err()
}

// Initiative returns one initiative by ID, or ErrNotFound
func (s *SQLStore) Initiative(ctx context.Context, id string) (models.Initiative, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, reference, title, status, author, voting
		FROM initiative
		WHERE id = $1
	`, id)

	ini, err := scanInitiative(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Initiative{}, ErrNotFound
	}
	return ini, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInitiative(sc scanner) (models.Initiative, error) {
	var ini models.Initiative
	var voting sql.NullString
	if err := sc.Scan(&ini.ID, &ini.Reference, &ini.Title, &ini.Status, &ini.Author, &voting); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ini, err
		}
		return ini, fmt.Errorf("failed to scan initiative: %w", err)
	}

	if voting.Valid && voting.String != "" {
		var v models.Voting
		if err := json.Unmarshal([]byte(voting.String), &v); err != nil {
			return ini, fmt.Errorf("failed to parse voting for initiative %s: %w", ini.ID, err)
		}
		ini.Voting = &v
	}
	return ini, nil
}

// Save upserts initiatives inside one transaction. New rows are appended
// after the current last position; updated rows keep theirs. Initiatives
// without an ID get a random one.
func (s *SQLStore) Save(ctx context.Context, initiatives []models.Initiative) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var last int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM initiative`).Scan(&last)
	if err != nil {
		return fmt.Errorf("failed to read last position: %w", err)
	}

	for i, ini := range initiatives {
		if ini.ID == "" {
			ini.ID = uuid.NewString()
		}

		var voting sql.NullString
		if ini.Voting != nil {
			payload, err := json.Marshal(ini.Voting)
			if err != nil {
				return fmt.Errorf("failed to encode voting for initiative %s: %w", ini.ID, err)
			}
			voting = sql.NullString{String: string(payload), Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO initiative (id, reference, title, status, author, voting, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				reference = excluded.reference,
				title = excluded.title,
				status = excluded.status,
				author = excluded.author,
				voting = excluded.voting
		`, ini.ID, ini.Reference, ini.Title, ini.Status, ini.Author, voting, last+i+1)
		if err != nil {
			return fmt.Errorf("failed to save initiative %s: %w", ini.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit initiatives: %w", err)
	}
	return nil
}
