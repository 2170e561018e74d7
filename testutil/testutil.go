// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chamber-stats/cliparse"
	"github.com/danielhkuo/chamber-stats/db"
	"github.com/danielhkuo/chamber-stats/models"
	"github.com/danielhkuo/chamber-stats/store"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would get its own empty :memory: database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
	}
}

// SeedInitiatives stores initiatives in the test database
func SeedInitiatives(t *testing.T, conn *sql.DB, initiatives ...models.Initiative) {
	t.Helper()

	if err := store.NewSQLStore(conn).Save(context.Background(), initiatives); err != nil {
		t.Fatalf("Failed to seed initiatives: %v", err)
	}
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}

// NewInitiative builds an initiative without a vote
func NewInitiative(id, status, author string) models.Initiative {
	return models.Initiative{
		ID:     id,
		Title:  "Initiative " + id,
		Status: status,
		Author: author,
	}
}

// VotedInitiative builds an initiative with a plain yes/no/abstention tally
func VotedInitiative(id string, yes, no, abstentions int) models.Initiative {
	ini := NewInitiative(id, "", "")
	ini.Voting = &models.Voting{
		Exists:      true,
		Yes:         yes,
		No:          no,
		Abstentions: abstentions,
	}
	return ini
}

// BreakdownInitiative builds an initiative whose vote carries totals and
// an optional per-party desglose
func BreakdownInitiative(id string, totals models.VoteTotals, desglose *models.Desglose) models.Initiative {
	ini := VotedInitiative(id, totals.Favor, totals.Against, totals.Abstain)
	ini.Voting.Result = &models.VoteBreakdown{
		Totals:   &totals,
		Desglose: desglose,
	}
	return ini
}

// PartyVotes builds a desglose in which each party voted as one block
func PartyVotes(yes, no, abstention []string) *models.Desglose {
	d := &models.Desglose{
		Yes:        map[string]int{},
		No:         map[string]int{},
		Abstention: map[string]int{},
	}
	for _, p := range yes {
		d.Yes[p] = 10
	}
	for _, p := range no {
		d.No[p] = 10
	}
	for _, p := range abstention {
		d.Abstention[p] = 10
	}
	return d
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
