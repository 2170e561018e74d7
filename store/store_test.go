// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/chamber-stats/models"
	"github.com/danielhkuo/chamber-stats/store"
	"github.com/danielhkuo/chamber-stats/testutil"
)

const sampleJSON = `[
  {
    "id": "122/000045",
    "title": "Housing Act",
    "status": "Approved",
    "author": "Government",
    "voting": {
      "exists": true, "yes": 180, "no": 160, "abstentions": 5,
      "result": {
        "totals": {"favor": 180, "against": 160, "abstain": 5, "present": 345, "noVoteCount": 5},
        "desglose": {"yes": {"PSOE": 120}, "no": {"PP": 137}, "noVote": {"VOX": 2}}
      },
      "noVoteList": [{"id": "d17", "displayName": "Ana", "partyOrGroup": "GP Mixed"}]
    }
  },
  {"id": "162/000101", "status": "", "author": "Grupo Vox"}
]`

func TestReadJSON(t *testing.T) {
	initiatives, err := store.ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, initiatives, 2)

	first := initiatives[0]
	assert.Equal(t, "Housing Act", first.Name())
	require.NotNil(t, first.Voting)
	assert.True(t, first.Voting.Exists)
	require.NotNil(t, first.Voting.Result)
	require.NotNil(t, first.Voting.Result.Totals.Present)
	assert.Equal(t, 345, *first.Voting.Result.Totals.Present)
	assert.Equal(t, 137, first.Voting.Result.Desglose.No["PP"])
	assert.Equal(t, "Ana", first.Voting.AbsentDeputies()[0].DisplayName)

	assert.Nil(t, initiatives[1].Voting)
	assert.Equal(t, "162/000101", initiatives[1].Name())
}

func TestReadJSON_Invalid(t *testing.T) {
	_, err := store.ReadJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	initiatives, err := store.ReadJSON(strings.NewReader(`null`))
	require.NoError(t, err)
	assert.NotNil(t, initiatives)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initiatives.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	initiatives, err := store.NewFileStore(path).Initiatives(context.Background())
	require.NoError(t, err)
	assert.Len(t, initiatives, 2)

	_, err = store.NewFileStore(filepath.Join(t.TempDir(), "missing.json")).Initiatives(context.Background())
	assert.Error(t, err)

	_, err = store.LoadFile("")
	assert.True(t, errors.Is(err, store.ErrEmptyPath))
}

func TestSQLStore_RoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	initiatives, err := store.ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, initiatives))

	got, err := s.Initiatives(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, initiatives[0], got[0])
	assert.Equal(t, initiatives[1], got[1])
}

func TestSQLStore_UpsertKeepsOrder(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	testutil.SeedInitiatives(t, conn,
		testutil.NewInitiative("a", "In committee", "Government"),
		testutil.NewInitiative("b", "Rejected", "Grupo Popular"),
	)

	updated := testutil.NewInitiative("a", "Approved", "Government")
	require.NoError(t, s.Save(ctx, []models.Initiative{
		updated,
		testutil.NewInitiative("c", "Withdrawn", "Grupo Mixto"),
		{Title: "No ID", Status: "Lapsed"},
	}))

	got, err := s.Initiatives(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "Approved", got[0].Status)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.NotEmpty(t, got[3].ID)
	assert.Equal(t, "No ID", got[3].Title)
}

func TestSQLStore_SaveWithMock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(position), 0) FROM initiative")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO initiative")).
		WithArgs("x1", "", "Initiative x1", "Approved", "Government", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.NewSQLStore(conn).Save(context.Background(), []models.Initiative{
		testutil.NewInitiative("x1", "Approved", "Government"),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SaveRollsBackOnError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(position), 0) FROM initiative")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO initiative")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = store.NewSQLStore(conn).Save(context.Background(), []models.Initiative{
		testutil.NewInitiative("x1", "Approved", "Government"),
	})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InitiativesWithMock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"id", "reference", "title", "status", "author", "voting"}).
		AddRow("1", "121/1", "Budget", "Approved", "Government", `{"exists":true,"yes":200,"no":150}`).
		AddRow("2", "", "", "", "Grupo Vox", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reference, title, status, author, voting")).
		WillReturnRows(rows)

	got, err := store.NewSQLStore(conn).Initiatives(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Voting)
	assert.Equal(t, 200, got[0].Voting.Yes)
	assert.Nil(t, got[1].Voting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InitiativesBadPayload(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"id", "reference", "title", "status", "author", "voting"}).
		AddRow("1", "", "", "", "", `{broken`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reference, title, status, author, voting")).
		WillReturnRows(rows)

	_, err = store.NewSQLStore(conn).Initiatives(context.Background())
	assert.ErrorContains(t, err, "failed to parse voting")
}

func TestSQLStore_Initiative(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.NewSQLStore(conn)
	ctx := context.Background()

	voted := testutil.VotedInitiative("121/000045", 200, 150, 0)
	testutil.SeedInitiatives(t, conn, testutil.NewInitiative("a", "Approved", "Government"), voted)

	got, err := s.Initiative(ctx, "121/000045")
	require.NoError(t, err)
	assert.Equal(t, voted, got)

	_, err = s.Initiative(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_InitiativeWithMock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("boom").
		WillReturnError(errors.New("connection reset"))

	_, err = store.NewSQLStore(conn).Initiative(context.Background(), "boom")
	assert.ErrorContains(t, err, "connection reset")
	assert.False(t, errors.Is(err, store.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"status not a string", `[{"status": 5, "author": ""}]`},
		{"yes not a count", `[{"status": "", "author": "", "voting": {"exists": true, "yes": "many"}}]`},
		{"fractional count", `[{"status": "", "author": "", "voting": {"exists": true, "yes": 1.5}}]`},
		{"desglose not counts", `[{"status": "", "author": "", "voting": {"result": {"desglose": {"yes": {"PP": "all"}}}}}]`},
		{"deputies not a list", `[{"status": "", "author": "", "voting": {"noVoteList": "Ana"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.ReadJSON(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, "invalid initiatives")
		})
	}
}

func TestReadJSON_NullFieldsDefault(t *testing.T) {
	raw := `[{"id": "121/7", "status": null, "author": null, "title": null,
		"voting": {"exists": true, "yes": null, "no": 3, "abstentions": null,
			"result": {"totals": {"favor": null, "against": 3, "abstain": null, "noVoteCount": null},
				"desglose": {"yes": null, "no": {"PP": 3, "VOX": null}}},
			"noVoteList": [{"id": "d1", "displayName": "Ana", "partyOrGroup": null, "formation": null}]}}]`

	initiatives, err := store.ReadJSON(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, initiatives, 1)

	got := initiatives[0]
	assert.Equal(t, "", got.Status)
	assert.Equal(t, "", got.Author)
	require.NotNil(t, got.Voting)
	assert.Equal(t, 0, got.Voting.Yes)
	assert.Equal(t, 3, got.Voting.No)
	require.NotNil(t, got.Voting.Result)
	require.NotNil(t, got.Voting.Result.Totals)
	assert.Equal(t, 0, got.Voting.Result.Totals.Favor)
	assert.Equal(t, 3, got.Voting.Result.Totals.Against)
	assert.Equal(t, map[string]int{"PP": 3, "VOX": 0}, got.Voting.Result.Desglose.No)
	require.Len(t, got.Voting.NoVoteList, 1)
	assert.Equal(t, "", got.Voting.NoVoteList[0].PartyOrGroup)
}

func TestValidateJSON_AllowsUnknownFields(t *testing.T) {
	raw := `[{"id": "1", "status": "Approved", "author": "Government", "committee": "Budget",
		"voting": {"exists": true, "yes": 3, "no": 1, "presentCount": null, "session": 12}}]`
	assert.NoError(t, store.ValidateJSON([]byte(raw)))
}
