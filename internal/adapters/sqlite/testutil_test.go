// Package sqlite_test contains integration tests for SQLite repositories.
//
// The database schema is loaded here, and only here, via db.GetSchemaSQL()
// so tests always run against the authoritative schema. Do not hardcode
// CREATE TABLE statements in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/trickcandle/commissionqueue/internal/adapters/sqlite"
	"github.com/trickcandle/commissionqueue/internal/db"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Every pooled connection to :memory: would get its own database; pin
	// the pool to one connection so all queries see the same schema.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testSubmission returns a submission with a distinct natural key per suffix.
func testSubmission(suffix string) *secondary.Submission {
	return &secondary.Submission{
		Timestamp:     "10/03/2021 15:36:00",
		Email:         "commissioner" + suffix + "@example.com",
		Name:          "Commissioner " + suffix,
		Description:   "A portrait",
		ArtistChoice:  "Jonas",
		IfQueueIsFull: "Any artist is fine",
	}
}

// seedCommission inserts a commission and returns the stored record.
func seedCommission(t *testing.T, conn *sql.DB, suffix string) *secondary.CommissionRecord {
	t.Helper()
	repo := sqlite.NewCommissionRepository(conn)
	record, err := repo.Insert(context.Background(), testSubmission(suffix))
	if err != nil {
		t.Fatalf("failed to seed commission: %v", err)
	}
	return record
}

// seedRendered inserts a commission and links it to a live message.
func seedRendered(t *testing.T, conn *sql.DB, suffix, channel, messageID string) *secondary.CommissionRecord {
	t.Helper()
	repo := sqlite.NewCommissionRepository(conn)
	record := seedCommission(t, conn, suffix)
	record, err := repo.UpdateMessageRef(context.Background(), record.Timestamp, record.Email, channel, messageID)
	if err != nil {
		t.Fatalf("failed to seed message ref: %v", err)
	}
	return record
}
