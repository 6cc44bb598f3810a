// Package testutil provides shared helpers for tests that need a migrated
// geocode cache database. The SQLite helper runs everywhere; the Postgres
// helper skips automatically when TEST_DATABASE_URL is not set, so
// integration tests are opt-in and never break environments without a DB.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/tripintel/tripintel/migrations"
)

// NewSQLiteDB opens an in-memory SQLite database and applies all cache
// migrations. The connection is closed automatically when the test finishes.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("testutil.NewSQLiteDB: open: %v", err)
	}
	// Each new connection gets a fresh in-memory database, so pin the pool
	// to a single connection.
	db.SetMaxOpenConns(1)

	migrate(t, db, goose.DialectSQLite3)

	t.Cleanup(func() { db.Close() })
	return db
}

// NewPostgresDB opens a database/sql connection to the database named by the
// TEST_DATABASE_URL environment variable and applies all cache migrations.
// The test is skipped automatically when the variable is not set.
func NewPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewPostgresDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewPostgresDB: ping: %v", err)
	}

	migrate(t, db, goose.DialectPostgres)

	t.Cleanup(func() { db.Close() })
	return db
}

func migrate(t *testing.T, db *sql.DB, dialect goose.Dialect) {
	t.Helper()

	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		t.Fatalf("testutil: create goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		t.Fatalf("testutil: run migrations: %v", err)
	}
}
