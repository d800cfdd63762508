package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/db"
)

const defaultTestDSN = "host=localhost port=5432 user=postgres password=postgres dbname=speech_therapy_test sslmode=disable"

// SetupTestDB connects to the integration database (TEST_DATABASE_URL or a
// local default), applies migrations and truncates every table.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := conn.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}
	if err := db.MigrateUp(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	CleanupTestDB(t, conn)
	t.Cleanup(func() {
		CleanupTestDB(t, conn)
		conn.Close()
	})

	return conn
}

// CleanupTestDB removes all rows written by tests.
func CleanupTestDB(t *testing.T, conn *sql.DB) {
	t.Helper()

	if _, err := conn.Exec("TRUNCATE TABLE clients, therapists"); err != nil {
		t.Logf("Warning: Failed to clean up test tables: %v", err)
	}
}
