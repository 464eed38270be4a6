package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meltforce/coachdesk/internal/models"
)

// newTestDB opens a fresh database file in a temp dir with migrations applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coachdesk.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestClient(t *testing.T, db *DB, handle string) *models.Client {
	t.Helper()
	c := &models.Client{
		Name:       "Ana García",
		Goal:       "Strength",
		Handle:     handle,
		SecretHash: []byte("hash"),
		SecretSalt: []byte("salt"),
	}
	if err := db.CreateClient(context.Background(), c); err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

// TestRunMigrationsIdempotent verifies a second run on the same file is a no-op.
func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachdesk.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
