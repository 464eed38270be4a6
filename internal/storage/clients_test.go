package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

// TestCreateClientAssignsID verifies the row id and registration time are
// filled in on insert.
func TestCreateClientAssignsID(t *testing.T) {
	db := newTestDB(t)
	c := newTestClient(t, db, "anag")

	if c.ID == 0 {
		t.Errorf("id not assigned")
	}
	if c.RegisteredAt.IsZero() {
		t.Errorf("registered_at not set")
	}
}

// TestGetClientByHandle verifies a registered client is found by handle with
// all fields intact.
func TestGetClientByHandle(t *testing.T) {
	db := newTestDB(t)
	created := newTestClient(t, db, "anag")

	got, err := db.GetClientByHandle(context.Background(), "anag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id = %d, want %d", got.ID, created.ID)
	}
	if got.Name != "Ana García" {
		t.Errorf("name = %q, want %q", got.Name, "Ana García")
	}
	if got.Goal != "Strength" {
		t.Errorf("goal = %q, want %q", got.Goal, "Strength")
	}
	if string(got.SecretHash) != "hash" || string(got.SecretSalt) != "salt" {
		t.Errorf("secret hash/salt did not round-trip")
	}
}

// TestCreateClientDuplicateHandle verifies the second registration with the
// same handle fails with ErrDuplicateHandle and does not add a row.
func TestCreateClientDuplicateHandle(t *testing.T) {
	db := newTestDB(t)
	newTestClient(t, db, "anag")

	dup := &models.Client{
		Name:       "Other Ana",
		Handle:     "anag",
		SecretHash: []byte("h"),
		SecretSalt: []byte("s"),
	}
	err := db.CreateClient(context.Background(), dup)
	if !errors.Is(err, errs.ErrDuplicateHandle) {
		t.Fatalf("error = %v, want ErrDuplicateHandle", err)
	}

	all, err := db.ListClients(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("clients = %d, want 1", len(all))
	}
}

// TestGetClientNotFound verifies lookups of unknown clients return ErrNotFound.
func TestGetClientNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetClientByHandle(context.Background(), "ghost"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("by handle: error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetClient(context.Background(), 99); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("by id: error = %v, want ErrNotFound", err)
	}
}

// TestListClientsOrder verifies listing returns clients in registration order.
func TestListClientsOrder(t *testing.T) {
	db := newTestDB(t)
	newTestClient(t, db, "first")
	newTestClient(t, db, "second")
	newTestClient(t, db, "third")

	all, err := db.ListClients(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("clients = %d, want 3", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Handle != want {
			t.Errorf("clients[%d].handle = %q, want %q", i, all[i].Handle, want)
		}
	}
}
