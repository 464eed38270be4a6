// Package service implements the registry, the session wizard, and the
// finalize transaction on top of narrow storage interfaces.
package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/models"
	"github.com/meltforce/coachdesk/internal/storage"
)

// ClientStore is the registry's view of storage.
type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) error
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClientByHandle(ctx context.Context, handle string) (*models.Client, error)
	GetClient(ctx context.Context, id int) (*models.Client, error)
}

// DraftStore persists at most one opaque draft payload per client.
type DraftStore interface {
	GetDraft(ctx context.Context, clientID int) (*models.Draft, error)
	PutDraft(ctx context.Context, clientID int, payload json.RawMessage) error
	DeleteDraft(ctx context.Context, clientID int) error
}

// SessionArchive is the append-only collection of finalized sessions.
type SessionArchive interface {
	AppendSession(ctx context.Context, s *models.Session) error
	SessionsByClient(ctx context.Context, clientID int) ([]models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// Store is the full storage surface the wizard needs.
type Store interface {
	ClientStore
	DraftStore
	SessionArchive
}

// Exporter renders a finalized session and uploads it to remote storage,
// returning a shareable link. Implementations must not touch local state.
type Exporter interface {
	Export(ctx context.Context, clientName string, s *models.Session) (link string, err error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)
