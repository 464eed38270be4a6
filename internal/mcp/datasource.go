package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/models"
	"github.com/meltforce/coachdesk/internal/storage"
)

// DataSource abstracts the data layer for MCP tools.
type DataSource interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClientByHandle(ctx context.Context, handle string) (*models.Client, error)
	SessionsByClient(ctx context.Context, clientID int) ([]models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	RecentSessions(ctx context.Context, limit int) ([]models.Session, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
