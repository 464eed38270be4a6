package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meltforce/coachdesk/internal/crypto"
	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

// Registry manages client identities.
type Registry struct {
	store ClientStore
	log   *slog.Logger
}

// NewRegistry constructs a Registry.
func NewRegistry(store ClientStore, log *slog.Logger) *Registry {
	return &Registry{store: store, log: log}
}

// Register creates a client with a hashed secret. Name and handle are
// required; the handle must be unused.
func (r *Registry) Register(ctx context.Context, name, goal, phone, handle, secret string) (*models.Client, error) {
	name = strings.TrimSpace(name)
	handle = strings.TrimSpace(handle)
	if name == "" || handle == "" {
		return nil, errs.ErrEmptyName
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	c := &models.Client{
		Name:       name,
		Goal:       goal,
		Phone:      phone,
		Handle:     handle,
		SecretHash: crypto.HashSecret([]byte(secret), salt),
		SecretSalt: salt,
	}
	if err := r.store.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	r.log.Info("client registered", "id", c.ID, "handle", c.Handle)
	return c, nil
}

// List returns all registered clients in stable display order.
func (r *Registry) List(ctx context.Context) ([]models.Client, error) {
	return r.store.ListClients(ctx)
}

// FindByHandle looks up a client by handle.
func (r *Registry) FindByHandle(ctx context.Context, handle string) (*models.Client, error) {
	return r.store.GetClientByHandle(ctx, handle)
}

// VerifySecret checks a client's credential secret. Unknown handles verify
// as false without revealing whether the handle exists.
func (r *Registry) VerifySecret(ctx context.Context, handle, secret string) (bool, error) {
	c, err := r.store.GetClientByHandle(ctx, handle)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return crypto.VerifySecret([]byte(secret), c.SecretSalt, c.SecretHash), nil
}
