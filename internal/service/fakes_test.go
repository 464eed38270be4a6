package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

// fakeStore is an in-memory Store that records write ordering and can inject
// failures at each step of the finalize transaction.
type fakeStore struct {
	clients  map[int]*models.Client
	drafts   map[int]json.RawMessage
	sessions []models.Session
	nextID   int

	calls []string

	appendErr      error
	deleteDraftErr error
	putDraftErr    error
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients: map[int]*models.Client{},
		drafts:  map[int]json.RawMessage{},
		nextID:  1,
	}
}

func (f *fakeStore) CreateClient(_ context.Context, c *models.Client) error {
	for _, existing := range f.clients {
		if existing.Handle == c.Handle {
			return errs.ErrDuplicateHandle
		}
	}
	c.ID = f.nextID
	f.nextID++
	cpy := *c
	f.clients[c.ID] = &cpy
	return nil
}

func (f *fakeStore) ListClients(_ context.Context) ([]models.Client, error) {
	var out []models.Client
	for id := 1; id < f.nextID; id++ {
		if c, ok := f.clients[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetClientByHandle(_ context.Context, handle string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Handle == handle {
			cpy := *c
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeStore) GetClient(_ context.Context, id int) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeStore) GetDraft(_ context.Context, clientID int) (*models.Draft, error) {
	p, ok := f.drafts[clientID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &models.Draft{ClientID: clientID, Payload: p, UpdatedAt: time.Now()}, nil
}

func (f *fakeStore) PutDraft(_ context.Context, clientID int, payload json.RawMessage) error {
	f.calls = append(f.calls, "put_draft")
	if f.putDraftErr != nil {
		return f.putDraftErr
	}
	f.drafts[clientID] = append(json.RawMessage(nil), payload...)
	return nil
}

func (f *fakeStore) DeleteDraft(_ context.Context, clientID int) error {
	f.calls = append(f.calls, "delete_draft")
	if f.deleteDraftErr != nil {
		return f.deleteDraftErr
	}
	delete(f.drafts, clientID)
	return nil
}

func (f *fakeStore) AppendSession(_ context.Context, s *models.Session) error {
	f.calls = append(f.calls, "append_session")
	if f.appendErr != nil {
		return f.appendErr
	}
	f.sessions = append(f.sessions, *s)
	return nil
}

func (f *fakeStore) SessionsByClient(_ context.Context, clientID int) ([]models.Session, error) {
	var out []models.Session
	for i := len(f.sessions) - 1; i >= 0; i-- {
		if f.sessions[i].ClientID == clientID {
			out = append(out, f.sessions[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			cpy := f.sessions[i]
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

// fakeExporter records export calls and returns a configured link or error.
type fakeExporter struct {
	link  string
	err   error
	calls int
}

func (f *fakeExporter) Export(_ context.Context, _ string, _ *models.Session) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
