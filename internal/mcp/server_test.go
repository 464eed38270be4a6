package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

type fakeDataSource struct {
	clients  []models.Client
	sessions []models.Session
}

func (f *fakeDataSource) ListClients(context.Context) ([]models.Client, error) {
	return f.clients, nil
}

func (f *fakeDataSource) GetClientByHandle(_ context.Context, handle string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].Handle == handle {
			return &f.clients[i], nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeDataSource) SessionsByClient(_ context.Context, clientID int) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDataSource) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			return &f.sessions[i], nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeDataSource) RecentSessions(_ context.Context, limit int) ([]models.Session, error) {
	if len(f.sessions) > limit {
		return f.sessions[:limit], nil
	}
	return f.sessions, nil
}

func testHandlers() (*handlers, *fakeDataSource) {
	sessionID := uuid.New()
	ds := &fakeDataSource{
		clients: []models.Client{
			{ID: 1, Name: "Ana García", Handle: "ana", Goal: models.Goals[0], RegisteredAt: time.Now()},
		},
		sessions: []models.Session{
			{ID: sessionID, ClientID: 1, Name: "Week 1 Day A", SessionDate: "2026-09-01"},
		},
	}
	return &handlers{ds: ds, log: slog.New(slog.DiscardHandler)}, ds
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestListClients(t *testing.T) {
	h, _ := testHandlers()

	res, err := h.listClients(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var clients []models.Client
	if err := json.Unmarshal([]byte(resultText(t, res)), &clients); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(clients) != 1 || clients[0].Handle != "ana" {
		t.Errorf("clients = %+v", clients)
	}
}

func TestGetClientSessions(t *testing.T) {
	h, _ := testHandlers()

	res, err := h.getClientSessions(context.Background(), callReq(map[string]any{"handle": "ana"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var payload struct {
		Client   models.Client    `json:"client"`
		Sessions []models.Session `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if payload.Client.ID != 1 {
		t.Errorf("client id = %d", payload.Client.ID)
	}
	if len(payload.Sessions) != 1 {
		t.Errorf("len(sessions) = %d, want 1", len(payload.Sessions))
	}
}

func TestGetClientSessionsUnknownHandle(t *testing.T) {
	h, _ := testHandlers()

	res, err := h.getClientSessions(context.Background(), callReq(map[string]any{"handle": "nobody"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for unknown handle")
	}
	if !strings.Contains(resultText(t, res), "nobody") {
		t.Errorf("error text = %q", resultText(t, res))
	}
}

func TestGetSession(t *testing.T) {
	h, ds := testHandlers()

	res, err := h.getSession(context.Background(), callReq(map[string]any{"id": ds.sessions[0].ID.String()}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var session models.Session
	if err := json.Unmarshal([]byte(resultText(t, res)), &session); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if session.Name != "Week 1 Day A" {
		t.Errorf("name = %q", session.Name)
	}
}

func TestGetSessionInvalidID(t *testing.T) {
	h, _ := testHandlers()

	res, err := h.getSession(context.Background(), callReq(map[string]any{"id": "not-a-uuid"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for invalid id")
	}
}

func TestRecentSessionsResource(t *testing.T) {
	h, _ := testHandlers()

	var req mcp.ReadResourceRequest
	req.Params.URI = "coachdesk://recent_sessions"

	contents, err := h.recentSessions(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type %T", contents[0])
	}

	var sessions []models.Session
	if err := json.Unmarshal([]byte(tc.Text), &sessions); err != nil {
		t.Fatalf("decoding resource: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("len(sessions) = %d, want 1", len(sessions))
	}
}
