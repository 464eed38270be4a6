package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/coachdesk/internal/errs"
)

// --- Tool definitions ---

var toolListClients = mcp.NewTool("list_clients",
	mcp.WithDescription("List all registered clients with their goal, handle, and registration date."),
)

var toolGetClientSessions = mcp.NewTool("get_client_sessions",
	mcp.WithDescription("Retrieve a client's finalized training sessions, most recent first. Each session includes the full content blocks (warm-ups, strength, conditioning, notes)."),
	mcp.WithString("handle", mcp.Required(), mcp.Description("The client's unique handle")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to all.")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Retrieve a single finalized training session by its ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Session ID (UUID)")),
)

// --- Tool handlers ---

func (h *handlers) listClients(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clients, err := h.ds.ListClients(ctx)
	if err != nil {
		h.log.Error("mcp list_clients", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(clients)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getClientSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, err := req.RequireString("handle")
	if err != nil {
		return mcp.NewToolResultError("handle parameter is required"), nil
	}

	client, err := h.ds.GetClientByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return mcp.NewToolResultError("no client with handle " + handle), nil
		}
		h.log.Error("mcp get_client_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	sessions, err := h.ds.SessionsByClient(ctx, client.ID)
	if err != nil {
		h.log.Error("mcp get_client_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit := req.GetInt("limit", 0); limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"client":   client,
		"sessions": sessions,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid session ID"), nil
	}

	session, err := h.ds.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return mcp.NewToolResultError("no session with id " + idStr), nil
		}
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(session)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
