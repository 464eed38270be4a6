// Package mcp exposes the client registry and session archive to MCP clients
// over stdio. All access is read-only.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Coachdesk", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Coachdesk training data server. Query registered clients and their finalized training sessions. Drafts in progress are not visible here."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListClients, Handler: h.listClients},
		server.ServerTool{Tool: toolGetClientSessions, Handler: h.getClientSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"coachdesk://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The most recently finalized training sessions across all clients"),
	mcp.WithMIMEType("application/json"),
)
