package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleExportAuthURL(w http.ResponseWriter, _ *http.Request) {
	if s.authorizer == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Drive export is disabled"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"auth_url":   s.authorizer.AuthURL(),
		"authorized": s.authorizer.Authorized(),
	})
}

func (s *Server) handleExportAuthCode(w http.ResponseWriter, r *http.Request) {
	if s.authorizer == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Drive export is disabled"})
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code is required"})
		return
	}

	if err := s.authorizer.Exchange(r.Context(), req.Code); err != nil {
		s.log.Error("auth code exchange failed", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authorized": true})
}

func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	link, err := s.wizards.ExportSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}
