package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/service"
)

func (s *Server) handleStartWizard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID int `json:"client_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	wiz, err := s.wizards.Start(r.Context(), req.ClientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wiz)
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	wiz, err := s.wizards.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleCancelWizard(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	if err := s.wizards.Cancel(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResumeDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	wiz, err := s.wizards.Resume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	wiz, err := s.wizards.DiscardDraft(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	var meta service.Metadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	wiz, err := s.wizards.Next(id, meta)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	wiz, err := s.wizards.Back(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	wiz, err := s.wizards.SaveDraft(r.Context(), id, content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	result, err := s.wizards.Finalize(r.Context(), id, content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := map[string]any{"session": result.Session}
	if result.ExportLink != "" {
		resp["export_link"] = result.ExportLink
	}
	if result.ExportErr != nil {
		resp["export_error"] = result.ExportErr.Error()
	}
	writeJSON(w, http.StatusCreated, resp)
}

// wizardID parses the {id} route parameter, writing a 400 on failure.
func wizardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid wizard ID"})
		return uuid.UUID{}, false
	}
	return id, true
}

// decodeContent reads an optional Content body. An empty body means "keep the
// current buffer".
func decodeContent(w http.ResponseWriter, r *http.Request) (*service.Content, bool) {
	var content service.Content
	err := json.NewDecoder(r.Body).Decode(&content)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return nil, false
	}
	return &content, true
}
