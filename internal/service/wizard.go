package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

// Step is the wizard's current state.
type Step int

const (
	// StepMetadata collects client, date, day label, and the session name.
	StepMetadata Step = iota
	// StepContent collects the free-text content blocks.
	StepContent
	// StepDone is terminal: the wizard finalized or was cancelled.
	StepDone
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepMetadata:
		return "metadata"
	case StepContent:
		return "content"
	default:
		return "done"
	}
}

// MarshalJSON encodes the step as its wire name.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire name back into a step.
func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "metadata":
		*s = StepMetadata
	case "content":
		*s = StepContent
	case "done":
		*s = StepDone
	default:
		return fmt.Errorf("unknown wizard step %q", name)
	}
	return nil
}

// Wizard is one in-progress authoring workflow. It is session-scoped state:
// created when the trainer picks a client, discarded on finalize or cancel.
// The in-memory buffer and the stored draft are distinct; only SaveDraft and
// Finalize touch storage.
type Wizard struct {
	ID       uuid.UUID          `json:"id"`
	ClientID int                `json:"client_id"`
	Step     Step               `json:"step"`
	Form     models.SessionForm `json:"form"`

	// DraftPending is set when Start found a stored draft and the
	// resume-or-discard choice has not been made yet.
	DraftPending bool `json:"draft_pending"`
}

// Metadata is the first step's input.
type Metadata struct {
	Name        string `json:"name"`
	SessionDate string `json:"session_date"`
	DayLabel    string `json:"day_label"`
}

// Content is the second step's input: the session's free-text blocks.
type Content struct {
	Objective      string `json:"objective"`
	WarmupGeneral  string `json:"warmup_general"`
	WarmupSpecific string `json:"warmup_specific"`
	Strength       string `json:"strength"`
	SpecificWork   string `json:"specific_work"`
	Conditioning   string `json:"conditioning"`
	CoachNotes     string `json:"coach_notes"`
}

// FinalizeResult reports the outcome of a finalize call. ExportErr is
// informational: the local record is committed even when export fails.
type FinalizeResult struct {
	Session    *models.Session
	ExportLink string
	ExportErr  error
}

// Wizards runs the session-authoring workflow. Active wizards are held in
// memory keyed by id; the draft store is the only persistence they touch
// before finalize.
type Wizards struct {
	store    Store
	exporter Exporter // nil when export is disabled
	log      *slog.Logger

	mu     sync.Mutex
	active map[uuid.UUID]*Wizard
}

// NewWizards constructs the wizard service. exporter may be nil.
func NewWizards(store Store, exporter Exporter, log *slog.Logger) *Wizards {
	return &Wizards{
		store:    store,
		exporter: exporter,
		log:      log,
		active:   make(map[uuid.UUID]*Wizard),
	}
}

// Start begins a wizard for a client. The client must exist. When a stored
// draft is found the wizard stays in the metadata step with DraftPending set
// until Resume or DiscardDraft decides its fate.
func (s *Wizards) Start(ctx context.Context, clientID int) (*Wizard, error) {
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	w := &Wizard{ID: uuid.New(), ClientID: clientID, Step: StepMetadata}

	_, err := s.store.GetDraft(ctx, clientID)
	switch {
	case err == nil:
		w.DraftPending = true
	case errors.Is(err, errs.ErrNotFound):
		// no draft, start clean
	default:
		return nil, err
	}

	s.mu.Lock()
	s.active[w.ID] = w
	s.mu.Unlock()

	s.log.Info("wizard started", "wizard", w.ID, "client", clientID, "draft_found", w.DraftPending)
	return w, nil
}

// Get returns an active wizard by id.
func (s *Wizards) Get(id uuid.UUID) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.active[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return w, nil
}

// Resume loads the stored draft into the working buffer and moves to the
// content step.
func (s *Wizards) Resume(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	d, err := s.store.GetDraft(ctx, w.ClientID)
	if err != nil {
		return nil, err
	}

	var form models.SessionForm
	if err := json.Unmarshal(d.Payload, &form); err != nil {
		return nil, fmt.Errorf("decoding draft payload: %w", err)
	}

	s.mu.Lock()
	w.Form = form
	w.DraftPending = false
	w.Step = StepContent
	s.mu.Unlock()
	return w, nil
}

// DiscardDraft deletes the stored draft and resets the working buffer. The
// wizard stays in the metadata step.
func (s *Wizards) DiscardDraft(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteDraft(ctx, w.ClientID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	w.Form = models.SessionForm{}
	w.DraftPending = false
	w.Step = StepMetadata
	s.mu.Unlock()
	return w, nil
}

// Next merges the metadata into the buffer and advances to the content step.
// A blank session date defaults to today.
func (s *Wizards) Next(id uuid.UUID, meta Metadata) (*Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	w.Form.Name = meta.Name
	w.Form.DayLabel = meta.DayLabel
	if strings.TrimSpace(meta.SessionDate) != "" {
		w.Form.SessionDate = meta.SessionDate
	} else if w.Form.SessionDate == "" {
		w.Form.SessionDate = time.Now().Format("2006-01-02")
	}
	w.DraftPending = false
	w.Step = StepContent
	s.mu.Unlock()
	return w, nil
}

// Back returns to the metadata step. Nothing is persisted and the buffer is
// kept.
func (s *Wizards) Back(id uuid.UUID) (*Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	w.Step = StepMetadata
	s.mu.Unlock()
	return w, nil
}

// SaveDraft merges content into the buffer (nil keeps the buffer as-is) and
// upserts the whole buffer into the draft store keyed by client id. Saving
// twice with the same buffer is a no-op on store state.
func (s *Wizards) SaveDraft(ctx context.Context, id uuid.UUID, content *Content) (*Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	applyContent(&w.Form, content)
	form := w.Form
	s.mu.Unlock()

	if strings.TrimSpace(form.Name) == "" {
		return nil, errs.ErrEmptyName
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("encoding draft payload: %w", err)
	}
	if err := s.store.PutDraft(ctx, w.ClientID, payload); err != nil {
		return nil, err
	}
	s.log.Info("draft saved", "wizard", w.ID, "client", w.ClientID)
	return w, nil
}

// Finalize commits the buffer as an immutable session, then deletes the
// stored draft, then best-effort exports. The session write happens strictly
// before the draft delete: a failure in step one leaves the draft untouched,
// a failure in step two leaves a stale draft behind the committed record, and
// an export failure affects nothing local.
func (s *Wizards) Finalize(ctx context.Context, id uuid.UUID, content *Content) (*FinalizeResult, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	applyContent(&w.Form, content)
	form := w.Form
	s.mu.Unlock()

	if strings.TrimSpace(form.Name) == "" {
		return nil, errs.ErrEmptyName
	}

	session := models.SessionFromForm(w.ClientID, form)
	if err := s.store.AppendSession(ctx, &session); err != nil {
		return nil, fmt.Errorf("writing session record: %w", err)
	}

	if err := s.store.DeleteDraft(ctx, w.ClientID); err != nil {
		// The record is committed; a stale draft is recoverable.
		s.log.Warn("stale draft left after finalize", "client", w.ClientID, "error", err)
	}

	res := &FinalizeResult{Session: &session}
	if s.exporter != nil {
		client, err := s.store.GetClient(ctx, w.ClientID)
		if err != nil {
			res.ExportErr = err
		} else if link, err := s.exporter.Export(ctx, client.Name, &session); err != nil {
			res.ExportErr = err
		} else {
			res.ExportLink = link
		}
		if res.ExportErr != nil {
			s.log.Warn("session export failed", "session", session.ID, "error", res.ExportErr)
		}
	}

	s.mu.Lock()
	w.Step = StepDone
	delete(s.active, w.ID)
	s.mu.Unlock()

	s.log.Info("session finalized", "session", session.ID, "client", w.ClientID)
	return res, nil
}

// Cancel drops the in-memory wizard. Any stored draft stays untouched.
func (s *Wizards) Cancel(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.active[id]
	if !ok {
		return errs.ErrNotFound
	}
	w.Step = StepDone
	delete(s.active, id)
	return nil
}

// ExportSession re-runs the best-effort export for an archived session.
func (s *Wizards) ExportSession(ctx context.Context, id uuid.UUID) (string, error) {
	if s.exporter == nil {
		return "", errs.ErrExportDisabled
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return "", err
	}
	client, err := s.store.GetClient(ctx, session.ClientID)
	if err != nil {
		return "", err
	}
	return s.exporter.Export(ctx, client.Name, session)
}

func applyContent(form *models.SessionForm, c *Content) {
	if c == nil {
		return
	}
	form.Objective = c.Objective
	form.WarmupGeneral = c.WarmupGeneral
	form.WarmupSpecific = c.WarmupSpecific
	form.Strength = c.Strength
	form.SpecificWork = c.SpecificWork
	form.Conditioning = c.Conditioning
	form.CoachNotes = c.CoachNotes
}
