// Package models defines the rows and documents shared by storage, service,
// and transport layers.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Goals is the catalogue offered at registration. Free text is also accepted.
var Goals = []string{
	"Body recomposition",
	"Strength",
	"Weight loss",
	"Muscle gain",
	"Athletic performance",
	"Postural health / pain",
	"Habits and general health",
	"Other",
}

// Client is a registered trainee.
type Client struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Goal         string    `json:"goal"`
	Phone        string    `json:"phone,omitempty"`
	Handle       string    `json:"handle"`
	SecretHash   []byte    `json:"-"`
	SecretSalt   []byte    `json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Draft is the stored in-progress session for one client. The payload is an
// opaque JSON document from the store's point of view; only the wizard
// interprets it. At most one draft exists per client.
type Draft struct {
	ClientID  int             `json:"client_id"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SessionForm is the wizard's working buffer. Fields accumulate across both
// wizard steps and none is validated until finalize, except Name.
type SessionForm struct {
	Name           string `json:"name"`
	SessionDate    string `json:"session_date"` // YYYY-MM-DD
	DayLabel       string `json:"day_label"`
	Objective      string `json:"objective"`
	WarmupGeneral  string `json:"warmup_general"`
	WarmupSpecific string `json:"warmup_specific"`
	Strength       string `json:"strength"`
	SpecificWork   string `json:"specific_work"`
	Conditioning   string `json:"conditioning"`
	CoachNotes     string `json:"coach_notes"`
}

// Session is a finalized, immutable training session.
type Session struct {
	ID             uuid.UUID `json:"id"`
	ClientID       int       `json:"client_id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	SessionDate    string    `json:"session_date"`
	DayLabel       string    `json:"day_label"`
	Objective      string    `json:"objective"`
	WarmupGeneral  string    `json:"warmup_general"`
	WarmupSpecific string    `json:"warmup_specific"`
	Strength       string    `json:"strength"`
	SpecificWork   string    `json:"specific_work"`
	Conditioning   string    `json:"conditioning"`
	CoachNotes     string    `json:"coach_notes"`
}

// SessionFromForm builds the immutable session row out of a completed buffer.
func SessionFromForm(clientID int, form SessionForm) Session {
	return Session{
		ID:             uuid.New(),
		ClientID:       clientID,
		CreatedAt:      time.Now().UTC(),
		Name:           form.Name,
		SessionDate:    form.SessionDate,
		DayLabel:       form.DayLabel,
		Objective:      form.Objective,
		WarmupGeneral:  form.WarmupGeneral,
		WarmupSpecific: form.WarmupSpecific,
		Strength:       form.Strength,
		SpecificWork:   form.SpecificWork,
		Conditioning:   form.Conditioning,
		CoachNotes:     form.CoachNotes,
	}
}
