package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

// GetDraft returns the stored draft for a client, or errs.ErrNotFound.
func (db *DB) GetDraft(ctx context.Context, clientID int) (*models.Draft, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT client_id, payload, updated_at FROM session_drafts WHERE client_id = ?`,
		clientID)

	var d models.Draft
	var payload string
	if err := row.Scan(&d.ClientID, &payload, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	d.Payload = json.RawMessage(payload)
	return &d, nil
}

// PutDraft stores the draft payload for a client, replacing any previous
// draft. Last write wins; the store never merges payloads.
func (db *DB) PutDraft(ctx context.Context, clientID int, payload json.RawMessage) error {
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO session_drafts (client_id, payload, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (client_id) DO UPDATE
		   SET payload = excluded.payload, updated_at = excluded.updated_at`,
		clientID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a client's draft. Deleting an absent draft is not an
// error.
func (db *DB) DeleteDraft(ctx context.Context, clientID int) error {
	_, err := db.SQL.ExecContext(ctx,
		`DELETE FROM session_drafts WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}
