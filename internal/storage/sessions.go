package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
)

const sessionColumns = `id, client_id, created_at, name, session_date, day_label,
	objective, warmup_general, warmup_specific, strength, specific_work,
	conditioning, coach_notes`

// AppendSession inserts a finalized session row. Sessions are append-only;
// there is no update or delete.
func (db *DB) AppendSession(ctx context.Context, s *models.Session) error {
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.ClientID, s.CreatedAt, s.Name, s.SessionDate, s.DayLabel,
		s.Objective, s.WarmupGeneral, s.WarmupSpecific, s.Strength, s.SpecificWork,
		s.Conditioning, s.CoachNotes)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// SessionsByClient returns a client's finalized sessions, most recent first.
func (db *DB) SessionsByClient(ctx context.Context, clientID int) ([]models.Session, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE client_id = ?
		 ORDER BY created_at DESC, id`,
		clientID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := scanSession(rows.Scan, &s); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// RecentSessions returns the most recently finalized sessions across all
// clients, newest first.
func (db *DB) RecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := scanSession(rows.Scan, &s); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession returns a single finalized session by id.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id.String())

	var s models.Session
	if err := scanSession(row.Scan, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return &s, nil
}

func scanSession(scan func(dest ...any) error, s *models.Session) error {
	var id string
	if err := scan(&id, &s.ClientID, &s.CreatedAt, &s.Name, &s.SessionDate,
		&s.DayLabel, &s.Objective, &s.WarmupGeneral, &s.WarmupSpecific,
		&s.Strength, &s.SpecificWork, &s.Conditioning, &s.CoachNotes); err != nil {
		return err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing session id %q: %w", id, err)
	}
	s.ID = parsed
	return nil
}
