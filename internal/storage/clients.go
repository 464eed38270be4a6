package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CreateClient inserts a client row and fills in the assigned id and
// registration time. Returns errs.ErrDuplicateHandle when the handle is taken.
func (db *DB) CreateClient(ctx context.Context, c *models.Client) error {
	c.RegisteredAt = time.Now().UTC()
	res, err := db.SQL.ExecContext(ctx,
		`INSERT INTO clients (name, goal, phone, handle, secret_hash, secret_salt, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Goal, c.Phone, c.Handle, c.SecretHash, c.SecretSalt, c.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateHandle
		}
		return fmt.Errorf("inserting client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading client id: %w", err)
	}
	c.ID = int(id)
	return nil
}

const clientColumns = `id, name, goal, phone, handle, secret_hash, secret_salt, registered_at`

// ListClients returns all registered clients ordered by registration.
func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var result []models.Client
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows.Scan, &c); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// GetClientByHandle returns the client with the given handle.
func (db *DB) GetClientByHandle(ctx context.Context, handle string) (*models.Client, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE handle = ?`, handle)
	return oneClient(row)
}

// GetClient returns the client with the given id.
func (db *DB) GetClient(ctx context.Context, id int) (*models.Client, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	return oneClient(row)
}

func oneClient(row *sql.Row) (*models.Client, error) {
	var c models.Client
	if err := scanClient(row.Scan, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	return &c, nil
}

func scanClient(scan func(dest ...any) error, c *models.Client) error {
	return scan(&c.ID, &c.Name, &c.Goal, &c.Phone, &c.Handle,
		&c.SecretHash, &c.SecretSalt, &c.RegisteredAt)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
