// Package importer migrates client records out of the legacy trainer tool's
// SQLite database. The legacy schema kept only the client roster; sessions
// were never persisted there.
package importer

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meltforce/coachdesk/internal/errs"
	"github.com/meltforce/coachdesk/internal/service"
	_ "modernc.org/sqlite"
)

// Stats tracks import progress.
type Stats struct {
	Imported   int
	Duplicates int
	Errored    int

	// Secrets maps imported handles to their generated access secrets so
	// the trainer can hand them out. Empty on dry runs.
	Secrets map[string]string
}

// legacyGoals maps the legacy tool's Spanish goal catalogue onto ours.
// Unmapped values are carried over verbatim.
var legacyGoals = map[string]string{
	"Recomposición corporal":  "Body recomposition",
	"Fuerza":                  "Strength",
	"Pérdida de peso":         "Weight loss",
	"Ganancia muscular":       "Muscle gain",
	"Rendimiento deportivo":   "Athletic performance",
	"Salud postural / dolor":  "Postural health / pain",
	"Hábitos y salud general": "Habits and general health",
	"Otro":                    "Other",
}

// Importer reads the legacy clientes table and registers each row through the
// registry.
type Importer struct {
	registry *service.Registry
	log      *slog.Logger
	dryRun   bool
}

// New creates a new Importer.
func New(registry *service.Registry, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{registry: registry, log: log, dryRun: dryRun}
}

// Import reads every row of the legacy database at path and registers it.
// Rows whose derived handle is already registered are counted as duplicates
// and skipped; other failures are logged and counted but do not stop the run.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT nombre, email, COALESCE(telefono, ''), COALESCE(objetivo, '')
		 FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("reading clientes table: %w", err)
	}
	defer rows.Close()

	stats := &Stats{Secrets: map[string]string{}}
	for rows.Next() {
		var name, email, phone, goal string
		if err := rows.Scan(&name, &email, &phone, &goal); err != nil {
			return nil, fmt.Errorf("scanning legacy row: %w", err)
		}

		handle := handleFromEmail(email)
		if mapped, ok := legacyGoals[goal]; ok {
			goal = mapped
		}

		if imp.dryRun {
			imp.log.Info("would import", "name", name, "handle", handle, "goal", goal)
			stats.Imported++
			continue
		}

		secret, err := newSecret()
		if err != nil {
			return nil, err
		}
		_, err = imp.registry.Register(ctx, name, goal, phone, handle, secret)
		switch {
		case errors.Is(err, errs.ErrDuplicateHandle):
			imp.log.Warn("handle already registered, skipping", "handle", handle)
			stats.Duplicates++
		case err != nil:
			imp.log.Error("import failed", "name", name, "handle", handle, "error", err)
			stats.Errored++
		default:
			imp.log.Info("imported", "name", name, "handle", handle)
			stats.Imported++
			stats.Secrets[handle] = secret
		}
	}
	return stats, rows.Err()
}

// handleFromEmail derives a handle from the local part of the legacy email
// column, keeping only lowercase letters, digits, and separators.
func handleFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.ToLower(strings.TrimSpace(local))

	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func newSecret() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
