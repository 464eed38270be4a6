package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/meltforce/coachdesk/internal/models"
)

// ClientSource supplies an authenticated HTTP client, or errs.ErrAuthRequired
// when the user has not completed the authorization step yet.
type ClientSource interface {
	Client(ctx context.Context) (*http.Client, error)
}

// DriveExporter uploads rendered sessions into a per-client folder under the
// configured root folder.
type DriveExporter struct {
	source     ClientSource
	rootFolder string
	log        *slog.Logger

	// overridable in tests
	apiBase    string
	uploadBase string
}

// NewDriveExporter constructs the exporter.
func NewDriveExporter(source ClientSource, rootFolder string, log *slog.Logger) *DriveExporter {
	return &DriveExporter{source: source, rootFolder: rootFolder, log: log}
}

// Export renders the session and uploads it to
// <root>/<client name>/Training_<date>_<name>.txt, returning the shareable
// link. Purely remote: no local state is touched on any path.
func (e *DriveExporter) Export(ctx context.Context, clientName string, s *models.Session) (string, error) {
	hc, err := e.source.Client(ctx)
	if err != nil {
		return "", err
	}

	d := NewDrive(hc)
	if e.apiBase != "" {
		d.apiBase = e.apiBase
	}
	if e.uploadBase != "" {
		d.uploadBase = e.uploadBase
	}

	rootID, err := d.EnsureFolder(ctx, e.rootFolder, "")
	if err != nil {
		return "", fmt.Errorf("ensuring root folder: %w", err)
	}
	clientFolderID, err := d.EnsureFolder(ctx, clientName, rootID)
	if err != nil {
		return "", fmt.Errorf("ensuring client folder: %w", err)
	}

	filename, content := RenderDocument(clientName, s)
	link, err := d.UploadText(ctx, clientFolderID, filename, content)
	if err != nil {
		return "", err
	}

	e.log.Info("session exported", "session", s.ID, "file", filename)
	return link, nil
}
