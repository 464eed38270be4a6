package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

const (
	defaultAPIBase    = "https://www.googleapis.com/drive/v3"
	defaultUploadBase = "https://www.googleapis.com/upload/drive/v3"

	folderMimeType = "application/vnd.google-apps.folder"
)

// Drive is a minimal Google Drive v3 client covering the exporter's needs:
// folder lookup/creation, folder listing, and text uploads.
type Drive struct {
	hc         *http.Client
	apiBase    string
	uploadBase string
}

// NewDrive wraps an authenticated HTTP client.
func NewDrive(hc *http.Client) *Drive {
	return &Drive{hc: hc, apiBase: defaultAPIBase, uploadBase: defaultUploadBase}
}

// Entry is one file or folder in a Drive listing.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	WebViewLink string `json:"webViewLink,omitempty"`
}

type fileList struct {
	Files []Entry `json:"files"`
}

// EnsureFolder returns the id of the named folder under parentID (empty for
// the Drive root), creating it when absent.
func (d *Drive) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), folderMimeType)
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	var list fileList
	params := url.Values{"q": {q}, "fields": {"files(id,name,mimeType)"}}
	if err := d.getJSON(ctx, d.apiBase+"/files?"+params.Encode(), &list); err != nil {
		return "", fmt.Errorf("looking up folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].ID, nil
	}

	meta := map[string]any{"name": name, "mimeType": folderMimeType}
	if parentID != "" {
		meta["parents"] = []string{parentID}
	}
	var created Entry
	if err := d.postJSON(ctx, d.apiBase+"/files", meta, &created); err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}
	return created.ID, nil
}

// ListFolder returns the non-trashed entries inside a folder.
func (d *Drive) ListFolder(ctx context.Context, folderID string) ([]Entry, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	params := url.Values{"q": {q}, "fields": {"files(id,name,mimeType,webViewLink)"}}

	var list fileList
	if err := d.getJSON(ctx, d.apiBase+"/files?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("listing folder: %w", err)
	}
	return list.Files, nil
}

// UploadText uploads content as a plain-text file into folderID and returns
// the file's shareable link.
func (d *Drive) UploadText(ctx context.Context, folderID, filename, content string) (string, error) {
	meta := map[string]any{
		"name":     filename,
		"mimeType": "text/plain",
		"parents":  []string{folderID},
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"application/json; charset=UTF-8"},
	})
	if err != nil {
		return "", err
	}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return "", err
	}

	contentPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(contentPart, content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	u := d.uploadBase + "/files?uploadType=multipart&fields=id,name,webViewLink"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	var uploaded Entry
	if err := d.do(req, &uploaded); err != nil {
		return "", fmt.Errorf("uploading %q: %w", filename, err)
	}
	return uploaded.WebViewLink, nil
}

func (d *Drive) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return d.do(req, out)
}

func (d *Drive) postJSON(ctx context.Context, u string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return d.do(req, out)
}

func (d *Drive) do(req *http.Request, out any) error {
	resp, err := d.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("drive API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
