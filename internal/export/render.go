// Package export renders finalized sessions into shareable documents and
// uploads them to Google Drive. Failures here never touch local state; the
// archive row is the durable source of truth.
package export

import (
	"fmt"
	"strings"

	"github.com/meltforce/coachdesk/internal/models"
)

// RenderDocument produces the filename and plain-text body for a finalized
// session.
func RenderDocument(clientName string, s *models.Session) (filename, content string) {
	filename = fmt.Sprintf("Training_%s_%s.txt", s.SessionDate, sanitizeFilename(s.Name))

	var b strings.Builder
	fmt.Fprintf(&b, "# Training session for: %s\n", clientName)
	fmt.Fprintf(&b, "# Date: %s (%s)\n", s.SessionDate, orNA(s.DayLabel))

	section(&b, "Session Objective", s.Objective)
	section(&b, "General Warm-Up", s.WarmupGeneral)
	section(&b, "Specific Warm-Up", s.WarmupSpecific)
	section(&b, "Strength / Weightlifting", s.Strength)
	section(&b, "Specific Work", s.SpecificWork)
	section(&b, "Conditioning", s.Conditioning)
	section(&b, "Coach Notes", s.CoachNotes)

	return filename, b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "\n## %s\n%s\n", title, orNA(body))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	return strings.TrimSpace(replacer.Replace(name))
}
