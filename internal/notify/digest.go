// Package notify emails a digest of the stored member names through Resend.
// The digest lists every distinct name in Hungarian alphabetical order; it is
// sent after each successful backup so the recipient sees the same state the
// snapshot captured.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/zugloev/tagregiszter/internal/config"
)

const digestSubject = "Tagnyilvántartás - Nevek lista"

// NameSource supplies the member names. Satisfied by *store.Members.
type NameSource interface {
	Names(ctx context.Context) ([]string, error)
}

// emailsAPI is the slice of the Resend client the digest uses.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Digest sends the member-names summary email.
type Digest struct {
	names  NameSource
	emails emailsAPI
	to     string
	from   string
}

// NewDigest creates a digest sender from the notify configuration.
func NewDigest(names NameSource, cfg config.NotifyConfig) *Digest {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &Digest{
		names:  names,
		emails: client.Emails,
		to:     cfg.To,
		from:   cfg.From,
	}
}

// Send emails the current name list. An empty table is not an error; the
// digest is simply skipped.
func (d *Digest) Send(ctx context.Context) error {
	names, err := d.names.Names(ctx)
	if err != nil {
		return fmt.Errorf("load member names: %w", err)
	}
	if len(names) == 0 {
		slog.Info("digest skipped, no member names")
		return nil
	}

	sorted := SortHungarian(names)
	sent, err := d.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{d.to},
		Subject: digestSubject,
		Html:    digestHTML(sorted),
	})
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	slog.Info("digest sent", "id", sent.Id, "names", len(sorted))
	return nil
}

// digestHTML renders the email body. Names are HTML-escaped; they are
// free-form user input.
func digestHTML(names []string) string {
	var b strings.Builder
	b.WriteString("<div style='font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif;line-height:1.5'>\n")
	b.WriteString("<h2 style='margin:0 0 .5rem'>Tagnyilvántartás - Nevek lista</h2>\n")
	fmt.Fprintf(&b, "<p style='margin:.25rem 0'>Összesen <b>%d</b> név szerepel a listában.</p>\n", len(names))
	b.WriteString("<ul style='margin:.5rem 0 0 1.25rem; padding:0'>\n")
	for _, n := range names {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(n))
	}
	b.WriteString("</ul>\n")
	b.WriteString("<hr style='border:none;border-top:1px solid #e5e7eb;margin:1rem 0'>\n")
	b.WriteString("<p style='font-size:12px;color:#6b7280;margin:0'>Automatikus üzenet - kérjük ne válaszoljon rá.</p>\n")
	b.WriteString("</div>\n")
	return b.String()
}
