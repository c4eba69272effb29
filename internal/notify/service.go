// Package notify forwards completed applications by email: one summary to
// the admin inbox (with the applicant's PDF attached when provided) and one
// confirmation to the applicant. Applicant form data is treated as opaque
// input; only a minimal summary rendering is done here.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"

	"intake-gateway/internal/email"
	dErrors "intake-gateway/pkg/domain-errors"
)

const attachmentName = "Applicant_Data.pdf"

// Request is the payload of a completed application.
type Request struct {
	FormData  map[string]any    `json:"formData"`
	Files     map[string]string `json:"files"`
	PDFBase64 string            `json:"pdfBase64"`
}

// Service assembles and sends the application emails.
type Service struct {
	sender     email.Sender
	logger     *slog.Logger
	adminEmail string
}

// New constructs the notifier.
func New(sender email.Sender, logger *slog.Logger, adminEmail string) *Service {
	return &Service{sender: sender, logger: logger, adminEmail: adminEmail}
}

// Send dispatches the admin summary and, when the form carries a valid
// applicant address, the confirmation email.
func (s *Service) Send(ctx context.Context, req Request) error {
	admin := email.Message{
		To:      []string{s.adminEmail},
		Subject: "New Job Application Received",
		HTML:    renderSummary(req),
	}
	if req.PDFBase64 != "" {
		admin.Attachments = []email.Attachment{{Name: attachmentName, Content: req.PDFBase64}}
	}
	if err := s.sender.Send(ctx, admin); err != nil {
		s.logger.ErrorContext(ctx, "admin notification failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to send email", err)
	}

	applicant, ok := applicantAddress(req.FormData)
	if !ok {
		return nil
	}
	confirmation := email.Message{
		To:      []string{applicant},
		Subject: "Application Received - Next Steps",
		HTML:    renderConfirmation(req.FormData),
	}
	if err := s.sender.Send(ctx, confirmation); err != nil {
		s.logger.ErrorContext(ctx, "applicant confirmation failed", "error", err)
		return dErrors.Wrap(dErrors.CodeDependency, "Failed to send email", err)
	}
	return nil
}

func applicantAddress(form map[string]any) (string, bool) {
	raw, _ := form["email"].(string)
	return email.Normalize(raw)
}

func field(form map[string]any, key string) string {
	v, _ := form[key].(string)
	return v
}

// renderSummary lists the submitted fields and uploaded-file links. Nested
// values are flattened one level; the detailed record travels in the PDF.
func renderSummary(req Request) string {
	var b strings.Builder
	b.WriteString("<h2>New Job Application Received</h2>")

	b.WriteString("<h3>Application Details:</h3><ul>")
	for _, key := range []string{"applicationNumber", "post", "category"} {
		if v := field(req.FormData, key); v != "" {
			fmt.Fprintf(&b, "<li><b>%s:</b> %s</li>", html.EscapeString(key), html.EscapeString(v))
		}
	}
	b.WriteString("</ul>")

	b.WriteString("<h3>Form Data:</h3><ul>")
	for _, key := range sortedKeys(req.FormData) {
		switch v := req.FormData[key].(type) {
		case string:
			fmt.Fprintf(&b, "<li><b>%s:</b> %s</li>", html.EscapeString(key), html.EscapeString(v))
		case float64:
			fmt.Fprintf(&b, "<li><b>%s:</b> %v</li>", html.EscapeString(key), v)
		case bool:
			fmt.Fprintf(&b, "<li><b>%s:</b> %v</li>", html.EscapeString(key), v)
		}
	}
	b.WriteString("</ul>")

	links := uploadLinks(req.Files)
	if len(links) > 0 {
		b.WriteString("<h3>Uploaded Files:</h3>")
		for _, key := range links {
			url := html.EscapeString(req.Files[key])
			fmt.Fprintf(&b, `<p><b>%s:</b><br><a href="%s">%s</a></p>`, html.EscapeString(key), url, url)
		}
	}
	return b.String()
}

func renderConfirmation(form map[string]any) string {
	name := field(form, "fullName")
	if name == "" {
		name = "Applicant"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(name))
	b.WriteString("<p>Thank you for your application. We have received it and will review it carefully. ")
	b.WriteString("Our recruitment team will be in touch with updates on the next steps.</p>")
	if v := field(form, "applicationNumber"); v != "" {
		fmt.Fprintf(&b, "<p><b>Application Number:</b> %s</p>", html.EscapeString(v))
	}
	if v := field(form, "post"); v != "" {
		fmt.Fprintf(&b, "<p><b>Post:</b> %s</p>", html.EscapeString(v))
	}
	if v := field(form, "category"); v != "" {
		fmt.Fprintf(&b, "<p><b>Category:</b> %s</p>", html.EscapeString(v))
	}
	b.WriteString("<p>Best regards,<br/>Recruitment Team</p>")
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// uploadLinks returns the file keys whose values look like hosted URLs,
// sorted for stable output.
func uploadLinks(files map[string]string) []string {
	var keys []string
	for k, v := range files {
		if strings.HasPrefix(v, "http") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
