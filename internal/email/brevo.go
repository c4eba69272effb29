package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"intake-gateway/pkg/platform/sentinel"
)

const sendPath = "/v3/smtp/email"

// Brevo sends transactional email through the Brevo SMTP API.
type Brevo struct {
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
}

// BrevoOption configures a Brevo client.
type BrevoOption func(*Brevo)

// WithHTTPClient overrides the HTTP client, used by tests.
func WithHTTPClient(c *http.Client) BrevoOption {
	return func(b *Brevo) { b.httpClient = c }
}

// NewBrevo constructs a Brevo sender. baseURL carries no trailing slash.
func NewBrevo(baseURL, apiKey, senderName, senderEmail string, opts ...BrevoOption) *Brevo {
	b := &Brevo{
		baseURL:     baseURL,
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoSendRequest struct {
	Sender      brevoAddress      `json:"sender"`
	To          []brevoAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// Send posts one message to the transactional endpoint. Any non-2xx status
// is reported as sentinel.ErrUnavailable; no retry is attempted.
func (b *Brevo) Send(ctx context.Context, msg Message) error {
	payload := brevoSendRequest{
		Sender:      brevoAddress{Name: b.senderName, Email: b.senderEmail},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, brevoAddress{Email: to})
	}
	for _, att := range msg.Attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{Name: att.Name, Content: att.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send email: %w: status %d: %s", sentinel.ErrUnavailable, resp.StatusCode, detail)
	}
	return nil
}
