package email

import "context"

// Attachment is a named base64-encoded payload (no data: prefix).
type Attachment struct {
	Name    string
	Content string
}

// Message is one outbound transactional email.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender dispatches transactional email. Implementations must not retry;
// callers surface failures immediately.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
