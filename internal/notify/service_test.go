package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/email"
	dErrors "intake-gateway/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestSendAdminAndConfirmation(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, testLogger(), "admin@example.com")

	err := svc.Send(context.Background(), Request{
		FormData: map[string]any{
			"email":             "Applicant@Example.com",
			"fullName":          "A. Applicant",
			"post":              "Relationship Manager",
			"applicationNumber": "APP-42",
		},
		Files: map[string]string{
			"photo":         "https://cdn.example.com/photo.jpg",
			"centerChoice1": "delhi-ncr",
		},
		PDFBase64: "aGVsbG8=",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	admin := sender.sent[0]
	assert.Equal(t, []string{"admin@example.com"}, admin.To)
	assert.Equal(t, "New Job Application Received", admin.Subject)
	assert.Contains(t, admin.HTML, "APP-42")
	assert.Contains(t, admin.HTML, "https://cdn.example.com/photo.jpg")
	assert.NotContains(t, admin.HTML, "delhi-ncr", "non-URL file values are not linked")
	require.Len(t, admin.Attachments, 1)
	assert.Equal(t, "aGVsbG8=", admin.Attachments[0].Content)

	confirmation := sender.sent[1]
	assert.Equal(t, []string{"applicant@example.com"}, confirmation.To)
	assert.Equal(t, "Application Received - Next Steps", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "A. Applicant")
	assert.Contains(t, confirmation.HTML, "APP-42")
}

func TestSendWithoutApplicantEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, testLogger(), "admin@example.com")

	err := svc.Send(context.Background(), Request{
		FormData: map[string]any{"fullName": "No Email"},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1, "only the admin email goes out")
	assert.Empty(t, sender.sent[0].Attachments)
}

func TestSendEscapesApplicantInput(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, testLogger(), "admin@example.com")

	err := svc.Send(context.Background(), Request{
		FormData: map[string]any{"fullName": `<script>alert("x")</script>`},
	})
	require.NoError(t, err)
	assert.NotContains(t, sender.sent[0].HTML, "<script>")
}

func TestSendDependencyFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("brevo down")}
	svc := New(sender, testLogger(), "admin@example.com")

	err := svc.Send(context.Background(), Request{FormData: map[string]any{}})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeDependency))
}
