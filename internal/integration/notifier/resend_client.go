// Package notifier delivers account notifications via Resend.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/expensebot/backend/internal/application/adapter"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

// ResendClient implements the adapter.Notifier interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers one notification via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.NotificationInput) error {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: input.Subject,
		Text:    input.Body,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		if isPermanentError(err) {
			return domainerror.NewNotifierError(
				domainerror.ErrCodePermanentNotifyFailure,
				"permanent notification failure",
				err,
			)
		}
		return domainerror.NewNotifierError(
			domainerror.ErrCodeTemporaryNotifyFailure,
			"temporary notification failure",
			err,
		)
	}

	return nil
}

// isPermanentError checks if the error is a permanent error that should not be retried.
// Permanent errors include: 401 (Unauthorized), 403 (Forbidden), 422 (Validation Error)
// Temporary errors include: 429 (Rate Limit), 5xx (Server Errors)
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// NoopNotifier drops every notification. Used when the sink is disabled or
// no API key is configured; delivery is best-effort everywhere, so dropping
// is a valid sink.
type NoopNotifier struct{}

// Send implements the adapter.Notifier interface by discarding the message.
func (NoopNotifier) Send(_ context.Context, input adapter.NotificationInput) error {
	slog.Debug("Notification dropped, sink disabled", "to", input.To, "subject", input.Subject)
	return nil
}

// MockNotifier is a mock implementation for testing.
type MockNotifier struct {
	Sent        []adapter.NotificationInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		Sent: make([]adapter.NotificationInput, 0),
	}
}

// Send implements the adapter.Notifier interface for testing.
func (m *MockNotifier) Send(ctx context.Context, input adapter.NotificationInput) error {
	if m.ShouldFail {
		if m.IsPermanent {
			return domainerror.NewNotifierError(
				domainerror.ErrCodePermanentNotifyFailure,
				"mock permanent failure",
				m.FailError,
			)
		}
		return domainerror.NewNotifierError(
			domainerror.ErrCodeTemporaryNotifyFailure,
			"mock temporary failure",
			m.FailError,
		)
	}

	m.Sent = append(m.Sent, input)
	return nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockNotifier) SetFailure(err error, permanent bool) {
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Reset clears all sent notifications and failure configuration.
func (m *MockNotifier) Reset() {
	m.Sent = make([]adapter.NotificationInput, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.Notifier = (*ResendClient)(nil)
	_ adapter.Notifier = NoopNotifier{}
	_ adapter.Notifier = (*MockNotifier)(nil)
)
