// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// NotificationInput carries one message to an account's notification address.
type NotificationInput struct {
	To      string
	Name    string
	Subject string
	Body    string
}

// Notifier is the delivery sink for generated-transaction notices, budget
// alerts and digests. Delivery is best-effort: failures are logged by the
// caller and never roll back the state change that triggered the message.
type Notifier interface {
	Send(ctx context.Context, input NotificationInput) error
}
