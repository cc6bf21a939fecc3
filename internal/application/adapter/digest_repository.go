// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// DigestRepository records which periodic digests have already been sent.
// The dedupe state is durable, keyed (account, period), so restarts neither
// resend nor lose it.
type DigestRepository interface {
	// AlreadySent reports whether the digest for the period was recorded.
	AlreadySent(ctx context.Context, accountID int64, periodKey string) (bool, error)

	// MarkSent records the digest send for the period.
	MarkSent(ctx context.Context, accountID int64, periodKey string) error
}
