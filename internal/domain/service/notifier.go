package service

import "context"

// Notifier delivers user-facing notifications. Delivery is fire-and-forget:
// callers log failures and never retry.
type Notifier interface {
	Notify(ctx context.Context, title, body string, data map[string]string) error
}
