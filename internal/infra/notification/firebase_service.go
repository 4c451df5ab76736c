// Package notification implements the Notifier collaborator.
package notification

import (
	"context"
	"fmt"

	"spotalert/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseNotifier struct {
	client *messaging.Client
	tokens []string
}

// NewFirebaseNotifier creates a push notifier delivering to the user's
// registered device tokens via Firebase Cloud Messaging.
func NewFirebaseNotifier(ctx context.Context, credentialsPath string, tokens []string) (service.Notifier, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseNotifier{
		client: client,
		tokens: tokens,
	}, nil
}

// Notify sends the notification to every registered device. Partial failure
// is reported as an error; the caller only logs it.
func (n *firebaseNotifier) Notify(ctx context.Context, title, body string, data map[string]string) error {
	if len(n.tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: n.tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := n.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send multicast notification: %w", err)
	}

	if response.FailureCount > 0 {
		return fmt.Errorf("notification failed for %d of %d devices", response.FailureCount, len(n.tokens))
	}

	return nil
}
