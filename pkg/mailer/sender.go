package mailer

import "context"

// Sender is implemented by email providers.
type Sender interface {
	// Send delivers a single message and returns the provider-issued message ID.
	// The ID may be empty when the provider does not return one.
	Send(ctx context.Context, email *Email) (string, error)
}

// Checker is implemented by senders that can report missing configuration
// without sending anything. Check returns an error wrapping ErrNotConfigured.
type Checker interface {
	Check() error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

// Send calls f(ctx, email).
func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
