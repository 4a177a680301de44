package notify

import "context"

// Notifier delivers one plain-text message to a provider.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
