package ports

import "context"

// Notifier dispatches an out-of-band message to a recipient. Generated
// credentials travel exclusively through this channel, so callers must treat
// a dispatch failure as a hard error, never a degraded success.
type Notifier interface {
	Send(ctx context.Context, subject, body, recipient string) error
}
