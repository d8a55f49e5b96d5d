// Package notifier provides abstraction for the outbound notification
// channels used by the publication fan-out. It defines the Mailer and
// SocialPoster interfaces so different delivery mechanisms (SMTP, the X API,
// no-op stand-ins for tests) can be used interchangeably through dependency
// injection.
package notifier

import "context"

// Mailer delivers a publication announcement to a batch of recipients.
// Implementations should handle connection setup and error wrapping
// internally; the caller decides whether a delivery failure is fatal.
type Mailer interface {
	// Send delivers one message with the given subject and body to every
	// address in to. An empty recipient list must be a no-op returning nil.
	Send(ctx context.Context, to []string, subject, body string) error
}

// SocialPoster publishes a short announcement to a social platform.
// Failures on this channel are advisory: callers log and continue, so
// implementations should return rich errors rather than retrying forever.
type SocialPoster interface {
	// Post publishes text on behalf of the platform account. The article ID
	// is carried for log correlation only.
	Post(ctx context.Context, articleID int64, text string) error
}
