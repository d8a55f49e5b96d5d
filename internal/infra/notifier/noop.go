package notifier

import "context"

// NoOpMailer is a no-operation implementation of the Mailer interface.
// It is used when mail delivery is disabled to avoid nil checks in the code.
// This follows the Null Object pattern.
type NoOpMailer struct{}

// NewNoOpMailer creates a new NoOpMailer instance.
func NewNoOpMailer() *NoOpMailer {
	return &NoOpMailer{}
}

// Send does nothing and returns nil immediately.
func (n *NoOpMailer) Send(ctx context.Context, to []string, subject, body string) error {
	return nil
}

// NoOpSocialPoster is a no-operation implementation of the SocialPoster
// interface, used when social posting is disabled.
type NoOpSocialPoster struct{}

// NewNoOpSocialPoster creates a new NoOpSocialPoster instance.
func NewNoOpSocialPoster() *NoOpSocialPoster {
	return &NoOpSocialPoster{}
}

// Post does nothing and returns nil immediately.
func (n *NoOpSocialPoster) Post(ctx context.Context, articleID int64, text string) error {
	return nil
}
