package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// AudienceMember is one resolved notification recipient. Email may be empty;
// the fan-out pipeline drops such members without error.
type AudienceMember struct {
	UserID   int64
	Username string
	Email    string
}

type SubscriptionRepository interface {
	// SubscribeToJournalist records a (reader, journalist) edge with
	// get-or-create semantics: if the pair already exists the stored row is
	// returned and no duplicate is created.
	SubscribeToJournalist(ctx context.Context, readerID, journalistID int64) (*entity.JournalistSubscription, error)
	// SubscribeToNewsletter has the same idempotent contract for the
	// (reader, newsletter) pair.
	SubscribeToNewsletter(ctx context.Context, readerID, newsletterID int64) (*entity.NewsletterSubscription, error)
	ListJournalistSubscriptions(ctx context.Context, readerID int64) ([]*entity.JournalistSubscription, error)
	ListNewsletterSubscriptions(ctx context.Context, readerID int64) ([]*entity.NewsletterSubscription, error)
	// ResolveAudience computes the union of readers subscribed to the
	// article's author and readers subscribed to any newsletter containing
	// the article, deduplicated by reader ID.
	ResolveAudience(ctx context.Context, articleID, authorID int64) ([]AudienceMember, error)
	// ListNewsletterSubscribers returns the readers subscribed to a
	// newsletter. Used by the digest worker.
	ListNewsletterSubscribers(ctx context.Context, newsletterID int64) ([]AudienceMember, error)
}
