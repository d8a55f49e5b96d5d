package subscription

import (
	"context"
	"fmt"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// Subscriptions bundles both subscription kinds for a reader.
type Subscriptions struct {
	Journalists []*entity.JournalistSubscription
	Newsletters []*entity.NewsletterSubscription
}

// Service provides subscription management use cases. Only readers hold
// subscriptions; the policy check runs before any target validation so the
// role failure dominates.
type Service struct {
	Subs        repository.SubscriptionRepository
	Users       repository.UserRepository
	Newsletters repository.NewsletterRepository
}

// SubscribeToJournalist follows a journalist. The target must be an existing
// user carrying the journalist role. Subscribing twice returns the stored
// row and creates nothing.
func (s *Service) SubscribeToJournalist(ctx context.Context, p access.Principal, journalistID int64) (*entity.JournalistSubscription, error) {
	if !access.CanSubscribe(p) {
		return nil, access.ErrPermissionDenied
	}
	if journalistID <= 0 {
		return nil, ErrInvalidTargetID
	}

	target, err := s.Users.Get(ctx, journalistID)
	if err != nil {
		return nil, fmt.Errorf("get journalist: %w", err)
	}
	if target == nil || target.Role != entity.RoleJournalist {
		return nil, ErrJournalistNotFound
	}

	sub, err := s.Subs.SubscribeToJournalist(ctx, p.UserID, journalistID)
	if err != nil {
		return nil, fmt.Errorf("subscribe to journalist: %w", err)
	}
	metrics.RecordSubscription("journalist")
	return sub, nil
}

// SubscribeToNewsletter follows a newsletter with the same idempotent
// contract as SubscribeToJournalist.
func (s *Service) SubscribeToNewsletter(ctx context.Context, p access.Principal, newsletterID int64) (*entity.NewsletterSubscription, error) {
	if !access.CanSubscribe(p) {
		return nil, access.ErrPermissionDenied
	}
	if newsletterID <= 0 {
		return nil, ErrInvalidTargetID
	}

	target, err := s.Newsletters.Get(ctx, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if target == nil {
		return nil, ErrNewsletterNotFound
	}

	sub, err := s.Subs.SubscribeToNewsletter(ctx, p.UserID, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("subscribe to newsletter: %w", err)
	}
	metrics.RecordSubscription("newsletter")
	return sub, nil
}

// ListSubscriptions returns everything the reader follows.
func (s *Service) ListSubscriptions(ctx context.Context, p access.Principal) (*Subscriptions, error) {
	if !access.CanSubscribe(p) {
		return nil, access.ErrPermissionDenied
	}

	journalists, err := s.Subs.ListJournalistSubscriptions(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list journalist subscriptions: %w", err)
	}
	newsletters, err := s.Subs.ListNewsletterSubscriptions(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list newsletter subscriptions: %w", err)
	}
	return &Subscriptions{Journalists: journalists, Newsletters: newsletters}, nil
}
