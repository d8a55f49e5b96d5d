package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

func (repo *SubscriptionRepo) SubscribeToJournalist(ctx context.Context, readerID, journalistID int64) (*entity.JournalistSubscription, error) {
	// Get-or-create: the conflict target is the unique (reader, journalist)
	// pair, so a second subscribe returns the stored row untouched.
	const insert = `
INSERT INTO journalist_subscriptions (reader_id, journalist_id)
VALUES ($1, $2)
ON CONFLICT (reader_id, journalist_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, insert, readerID, journalistID); err != nil {
		return nil, fmt.Errorf("SubscribeToJournalist: %w", err)
	}

	const query = `
SELECT id, reader_id, journalist_id, created_at
FROM journalist_subscriptions
WHERE reader_id = $1 AND journalist_id = $2
LIMIT 1`
	var sub entity.JournalistSubscription
	err := repo.db.QueryRowContext(ctx, query, readerID, journalistID).
		Scan(&sub.ID, &sub.ReaderID, &sub.JournalistID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("SubscribeToJournalist: reload: %w", err)
	}
	return &sub, nil
}

func (repo *SubscriptionRepo) SubscribeToNewsletter(ctx context.Context, readerID, newsletterID int64) (*entity.NewsletterSubscription, error) {
	const insert = `
INSERT INTO newsletter_subscriptions (reader_id, newsletter_id)
VALUES ($1, $2)
ON CONFLICT (reader_id, newsletter_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, insert, readerID, newsletterID); err != nil {
		return nil, fmt.Errorf("SubscribeToNewsletter: %w", err)
	}

	const query = `
SELECT id, reader_id, newsletter_id, created_at
FROM newsletter_subscriptions
WHERE reader_id = $1 AND newsletter_id = $2
LIMIT 1`
	var sub entity.NewsletterSubscription
	err := repo.db.QueryRowContext(ctx, query, readerID, newsletterID).
		Scan(&sub.ID, &sub.ReaderID, &sub.NewsletterID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("SubscribeToNewsletter: reload: %w", err)
	}
	return &sub, nil
}

func (repo *SubscriptionRepo) ListJournalistSubscriptions(ctx context.Context, readerID int64) ([]*entity.JournalistSubscription, error) {
	const query = `
SELECT id, reader_id, journalist_id, created_at
FROM journalist_subscriptions
WHERE reader_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("ListJournalistSubscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.JournalistSubscription, 0, 10)
	for rows.Next() {
		var sub entity.JournalistSubscription
		if err := rows.Scan(&sub.ID, &sub.ReaderID, &sub.JournalistID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListJournalistSubscriptions: Scan: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (repo *SubscriptionRepo) ListNewsletterSubscriptions(ctx context.Context, readerID int64) ([]*entity.NewsletterSubscription, error) {
	const query = `
SELECT id, reader_id, newsletter_id, created_at
FROM newsletter_subscriptions
WHERE reader_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("ListNewsletterSubscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.NewsletterSubscription, 0, 10)
	for rows.Next() {
		var sub entity.NewsletterSubscription
		if err := rows.Scan(&sub.ID, &sub.ReaderID, &sub.NewsletterID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListNewsletterSubscriptions: Scan: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (repo *SubscriptionRepo) ListNewsletterSubscribers(ctx context.Context, newsletterID int64) ([]repository.AudienceMember, error) {
	const query = `
SELECT u.id, u.username, u.email
FROM users u
INNER JOIN newsletter_subscriptions ns ON ns.reader_id = u.id
WHERE ns.newsletter_id = $1
ORDER BY u.id`
	rows, err := repo.db.QueryContext(ctx, query, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("ListNewsletterSubscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make([]repository.AudienceMember, 0, 50)
	for rows.Next() {
		var member repository.AudienceMember
		var email sql.NullString
		if err := rows.Scan(&member.UserID, &member.Username, &email); err != nil {
			return nil, fmt.Errorf("ListNewsletterSubscribers: Scan: %w", err)
		}
		member.Email = email.String
		members = append(members, member)
	}
	return members, rows.Err()
}

func (repo *SubscriptionRepo) ResolveAudience(ctx context.Context, articleID, authorID int64) ([]repository.AudienceMember, error) {
	// Union of both subscription paths, deduplicated by reader ID (not by
	// email): a reader reachable via both paths is one recipient.
	const query = `
SELECT u.id, u.username, u.email
FROM users u
INNER JOIN journalist_subscriptions js ON js.reader_id = u.id
WHERE js.journalist_id = $2
UNION
SELECT u.id, u.username, u.email
FROM users u
INNER JOIN newsletter_subscriptions ns ON ns.reader_id = u.id
INNER JOIN newsletter_articles na ON na.newsletter_id = ns.newsletter_id
WHERE na.article_id = $1`
	rows, err := repo.db.QueryContext(ctx, query, articleID, authorID)
	if err != nil {
		return nil, fmt.Errorf("ResolveAudience: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make([]repository.AudienceMember, 0, 50)
	for rows.Next() {
		var member repository.AudienceMember
		var email sql.NullString
		if err := rows.Scan(&member.UserID, &member.Username, &email); err != nil {
			return nil, fmt.Errorf("ResolveAudience: Scan: %w", err)
		}
		member.Email = email.String
		members = append(members, member)
	}
	return members, rows.Err()
}
