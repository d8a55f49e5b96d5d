package repository

import (
	"context"
	"time"

	"newsdesk/internal/domain/entity"
)

type NewsletterRepository interface {
	// Get retrieves a newsletter by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Newsletter, error)
	List(ctx context.Context) ([]*entity.Newsletter, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error)
	Create(ctx context.Context, newsletter *entity.Newsletter) error
	// AddArticle attaches an article to a newsletter; idempotent.
	AddArticle(ctx context.Context, newsletterID, articleID int64) error
	// ListArticles returns the approved articles attached to a newsletter.
	ListArticles(ctx context.Context, newsletterID int64) ([]*entity.Article, error)
	// ListArticlesAttachedSince returns approved articles attached to the
	// newsletter on or after the given time. Used by the digest worker.
	ListArticlesAttachedSince(ctx context.Context, newsletterID int64, since time.Time) ([]*entity.Article, error)
}
