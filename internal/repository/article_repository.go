package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// ArticleWithAuthor pairs an article with its author's display name.
type ArticleWithAuthor struct {
	Article    *entity.Article
	AuthorName string
}

type ArticleRepository interface {
	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetWithAuthor retrieves an article along with the author's username.
	// Returns (nil, "", nil) if the article is not found.
	GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error)
	// ListApproved returns one page of approved articles, newest first.
	ListApproved(ctx context.Context, limit, offset int) ([]*entity.Article, error)
	// CountApproved returns the total number of approved articles.
	CountApproved(ctx context.Context) (int64, error)
	// ListByAuthor returns all articles by the given author regardless of
	// approval state, newest first.
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error)
	// ListForReview returns articles an editor may act on: articles scoped to
	// publishers the editor administers, plus publisher-less articles.
	ListForReview(ctx context.Context, editorID int64) ([]*entity.Article, error)
	// ListSubscribed returns approved articles authored by journalists the
	// reader subscribes to, or contained in newsletters the reader subscribes
	// to, deduplicated.
	ListSubscribed(ctx context.Context, readerID int64) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	// Update persists title, content and publisher changes. The approved flag
	// is deliberately excluded; the transition goes through Approve.
	Update(ctx context.Context, article *entity.Article) error
	// Approve flips approved from false to true with a compare-and-swap
	// predicate. It reports whether this call performed the transition:
	// false means the article was already approved (or absent) and no
	// notification edge fired.
	Approve(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
