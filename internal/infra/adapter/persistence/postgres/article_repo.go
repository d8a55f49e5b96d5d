package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, title, content, author_id, publisher_id, approved, created_at`

func scanArticle(row interface{ Scan(...any) error }) (*entity.Article, error) {
	var article entity.Article
	var publisherID sql.NullInt64
	err := row.Scan(&article.ID, &article.Title, &article.Content,
		&article.AuthorID, &publisherID, &article.Approved, &article.CreatedAt)
	if err != nil {
		return nil, err
	}
	if publisherID.Valid {
		article.PublisherID = &publisherID.Int64
	}
	return &article, nil
}

func (repo *ArticleRepo) queryArticles(ctx context.Context, op, query string, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error) {
	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.publisher_id, a.approved, a.created_at, u.username
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.id = $1
LIMIT 1`
	var article entity.Article
	var publisherID sql.NullInt64
	var authorName string
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &article.Title, &article.Content, &article.AuthorID,
			&publisherID, &article.Approved, &article.CreatedAt, &authorName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("GetWithAuthor: %w", err)
	}
	if publisherID.Valid {
		article.PublisherID = &publisherID.Int64
	}
	return &article, authorName, nil
}

func (repo *ArticleRepo) ListApproved(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE approved = TRUE
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	return repo.queryArticles(ctx, "ListApproved", query, limit, offset)
}

func (repo *ArticleRepo) CountApproved(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles WHERE approved = TRUE`
	var total int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("CountApproved: %w", err)
	}
	return total, nil
}

func (repo *ArticleRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE author_id = $1
ORDER BY created_at DESC`
	return repo.queryArticles(ctx, "ListByAuthor", query, authorID)
}

func (repo *ArticleRepo) ListForReview(ctx context.Context, editorID int64) ([]*entity.Article, error) {
	// Editors act on articles of the publishers they administer, plus
	// independent (publisher-less) articles.
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE publisher_id IS NULL
   OR publisher_id IN (
        SELECT publisher_id FROM publisher_editors WHERE user_id = $1
   )
ORDER BY created_at DESC`
	return repo.queryArticles(ctx, "ListForReview", query, editorID)
}

func (repo *ArticleRepo) ListSubscribed(ctx context.Context, readerID int64) ([]*entity.Article, error) {
	// Union of the reader's journalist-subscription and newsletter-
	// subscription paths, deduplicated, approved only.
	const query = `
SELECT DISTINCT a.id, a.title, a.content, a.author_id, a.publisher_id, a.approved, a.created_at
FROM articles a
LEFT JOIN journalist_subscriptions js
       ON js.journalist_id = a.author_id AND js.reader_id = $1
LEFT JOIN newsletter_articles na
       ON na.article_id = a.id
LEFT JOIN newsletter_subscriptions ns
       ON ns.newsletter_id = na.newsletter_id AND ns.reader_id = $1
WHERE a.approved = TRUE
  AND (js.id IS NOT NULL OR ns.id IS NOT NULL)
ORDER BY a.created_at DESC`
	return repo.queryArticles(ctx, "ListSubscribed", query, readerID)
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, content, author_id, publisher_id, approved)
VALUES ($1, $2, $3, $4, FALSE)
RETURNING id, created_at`
	var publisherID sql.NullInt64
	if article.PublisherID != nil {
		publisherID = sql.NullInt64{Int64: *article.PublisherID, Valid: true}
	}
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.AuthorID, publisherID).
		Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	article.Approved = false
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	// The approved flag is never written here; the one-way transition goes
	// through Approve so the edge detection has a single code path.
	const query = `
UPDATE articles
SET title = $2, content = $3, publisher_id = $4
WHERE id = $1`
	var publisherID sql.NullInt64
	if article.PublisherID != nil {
		publisherID = sql.NullInt64{Int64: *article.PublisherID, Valid: true}
	}
	if _, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, publisherID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Approve(ctx context.Context, id int64) (bool, error) {
	// Compare-and-swap on the approved flag: the WHERE clause guarantees the
	// false→true edge is committed by exactly one caller even when two
	// editors race.
	const query = `
UPDATE articles
SET approved = TRUE
WHERE id = $1 AND approved = FALSE`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("Approve: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Approve: RowsAffected: %w", err)
	}
	return affected == 1, nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
