package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type NewsletterRepo struct {
	db *sql.DB
}

func NewNewsletterRepo(db *sql.DB) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

func (repo *NewsletterRepo) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	const query = `
SELECT id, title, description, author_id, created_at
FROM newsletters
WHERE id = $1
LIMIT 1`
	var newsletter entity.Newsletter
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&newsletter.ID, &newsletter.Title, &newsletter.Description,
			&newsletter.AuthorID, &newsletter.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &newsletter, nil
}

func (repo *NewsletterRepo) queryNewsletters(ctx context.Context, op, query string, args ...any) ([]*entity.Newsletter, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]*entity.Newsletter, 0, 20)
	for rows.Next() {
		var newsletter entity.Newsletter
		if err := rows.Scan(&newsletter.ID, &newsletter.Title, &newsletter.Description,
			&newsletter.AuthorID, &newsletter.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		newsletters = append(newsletters, &newsletter)
	}
	return newsletters, rows.Err()
}

func (repo *NewsletterRepo) List(ctx context.Context) ([]*entity.Newsletter, error) {
	const query = `
SELECT id, title, description, author_id, created_at
FROM newsletters
ORDER BY created_at DESC`
	return repo.queryNewsletters(ctx, "List", query)
}

func (repo *NewsletterRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error) {
	const query = `
SELECT id, title, description, author_id, created_at
FROM newsletters
WHERE author_id = $1
ORDER BY created_at DESC`
	return repo.queryNewsletters(ctx, "ListByAuthor", query, authorID)
}

func (repo *NewsletterRepo) Create(ctx context.Context, newsletter *entity.Newsletter) error {
	const query = `
INSERT INTO newsletters (title, description, author_id)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		newsletter.Title, newsletter.Description, newsletter.AuthorID).
		Scan(&newsletter.ID, &newsletter.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) AddArticle(ctx context.Context, newsletterID, articleID int64) error {
	const query = `
INSERT INTO newsletter_articles (newsletter_id, article_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, newsletterID, articleID); err != nil {
		return fmt.Errorf("AddArticle: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) ListArticles(ctx context.Context, newsletterID int64) ([]*entity.Article, error) {
	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.publisher_id, a.approved, a.created_at
FROM articles a
INNER JOIN newsletter_articles na ON na.article_id = a.id
WHERE na.newsletter_id = $1 AND a.approved = TRUE
ORDER BY a.created_at DESC`
	return repo.listArticles(ctx, "ListArticles", query, newsletterID)
}

func (repo *NewsletterRepo) ListArticlesAttachedSince(ctx context.Context, newsletterID int64, since time.Time) ([]*entity.Article, error) {
	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.publisher_id, a.approved, a.created_at
FROM articles a
INNER JOIN newsletter_articles na ON na.article_id = a.id
WHERE na.newsletter_id = $1 AND na.attached_at >= $2 AND a.approved = TRUE
ORDER BY a.created_at DESC`
	return repo.listArticles(ctx, "ListArticlesAttachedSince", query, newsletterID, since)
}

func (repo *NewsletterRepo) listArticles(ctx context.Context, op, query string, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}
