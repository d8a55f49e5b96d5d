package newsletter

import (
	"context"
	"fmt"
	"strings"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// CreateInput represents the input parameters for creating a newsletter.
type CreateInput struct {
	Title       string
	Description string
}

// Service provides newsletter management use cases.
type Service struct {
	Newsletters repository.NewsletterRepository
	Articles    repository.ArticleRepository
}

// Create assembles a new, empty newsletter owned by the journalist principal.
func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (*entity.Newsletter, error) {
	if p.Role != entity.RoleJournalist {
		return nil, access.ErrPermissionDenied
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}

	newsletter := &entity.Newsletter{
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    p.UserID,
	}
	if err := s.Newsletters.Create(ctx, newsletter); err != nil {
		return nil, fmt.Errorf("create newsletter: %w", err)
	}
	return newsletter, nil
}

// Get retrieves a newsletter by ID.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsletterID
	}
	newsletter, err := s.Newsletters.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}
	return newsletter, nil
}

// List retrieves all newsletters.
func (s *Service) List(ctx context.Context) ([]*entity.Newsletter, error) {
	newsletters, err := s.Newsletters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	return newsletters, nil
}

// AddArticle attaches an approved article to a newsletter owned by the
// principal. Only the newsletter's owner curates it, and drafts are never
// attachable: a newsletter is a bundle of published work.
func (s *Service) AddArticle(ctx context.Context, p access.Principal, newsletterID, articleID int64) error {
	if newsletterID <= 0 {
		return ErrInvalidNewsletterID
	}

	newsletter, err := s.Newsletters.Get(ctx, newsletterID)
	if err != nil {
		return fmt.Errorf("get newsletter: %w", err)
	}
	if newsletter == nil {
		return ErrNewsletterNotFound
	}
	if p.Role != entity.RoleJournalist || newsletter.AuthorID != p.UserID {
		return access.ErrPermissionDenied
	}

	article, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if article == nil || !article.Approved {
		return ErrArticleNotEligible
	}

	if err := s.Newsletters.AddArticle(ctx, newsletterID, articleID); err != nil {
		return fmt.Errorf("add article to newsletter: %w", err)
	}
	return nil
}

// ListArticles retrieves the approved articles attached to a newsletter.
func (s *Service) ListArticles(ctx context.Context, newsletterID int64) ([]*entity.Article, error) {
	if newsletterID <= 0 {
		return nil, ErrInvalidNewsletterID
	}
	newsletter, err := s.Newsletters.Get(ctx, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}
	articles, err := s.Newsletters.ListArticles(ctx, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("list newsletter articles: %w", err)
	}
	return articles, nil
}
