package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// ApprovalNotifier receives the publication fan-out after an article crosses
// the approval edge. The notify use case implements it; tests substitute a
// recording stub.
type ApprovalNotifier interface {
	ArticleApproved(ctx context.Context, article *entity.Article) error
}

// CreateInput represents the input parameters for drafting a new article.
type CreateInput struct {
	Title       string
	Content     string
	PublisherID *int64
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated. A true Approved flag is the
// editor's review action and goes through the same one-shot transition as the
// explicit approve operation; a false one never reverts an approval.
type UpdateInput struct {
	ID       int64
	Title    *string
	Content  *string
	Approved *bool
}

// Service provides article management use cases. Every operation takes the
// caller's principal and enforces the access policy before touching state.
type Service struct {
	Articles   repository.ArticleRepository
	Publishers repository.PublisherRepository
	Notifier   ApprovalNotifier
}

// Create drafts a new article authored by the principal. Only journalists
// create articles, and an article scoped to a publisher requires the author
// to be a journalist member of that publisher. New articles always start
// unapproved regardless of input.
func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (*entity.Article, error) {
	if p.Role != entity.RoleJournalist {
		return nil, access.ErrPermissionDenied
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "is required"}
	}

	if in.PublisherID != nil {
		publisher, err := s.Publishers.Get(ctx, *in.PublisherID)
		if err != nil {
			return nil, fmt.Errorf("get publisher: %w", err)
		}
		if publisher == nil {
			return nil, &entity.ValidationError{Field: "publisherID", Message: "unknown publisher"}
		}
		member, err := s.Publishers.IsJournalist(ctx, *in.PublisherID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("check publisher membership: %w", err)
		}
		if !member {
			return nil, &entity.ValidationError{Field: "publisherID", Message: "author is not a journalist of this publisher"}
		}
	}

	art := &entity.Article{
		Title:       in.Title,
		Content:     in.Content,
		AuthorID:    p.UserID,
		PublisherID: in.PublisherID,
		Approved:    false,
	}
	if err := s.Articles.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordArticleCreated()
	return art, nil
}

// Get retrieves a single article by its ID, subject to visibility rules.
// A draft hidden from the caller surfaces as ErrArticleNotFound, never as a
// permission error, so draft existence does not leak.
func (s *Service) Get(ctx context.Context, p access.Principal, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil || !access.CanView(p, art) {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// Update modifies an existing article with the provided input. Journalists
// may edit only their own unapproved articles; editors may edit articles
// under their authority. An editor may set Approved as part of the update,
// the review save, which fires the same one-shot transition and fan-out as
// the explicit approve operation.
func (s *Service) Update(ctx context.Context, p access.Principal, in UpdateInput) (*entity.Article, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Articles.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil || !access.CanView(p, art) {
		return nil, ErrArticleNotFound
	}

	authority, err := s.editorAuthority(ctx, p, art)
	if err != nil {
		return nil, err
	}
	if err := access.Allows(p, access.CapWrite, art, authority); err != nil {
		return nil, err
	}

	if in.Approved != nil && !*in.Approved && art.Approved {
		return nil, &entity.ValidationError{Field: "approved", Message: "approval cannot be revoked"}
	}
	approving := in.Approved != nil && *in.Approved && !art.Approved
	if approving {
		if err := access.Allows(p, access.CapApprove, art, authority); err != nil {
			return nil, err
		}
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		art.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, &entity.ValidationError{Field: "content", Message: "cannot be empty"}
		}
		art.Content = *in.Content
	}

	if err := s.Articles.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if approving {
		if err := s.fireApproval(ctx, art); err != nil {
			return art, err
		}
	}
	return art, nil
}

// Approve transitions an article from draft to approved and dispatches the
// publication fan-out exactly once. The transition is a compare-and-swap in
// the repository, so two concurrent approvals of the same article produce a
// single notification; the loser observes the article already approved and
// the call degrades to a no-op.
//
// The fan-out runs synchronously after the state change. A notification
// failure is reported to the caller, but the approval itself stands.
func (s *Service) Approve(ctx context.Context, p access.Principal, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil || !access.CanView(p, art) {
		return nil, ErrArticleNotFound
	}

	authority, err := s.editorAuthority(ctx, p, art)
	if err != nil {
		return nil, err
	}
	if err := access.Allows(p, access.CapApprove, art, authority); err != nil {
		return nil, err
	}

	if err := s.fireApproval(ctx, art); err != nil {
		return art, err
	}
	return art, nil
}

// fireApproval performs the draft to approved compare-and-swap and runs the
// fan-out iff this call won the edge.
func (s *Service) fireApproval(ctx context.Context, art *entity.Article) error {
	swapped, err := s.Articles.Approve(ctx, art.ID)
	if err != nil {
		return fmt.Errorf("approve article: %w", err)
	}
	art.Approved = true

	if !swapped {
		// Lost the race or re-approved: the edge already fired once.
		slog.Info("article already approved, skipping notification",
			slog.Int64("article_id", art.ID))
		return nil
	}
	metrics.RecordArticleApproved()

	if err := s.Notifier.ArticleApproved(ctx, art); err != nil {
		return fmt.Errorf("notify approval: %w", err)
	}
	return nil
}

// Delete removes an article. Journalists delete only their own drafts;
// editors delete articles under their authority.
func (s *Service) Delete(ctx context.Context, p access.Principal, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Articles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil || !access.CanView(p, art) {
		return ErrArticleNotFound
	}

	authority, err := s.editorAuthority(ctx, p, art)
	if err != nil {
		return err
	}
	if err := access.Allows(p, access.CapDelete, art, authority); err != nil {
		return err
	}

	if err := s.Articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// ListApproved retrieves one page of the public feed of approved articles
// along with the total count for page metadata.
func (s *Service) ListApproved(ctx context.Context, limit, offset int) ([]*entity.Article, int64, error) {
	total, err := s.Articles.CountApproved(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count approved articles: %w", err)
	}
	articles, err := s.Articles.ListApproved(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list approved articles: %w", err)
	}
	return articles, total, nil
}

// ListMine retrieves all articles authored by the principal, drafts included.
func (s *Service) ListMine(ctx context.Context, p access.Principal) ([]*entity.Article, error) {
	if p.Role != entity.RoleJournalist {
		return nil, access.ErrPermissionDenied
	}
	articles, err := s.Articles.ListByAuthor(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own articles: %w", err)
	}
	return articles, nil
}

// ListReview retrieves the editor's review queue: articles scoped to
// publishers the editor administers plus publisher-less articles.
func (s *Service) ListReview(ctx context.Context, p access.Principal) ([]*entity.Article, error) {
	if p.Role != entity.RoleEditor {
		return nil, access.ErrPermissionDenied
	}
	articles, err := s.Articles.ListForReview(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list review articles: %w", err)
	}
	return articles, nil
}

// ListSubscribed retrieves the reader's personalized feed of approved
// articles from subscribed journalists and newsletters.
func (s *Service) ListSubscribed(ctx context.Context, p access.Principal) ([]*entity.Article, error) {
	if p.Role != entity.RoleReader {
		return nil, access.ErrPermissionDenied
	}
	articles, err := s.Articles.ListSubscribed(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed articles: %w", err)
	}
	return articles, nil
}

// editorAuthority resolves whether an editor principal administers the
// article's publisher. Publisher-less articles fall under every editor's
// authority. Non-editor principals never have authority; the policy layer
// ignores the flag for them.
func (s *Service) editorAuthority(ctx context.Context, p access.Principal, art *entity.Article) (bool, error) {
	if p.Role != entity.RoleEditor {
		return false, nil
	}
	if art.PublisherID == nil {
		return true, nil
	}
	ok, err := s.Publishers.IsEditor(ctx, *art.PublisherID, p.UserID)
	if err != nil {
		return false, fmt.Errorf("check editor authority: %w", err)
	}
	return ok, nil
}
