package newsletter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	nlUC "newsdesk/internal/usecase/newsletter"
)

/* ───────── stub implementations ───────── */

type stubNewsletterRepo struct {
	newsletters map[int64]*entity.Newsletter
	attached    map[int64][]int64 // newsletterID -> articleIDs
	nextID      int64
}

func newNewsletterStub() *stubNewsletterRepo {
	return &stubNewsletterRepo{
		newsletters: map[int64]*entity.Newsletter{},
		attached:    map[int64][]int64{},
		nextID:      1,
	}
}

func (s *stubNewsletterRepo) Get(_ context.Context, id int64) (*entity.Newsletter, error) {
	return s.newsletters[id], nil
}
func (s *stubNewsletterRepo) List(_ context.Context) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.newsletters {
		out = append(out, n)
	}
	return out, nil
}
func (s *stubNewsletterRepo) ListByAuthor(_ context.Context, authorID int64) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.newsletters {
		if n.AuthorID == authorID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (s *stubNewsletterRepo) Create(_ context.Context, n *entity.Newsletter) error {
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	s.nextID++
	s.newsletters[n.ID] = n
	return nil
}
func (s *stubNewsletterRepo) AddArticle(_ context.Context, newsletterID, articleID int64) error {
	for _, id := range s.attached[newsletterID] {
		if id == articleID {
			return nil
		}
	}
	s.attached[newsletterID] = append(s.attached[newsletterID], articleID)
	return nil
}
func (s *stubNewsletterRepo) ListArticles(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) ListArticlesAttachedSince(_ context.Context, _ int64, _ time.Time) ([]*entity.Article, error) {
	return nil, nil
}

type stubArticleGetter struct {
	data map[int64]*entity.Article
}

func (s *stubArticleGetter) Get(_ context.Context, id int64) (*entity.Article, error) {
	return s.data[id], nil
}
func (s *stubArticleGetter) GetWithAuthor(_ context.Context, _ int64) (*entity.Article, string, error) {
	return nil, "", nil
}
func (s *stubArticleGetter) ListApproved(_ context.Context, _, _ int) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleGetter) CountApproved(_ context.Context) (int64, error) { return 0, nil }
func (s *stubArticleGetter) ListByAuthor(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleGetter) ListForReview(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleGetter) ListSubscribed(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleGetter) Create(_ context.Context, _ *entity.Article) error { return nil }
func (s *stubArticleGetter) Update(_ context.Context, _ *entity.Article) error { return nil }
func (s *stubArticleGetter) Approve(_ context.Context, _ int64) (bool, error)  { return false, nil }
func (s *stubArticleGetter) Delete(_ context.Context, _ int64) error           { return nil }

/* ───────── fixtures ───────── */

var (
	journalist = access.Principal{UserID: 2, Username: "jane", Role: entity.RoleJournalist}
	otherJourn = access.Principal{UserID: 8, Username: "raj", Role: entity.RoleJournalist}
	reader     = access.Principal{UserID: 3, Username: "rita", Role: entity.RoleReader}
)

func newService(nls *stubNewsletterRepo, arts *stubArticleGetter) *nlUC.Service {
	return &nlUC.Service{Newsletters: nls, Articles: arts}
}

/* ───────── tests ───────── */

func TestCreate_JournalistOnly(t *testing.T) {
	svc := newService(newNewsletterStub(), &stubArticleGetter{})

	nl, err := svc.Create(context.Background(), journalist, nlUC.CreateInput{Title: "Weekly Digest"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if nl.AuthorID != journalist.UserID {
		t.Fatalf("owner must be the caller, got %d", nl.AuthorID)
	}

	if _, err := svc.Create(context.Background(), reader, nlUC.CreateInput{Title: "x"}); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("reader create: want ErrPermissionDenied, got %v", err)
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := newService(newNewsletterStub(), &stubArticleGetter{})
	_, err := svc.Create(context.Background(), journalist, nlUC.CreateInput{Title: "  "})
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "title" {
		t.Fatalf("want title validation error, got %v", err)
	}
}

func TestAddArticle_ApprovedOnly(t *testing.T) {
	nls := newNewsletterStub()
	nls.newsletters[1] = &entity.Newsletter{ID: 1, Title: "Digest", AuthorID: journalist.UserID}
	arts := &stubArticleGetter{data: map[int64]*entity.Article{
		1: {ID: 1, Title: "draft", AuthorID: journalist.UserID, Approved: false},
		2: {ID: 2, Title: "published", AuthorID: journalist.UserID, Approved: true},
	}}
	svc := newService(nls, arts)

	if err := svc.AddArticle(context.Background(), journalist, 1, 1); !errors.Is(err, nlUC.ErrArticleNotEligible) {
		t.Fatalf("draft attach: want ErrArticleNotEligible, got %v", err)
	}
	if err := svc.AddArticle(context.Background(), journalist, 1, 2); err != nil {
		t.Fatalf("approved attach err=%v", err)
	}
	if len(nls.attached[1]) != 1 {
		t.Fatalf("want 1 attached article, got %d", len(nls.attached[1]))
	}
}

func TestAddArticle_OwnerOnly(t *testing.T) {
	nls := newNewsletterStub()
	nls.newsletters[1] = &entity.Newsletter{ID: 1, Title: "Digest", AuthorID: journalist.UserID}
	arts := &stubArticleGetter{data: map[int64]*entity.Article{
		2: {ID: 2, Title: "published", AuthorID: journalist.UserID, Approved: true},
	}}
	svc := newService(nls, arts)

	if err := svc.AddArticle(context.Background(), otherJourn, 1, 2); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("foreign curation: want ErrPermissionDenied, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newService(newNewsletterStub(), &stubArticleGetter{})
	if _, err := svc.Get(context.Background(), 9); !errors.Is(err, nlUC.ErrNewsletterNotFound) {
		t.Fatalf("want ErrNewsletterNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, nlUC.ErrInvalidNewsletterID) {
		t.Fatalf("want ErrInvalidNewsletterID, got %v", err)
	}
}
