package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	subUC "newsdesk/internal/usecase/subscription"
)

/* ───────── stub implementations ───────── */

type subKey struct{ reader, target int64 }

// In-memory SubscriptionRepository with get-or-create semantics matching
// the Postgres adapter.
type stubSubRepo struct {
	journalists map[subKey]*entity.JournalistSubscription
	newsletters map[subKey]*entity.NewsletterSubscription
	nextID      int64
}

func newSubStub() *stubSubRepo {
	return &stubSubRepo{
		journalists: map[subKey]*entity.JournalistSubscription{},
		newsletters: map[subKey]*entity.NewsletterSubscription{},
		nextID:      1,
	}
}

func (s *stubSubRepo) SubscribeToJournalist(_ context.Context, readerID, journalistID int64) (*entity.JournalistSubscription, error) {
	key := subKey{readerID, journalistID}
	if existing, ok := s.journalists[key]; ok {
		return existing, nil
	}
	sub := &entity.JournalistSubscription{
		ID: s.nextID, ReaderID: readerID, JournalistID: journalistID, CreatedAt: time.Now(),
	}
	s.nextID++
	s.journalists[key] = sub
	return sub, nil
}

func (s *stubSubRepo) SubscribeToNewsletter(_ context.Context, readerID, newsletterID int64) (*entity.NewsletterSubscription, error) {
	key := subKey{readerID, newsletterID}
	if existing, ok := s.newsletters[key]; ok {
		return existing, nil
	}
	sub := &entity.NewsletterSubscription{
		ID: s.nextID, ReaderID: readerID, NewsletterID: newsletterID, CreatedAt: time.Now(),
	}
	s.nextID++
	s.newsletters[key] = sub
	return sub, nil
}

func (s *stubSubRepo) ListJournalistSubscriptions(_ context.Context, readerID int64) ([]*entity.JournalistSubscription, error) {
	var out []*entity.JournalistSubscription
	for _, sub := range s.journalists {
		if sub.ReaderID == readerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *stubSubRepo) ListNewsletterSubscriptions(_ context.Context, readerID int64) ([]*entity.NewsletterSubscription, error) {
	var out []*entity.NewsletterSubscription
	for _, sub := range s.newsletters {
		if sub.ReaderID == readerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *stubSubRepo) ResolveAudience(_ context.Context, _, _ int64) ([]repository.AudienceMember, error) {
	return nil, nil
}

func (s *stubSubRepo) ListNewsletterSubscribers(_ context.Context, _ int64) ([]repository.AudienceMember, error) {
	return nil, nil
}

type stubUserRepo struct {
	users map[int64]*entity.User
}

func (s *stubUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	return s.users[id], nil
}
func (s *stubUserRepo) GetByUsername(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (s *stubUserRepo) ListByRole(_ context.Context, _ entity.Role) ([]*entity.User, error) {
	return nil, nil
}

type stubNewsletterRepo struct {
	newsletters map[int64]*entity.Newsletter
}

func (s *stubNewsletterRepo) Get(_ context.Context, id int64) (*entity.Newsletter, error) {
	return s.newsletters[id], nil
}
func (s *stubNewsletterRepo) List(_ context.Context) ([]*entity.Newsletter, error) { return nil, nil }
func (s *stubNewsletterRepo) ListByAuthor(_ context.Context, _ int64) ([]*entity.Newsletter, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) Create(_ context.Context, _ *entity.Newsletter) error { return nil }
func (s *stubNewsletterRepo) AddArticle(_ context.Context, _, _ int64) error        { return nil }
func (s *stubNewsletterRepo) ListArticles(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) ListArticlesAttachedSince(_ context.Context, _ int64, _ time.Time) ([]*entity.Article, error) {
	return nil, nil
}

/* ───────── fixtures ───────── */

var (
	reader     = access.Principal{UserID: 3, Username: "rita", Role: entity.RoleReader}
	journalist = access.Principal{UserID: 2, Username: "jane", Role: entity.RoleJournalist}
)

func newService(subs *stubSubRepo) *subUC.Service {
	return &subUC.Service{
		Subs: subs,
		Users: &stubUserRepo{users: map[int64]*entity.User{
			2: {ID: 2, Username: "jane", Role: entity.RoleJournalist},
			3: {ID: 3, Username: "rita", Role: entity.RoleReader},
		}},
		Newsletters: &stubNewsletterRepo{newsletters: map[int64]*entity.Newsletter{
			5: {ID: 5, Title: "Weekly Digest", AuthorID: 2},
		}},
	}
}

/* ───────── tests ───────── */

func TestSubscribeToJournalist_Idempotent(t *testing.T) {
	subs := newSubStub()
	svc := newService(subs)

	first, err := svc.SubscribeToJournalist(context.Background(), reader, 2)
	if err != nil {
		t.Fatalf("first subscribe err=%v", err)
	}
	second, err := svc.SubscribeToJournalist(context.Background(), reader, 2)
	if err != nil {
		t.Fatalf("second subscribe err=%v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat subscribe must return the stored row: %d != %d", first.ID, second.ID)
	}
	if len(subs.journalists) != 1 {
		t.Fatalf("want exactly one row, got %d", len(subs.journalists))
	}
}

func TestSubscribeToJournalist_TargetMustBeJournalist(t *testing.T) {
	svc := newService(newSubStub())

	// Subscribing to a reader is rejected.
	if _, err := svc.SubscribeToJournalist(context.Background(), reader, 3); !errors.Is(err, subUC.ErrJournalistNotFound) {
		t.Fatalf("want ErrJournalistNotFound for reader target, got %v", err)
	}
	// Unknown user as well.
	if _, err := svc.SubscribeToJournalist(context.Background(), reader, 99); !errors.Is(err, subUC.ErrJournalistNotFound) {
		t.Fatalf("want ErrJournalistNotFound for absent target, got %v", err)
	}
}

func TestSubscribe_ReadersOnly(t *testing.T) {
	svc := newService(newSubStub())

	if _, err := svc.SubscribeToJournalist(context.Background(), journalist, 2); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("journalist subscribe: want ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.SubscribeToNewsletter(context.Background(), journalist, 5); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("journalist newsletter subscribe: want ErrPermissionDenied, got %v", err)
	}
}

func TestSubscribeToNewsletter(t *testing.T) {
	subs := newSubStub()
	svc := newService(subs)

	sub, err := svc.SubscribeToNewsletter(context.Background(), reader, 5)
	if err != nil {
		t.Fatalf("subscribe err=%v", err)
	}
	if sub.NewsletterID != 5 || sub.ReaderID != reader.UserID {
		t.Fatalf("unexpected subscription %+v", sub)
	}

	if _, err := svc.SubscribeToNewsletter(context.Background(), reader, 99); !errors.Is(err, subUC.ErrNewsletterNotFound) {
		t.Fatalf("want ErrNewsletterNotFound, got %v", err)
	}
}

func TestSubscribe_InvalidTargetID(t *testing.T) {
	svc := newService(newSubStub())
	if _, err := svc.SubscribeToJournalist(context.Background(), reader, 0); !errors.Is(err, subUC.ErrInvalidTargetID) {
		t.Fatalf("want ErrInvalidTargetID, got %v", err)
	}
}

func TestListSubscriptions(t *testing.T) {
	subs := newSubStub()
	svc := newService(subs)

	if _, err := svc.SubscribeToJournalist(context.Background(), reader, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubscribeToNewsletter(context.Background(), reader, 5); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListSubscriptions(context.Background(), reader)
	if err != nil {
		t.Fatalf("ListSubscriptions err=%v", err)
	}
	if len(got.Journalists) != 1 || len(got.Newsletters) != 1 {
		t.Fatalf("want 1+1 subscriptions, got %d+%d", len(got.Journalists), len(got.Newsletters))
	}

	if _, err := svc.ListSubscriptions(context.Background(), journalist); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied for non-reader, got %v", err)
	}
}
