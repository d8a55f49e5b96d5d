package digest_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/digest"
)

/* ───────── stub implementations ───────── */

type stubNewsletterRepo struct {
	newsletters []*entity.Newsletter
	attached    map[int64][]*entity.Article
	listErr     error
}

func (s *stubNewsletterRepo) Get(_ context.Context, _ int64) (*entity.Newsletter, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) List(_ context.Context) ([]*entity.Newsletter, error) {
	return s.newsletters, s.listErr
}
func (s *stubNewsletterRepo) ListByAuthor(_ context.Context, _ int64) ([]*entity.Newsletter, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) Create(_ context.Context, _ *entity.Newsletter) error { return nil }
func (s *stubNewsletterRepo) AddArticle(_ context.Context, _, _ int64) error       { return nil }
func (s *stubNewsletterRepo) ListArticles(_ context.Context, _ int64) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubNewsletterRepo) ListArticlesAttachedSince(_ context.Context, newsletterID int64, _ time.Time) ([]*entity.Article, error) {
	return s.attached[newsletterID], nil
}

type stubSubRepo struct {
	subscribers map[int64][]repository.AudienceMember
}

func (s *stubSubRepo) SubscribeToJournalist(_ context.Context, _, _ int64) (*entity.JournalistSubscription, error) {
	return nil, nil
}
func (s *stubSubRepo) SubscribeToNewsletter(_ context.Context, _, _ int64) (*entity.NewsletterSubscription, error) {
	return nil, nil
}
func (s *stubSubRepo) ListJournalistSubscriptions(_ context.Context, _ int64) ([]*entity.JournalistSubscription, error) {
	return nil, nil
}
func (s *stubSubRepo) ListNewsletterSubscriptions(_ context.Context, _ int64) ([]*entity.NewsletterSubscription, error) {
	return nil, nil
}
func (s *stubSubRepo) ResolveAudience(_ context.Context, _, _ int64) ([]repository.AudienceMember, error) {
	return nil, nil
}
func (s *stubSubRepo) ListNewsletterSubscribers(_ context.Context, newsletterID int64) ([]repository.AudienceMember, error) {
	return s.subscribers[newsletterID], nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

/* ───────── tests ───────── */

func TestRun_DeliversPerNewsletter(t *testing.T) {
	mailer := &recordingMailer{}
	svc := &digest.Service{
		Newsletters: &stubNewsletterRepo{
			newsletters: []*entity.Newsletter{
				{ID: 1, Title: "Weekly"},
				{ID: 2, Title: "Quiet"},
			},
			attached: map[int64][]*entity.Article{
				1: {{ID: 10, Title: "Big News"}, {ID: 11, Title: "More News"}},
				// Newsletter 2 has nothing new.
			},
		},
		Subs: &stubSubRepo{subscribers: map[int64][]repository.AudienceMember{
			1: {
				{UserID: 3, Username: "rita", Email: "rita@example.com"},
				{UserID: 4, Username: "bob", Email: ""},
			},
		}},
		Mailer: mailer,
		Config: digest.Config{BaseURL: "https://news.example.com"},
	}

	stats, err := svc.Run(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Run err = %v", err)
	}
	if stats.Newsletters != 2 || stats.Sent != 1 || stats.Skipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Recipients != 1 {
		t.Fatalf("recipients = %d, members without email must be dropped", stats.Recipients)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %d mails", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.subject != "Weekly Digest: 2 new articles" {
		t.Fatalf("subject = %q", mail.subject)
	}
	if !strings.Contains(mail.body, "Big News") ||
		!strings.Contains(mail.body, "https://news.example.com/articles/11") {
		t.Fatalf("body = %q", mail.body)
	}
	if len(mail.to) != 1 || mail.to[0] != "rita@example.com" {
		t.Fatalf("to = %v", mail.to)
	}
}

func TestRun_NoSubscribersSkips(t *testing.T) {
	mailer := &recordingMailer{}
	svc := &digest.Service{
		Newsletters: &stubNewsletterRepo{
			newsletters: []*entity.Newsletter{{ID: 1, Title: "Weekly"}},
			attached:    map[int64][]*entity.Article{1: {{ID: 10, Title: "x"}}},
		},
		Subs:   &stubSubRepo{},
		Mailer: mailer,
	}

	stats, err := svc.Run(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sent != 0 || stats.Skipped != 1 || len(mailer.sent) != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestRun_MailFailureDoesNotAbort(t *testing.T) {
	svc := &digest.Service{
		Newsletters: &stubNewsletterRepo{
			newsletters: []*entity.Newsletter{{ID: 1, Title: "Weekly"}},
			attached:    map[int64][]*entity.Article{1: {{ID: 10, Title: "x"}}},
		},
		Subs: &stubSubRepo{subscribers: map[int64][]repository.AudienceMember{
			1: {{UserID: 3, Email: "rita@example.com"}},
		}},
		Mailer: &recordingMailer{err: errors.New("smtp down")},
	}

	stats, err := svc.Run(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("mail failure must not fail the run: %v", err)
	}
	if stats.MailErrors != 1 || stats.Sent != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestRun_ListFailure(t *testing.T) {
	svc := &digest.Service{
		Newsletters: &stubNewsletterRepo{listErr: errors.New("db down")},
		Subs:        &stubSubRepo{},
		Mailer:      &recordingMailer{},
	}
	if _, err := svc.Run(context.Background(), time.Time{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubject_SingularArticle(t *testing.T) {
	if got := digest.Subject("Weekly", 1); got != "Weekly Digest: 1 new article" {
		t.Fatalf("subject = %q", got)
	}
}
