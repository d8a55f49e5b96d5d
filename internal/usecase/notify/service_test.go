package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/notify"
)

/* ───────── stub implementations ───────── */

type stubSubscriptionRepo struct {
	audience []repository.AudienceMember
	err      error
}

func (s *stubSubscriptionRepo) SubscribeToJournalist(_ context.Context, _, _ int64) (*entity.JournalistSubscription, error) {
	return nil, nil
}
func (s *stubSubscriptionRepo) SubscribeToNewsletter(_ context.Context, _, _ int64) (*entity.NewsletterSubscription, error) {
	return nil, nil
}
func (s *stubSubscriptionRepo) ListJournalistSubscriptions(_ context.Context, _ int64) ([]*entity.JournalistSubscription, error) {
	return nil, nil
}
func (s *stubSubscriptionRepo) ListNewsletterSubscriptions(_ context.Context, _ int64) ([]*entity.NewsletterSubscription, error) {
	return nil, nil
}
func (s *stubSubscriptionRepo) ResolveAudience(_ context.Context, _, _ int64) ([]repository.AudienceMember, error) {
	return s.audience, s.err
}

func (s *stubSubscriptionRepo) ListNewsletterSubscribers(_ context.Context, _ int64) ([]repository.AudienceMember, error) {
	return nil, nil
}

type stubAuthorLookup struct {
	author string
}

func (s *stubAuthorLookup) GetWithAuthor(_ context.Context, _ int64) (*entity.Article, string, error) {
	return nil, s.author, nil
}

type recordingMailer struct {
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
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type recordingPoster struct {
	posts []string
	err   error
}

func (p *recordingPoster) Post(_ context.Context, _ int64, text string) error {
	if p.err != nil {
		return p.err
	}
	p.posts = append(p.posts, text)
	return nil
}

/* ───────── fixtures ───────── */

func newFanOut(subs *stubSubscriptionRepo, mailer *recordingMailer, poster *recordingPoster, failSilently bool) *notify.Service {
	return &notify.Service{
		Subscriptions: subs,
		Articles:      &stubAuthorLookup{author: "jane"},
		Mailer:        mailer,
		Social:        poster,
		Config: notify.Config{
			BaseURL:          "https://news.example.com",
			MailFailSilently: failSilently,
		},
	}
}

func approvedArticle() *entity.Article {
	return &entity.Article{
		ID:       7,
		Title:    "Budget vote tonight",
		Content:  "The council meets at eight to vote on the budget.",
		AuthorID: 2,
		Approved: true,
	}
}

/* ───────── tests ───────── */

func TestArticleApproved_SendsBatchedMailAndPost(t *testing.T) {
	subs := &stubSubscriptionRepo{audience: []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
		{UserID: 5, Username: "omar", Email: "omar@example.com"},
	}}
	mailer := &recordingMailer{}
	poster := &recordingPoster{}
	svc := newFanOut(subs, mailer, poster, false)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err != nil {
		t.Fatalf("ArticleApproved err=%v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("want one batched mail, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if len(mail.to) != 2 {
		t.Fatalf("want 2 recipients, got %v", mail.to)
	}
	if mail.subject != "New Article Published: Budget vote tonight" {
		t.Errorf("unexpected subject %q", mail.subject)
	}
	if !strings.Contains(mail.body, "By jane") {
		t.Errorf("body missing byline:\n%s", mail.body)
	}
	if !strings.Contains(mail.body, "Read more at: https://news.example.com/articles/7") {
		t.Errorf("body missing article link:\n%s", mail.body)
	}

	if len(poster.posts) != 1 {
		t.Fatalf("want one social post, got %d", len(poster.posts))
	}
	if !strings.Contains(poster.posts[0], "Budget vote tonight") {
		t.Errorf("post missing title: %q", poster.posts[0])
	}
}

func TestArticleApproved_DropsEmptyEmails(t *testing.T) {
	subs := &stubSubscriptionRepo{audience: []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
		{UserID: 4, Username: "nomail", Email: ""},
	}}
	mailer := &recordingMailer{}
	svc := newFanOut(subs, mailer, &recordingPoster{}, false)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err != nil {
		t.Fatalf("ArticleApproved err=%v", err)
	}
	if len(mailer.sent) != 1 || len(mailer.sent[0].to) != 1 {
		t.Fatalf("want 1 recipient after filtering, got %+v", mailer.sent)
	}
	if mailer.sent[0].to[0] != "rita@example.com" {
		t.Errorf("unexpected recipient %q", mailer.sent[0].to[0])
	}
}

func TestArticleApproved_EmptyAudienceSkipsMail(t *testing.T) {
	subs := &stubSubscriptionRepo{}
	mailer := &recordingMailer{}
	poster := &recordingPoster{}
	svc := newFanOut(subs, mailer, poster, false)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err != nil {
		t.Fatalf("ArticleApproved err=%v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no mail expected for empty audience, got %d", len(mailer.sent))
	}
	// The social announcement is independent of the subscriber audience.
	if len(poster.posts) != 1 {
		t.Fatalf("want social post despite empty audience, got %d", len(poster.posts))
	}
}

func TestArticleApproved_MailFailurePropagates(t *testing.T) {
	subs := &stubSubscriptionRepo{audience: []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
	}}
	mailErr := errors.New("smtp down")
	poster := &recordingPoster{}
	svc := newFanOut(subs, &recordingMailer{err: mailErr}, poster, false)

	err := svc.ArticleApproved(context.Background(), approvedArticle())
	if !errors.Is(err, mailErr) {
		t.Fatalf("want mail error to propagate, got %v", err)
	}
	// The channels are independent: the social attempt is still made.
	if len(poster.posts) != 1 {
		t.Fatalf("want social post despite mail failure, got %d", len(poster.posts))
	}
}

func TestArticleApproved_MailFailureSilencedByPolicy(t *testing.T) {
	subs := &stubSubscriptionRepo{audience: []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
	}}
	poster := &recordingPoster{}
	svc := newFanOut(subs, &recordingMailer{err: errors.New("smtp down")}, poster, true)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err != nil {
		t.Fatalf("fail-silently policy must swallow mail errors, got %v", err)
	}
	// Pipeline continues to the social step.
	if len(poster.posts) != 1 {
		t.Fatalf("want social post after silenced mail failure, got %d", len(poster.posts))
	}
}

func TestArticleApproved_SocialFailureSwallowed(t *testing.T) {
	subs := &stubSubscriptionRepo{audience: []repository.AudienceMember{
		{UserID: 3, Username: "rita", Email: "rita@example.com"},
	}}
	mailer := &recordingMailer{}
	svc := newFanOut(subs, mailer, &recordingPoster{err: errors.New("x down")}, false)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err != nil {
		t.Fatalf("social failure must never surface, got %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mail should have gone out first, got %d", len(mailer.sent))
	}
}

func TestArticleApproved_AudienceErrorAbortsPipeline(t *testing.T) {
	subs := &stubSubscriptionRepo{err: errors.New("db down")}
	mailer := &recordingMailer{}
	poster := &recordingPoster{}
	svc := newFanOut(subs, mailer, poster, false)

	if err := svc.ArticleApproved(context.Background(), approvedArticle()); err == nil {
		t.Fatal("expected audience resolution error")
	}
	if len(mailer.sent) != 0 || len(poster.posts) != 0 {
		t.Fatal("no channel should run after audience resolution fails")
	}
}

func TestBody_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", 300)
	art := &entity.Article{ID: 1, Title: "t", Content: long}
	body := notify.Body(art, "jane", "https://news.example.com/articles/1")

	if !strings.Contains(body, strings.Repeat("a", 200)+"...") {
		t.Error("expected 200-char excerpt with ellipsis")
	}
	if strings.Contains(body, strings.Repeat("a", 201)) {
		t.Error("excerpt exceeds 200 characters")
	}
}

func TestBody_MarkerOnShortContent(t *testing.T) {
	art := &entity.Article{ID: 1, Title: "t", Content: "brief"}
	body := notify.Body(art, "jane", "https://news.example.com/articles/1")

	if !strings.Contains(body, "brief...") {
		t.Errorf("excerpt marker missing:\n%s", body)
	}
}

func TestBody_TruncatesOnRuneBoundary(t *testing.T) {
	content := strings.Repeat("a", 199) + "é" + strings.Repeat("b", 50)
	art := &entity.Article{ID: 1, Title: "t", Content: content}
	body := notify.Body(art, "jane", "https://news.example.com/articles/1")

	if !utf8.ValidString(body) {
		t.Fatal("body contains invalid UTF-8 after truncation")
	}
	if !strings.Contains(body, strings.Repeat("a", 199)+"é...") {
		t.Errorf("excerpt should keep the 200th rune intact:\n%s", body)
	}
	if strings.Contains(body, "éb") {
		t.Error("excerpt exceeds 200 characters")
	}
}
