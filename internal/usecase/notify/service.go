// Package notify implements the publication fan-out pipeline. When an
// article crosses the approval edge, the pipeline resolves the audience,
// deduplicated by reader, and announces the article over the configured
// channels: a batched email to subscribers and a post on the platform's
// social account.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/notifier"
	"newsdesk/internal/repository"
)

const (
	// excerptLength is the number of content characters carried in the
	// announcement body before truncation.
	excerptLength = 200

	truncationSuffix = "..."
)

// Config controls fan-out behavior.
type Config struct {
	// BaseURL is the public site URL used to build article links,
	// e.g. "https://news.example.com"
	BaseURL string

	// MailFailSilently downgrades mail delivery failures to log entries.
	// When false, a failed batch send propagates to the caller; the
	// approval itself has already been persisted either way.
	MailFailSilently bool
}

// AuthorLookup resolves an article together with its author's username for
// the byline. The article repository implements it with a single join.
type AuthorLookup interface {
	GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error)
}

// Service dispatches publication announcements. Dispatch is synchronous:
// the approval request does not return until the fan-out finished, so the
// caller observes delivery failures directly.
type Service struct {
	Subscriptions repository.SubscriptionRepository
	Articles      AuthorLookup
	Mailer        notifier.Mailer
	Social        notifier.SocialPoster
	Config        Config
}

// ArticleApproved runs the fan-out pipeline for a freshly approved article.
//
// Pipeline:
//  1. Resolve the audience: readers subscribed to the author or to a
//     newsletter containing the article, deduplicated by reader.
//  2. Drop members without an email address.
//  3. Send one batched email to the remaining recipients; an empty batch
//     skips the mail step entirely.
//  4. Post the announcement on the social channel. The attempt is made
//     even when the mail step failed. Social failures are logged and
//     swallowed: the platform account posting is best-effort and never
//     fails an approval.
func (s *Service) ArticleApproved(ctx context.Context, article *entity.Article) error {
	audience, err := s.Subscriptions.ResolveAudience(ctx, article.ID, article.AuthorID)
	if err != nil {
		return fmt.Errorf("resolve audience: %w", err)
	}

	_, authorName, err := s.Articles.GetWithAuthor(ctx, article.ID)
	if err != nil {
		return fmt.Errorf("get author: %w", err)
	}

	recipients := make([]string, 0, len(audience))
	for _, member := range audience {
		if member.Email == "" {
			continue
		}
		recipients = append(recipients, member.Email)
	}

	slog.Info("dispatching publication fan-out",
		slog.Int64("article_id", article.ID),
		slog.Int("audience", len(audience)),
		slog.Int("recipients", len(recipients)))

	subject := Subject(article)
	link := s.articleLink(article.ID)

	// Mail first, social second, each attempted regardless of the
	// other's outcome. Only the mail error can surface to the caller.
	mailErr := s.sendMail(ctx, article, recipients, subject, authorName, link)
	s.postSocial(ctx, article, subject, link)
	return mailErr
}

func (s *Service) sendMail(ctx context.Context, article *entity.Article, recipients []string, subject, authorName, link string) error {
	if len(recipients) == 0 {
		slog.Info("no mail recipients, skipping mail step",
			slog.Int64("article_id", article.ID))
		return nil
	}

	body := Body(article, authorName, link)

	start := time.Now()
	err := s.Mailer.Send(ctx, recipients, subject, body)
	duration := time.Since(start)

	if err != nil {
		RecordFailure(channelMail, duration)
		if s.Config.MailFailSilently {
			slog.Warn("mail fan-out failed, continuing",
				slog.Int64("article_id", article.ID),
				slog.Int("recipients", len(recipients)),
				slog.Any("error", err))
			return nil
		}
		return fmt.Errorf("send mail: %w", err)
	}

	RecordSuccess(channelMail, duration)
	return nil
}

func (s *Service) postSocial(ctx context.Context, article *entity.Article, subject, link string) {
	start := time.Now()
	err := s.Social.Post(ctx, article.ID, subject+"\n"+link)
	duration := time.Since(start)

	if err != nil {
		// Best-effort channel: log and move on.
		RecordFailure(channelSocial, duration)
		slog.Error("social fan-out failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
		return
	}
	RecordSuccess(channelSocial, duration)
}

func (s *Service) articleLink(id int64) string {
	return fmt.Sprintf("%s/articles/%d", s.Config.BaseURL, id)
}

// Subject builds the announcement subject line.
func Subject(article *entity.Article) string {
	return "New Article Published: " + article.Title
}

// Body builds the plain-text announcement body: title, byline, a content
// excerpt capped at 200 characters, and the canonical article link. The
// excerpt always carries the ellipsis marker, and truncation counts runes
// so a multi-byte character is never split mid-sequence.
func Body(article *entity.Article, authorName, link string) string {
	excerpt := []rune(article.Content)
	if len(excerpt) > excerptLength {
		excerpt = excerpt[:excerptLength]
	}
	return fmt.Sprintf("%s\n\nBy %s\n\n%s%s\n\nRead more at: %s",
		article.Title, authorName, string(excerpt), truncationSuffix, link)
}
