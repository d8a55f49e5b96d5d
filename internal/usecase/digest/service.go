// Package digest assembles periodic newsletter digests. On each run the
// service walks every newsletter, collects the approved articles attached
// since the previous run, and mails one digest per newsletter to its
// subscribers.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/notifier"
	"newsdesk/internal/repository"
)

const defaultParallelism = 4

// Config controls digest assembly and delivery.
type Config struct {
	// BaseURL is the public site URL used to build article links.
	BaseURL string

	// Parallelism caps concurrent newsletter deliveries.
	Parallelism int
}

// Stats summarizes one digest run.
type Stats struct {
	Newsletters int
	Sent        int64
	Skipped     int64
	Recipients  int64
	MailErrors  int64
	Duration    time.Duration
}

// Service builds and delivers newsletter digests.
type Service struct {
	Newsletters repository.NewsletterRepository
	Subs        repository.SubscriptionRepository
	Mailer      notifier.Mailer
	Config      Config
}

// Run delivers a digest for every newsletter with articles attached on or
// after since. Newsletters without new articles or without reachable
// subscribers are skipped. Mail failures are logged and counted; they do not
// abort the run, so one broken delivery cannot starve the other newsletters.
func (s *Service) Run(ctx context.Context, since time.Time) (Stats, error) {
	start := time.Now()

	newsletters, err := s.Newsletters.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list newsletters: %w", err)
	}

	stats := Stats{Newsletters: len(newsletters)}

	parallelism := s.Config.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	sem := make(chan struct{}, parallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	for _, newsletter := range newsletters {
		n := newsletter
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			return s.deliver(egCtx, n.ID, n.Title, since, &stats)
		})
	}

	if err := eg.Wait(); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// deliver sends the digest for one newsletter. Only context errors
// propagate; everything else is absorbed into the run stats.
func (s *Service) deliver(ctx context.Context, newsletterID int64, title string, since time.Time, stats *Stats) error {
	articles, err := s.Newsletters.ListArticlesAttachedSince(ctx, newsletterID, since)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("digest: list articles failed",
			slog.Int64("newsletter_id", newsletterID),
			slog.Any("error", err))
		atomic.AddInt64(&stats.MailErrors, 1)
		return nil
	}
	if len(articles) == 0 {
		atomic.AddInt64(&stats.Skipped, 1)
		return nil
	}

	subscribers, err := s.Subs.ListNewsletterSubscribers(ctx, newsletterID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("digest: list subscribers failed",
			slog.Int64("newsletter_id", newsletterID),
			slog.Any("error", err))
		atomic.AddInt64(&stats.MailErrors, 1)
		return nil
	}

	recipients := make([]string, 0, len(subscribers))
	for _, member := range subscribers {
		if member.Email == "" {
			continue
		}
		recipients = append(recipients, member.Email)
	}
	if len(recipients) == 0 {
		atomic.AddInt64(&stats.Skipped, 1)
		return nil
	}

	subject := Subject(title, len(articles))
	body := Body(title, articles, s.Config.BaseURL)

	if err := s.Mailer.Send(ctx, recipients, subject, body); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("digest: mail delivery failed",
			slog.Int64("newsletter_id", newsletterID),
			slog.Int("recipients", len(recipients)),
			slog.Any("error", err))
		atomic.AddInt64(&stats.MailErrors, 1)
		return nil
	}

	atomic.AddInt64(&stats.Sent, 1)
	atomic.AddInt64(&stats.Recipients, int64(len(recipients)))
	slog.Info("digest delivered",
		slog.Int64("newsletter_id", newsletterID),
		slog.Int("articles", len(articles)),
		slog.Int("recipients", len(recipients)))
	return nil
}

// Subject builds the digest subject line.
func Subject(title string, articleCount int) string {
	noun := "articles"
	if articleCount == 1 {
		noun = "article"
	}
	return fmt.Sprintf("%s Digest: %d new %s", title, articleCount, noun)
}

// Body builds the plain-text digest body: one line per article with its
// canonical link.
func Body(title string, articles []*entity.Article, baseURL string) string {
	var b strings.Builder
	b.WriteString("New in " + title + ":\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "\n- %s\n  %s/articles/%d\n", a.Title, baseURL, a.ID)
	}
	return b.String()
}
