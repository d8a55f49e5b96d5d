package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/notifier"
	workerPkg "newsdesk/internal/infra/worker"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/usecase/digest"
	"newsdesk/pkg/config"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := workerPkg.LoadConfig()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("schedule", cfg.Schedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("parallelism", cfg.Parallelism),
		slog.Duration("lookback", cfg.Lookback),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort))

	metrics := workerPkg.NewMetrics()

	svc := &digest.Service{
		Newsletters: pgRepo.NewNewsletterRepo(database),
		Subs:        pgRepo.NewSubscriptionRepo(database),
		Mailer:      buildMailer(logger),
		Config: digest.Config{
			BaseURL:     config.GetEnvString("PUBLIC_BASE_URL", "http://localhost:8080"),
			Parallelism: cfg.Parallelism,
		},
	}

	startMetricsServer(ctx, logger, cfg.MetricsPort)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	runScheduler(ctx, logger, svc, cfg, metrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for the API process
// to finish migrating the schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// waitForMigrations probes the schema until the newsletters table exists.
// The API process owns migrations; the worker only waits for them.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM newsletters LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// buildMailer selects the mail channel from environment configuration.
// Without SMTP_HOST digests degrade to logged no-ops.
func buildMailer(logger *slog.Logger) notifier.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("SMTP not configured, digests will not be delivered")
		return notifier.NewNoOpMailer()
	}

	cfg := notifier.SMTPConfig{
		Host:     host,
		Port:     config.GetEnvInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     config.GetEnvString("SMTP_FROM", "no-reply@newsdesk.local"),
	}
	logger.Info("SMTP mailer initialized",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("from", cfg.From))
	return notifier.NewSMTPMailer(cfg)
}

// runScheduler starts the cron scheduler and blocks until shutdown.
func runScheduler(ctx context.Context, logger *slog.Logger, svc *digest.Service, cfg workerPkg.Config, metrics *workerPkg.Metrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		runDigestJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.Schedule), slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// Let an in-flight digest run finish before exiting.
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// runDigestJob executes a single digest run with timeout and metrics.
func runDigestJob(logger *slog.Logger, svc *digest.Service, cfg workerPkg.Config, metrics *workerPkg.Metrics) {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("digest run started", slog.Duration("lookback", cfg.Lookback))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	stats, err := svc.Run(ctx, startTime.Add(-cfg.Lookback))
	if err != nil {
		logger.Error("digest run failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordDelivery(stats.Sent, stats.MailErrors)
	metrics.RecordLastSuccess()

	logger.Info("digest run completed",
		slog.Int("newsletters", stats.Newsletters),
		slog.Int64("sent", stats.Sent),
		slog.Int64("skipped", stats.Skipped),
		slog.Int64("recipients", stats.Recipients),
		slog.Int64("mail_errors", stats.MailErrors),
		slog.Duration("duration", stats.Duration),
	)
}
