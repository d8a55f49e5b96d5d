package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newsdesk/internal/common/pagination"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/notifier"
	"newsdesk/internal/observability/logging"
	"newsdesk/pkg/config"

	artUC "newsdesk/internal/usecase/article"
	nlUC "newsdesk/internal/usecase/newsletter"
	"newsdesk/internal/usecase/notify"
	pubUC "newsdesk/internal/usecase/publisher"
	subUC "newsdesk/internal/usecase/subscription"

	hhttp "newsdesk/internal/handler/http"
	harticle "newsdesk/internal/handler/http/article"
	hauth "newsdesk/internal/handler/http/auth"
	hnewsletter "newsdesk/internal/handler/http/newsletter"
	hpublisher "newsdesk/internal/handler/http/publisher"
	"newsdesk/internal/handler/http/requestid"
	hsubscription "newsdesk/internal/handler/http/subscription"
	authservice "newsdesk/internal/service/auth"
)

func main() {
	logger := initLogger()
	secret := loadJWTSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, secret, version)

	runServer(logger, handler, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadJWTSecret validates the JWT_SECRET environment variable for security requirements.
func loadJWTSecret(logger *slog.Logger) []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
	return []byte(secret)
}

// initDatabase opens the database connection, runs migrations, and seeds the
// role lookup table.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.SeedRoles(database); err != nil {
		logger.Error("failed to seed roles", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, use cases, and routes, and returns the
// HTTP handler with the full middleware chain applied.
func setupServer(logger *slog.Logger, database *sql.DB, secret []byte, version string) http.Handler {
	userRepo := pgRepo.NewUserRepo(database)
	articleRepo := pgRepo.NewArticleRepo(database)
	publisherRepo := pgRepo.NewPublisherRepo(database)
	newsletterRepo := pgRepo.NewNewsletterRepo(database)
	subscriptionRepo := pgRepo.NewSubscriptionRepo(database)

	notifySvc := &notify.Service{
		Subscriptions: subscriptionRepo,
		Articles:      articleRepo,
		Mailer:        buildMailer(logger),
		Social:        buildSocialPoster(logger),
		Config: notify.Config{
			BaseURL:          config.GetEnvString("PUBLIC_BASE_URL", "http://localhost:8080"),
			MailFailSilently: config.GetEnvBool("NOTIFY_MAIL_FAIL_SILENTLY", false),
		},
	}

	authSvc := &authservice.Service{Users: userRepo}
	artSvc := &artUC.Service{Articles: articleRepo, Publishers: publisherRepo, Notifier: notifySvc}
	pubSvc := &pubUC.Service{Publishers: publisherRepo, Users: userRepo}
	nlSvc := &nlUC.Service{Newsletters: newsletterRepo, Articles: articleRepo}
	subSvc := &subUC.Service{Subs: subscriptionRepo, Users: userRepo, Newsletters: newsletterRepo}

	issuer := &hauth.TokenIssuer{
		Secret: secret,
		TTL:    config.GetEnvDuration("TOKEN_TTL", hauth.DefaultTokenTTL),
	}

	mux := http.NewServeMux()
	hauth.Register(mux, authSvc, issuer)
	harticle.Register(mux, artSvc, secret, pagination.LoadFromEnv())
	hpublisher.Register(mux, pubSvc, secret)
	hnewsletter.Register(mux, nlSvc, secret)
	hsubscription.Register(mux, subSvc, secret)

	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux)
}

// buildMailer selects the mail channel from environment configuration.
// Without SMTP_HOST the mail step becomes a no-op.
func buildMailer(logger *slog.Logger) notifier.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Info("SMTP not configured, mail notifications disabled")
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

// buildSocialPoster selects the social channel from environment configuration.
// Without X_BEARER_TOKEN the social step becomes a no-op.
func buildSocialPoster(logger *slog.Logger) notifier.SocialPoster {
	token := os.Getenv("X_BEARER_TOKEN")
	if token == "" {
		logger.Info("X credentials not configured, social notifications disabled")
		return notifier.NewNoOpSocialPoster()
	}

	cfg := notifier.XConfig{
		APIBaseURL:  config.GetEnvString("X_API_BASE_URL", "https://api.twitter.com/2/"),
		BearerToken: token,
		Timeout:     config.GetEnvDuration("X_TIMEOUT", 5*time.Second),
	}
	logger.Info("X poster initialized", slog.String("api_base_url", cfg.APIBaseURL))
	return notifier.NewXPoster(cfg)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Rate Limit → Recovery → Logging → Body Limit → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	limiter := hhttp.NewRateLimiter(
		config.GetEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		time.Minute,
	)

	// Apply in reverse order (innermost to outermost).
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second))(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = limiter.Limit(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
