package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/resilience/circuitbreaker"
)

// XConfig contains configuration for posting announcements to X.
type XConfig struct {
	// APIBaseURL is the X API v2 base URL, e.g. "https://api.twitter.com/2/"
	APIBaseURL string

	// BearerToken authenticates the platform account. Empty disables posting.
	BearerToken string

	// Timeout is the HTTP request timeout for X API calls
	Timeout time.Duration
}

// XPoster publishes publication announcements to X via the v2 tweets
// endpoint. A missing bearer token turns every Post into a logged no-op so
// deployments without social credentials keep working.
type XPoster struct {
	config     XConfig
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	limiter    *RateLimiter
}

// NewXPoster creates a new XPoster with the specified configuration.
//
// The poster is initialized with:
//   - HTTP client with the configured timeout (default 5s)
//   - Circuit breaker tuned for the X API
//   - Rate limiter set to 1 request/second with burst of 3
func NewXPoster(config XConfig) *XPoster {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &XPoster{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		breaker: circuitbreaker.New(circuitbreaker.SocialAPIConfig()),
		limiter: NewRateLimiter(1.0, 3),
	}
}

// xPostPayload is the JSON body for POST /2/tweets.
type xPostPayload struct {
	Text string `json:"text"`
}

const maxPostLength = 280

// Post publishes text as a single post. Errors carry the status code and
// response body for logging; the caller decides whether to swallow them.
func (x *XPoster) Post(ctx context.Context, articleID int64, text string) error {
	if x.config.BearerToken == "" {
		slog.Info("X bearer token not configured, skipping post",
			slog.Int64("article_id", articleID))
		return nil
	}

	if err := x.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := x.breaker.Execute(func() (interface{}, error) {
		return nil, x.sendPostRequest(ctx, articleID, text)
	})
	if err != nil {
		return err
	}

	slog.Info("X post published", slog.Int64("article_id", articleID))
	return nil
}

func (x *XPoster) sendPostRequest(ctx context.Context, articleID int64, text string) error {
	payload := xPostPayload{Text: truncate(text, maxPostLength-3, "...")}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal post payload: %w", err)
	}

	url := x.config.APIBaseURL + "tweets"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+x.config.BearerToken)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	slog.Error("X API request failed",
		slog.Int64("article_id", articleID),
		slog.Int("status_code", resp.StatusCode),
		slog.String("response", string(body)))

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("X API client error: %s", string(body)),
		}
	}
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("X API server error: %s", string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}
