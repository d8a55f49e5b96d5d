package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/handler/http/respond"
	authservice "newsdesk/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = time.Hour

// TokenIssuer signs JWT tokens for authenticated users.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

// Issue creates a signed token carrying the user's identity and role.
func (ti *TokenIssuer) Issue(user *entity.User) (string, error) {
	ttl := ti.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(ti.Secret)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler creates an HTTP handler that authenticates users and issues
// JWT tokens. Credential validation is delegated to the auth service.
func TokenHandler(svc *authservice.Service, issuer *TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := svc.ValidateCredentials(r.Context(), authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		signed, err := issuer.Issue(user)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusInternalServerError, errors.New("token generation failed"))
			return
		}

		logger.Info("authentication successful",
			slog.String("username", user.Username),
			slog.String("role", string(user.Role)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("login", "success")
		RecordAuthDuration("login", time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed})
	}
}
