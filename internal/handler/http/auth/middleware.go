// Package auth provides the HTTP authentication surface: JWT issuing on
// login, account registration, and middleware that turns bearer tokens into
// request principals.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const principalKey ctxKey = "principal"

// PrincipalFromContext retrieves the authenticated principal from the context.
// The second return value is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (access.Principal, bool) {
	p, ok := ctx.Value(principalKey).(access.Principal)
	return p, ok
}

func withPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Middleware returns middleware that requires a valid JWT bearer token.
// The decoded principal is stored in the request context; requests without a
// valid token receive 401.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := principalFromHeader(r.Header.Get("Authorization"), secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

// Optional returns middleware that decodes a bearer token when one is
// present but lets anonymous requests through. Endpoints serving public
// content use it so approved articles stay readable without an account.
func Optional(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				next.ServeHTTP(w, r)
				return
			}
			p, err := principalFromHeader(authz, secret)
			if err != nil {
				// A malformed token on a public endpoint is still an error;
				// silently ignoring it would mask client bugs.
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

func principalFromHeader(authz string, secret []byte) (access.Principal, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return access.Principal{}, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return access.Principal{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return access.Principal{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return access.Principal{}, errors.New("invalid sub claim")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return access.Principal{}, errors.New("invalid sub claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return access.Principal{}, errors.New("invalid username claim")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return access.Principal{}, errors.New("invalid role claim")
	}
	role, err := entity.ParseRole(roleStr)
	if err != nil {
		return access.Principal{}, errors.New("invalid role claim")
	}

	return access.Principal{UserID: userID, Username: username, Role: role}, nil
}
