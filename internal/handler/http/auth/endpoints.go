package auth

import (
	"net/http"

	authservice "newsdesk/internal/service/auth"
)

// Register registers the authentication endpoints with the given mux.
// Both endpoints are public: one creates accounts, the other exchanges
// credentials for a JWT.
func Register(mux *http.ServeMux, svc *authservice.Service, issuer *TokenIssuer) {
	mux.Handle("POST   /auth/register", RegisterHandler(svc))
	mux.Handle("POST   /auth/token", TokenHandler(svc, issuer))
}
