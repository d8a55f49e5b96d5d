package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
	authservice "newsdesk/internal/service/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// RegisterHandler creates an HTTP handler for account registration.
// The password never appears in the response; only the public identity does.
func RegisterHandler(svc *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("register", "failure")
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := svc.Register(r.Context(), authservice.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			RecordAuthRequest("register", "failure")
			code := http.StatusBadRequest
			switch {
			case errors.Is(err, authservice.ErrUsernameTaken),
				errors.Is(err, authservice.ErrEmailTaken):
				code = http.StatusConflict
			default:
				var vErr *entity.ValidationError
				if !errors.As(err, &vErr) {
					code = http.StatusInternalServerError
				}
			}
			respond.SafeError(w, code, err)
			return
		}

		RecordAuthRequest("register", "success")
		RecordAuthDuration("register", time.Since(start).Seconds())

		respond.JSON(w, http.StatusCreated, userResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		})
	}
}
