package article

import (
	"errors"
	"net/http"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	artUC "newsdesk/internal/usecase/article"
)

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, artUC.ErrInvalidArticleID), errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
