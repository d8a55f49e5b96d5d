package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/access"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP drafts a new article for the authenticated journalist.
// The approved field is not accepted: every article starts as a draft.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		PublisherID *int64 `json:"publisher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	article, err := h.Svc.Create(r.Context(), p, artUC.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(article))
}
