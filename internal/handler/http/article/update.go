package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/access"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP updates an article's title and content. Absent fields keep
// their stored value. An editor may carry "approved": true as the review
// save; that fires the publication fan-out exactly as an explicit approve.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
		return
	}

	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Approved *bool   `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	article, err := h.Svc.Update(r.Context(), p, artUC.UpdateInput{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Approved: req.Approved,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
