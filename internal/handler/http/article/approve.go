package article

import (
	"net/http"

	"newsdesk/internal/access"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type ApproveHandler struct{ Svc *artUC.Service }

// ServeHTTP approves an article for publication. Approving an already
// approved article succeeds without firing another notification, so the
// operation is safe to retry.
func (h ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	article, err := h.Svc.Approve(r.Context(), p, id)
	if err != nil {
		// A notification failure leaves the article approved; the error
		// surfaces so operators notice, but the transition is not undone.
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
