package article

import (
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP returns a single article. Drafts hidden from the caller surface
// as 404, the same as a genuinely absent article.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// Anonymous callers carry a zero principal; only approved articles are
	// visible to them.
	p, _ := auth.PrincipalFromContext(r.Context())

	article, err := h.Svc.Get(r.Context(), p, id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
