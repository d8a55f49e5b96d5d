package article

import (
	"errors"
	"net/http"

	"newsdesk/internal/access"
	"newsdesk/internal/common/pagination"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type ListHandler struct {
	Svc        *artUC.Service
	Pagination pagination.Config
}

// ServeHTTP serves the article listings. With no scope parameter it returns
// the public feed of approved articles, paginated via the page and limit
// query parameters. The scope parameter selects a role-bound listing and
// requires authentication:
//
//	scope=mine        the journalist's own articles, drafts included
//	scope=review      the editor's review queue
//	scope=subscribed  the reader's personalized feed
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")

	if scope == "" {
		h.servePublicFeed(w, r)
		return
	}

	var (
		articles []*entity.Article
		err      error
	)
	switch scope {
	case "mine", "review", "subscribed":
		p, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
			return
		}
		switch scope {
		case "mine":
			articles, err = h.Svc.ListMine(r.Context(), p)
		case "review":
			articles, err = h.Svc.ListReview(r.Context(), p)
		case "subscribed":
			articles, err = h.Svc.ListSubscribed(r.Context(), p)
		}
	default:
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("scope must be one of mine, review, subscribed"))
		return
	}
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

// SubscribedHandler serves the reader's personalized feed at its canonical
// path. Equivalent to the scope=subscribed listing.
type SubscribedHandler struct {
	Svc *artUC.Service
}

func (h SubscribedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
		return
	}

	articles, err := h.Svc.ListSubscribed(r.Context(), p)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

func (h ListHandler) servePublicFeed(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.Pagination)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, total, err := h.Svc.ListApproved(r.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK,
		pagination.NewResponse(toDTOs(articles), pagination.NewMetadata(params, total)))
}
