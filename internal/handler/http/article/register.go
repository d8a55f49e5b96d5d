package article

import (
	"net/http"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/handler/http/auth"
	artUC "newsdesk/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// The feed and single-article reads accept anonymous requests (approved
// articles are public); every mutation requires authentication, as do the
// role-scoped listings.
func Register(mux *http.ServeMux, svc *artUC.Service, secret []byte, pageCfg pagination.Config) {
	authn := auth.Middleware(secret)
	public := auth.Optional(secret)

	mux.Handle("GET    /articles", public(ListHandler{Svc: svc, Pagination: pageCfg}))
	mux.Handle("GET    /articles/subscribed", authn(SubscribedHandler{Svc: svc}))
	mux.Handle("GET    /articles/{id}", public(GetHandler{Svc: svc}))

	mux.Handle("POST   /articles", authn(CreateHandler{Svc: svc}))
	mux.Handle("PUT    /articles/{id}", authn(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /articles/{id}", authn(DeleteHandler{Svc: svc}))
	mux.Handle("POST   /articles/{id}/approve", authn(ApproveHandler{Svc: svc}))
}
