// Package newsletter provides HTTP handlers for newsletter endpoints:
// browsing newsletters, creating them, and curating their articles.
package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

// DTO represents a newsletter in JSON responses.
type DTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArticleDTO represents an attached article in JSON responses.
type ArticleDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Register registers the newsletter endpoints. Browsing is public; creation
// and curation require an authenticated journalist.
func Register(mux *http.ServeMux, svc *nlUC.Service, secret []byte) {
	authn := auth.Middleware(secret)

	mux.Handle("GET    /newsletters", ListHandler{Svc: svc})
	mux.Handle("GET    /newsletters/{id}", GetHandler{Svc: svc})
	mux.Handle("GET    /newsletters/{id}/articles", ListArticlesHandler{Svc: svc})

	mux.Handle("POST   /newsletters", authn(CreateHandler{Svc: svc}))
	mux.Handle("POST   /newsletters/{id}/articles", authn(AddArticleHandler{Svc: svc}))
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, nlUC.ErrNewsletterNotFound):
		return http.StatusNotFound
	case errors.Is(err, nlUC.ErrInvalidNewsletterID),
		errors.Is(err, nlUC.ErrArticleNotEligible),
		errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

type ListHandler struct{ Svc *nlUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	newsletters, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(newsletters))
	for _, n := range newsletters {
		out = append(out, toDTO(n))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *nlUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	newsletter, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(newsletter))
}

type CreateHandler struct{ Svc *nlUC.Service }

// ServeHTTP creates an empty newsletter owned by the authenticated journalist.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	newsletter, err := h.Svc.Create(r.Context(), p, nlUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(newsletter))
}

type AddArticleHandler struct{ Svc *nlUC.Service }

// ServeHTTP attaches an approved article to the newsletter. Only the owning
// journalist curates; drafts are rejected.
func (h AddArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		ArticleID int64 `json:"article_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.Svc.AddArticle(r.Context(), p, id, req.ArticleID); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ListArticlesHandler struct{ Svc *nlUC.Service }

func (h ListArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.Svc.ListArticles(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleDTO{
			ID:        a.ID,
			Title:     a.Title,
			AuthorID:  a.AuthorID,
			CreatedAt: a.CreatedAt,
		})
	}
	respond.JSON(w, http.StatusOK, out)
}

func toDTO(n *entity.Newsletter) DTO {
	return DTO{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		AuthorID:    n.AuthorID,
		CreatedAt:   n.CreatedAt,
	}
}
