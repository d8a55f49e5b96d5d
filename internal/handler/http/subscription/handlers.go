// Package subscription provides HTTP handlers for readers to follow
// journalists and newsletters and to list what they follow.
package subscription

import (
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/access"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	subUC "newsdesk/internal/usecase/subscription"
)

// JournalistDTO represents a journalist subscription in JSON responses.
type JournalistDTO struct {
	ID           int64     `json:"id"`
	JournalistID int64     `json:"journalist_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewsletterDTO represents a newsletter subscription in JSON responses.
type NewsletterDTO struct {
	ID           int64     `json:"id"`
	NewsletterID int64     `json:"newsletter_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListDTO bundles both subscription kinds.
type ListDTO struct {
	Journalists []JournalistDTO `json:"journalists"`
	Newsletters []NewsletterDTO `json:"newsletters"`
}

// Register registers the subscription endpoints. All of them require an
// authenticated reader.
func Register(mux *http.ServeMux, svc *subUC.Service, secret []byte) {
	authn := auth.Middleware(secret)

	mux.Handle("GET    /subscriptions", authn(ListHandler{Svc: svc}))
	mux.Handle("POST   /subscriptions/journalists/{id}", authn(SubscribeJournalistHandler{Svc: svc}))
	mux.Handle("POST   /subscriptions/newsletters/{id}", authn(SubscribeNewsletterHandler{Svc: svc}))
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, subUC.ErrJournalistNotFound),
		errors.Is(err, subUC.ErrNewsletterNotFound):
		return http.StatusNotFound
	case errors.Is(err, subUC.ErrInvalidTargetID):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func principal(w http.ResponseWriter, r *http.Request) (access.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
	}
	return p, ok
}

type SubscribeJournalistHandler struct{ Svc *subUC.Service }

// ServeHTTP follows a journalist. Subscribing twice returns the stored
// subscription with 200 instead of creating a duplicate.
func (h SubscribeJournalistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.Svc.SubscribeToJournalist(r.Context(), p, id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toJournalistDTO(sub))
}

type SubscribeNewsletterHandler struct{ Svc *subUC.Service }

// ServeHTTP follows a newsletter with the same idempotent contract as
// following a journalist.
func (h SubscribeNewsletterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.Svc.SubscribeToNewsletter(r.Context(), p, id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toNewsletterDTO(sub))
}

type ListHandler struct{ Svc *subUC.Service }

// ServeHTTP lists everything the reader follows.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	subs, err := h.Svc.ListSubscriptions(r.Context(), p)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := ListDTO{
		Journalists: make([]JournalistDTO, 0, len(subs.Journalists)),
		Newsletters: make([]NewsletterDTO, 0, len(subs.Newsletters)),
	}
	for _, s := range subs.Journalists {
		out.Journalists = append(out.Journalists, toJournalistDTO(s))
	}
	for _, s := range subs.Newsletters {
		out.Newsletters = append(out.Newsletters, toNewsletterDTO(s))
	}

	respond.JSON(w, http.StatusOK, out)
}

func toJournalistDTO(s *entity.JournalistSubscription) JournalistDTO {
	return JournalistDTO{ID: s.ID, JournalistID: s.JournalistID, CreatedAt: s.CreatedAt}
}

func toNewsletterDTO(s *entity.NewsletterSubscription) NewsletterDTO {
	return NewsletterDTO{ID: s.ID, NewsletterID: s.NewsletterID, CreatedAt: s.CreatedAt}
}
