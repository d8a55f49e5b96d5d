// Package publisher provides HTTP handlers for publisher endpoints:
// browsing publishers, creating them, and managing their rosters.
package publisher

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
	pubUC "newsdesk/internal/usecase/publisher"
)

// DTO represents a publisher in JSON responses.
type DTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Register registers the publisher endpoints. Browsing is public; creation
// and roster management require an authenticated editor.
func Register(mux *http.ServeMux, svc *pubUC.Service, secret []byte) {
	authn := auth.Middleware(secret)

	mux.Handle("GET    /publishers", ListHandler{Svc: svc})
	mux.Handle("GET    /publishers/{id}", GetHandler{Svc: svc})

	mux.Handle("POST   /publishers", authn(CreateHandler{Svc: svc}))
	mux.Handle("POST   /publishers/{id}/editors", authn(AddMemberHandler{Svc: svc, Roster: "editors"}))
	mux.Handle("POST   /publishers/{id}/journalists", authn(AddMemberHandler{Svc: svc, Roster: "journalists"}))
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, pubUC.ErrPublisherNotFound):
		return http.StatusNotFound
	case errors.Is(err, pubUC.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, pubUC.ErrInvalidPublisherID),
		errors.Is(err, pubUC.ErrMemberNotEligible),
		errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

type ListHandler struct{ Svc *pubUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, toDTO(p))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *pubUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	publisher, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(publisher))
}

type CreateHandler struct{ Svc *pubUC.Service }

// ServeHTTP creates a publisher and enrolls the creating editor on its
// editor roster.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, access.ErrUnauthenticated)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	publisher, err := h.Svc.Create(r.Context(), p, pubUC.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(publisher))
}

// AddMemberHandler enrolls a user on one of the publisher's rosters.
// Roster selects which one: "editors" or "journalists".
type AddMemberHandler struct {
	Svc    *pubUC.Service
	Roster string
}

func (h AddMemberHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	switch h.Roster {
	case "editors":
		err = h.Svc.AddEditor(r.Context(), p, id, req.UserID)
	case "journalists":
		err = h.Svc.AddJournalist(r.Context(), p, id, req.UserID)
	default:
		err = errors.New("invalid roster")
	}
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(p *entity.Publisher) DTO {
	return DTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
