package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	authservice "newsdesk/internal/service/auth"

	"golang.org/x/crypto/bcrypt"
)

/* ───────── stub implementations ───────── */

type stubUserRepo struct {
	byUsername map[string]*entity.User
	byEmail    map[string]*entity.User
	nextID     int64
}

func newUserStub() *stubUserRepo {
	return &stubUserRepo{
		byUsername: map[string]*entity.User{},
		byEmail:    map[string]*entity.User{},
		nextID:     1,
	}
}

func (s *stubUserRepo) Get(_ context.Context, _ int64) (*entity.User, error) { return nil, nil }
func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.byUsername[username], nil
}
func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.byEmail[email], nil
}
func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = s.nextID
	s.nextID++
	s.byUsername[u.Username] = u
	s.byEmail[u.Email] = u
	return nil
}
func (s *stubUserRepo) ListByRole(_ context.Context, _ entity.Role) ([]*entity.User, error) {
	return nil, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role entity.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	_ = repo.Create(context.Background(), &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	})
}

/* ───────── tests ───────── */

func TestTokenHandler_IssuesUsableToken(t *testing.T) {
	repo := newUserStub()
	seedUser(t, repo, "jane", "correct-horse", entity.RoleJournalist)

	svc := &authservice.Service{Users: repo}
	issuer := &auth.TokenIssuer{Secret: testSecret}
	handler := auth.TokenHandler(svc, issuer)

	req := httptest.NewRequest(http.MethodPost, "/auth/token",
		strings.NewReader(`{"username":"jane","password":"correct-horse"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	// The issued token must pass the middleware.
	protected := auth.Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		if !ok || p.Username != "jane" || p.Role != entity.RoleJournalist {
			t.Fatalf("principal = %+v ok=%v", p, ok)
		}
		w.WriteHeader(http.StatusOK)
	}))
	areq := httptest.NewRequest(http.MethodGet, "/articles", nil)
	areq.Header.Set("Authorization", "Bearer "+resp.Token)
	arec := httptest.NewRecorder()
	protected.ServeHTTP(arec, areq)
	if arec.Code != http.StatusOK {
		t.Fatalf("middleware rejected issued token: %d", arec.Code)
	}
}

func TestTokenHandler_WrongPassword(t *testing.T) {
	repo := newUserStub()
	seedUser(t, repo, "jane", "correct-horse", entity.RoleJournalist)

	handler := auth.TokenHandler(&authservice.Service{Users: repo}, &auth.TokenIssuer{Secret: testSecret})

	req := httptest.NewRequest(http.MethodPost, "/auth/token",
		strings.NewReader(`{"username":"jane","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTokenHandler_MalformedBody(t *testing.T) {
	handler := auth.TokenHandler(&authservice.Service{Users: newUserStub()}, &auth.TokenIssuer{Secret: testSecret})

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRegisterHandler(t *testing.T) {
	repo := newUserStub()
	handler := auth.RegisterHandler(&authservice.Service{Users: repo})

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"rita","email":"rita@example.com","password":"long-enough-pass","role":"reader"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == 0 || resp.Username != "rita" || resp.Role != "reader" {
		t.Fatalf("response = %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "long-enough-pass") {
		t.Fatal("password leaked into response")
	}
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	repo := newUserStub()
	seedUser(t, repo, "jane", "some-password", entity.RoleJournalist)
	handler := auth.RegisterHandler(&authservice.Service{Users: repo})

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"jane","email":"new@example.com","password":"long-enough-pass","role":"reader"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRegisterHandler_InvalidRole(t *testing.T) {
	handler := auth.RegisterHandler(&authservice.Service{Users: newUserStub()})

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"x","email":"x@example.com","password":"long-enough-pass","role":"admin"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
