package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/token"
)

type stubUserRepo struct {
	byID map[int64]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.byID[u.ID] = u
	return u, nil
}

func newGuardFixture(t *testing.T, role domain.Role) (*token.Signer, *stubUserRepo, string) {
	t.Helper()
	signer := token.NewSigner("secret", time.Hour)
	repo := &stubUserRepo{byID: map[int64]*domain.User{
		1: {ID: 1, Name: "alice", Email: "alice@x.com", Role: role},
	}}
	tkn, err := signer.Sign(1, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signer, repo, tkn
}

func newRequestContext(header string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestAuth_ValidToken_PublishesUser(t *testing.T) {
	signer, repo, tkn := newGuardFixture(t, domain.RoleBuyer)
	c := newRequestContext("Bearer " + tkn)

	called := false
	handler := Auth(signer, repo)(func(c echo.Context) error {
		called = true
		user, _ := c.Get(ContextUserKey).(*domain.User)
		if user == nil || user.ID != 1 || user.Role != domain.RoleBuyer {
			t.Fatalf("unexpected context user: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	signer, repo, _ := newGuardFixture(t, domain.RoleBuyer)
	c := newRequestContext("")

	handler := Auth(signer, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_BadScheme(t *testing.T) {
	signer, repo, tkn := newGuardFixture(t, domain.RoleBuyer)
	c := newRequestContext("Token " + tkn)

	handler := Auth(signer, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	signer, repo, _ := newGuardFixture(t, domain.RoleBuyer)
	c := newRequestContext("Bearer garbage")

	handler := Auth(signer, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	shortSigner := token.NewSigner("secret", time.Millisecond)
	_, repo, _ := newGuardFixture(t, domain.RoleBuyer)

	tkn, err := shortSigner.Sign(1, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	c := newRequestContext("Bearer " + tkn)
	handler := Auth(shortSigner, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// Expiry collapses into the same outward signal as any other failure.
	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_DeletedSubject(t *testing.T) {
	signer, _, tkn := newGuardFixture(t, domain.RoleBuyer)
	empty := &stubUserRepo{byID: map[int64]*domain.User{}}
	c := newRequestContext("Bearer " + tkn)

	handler := Auth(signer, empty)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for deleted account, got %v", err)
	}
}

func TestAuth_RoleForbidden(t *testing.T) {
	signer, repo, tkn := newGuardFixture(t, domain.RoleBuyer)
	c := newRequestContext("Bearer " + tkn)

	handler := Auth(signer, repo, domain.RoleRealtor, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuth_RoleAdmitted(t *testing.T) {
	signer, repo, tkn := newGuardFixture(t, domain.RoleBuyer)

	for _, roles := range [][]domain.Role{nil, {domain.RoleBuyer}} {
		c := newRequestContext("Bearer " + tkn)
		called := false
		handler := Auth(signer, repo, roles...)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("roles %v: handler error: %v", roles, err)
		}
		if !called {
			t.Fatalf("roles %v: next not called", roles)
		}
	}
}
