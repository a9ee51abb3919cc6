package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/api/middleware"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
	"github.com/casalista/marketplace-api/internal/core/token"
)

type stubAuthService struct {
	signupFn    func(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error)
	signinFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	generateFn  func(email string, role domain.Role) (string, error)
	verifyKeyFn func(email string, role domain.Role, key string) bool
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error) {
	return s.signupFn(ctx, input, role)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) GenerateProductKey(email string, role domain.Role) (string, error) {
	return s.generateFn(email, role)
}

func (s *stubAuthService) VerifyProductKey(email string, role domain.Role, key string) bool {
	return s.verifyKeyFn(email, role, key)
}

func newAuthContext(t *testing.T, method, target, body, roleParam string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if roleParam != "" {
		c.SetParamNames("role")
		c.SetParamValues(roleParam)
	}
	return c, rec
}

const validSignupBody = `{"name":"Alice","phone":"+15550001111","email":"a@x.com","password":"s3cret"}`

func TestAuthHandler_Signup_Buyer(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error) {
			if input.Email != "a@x.com" || role != domain.RoleBuyer {
				t.Fatalf("unexpected args: %+v %s", input, role)
			}
			return "token123", &domain.User{ID: 1, Name: input.Name, Role: role}, nil
		},
		verifyKeyFn: func(string, domain.Role, string) bool {
			t.Fatalf("buyer signup must not check a product key")
			return false
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup/BUYER", validSignupBody, "BUYER")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Signup_RoleParsedCaseInsensitive(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error) {
			if role != domain.RoleBuyer {
				t.Fatalf("expected BUYER, got %s", role)
			}
			return "t", &domain.User{}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup/buyer", validSignupBody, "buyer")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InvalidRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup/WIZARD", validSignupBody, "WIZARD")
	if err := h.Signup(c); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthHandler_Signup_Realtor_MissingKey(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput, domain.Role) (string, *domain.User, error) {
			t.Fatalf("signup must not run without a valid product key")
			return "", nil, nil
		},
		verifyKeyFn: func(string, domain.Role, string) bool { return false },
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup/REALTOR", validSignupBody, "REALTOR")
	if err := h.Signup(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Signup_Realtor_WrongRoleKey(t *testing.T) {
	created := false
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput, domain.Role) (string, *domain.User, error) {
			created = true
			return "", nil, nil
		},
		verifyKeyFn: func(email string, role domain.Role, key string) bool {
			// Key was minted for BUYER; verification is against the
			// requested role, so it must fail.
			return role == domain.RoleBuyer
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Alice","phone":"+15550001111","email":"a@x.com","password":"s3cret","product_key":"buyer-key"}`
	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup/REALTOR", body, "REALTOR")
	if err := h.Signup(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if created {
		t.Fatalf("no user must be created when the key does not match")
	}
}

func TestAuthHandler_Signup_Realtor_ValidKey(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput, role domain.Role) (string, *domain.User, error) {
			if role != domain.RoleRealtor {
				t.Fatalf("expected REALTOR, got %s", role)
			}
			return "token456", &domain.User{ID: 2, Role: role}, nil
		},
		verifyKeyFn: func(email string, role domain.Role, key string) bool {
			return email == "a@x.com" && role == domain.RoleRealtor && key == "good-key"
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Alice","phone":"+15550001111","email":"a@x.com","password":"s3cret","product_key":"good-key"}`
	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup/REALTOR", body, "REALTOR")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, ports.SignupInput, domain.Role) (string, *domain.User, error) {
			t.Fatalf("signup must not run on invalid input")
			return "", nil, nil
		},
	})

	// password below minimum length
	body := `{"name":"Alice","phone":"+15550001111","email":"a@x.com","password":"ab"}`
	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup/BUYER", body, "BUYER")

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "a@x.com" || password != "s3cret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: 1}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signin", `{"email":"a@x.com","password":"s3cret"}`, "")
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Signin_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/signin", `{"email":"a@x.com","password":"bad"}`, "")
	if err := h.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_GenerateProductKey(t *testing.T) {
	stub := &stubAuthService{
		generateFn: func(email string, role domain.Role) (string, error) {
			if email != "r@x.com" || role != domain.RoleRealtor {
				t.Fatalf("unexpected args: %s %s", email, role)
			}
			return "the-key", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/key", `{"email":"r@x.com","role":"REALTOR"}`, "")
	if err := h.GenerateProductKey(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["product_key"] != "the-key" {
		t.Fatalf("expected product key, got %v", resp["product_key"])
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	now := time.Now()
	claims := &token.Claims{
		ID:   7,
		Name: "dave",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	c, rec := newAuthContext(t, http.MethodGet, "/auth/me", "", "")
	c.Set(middleware.ContextClaimsKey, claims)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp identityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 7 || resp.Name != "dave" {
		t.Fatalf("unexpected identity: %+v", resp)
	}
	if resp.ExpiresAt-resp.IssuedAt != int64(time.Hour/time.Second) {
		t.Fatalf("unexpected iat/exp: %+v", resp)
	}
}
