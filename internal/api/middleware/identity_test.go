package middleware

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/token"
)

func TestIdentity_AttachesDecodedClaims(t *testing.T) {
	signer := token.NewSigner("secret", time.Hour)
	tkn, err := signer.Sign(9, "carol")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c := newRequestContext("Bearer " + tkn)
	called := false
	handler := Identity(signer)(func(c echo.Context) error {
		called = true
		claims, _ := c.Get(ContextClaimsKey).(*token.Claims)
		if claims == nil || claims.ID != 9 || claims.Name != "carol" {
			t.Fatalf("unexpected claims: %+v", claims)
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

func TestIdentity_DoesNotVerifySignature(t *testing.T) {
	// A token signed with a different secret still decodes: Identity is
	// explicitly not tamper-resistant.
	foreign := token.NewSigner("some-other-secret", time.Hour)
	tkn, err := foreign.Sign(3, "mallory")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	signer := token.NewSigner("secret", time.Hour)
	c := newRequestContext("Bearer " + tkn)
	called := false
	handler := Identity(signer)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestIdentity_MissingOrUnparseable(t *testing.T) {
	signer := token.NewSigner("secret", time.Hour)

	for _, header := range []string{"", "Bearer", "Bearer not.a.token"} {
		c := newRequestContext(header)
		handler := Identity(signer)(func(c echo.Context) error {
			t.Fatalf("header %q: should not reach next", header)
			return nil
		})
		if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestBearerToken_Parsing(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		c := newRequestContext(tc.header)
		got, ok := bearerToken(c)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("header %q: got (%q,%v), want (%q,%v)", tc.header, got, ok, tc.want, tc.ok)
		}
	}
	// Sanity: SplitN keeps everything after the first space together.
	c := newRequestContext("Bearer " + strings.Repeat("x", 10) + " trailing")
	if got, ok := bearerToken(c); !ok || got != strings.Repeat("x", 10)+" trailing" {
		t.Fatalf("unexpected parse: %q %v", got, ok)
	}
}
