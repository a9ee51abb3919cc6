package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/token"
)

// ContextClaimsKey is the echo context key under which Identity publishes the
// decoded *token.Claims.
const ContextClaimsKey = "auth.claims"

// Identity attaches the bearer token's decoded payload to the context WITHOUT
// verifying its signature. This is a deliberately weaker guarantee than Auth:
// the claims are untrusted and must only feed read paths with no security
// consequence (e.g. GET /auth/me echoing the caller's own identity). Routes
// where tampering matters use Auth, which verifies and re-resolves the user.
func Identity(signer *token.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return domain.ErrUnauthenticated
			}

			claims, err := signer.Decode(raw)
			if err != nil {
				return domain.ErrUnauthenticated
			}

			c.Set(ContextClaimsKey, claims)
			return next(c)
		}
	}
}
