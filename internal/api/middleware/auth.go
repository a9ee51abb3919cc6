package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/api/metrics"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
	"github.com/casalista/marketplace-api/internal/core/token"
)

// ContextUserKey is the echo context key under which Auth publishes the
// resolved *domain.User.
const ContextUserKey = "auth.user"

// Auth gates a route behind bearer-token authentication and an optional
// required-role set declared at registration time. An empty role set admits
// any authenticated user.
//
// The decision is a single synchronous pipeline per request:
// header present → signature and expiry valid → subject still exists in the
// store → role admitted. Every verification failure (missing header, bad
// scheme, expired, tampered, malformed, deleted account) collapses into one
// outward domain.ErrUnauthenticated so callers cannot probe which check
// tripped. Only the role check is distinguishable, as domain.ErrForbidden.
func Auth(signer *token.Signer, users ports.UserRepository, roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := signer.Verify(raw)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrUnauthenticated
			}

			// Role is never trusted from the token; the subject is re-resolved
			// so deleted accounts holding a still-valid token are locked out.
			user, err := users.FindByID(c.Request().Context(), claims.ID)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("unknown_subject").Inc()
				return domain.ErrUnauthenticated
			}

			if len(allowed) > 0 {
				if _, ok := allowed[user.Role]; !ok {
					metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
					return domain.ErrForbidden
				}
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
