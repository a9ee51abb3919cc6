package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/api/middleware"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/token"
)

// currentUser extracts the verified user injected by the Auth middleware and
// fast-fails before any service call; presence proves the guard ran. Handlers
// registered behind Auth can rely on a non-nil result.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated identity")
	}
	return user, nil
}

// decodedClaims extracts the decode-only claims injected by the Identity
// middleware. These are NOT verified and must never gate access.
func decodedClaims(c echo.Context) (*token.Claims, error) {
	claims, _ := c.Get(middleware.ContextClaimsKey).(*token.Claims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity claims")
	}
	return claims, nil
}
