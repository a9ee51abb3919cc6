package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/api/metrics"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user with the role named in the path.
//
// @Summary      Register a new user
// @Description  Roles other than BUYER require a product_key generated for the same email and role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string         true  "BUYER | REALTOR | ADMIN"
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup/{role} [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		return err
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Elevated-role gating: the key must have been derived for this exact
	// email and role. Rejected here, before any user row is created.
	if role != domain.RoleBuyer {
		if req.ProductKey == "" || !h.authService.VerifyProductKey(req.Email, role, req.ProductKey) {
			return domain.ErrUnauthenticated
		}
	}

	tkn, _, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Token: tkn})
}

// Signin authenticates an email/password pair and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tkn, _, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SigninFailuresTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: tkn})
}

// GenerateProductKey derives a product key for elevated-role signup.
//
// This endpoint is intentionally left unauthenticated and keys are not
// tracked for single use, mirroring the upstream system; a valid key can be
// replayed within its validity. See DESIGN.md.
//
// @Summary      Generate a product key
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      productKeyRequest  true  "Email and role the key is bound to"
// @Success      200   {object}  productKeyResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/key [post]
func (h *AuthHandler) GenerateProductKey(c echo.Context) error {
	var req productKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	key, err := h.authService.GenerateProductKey(req.Email, role)
	if err != nil {
		return err
	}

	metrics.ProductKeysIssuedTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusOK, productKeyResponse{ProductKey: key})
}

// Me returns the caller's decoded token claims. Served behind the Identity
// middleware: the payload is decoded without signature verification and must
// not be treated as authenticated.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := decodedClaims(c)
	if err != nil {
		return err
	}

	resp := identityResponse{ID: claims.ID, Name: claims.Name}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return c.JSON(http.StatusOK, resp)
}
