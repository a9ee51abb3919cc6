package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/api/handler"
	"github.com/casalista/marketplace-api/internal/api/middleware"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
	"github.com/casalista/marketplace-api/internal/core/token"
)

// Deps carries everything the router needs. Services and repositories are
// constructed in main and injected here; required-role sets are declared
// statically at registration, next to each route.
type Deps struct {
	Logger  zerolog.Logger
	Signer  *token.Signer
	Users   ports.UserRepository
	Auth    *handler.AuthHandler
	Homes   *handler.HomeHandler
	Inquiry *handler.InquiryHandler
	Health  *handler.HealthHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Guards ---
	authenticated := func(roles ...domain.Role) echo.MiddlewareFunc {
		return middleware.Auth(d.Signer, d.Users, roles...)
	}
	identity := middleware.Identity(d.Signer)

	// --- Auth routes ---
	// /auth/key is deliberately unauthenticated and keys are replayable
	// within their validity; see DESIGN.md.
	e.POST("/auth/signup/:role", d.Auth.Signup)
	e.POST("/auth/signin", d.Auth.Signin)
	e.POST("/auth/key", d.Auth.GenerateProductKey)
	e.GET("/auth/me", d.Auth.Me, identity)

	// --- Home routes ---
	e.GET("/homes", d.Homes.ListHomes)
	e.GET("/homes/:id", d.Homes.GetHome)
	e.POST("/homes", d.Homes.CreateHome, authenticated(domain.RoleRealtor, domain.RoleAdmin))
	e.PUT("/homes/:id", d.Homes.UpdateHome, authenticated(domain.RoleRealtor, domain.RoleAdmin))
	e.DELETE("/homes/:id", d.Homes.DeleteHome, authenticated(domain.RoleRealtor, domain.RoleAdmin))

	// --- Inquiry routes ---
	e.POST("/homes/:id/inquiries", d.Inquiry.CreateInquiry, authenticated(domain.RoleBuyer))
	e.GET("/homes/:id/inquiries", d.Inquiry.ListInquiries, authenticated(domain.RoleRealtor, domain.RoleAdmin))

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Health.Readiness)

	return e
}
