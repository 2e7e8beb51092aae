package handlers

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"momentum_legal_go/config"
	"momentum_legal_go/middleware"
	"momentum_legal_go/services"
)

// NewServer builds the Echo instance with middleware and routes.
// The limiter and deliverer are passed in so each server owns its own state.
func NewServer(cfg *config.Config, deliverer services.Deliverer, limiter *middleware.RateLimiter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = JSONErrorHandler

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders(cfg.Environment == "production"))
	e.Use(echomiddleware.BodyLimit("64K"))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	contact := NewContactHandler(services.NewContactService(cfg, deliverer))

	e.GET("/healthz", HealthHandler)
	e.GET("/sitemap.xml", GetSitemapHandler)
	e.GET("/robots.txt", GetRobotsHandler)
	e.POST("/api/contact", contact.Submit,
		middleware.OriginGuard(cfg.AllowedOrigins),
		limiter.Middleware(),
	)

	return e
}
