package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/pkg/middleware"
)

// RouterConfig bundles everything the HTTP surface needs
type RouterConfig struct {
	Health       *HealthHandler
	Events       *EventHandler
	Registration *RegistrationHandler
	Payments     *PaymentHandler
	CheckIn      *CheckInHandler
	Users        *UserHandler

	JWTSecret   string
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with the full route table. Event browsing
// is public; everything else requires a bearer token, and the admin group
// additionally requires the admin role.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	router.GET("/health", cfg.Health.Liveness)
	router.GET("/ready", cfg.Health.Readiness)

	v1 := router.Group("/api/v1")

	// Public browsing
	v1.GET("/events", cfg.Events.List)
	v1.GET("/events/:id", cfg.Events.GetByID)

	auth := v1.Group("")
	auth.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWTSecret}))
	{
		auth.POST("/auth/session", cfg.Users.Session)
		auth.GET("/users/me", cfg.Users.Me)

		auth.POST("/events/:id/register", cfg.Registration.Register)
		auth.GET("/registrations", cfg.Registration.ListMine)
		auth.GET("/registrations/:id", cfg.Registration.GetByID)
		auth.GET("/teams/:id", cfg.Registration.GetTeam)

		auth.POST("/payments/orders", cfg.Payments.CreateOrder)
		auth.POST("/payments/verify", cfg.Payments.Verify)
		auth.POST("/payments/failed", cfg.Payments.MarkFailed)
		auth.GET("/payments/:id", cfg.Payments.GetByID)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWTSecret}))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/events", cfg.Events.Create)
		admin.PATCH("/events/:id", cfg.Events.Update)
		admin.DELETE("/events/:id", cfg.Events.Delete)
		admin.GET("/events/:id/registrations", cfg.Registration.ListByEvent)
		admin.PATCH("/registrations/:id/status", cfg.Registration.UpdateStatus)
		admin.POST("/events/:id/checkin", cfg.CheckIn.CheckIn)
	}

	return router
}
