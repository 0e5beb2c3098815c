package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/suratpier/nightboat/internal/config"
	"github.com/suratpier/nightboat/internal/handler"
	"github.com/suratpier/nightboat/internal/middleware"
	"github.com/suratpier/nightboat/internal/model"
)

// Handlers bundles every handler the API mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Ticket      *handler.TicketHandler
	Parcel      *handler.ParcelHandler
	Maintenance *handler.MaintenanceHandler
	Dashboard   *handler.DashboardHandler
}

// Register mounts all routes on the provided Echo instance.  Login and the
// bootstrap register endpoint are open; everything else under /api requires
// a valid token.  The users subgroup carries an extra admin gate on top of
// the handlers' policy checks, and redis (may be nil) backs the login rate
// limiter and the dashboard cache.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	rl := middleware.NewLoginRateLimit(config.LoadRateLimitConfig(), rdb)
	e.POST("/api/login", h.Auth.Login, rl)
	e.POST("/api/register", h.Auth.Register)

	api := e.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	users := api.Group("/users")
	users.Use(middleware.RequireRole(model.RoleAdmin))
	users.GET("", h.User.List)
	users.POST("", h.User.Create)

	api.GET("/tickets", h.Ticket.List)
	api.POST("/tickets", h.Ticket.Create)
	api.PUT("/tickets/:id", h.Ticket.Update)
	api.DELETE("/tickets/:id", h.Ticket.Delete)
	api.POST("/tickets/:id/checkin", h.Ticket.CheckIn)

	api.GET("/parcels", h.Parcel.List)
	api.POST("/parcels", h.Parcel.Create)
	api.PUT("/parcels/:id", h.Parcel.Update)
	api.DELETE("/parcels/:id", h.Parcel.Delete)
	api.POST("/parcels/:id/scan", h.Parcel.Scan)

	api.GET("/maintenances", h.Maintenance.List)
	api.POST("/maintenances", h.Maintenance.Create)
	api.PUT("/maintenances/:id", h.Maintenance.Update)
	api.DELETE("/maintenances/:id", h.Maintenance.Delete)

	cache := middleware.NewDashboardCache(config.LoadCacheConfig(), rdb)
	api.GET("/dashboard", h.Dashboard.Get, cache)
}
