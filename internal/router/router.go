// Package router wires every HTTP route to its handler and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/sports-facility-reservation/internal/config"
	"github.com/iliyamo/sports-facility-reservation/internal/handler"
	"github.com/iliyamo/sports-facility-reservation/internal/middleware"
	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Branches     *handler.BranchHandler
	Sports       *handler.SportHandler
	Sessions     *handler.SessionHandler
	Reservations *handler.ReservationHandler
}

// Register mounts all routes on the given Echo instance.
//
// Route map:
//
//	GET  /healthz, /metrics                       public
//	POST /api/auth/register, /api/auth/login      public, rate limited
//	/api/branches, /api/sports, /api/sessions     read: any authenticated, write: ADMIN
//	/api/users                                    list/delete: ADMIN, get/update: owner or ADMIN
//	/api/reservations                             list: ADMIN, rest: owner or ADMIN
func Register(e *echo.Echo, h Handlers, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	auth := e.Group("/api/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	api := e.Group("/api", middleware.JWTAuth(cfg.JWTSecret), limiter)
	admin := middleware.RequireRole(model.RoleAdmin)

	br := api.Group("/branches")
	br.GET("", h.Branches.List)
	br.GET("/:id", h.Branches.Get)
	br.POST("", h.Branches.Create, admin)
	br.PUT("/:id", h.Branches.Update, admin)
	br.DELETE("/:id", h.Branches.Delete, admin)

	sp := api.Group("/sports")
	sp.GET("", h.Sports.List)
	sp.GET("/:id", h.Sports.Get)
	sp.POST("", h.Sports.Create, admin)
	sp.PUT("/:id", h.Sports.Update, admin)
	sp.DELETE("/:id", h.Sports.Delete, admin)

	se := api.Group("/sessions")
	se.GET("", h.Sessions.List)
	se.GET("/:id", h.Sessions.Get)
	se.POST("", h.Sessions.Create, admin)
	se.PUT("/:id", h.Sessions.Update, admin)
	se.DELETE("/:id", h.Sessions.Delete, admin)

	us := api.Group("/users")
	us.GET("", h.Users.List, admin)
	us.GET("/:id", h.Users.Get)
	us.PUT("/:id", h.Users.Update)
	us.DELETE("/:id", h.Users.Delete, admin)

	rs := api.Group("/reservations")
	rs.GET("", h.Reservations.List, admin)
	rs.GET("/mine", h.Reservations.Mine)
	rs.GET("/:id", h.Reservations.Get)
	rs.POST("", h.Reservations.Create)
	rs.PUT("/:id", h.Reservations.Update)
	rs.DELETE("/:id", h.Reservations.Delete)
}
