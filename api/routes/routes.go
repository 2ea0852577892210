package routes

import (
	"net/http"
	"time"

	"coffeeshop/api/handler"
	"coffeeshop/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/auth/signup", r.Auth.Signup, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/verify", r.Auth.VerifyEmail, r.AuthMiddleware.RequireAuth, r.AuthRate.Middleware())
	e.POST("/auth/resend-verification", r.Auth.ResendVerification, r.AuthMiddleware.RequireAuth, r.AuthRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())

	e.GET("/users/me", r.Users.Me, r.AuthMiddleware.RequireAuth)
	e.GET("/users", r.Users.List, r.AuthMiddleware.RequireAuth, middleware.RequireRole("admin"))
	e.GET("/users/:id", r.Users.GetByID, r.AuthMiddleware.RequireAuth, middleware.RequireRole("admin"))
	e.PATCH("/users/:id", r.Users.Update, r.AuthMiddleware.RequireAuth, middleware.RequireRole("admin"))
	e.DELETE("/users/:id", r.Users.Delete, r.AuthMiddleware.RequireAuth, middleware.RequireRole("admin"))
}
