package routes

import (
	"github.com/labstack/echo/v4"

	"os-manager/internal/controllers"
	"os-manager/pkg/middleware"
)

func runAuthRouter(api, secureGroup *echo.Group, ctrl *controllers.AuthController, limiter *middleware.LoginRateLimiter) {
	api.POST("/auth/login", ctrl.Login, limiter.Middleware)

	secureGroup.POST("/auth/logout", ctrl.Logout)
	secureGroup.GET("/auth/me", ctrl.Me)
	secureGroup.PUT("/auth/profile", ctrl.UpdateProfile)
}
