package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/taruns1620/connectify_hub_backend/controllers"
)

// RegisterAuthRoutes sets up the public authentication routes.
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	e.POST("/api/auth/request-otp", authController.RequestOTP)
	e.POST("/api/auth/verify-otp", authController.VerifyOTP)
	e.POST("/api/admin/login", authController.AdminLogin)
}
