package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/refresh", authHandler.RefreshToken)
	e.POST("/v1/auth/resend-verification", authHandler.ResendVerification)
}
