package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupSOSRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	sosHandler := handler.GetSOSHandler()

	sos := e.Group("/v1/sos")
	sos.Use(authMiddleware.Authenticate)

	sos.POST("", sosHandler.Raise)
	sos.GET("", sosHandler.List, middleware.AdminOnly())
	sos.GET("/:id", sosHandler.GetByID)
	sos.PATCH("/:id/status", sosHandler.UpdateStatus, middleware.AdminOnly())
}
