package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupContactRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	contactHandler := handler.GetContactHandler()

	contacts := e.Group("/v1/contacts")
	contacts.Use(authMiddleware.Authenticate)

	contacts.GET("", contactHandler.List)
}
