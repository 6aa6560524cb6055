package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupChildRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	childHandler := handler.GetChildHandler()

	children := e.Group("/v1/children")
	children.Use(authMiddleware.Authenticate)

	children.GET("/:id", childHandler.GetByID)
	children.GET("/orphanage/:orphanageId", childHandler.ListByOrphanage)

	admin := children.Group("", middleware.AdminOnly())
	admin.POST("", childHandler.Create)
	admin.PATCH("/:id", childHandler.Update)
	admin.DELETE("/:id", childHandler.Delete)
	admin.POST("/:id/documents", childHandler.AttachDocument)
}
