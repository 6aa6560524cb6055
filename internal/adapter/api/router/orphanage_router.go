package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupOrphanageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orphanageHandler := handler.GetOrphanageHandler()

	orphanages := e.Group("/v1/orphanages")
	orphanages.Use(authMiddleware.Authenticate)

	orphanages.GET("", orphanageHandler.List)
	orphanages.GET("/:id", orphanageHandler.GetByID)

	admin := orphanages.Group("", middleware.AdminOnly())
	admin.POST("", orphanageHandler.Create)
	admin.GET("/mine", orphanageHandler.GetOwn)
	admin.PATCH("/:id", orphanageHandler.Update)
}
