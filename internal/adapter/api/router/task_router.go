package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupTaskRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	taskHandler := handler.GetTaskHandler()

	tasks := e.Group("/v1/tasks")
	tasks.Use(authMiddleware.Authenticate)

	tasks.GET("/orphanage/:orphanageId", taskHandler.ListByOrphanage)

	tasks.POST("", taskHandler.Create, middleware.AdminOnly())
	tasks.GET("/mine", taskHandler.ListOwn, middleware.VolunteerOnly())
	tasks.POST("/:id/signup", taskHandler.SignUp, middleware.VolunteerOnly())

	tasks.POST("/hours", taskHandler.LogHours, middleware.VolunteerOnly())
	tasks.GET("/hours/mine", taskHandler.ListOwnHours, middleware.VolunteerOnly())
	tasks.POST("/hours/:id/approve", taskHandler.ApproveHours, middleware.AdminOnly())
}
