package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)

	admin := users.Group("", middleware.AdminOnly())
	admin.GET("/volunteers/:orphanageId", userHandler.ListVolunteers)
	admin.POST("/volunteers/assign", userHandler.AssignVolunteer)
	admin.POST("/volunteers/:id/dismiss", userHandler.DismissVolunteer)
}
