package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupWishRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	wishHandler := handler.GetWishHandler()

	wishes := e.Group("/v1/wishes")
	wishes.Use(authMiddleware.Authenticate)

	wishes.GET("/orphanage/:orphanageId", wishHandler.ListByOrphanage)
	wishes.GET("/child/:childId", wishHandler.ListByChild)

	wishes.POST("", wishHandler.Create, middleware.AdminOnly())
	wishes.POST("/:id/claim", wishHandler.Claim, middleware.DonorOnly())
	wishes.POST("/:id/fulfill", wishHandler.Fulfill, middleware.AdminOnly())
}
