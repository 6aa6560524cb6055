package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)

	payments.POST("", paymentHandler.Initiate, middleware.DonorOnly())
	payments.GET("/mine", paymentHandler.ListOwn, middleware.DonorOnly())
	payments.GET("/orphanage", paymentHandler.ListForOrphanage, middleware.AdminOnly())
	payments.GET("/:id", paymentHandler.GetByID)
	payments.POST("/verify/:reference", paymentHandler.Verify)
}
