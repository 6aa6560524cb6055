package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupOrphanageRouter(e, authMiddleware)
	SetupChildRouter(e, authMiddleware)
	SetupWishRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupContactRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupSOSRouter(e, authMiddleware)
	SetupTaskRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
