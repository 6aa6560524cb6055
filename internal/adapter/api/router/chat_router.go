package router

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/adapter/api/handler"
	"carebridge/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.ListChats)
	chats.POST("/open", chatHandler.OpenChat)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkRead)
}
